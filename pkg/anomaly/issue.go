package anomaly

type IssueType int

const (
	OK IssueType = iota
	Degradation
	RegularSpikes
	TrafficSpike
	ThresholdExceeded
)

func (t IssueType) String() string {
	switch t {
	case OK:
		return "OK"
	case Degradation:
		return "DEGRADATION"
	case RegularSpikes:
		return "REGULAR_SPIKES"
	case TrafficSpike:
		return "TRAFFIC_SPIKE"
	case ThresholdExceeded:
		return "THRESHOLD_EXCEEDED"
	}
	return "UNKNOWN"
}

func (t IssueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Issue is a performance problem detected between two measurement times (milliseconds).
type Issue struct {
	Type IssueType `json:"type"`
	From int64     `json:"from"`
	To   int64     `json:"to"`
}

func (i Issue) IsDegradation() bool {
	return i.Type == Degradation
}

func (i Issue) IsRegularSpike() bool {
	return i.Type == RegularSpikes
}

func (i Issue) IsTrafficSpike() bool {
	return i.Type == TrafficSpike
}
