package measurement

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const DefaultResult = "Result"

// Measurement is a snapshot of the named results valid up to the given time, iteration and progress percentage.
type Measurement struct {
	Percentage int64 `json:"percentage"`
	Time       int64 `json:"time"`
	Iteration  int64 `json:"iteration"`

	results map[string]interface{}
}

func New(percentage, time, iteration int64) *Measurement {
	return &Measurement{
		Percentage: percentage,
		Time:       time,
		Iteration:  iteration,
		results:    map[string]interface{}{},
	}
}

func (m *Measurement) Get() interface{} {
	return m.GetNamed(DefaultResult)
}

func (m *Measurement) GetNamed(name string) interface{} {
	return m.results[name]
}

func (m *Measurement) Set(result interface{}) {
	m.SetNamed(DefaultResult, result)
}

func (m *Measurement) SetNamed(name string, result interface{}) {
	if m.results == nil {
		m.results = map[string]interface{}{}
	}
	m.results[name] = result
}

func (m *Measurement) All() map[string]interface{} {
	res := make(map[string]interface{}, len(m.results))
	for k, v := range m.results {
		res[k] = v
	}
	return res
}

// Names lists the additional result names, sorted, without the default result.
func (m *Measurement) Names() []string {
	var names []string
	for k := range m.results {
		if k != DefaultResult {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Value gives the numeric view of a result. Strings such as "12.5 ms" are read from their first token.
func (m *Measurement) Value(name string) (float64, bool) {
	v, ok := m.results[name]
	if !ok || v == nil {
		return 0, false
	}

	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case uint64:
		return float64(value), true
	case string:
		return parseValue(value)
	case fmt.Stringer:
		return parseValue(value.String())
	}
	return 0, false
}

func parseValue(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	res, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return res, true
}

func (m *Measurement) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(FormatHMS(m.Time))
	sb.WriteString("][")
	sb.WriteString(strconv.FormatInt(m.Iteration, 10))
	sb.WriteString(" iterations][")
	sb.WriteString(strconv.FormatInt(m.Percentage, 10))
	sb.WriteString("%] [")
	sb.WriteString(fmt.Sprintf("%v", m.Get()))
	sb.WriteString("]")
	for _, name := range m.Names() {
		sb.WriteString(" [")
		sb.WriteString(name)
		sb.WriteString(" => ")
		sb.WriteString(fmt.Sprintf("%v", m.results[name]))
		sb.WriteString("]")
	}
	return sb.String()
}
