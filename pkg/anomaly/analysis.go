package anomaly

import (
	"time"

	"github.com/liucxer/perf-tools/pkg/line"
	"github.com/liucxer/perf-tools/pkg/measurement"
	"github.com/liucxer/perf-tools/pkg/regression"
	"github.com/sirupsen/logrus"
)

// Analysis runs regression analysis over sliding windows of a data set and over the data set as a whole.
type Analysis struct {
	Threshold float64 `json:"threshold"`
	// Window is the number of measurements in a sliding window. Windows are analysed only when it is greater than 2.
	Window int     `json:"window"`
	Alpha  float64 `json:"alpha"`
}

type AnalysisResult struct {
	Line              line.Line `json:"line"`
	Slope             float64   `json:"slope"`
	Intercept         float64   `json:"intercept"`
	R                 float64   `json:"r"`
	RSquare           float64   `json:"rSquare"`
	P                 float64   `json:"p"`
	ThresholdExceeded bool      `json:"thresholdExceeded"`

	Items  []*Item `json:"items"`
	Issues []Issue `json:"issues"`

	Degradation   bool `json:"degradation"`
	RegularSpikes bool `json:"regularSpikes"`
	TrafficSpike  bool `json:"trafficSpike"`

	// 百分比
	DegradationProbability   int `json:"degradationProbability"`
	RegularSpikesProbability int `json:"regularSpikesProbability"`
	TrafficSpikeProbability  int `json:"trafficSpikeProbability"`
}

func (a *Analysis) alpha() float64 {
	if a.Alpha == 0 {
		return DefaultAlpha
	}
	return a.Alpha
}

func (a *Analysis) Run(dataSet DataSet) *AnalysisResult {
	startTime := time.Now()
	logrus.Debugf("Analysis.Run start. size:%d, window:%d, threshold:%v", len(dataSet), a.Window, a.Threshold)
	defer func() {
		cost := time.Now().Sub(startTime).Seconds()
		logrus.Debugf("Analysis.Run end.   size:%d, cost:%fs", len(dataSet), cost)
	}()

	res := &AnalysisResult{
		Items:  []*Item{},
		Issues: []Issue{},
	}

	if a.Window > 2 && len(dataSet) >= a.Window {
		a.runWindows(dataSet, res)
	}

	a.runEntireDataSet(dataSet, res)
	a.setDetectedIssues(res)
	setProbabilities(len(dataSet), res)
	return res
}

func (a *Analysis) runWindows(dataSet DataSet, res *AnalysisResult) {
	for i := a.Window; i < len(dataSet); i++ {
		window := dataSet[i-a.Window : i]
		fromTime := timeOf(window[0])
		toTime := timeOf(window[len(window)-1])

		if window.Exceeds(a.Threshold) {
			res.Issues = append(res.Issues, Issue{Type: ThresholdExceeded, From: fromTime, To: toTime})
			logrus.Debugf("%d: from %d to %d issue: %s", i, fromTime, toTime, ThresholdExceeded)
		}

		item := NewItem(window)
		item.Alpha = a.alpha()
		issueType := item.Run()
		if issueType != OK {
			res.Issues = append(res.Issues, Issue{Type: issueType, From: fromTime, To: toTime})
			logrus.Debugf("%d: from %d to %d issue: %s", i, fromTime, toTime, issueType)
		}
		res.Items = append(res.Items, item)
	}
}

func (a *Analysis) runEntireDataSet(dataSet DataSet, res *AnalysisResult) {
	reg := regression.NewSimpleRegression()
	x, y := dataSet.From(WarmUpRecords).Points()
	for i := range x {
		if y[i] > a.Threshold {
			res.ThresholdExceeded = true
		}
		reg.AddData(x[i], y[i])
	}

	res.Line = reg.Line()
	res.Slope = reg.Slope()
	res.Intercept = reg.Intercept()
	res.R = reg.R()
	res.RSquare = reg.RSquare()
	res.P = reg.Significance()
}

func (a *Analysis) setDetectedIssues(res *AnalysisResult) {
	for _, issue := range res.Issues {
		switch {
		case issue.IsDegradation():
			res.Degradation = true
		case issue.IsRegularSpike():
			res.RegularSpikes = true
		case issue.IsTrafficSpike():
			res.TrafficSpike = true
		}
	}
	logrus.Debugf("issues len:%d, degradation:%v, trafficSpike:%v, regularSpikes:%v",
		len(res.Issues), res.Degradation, res.TrafficSpike, res.RegularSpikes)
}

func setProbabilities(numberOfPossibilities int, res *AnalysisResult) {
	if numberOfPossibilities == 0 {
		return
	}

	degradation, regularSpikes, trafficSpike := 0, 0, 0
	for _, issue := range res.Issues {
		switch {
		case issue.IsDegradation():
			degradation++
		case issue.IsRegularSpike():
			regularSpikes++
		case issue.IsTrafficSpike():
			trafficSpike++
		}
	}

	res.DegradationProbability = degradation * 100 / numberOfPossibilities
	res.RegularSpikesProbability = regularSpikes * 100 / numberOfPossibilities
	res.TrafficSpikeProbability = trafficSpike * 100 / numberOfPossibilities
}

func timeOf(m *measurement.Measurement) int64 {
	if m == nil {
		return 0
	}
	return m.Time
}
