package anomaly

import (
	"github.com/liucxer/perf-tools/pkg/regression"
)

type Heuristics interface {
	Run(dataSet DataSet)
	// AnalyzeResults names the detected performance problem, if any.
	AnalyzeResults() string
}

const (
	HeuristicsDegradation   = "possible degradation detected"
	HeuristicsTrafficSpikes = "possible increasing (traffic) spikes"
	HeuristicsRegularSpikes = "regular spikes"
	HeuristicsOK            = "OK"
	HeuristicsUnknown       = "NA"
)

type RegressionHeuristics struct {
	Alpha      float64
	regression *regression.SimpleRegression
}

var _ Heuristics = (*RegressionHeuristics)(nil)

func NewRegressionHeuristics() *RegressionHeuristics {
	return &RegressionHeuristics{Alpha: DefaultAlpha}
}

func (h *RegressionHeuristics) Run(dataSet DataSet) {
	h.regression = regression.NewSimpleRegression()
	h.regression.AddPoints(dataSet.From(statisticsWarmUp).Points())
}

func (h *RegressionHeuristics) AnalyzeResults() string {
	if h.regression == nil {
		return HeuristicsUnknown
	}

	slope := h.regression.Slope()
	rSquare := h.regression.RSquare()
	p := h.regression.Significance()
	alpha := h.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}

	if slope > 0.02 {
		if p < alpha {
			return HeuristicsDegradation
		}
		return HeuristicsTrafficSpikes
	}

	if p > alpha {
		if rSquare < 0.05 {
			return HeuristicsRegularSpikes
		}
	} else if p < alpha {
		if rSquare > 0.001 {
			return HeuristicsOK
		}
	}
	return HeuristicsUnknown
}
