package anomaly

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// statisticsWarmUp measurements are skipped before descriptive statistics are taken.
const statisticsWarmUp = 11

type Statistics struct {
	Threshold float64 `json:"threshold"`
}

type StatisticsResult struct {
	N                 int     `json:"n"`
	Mean              float64 `json:"mean"`
	StandardDeviation float64 `json:"standardDeviation"`
	Variance          float64 `json:"variance"`
	Percentile95      float64 `json:"percentile95"`
	Percentile99      float64 `json:"percentile99"`

	ThresholdResultExceeded  bool `json:"thresholdResultExceeded"`
	ThresholdAverageExceeded bool `json:"thresholdAverageExceeded"`
	Threshold95thExceeded    bool `json:"threshold95thExceeded"`
	Threshold99thExceeded    bool `json:"threshold99thExceeded"`
}

func (s *Statistics) Run(dataSet DataSet) *StatisticsResult {
	_, values := dataSet.From(statisticsWarmUp).Points()

	res := &StatisticsResult{
		N:                 len(values),
		Mean:              math.NaN(),
		StandardDeviation: math.NaN(),
		Variance:          math.NaN(),
		Percentile95:      math.NaN(),
		Percentile99:      math.NaN(),
	}
	if len(values) == 0 {
		return res
	}

	for _, v := range values {
		if v > s.Threshold {
			res.ThresholdResultExceeded = true
		}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	res.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		res.Variance = stat.Variance(values, nil)
		res.StandardDeviation = math.Sqrt(res.Variance)
	} else {
		res.Variance = 0
		res.StandardDeviation = 0
	}
	res.Percentile95 = percentile(sorted, 95)
	res.Percentile99 = percentile(sorted, 99)

	res.ThresholdAverageExceeded = res.Mean > s.Threshold
	res.Threshold95thExceeded = res.Percentile95 > s.Threshold
	res.Threshold99thExceeded = res.Percentile99 > s.Threshold
	return res
}

// percentile estimates the p-th percentile of sorted values at position p*(n+1)/100,
// interpolating between the neighbouring values.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p * float64(n+1) / 100
	if pos < 1 {
		return sorted[0]
	}
	if pos >= float64(n) {
		return sorted[n-1]
	}
	lower := math.Floor(pos)
	d := pos - lower
	low := sorted[int(lower)-1]
	high := sorted[int(lower)]
	return low + d*(high-low)
}
