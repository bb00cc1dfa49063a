package anomaly

import (
	"github.com/liucxer/perf-tools/pkg/measurement"
)

// WarmUpRecords is the number of leading measurements left out of whole data set regressions.
const WarmUpRecords = 10

const DefaultAlpha = 0.05

type DataSet []*measurement.Measurement

// Points returns time as x and the default result as y, skipping measurements without a numeric result.
func (ds DataSet) Points() (x []float64, y []float64) {
	for _, m := range ds {
		if m == nil {
			continue
		}
		value, ok := m.Value(measurement.DefaultResult)
		if !ok {
			continue
		}
		x = append(x, float64(m.Time))
		y = append(y, value)
	}
	return x, y
}

func (ds DataSet) Exceeds(threshold float64) bool {
	_, y := ds.Points()
	for _, v := range y {
		if v > threshold {
			return true
		}
	}
	return false
}

// From drops the first n measurements.
func (ds DataSet) From(n int) DataSet {
	if n >= len(ds) {
		return DataSet{}
	}
	return ds[n:]
}
