package line

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrLengthMismatch = errors.New("len(x) != len(y)")
	ErrNotEnoughData  = errors.New("at least two points are required")
	ErrZeroVariance   = errors.New("all x values are equal")
)

// 输入: []float64{}
/*
1	5.919042797
1	23.33703046
1	25.14476282
5	36.06610548
11	53.49233359
22	86.56219916
*/

type Fit struct {
	Line      Line  `json:"line"`
	DataCount int64 `json:"dataCount"`
}

// 输出: 3.27 * x +16.1
func LeastSquares(x []float64, y []float64) (Fit, error) {
	// x是横坐标数据,y是纵坐标数据
	xi := float64(0)
	x2 := float64(0)
	yi := float64(0)
	xy := float64(0)

	if len(x) != len(y) {
		return Fit{}, ErrLengthMismatch
	}
	if len(x) < 2 {
		return Fit{}, ErrNotEnoughData
	}

	length := float64(len(x))
	for i := 0; i < len(x); i++ {
		xi += x[i]
		x2 += x[i] * x[i]
		yi += y[i]
		xy += x[i] * y[i]
	}
	denominator := x2*length - xi*xi
	if denominator == 0 {
		return Fit{}, ErrZeroVariance
	}

	a := (xy*length - yi*xi) / denominator
	b := (yi*x2 - xy*xi) / denominator

	return Fit{
		Line:      NewLine(round2(a), round2(b)),
		DataCount: int64(len(x)),
	}, nil
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	res, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return res
}
