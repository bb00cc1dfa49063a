package regression

import (
	"math"

	"github.com/liucxer/perf-tools/pkg/line"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimpleRegression is an ordinary least squares fit of y = slope*x + intercept
// that accumulates points one at a time using updating formulas, so the data never has to be kept.
type SimpleRegression struct {
	n     int64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
	xBar  float64
	yBar  float64
}

func NewSimpleRegression() *SimpleRegression {
	return &SimpleRegression{}
}

func (r *SimpleRegression) AddData(x, y float64) {
	if r.n == 0 {
		r.xBar = x
		r.yBar = y
	} else {
		fact1 := 1.0 + float64(r.n)
		fact2 := float64(r.n) / fact1
		dx := x - r.xBar
		dy := y - r.yBar
		r.sumXX += dx * dx * fact2
		r.sumYY += dy * dy * fact2
		r.sumXY += dx * dy * fact2
		r.xBar += dx / fact1
		r.yBar += dy / fact1
	}
	r.sumX += x
	r.sumY += y
	r.n++
}

func (r *SimpleRegression) AddPoints(x, y []float64) {
	for i := 0; i < len(x) && i < len(y); i++ {
		r.AddData(x[i], y[i])
	}
}

func (r *SimpleRegression) Clear() {
	*r = SimpleRegression{}
}

func (r *SimpleRegression) N() int64 {
	return r.n
}

// Slope is NaN with fewer than two points or when all x are equal.
func (r *SimpleRegression) Slope() float64 {
	if r.n < 2 {
		return math.NaN()
	}
	if math.Abs(r.sumXX) < 10*math.SmallestNonzeroFloat64 {
		return math.NaN()
	}
	return r.sumXY / r.sumXX
}

func (r *SimpleRegression) Intercept() float64 {
	return (r.sumY - r.Slope()*r.sumX) / float64(r.n)
}

func (r *SimpleRegression) Predict(x float64) float64 {
	return r.Intercept() + r.Slope()*x
}

// Line gives the fitted line, or line.Null() when there is no fit.
func (r *SimpleRegression) Line() line.Line {
	slope := r.Slope()
	if math.IsNaN(slope) {
		return line.Null()
	}
	return line.NewLine(slope, r.Intercept())
}

func (r *SimpleRegression) SumSquaredErrors() float64 {
	return math.Max(0, r.sumYY-r.sumXY*r.sumXY/r.sumXX)
}

func (r *SimpleRegression) MeanSquareError() float64 {
	if r.n < 3 {
		return math.NaN()
	}
	return r.SumSquaredErrors() / float64(r.n-2)
}

func (r *SimpleRegression) RSquare() float64 {
	ssto := r.sumYY
	return (ssto - r.SumSquaredErrors()) / ssto
}

// R is Pearson's correlation coefficient, carrying the sign of the slope.
func (r *SimpleRegression) R() float64 {
	res := math.Sqrt(r.RSquare())
	if r.Slope() < 0 {
		res = -res
	}
	return res
}

func (r *SimpleRegression) SlopeStdErr() float64 {
	return math.Sqrt(r.MeanSquareError() / r.sumXX)
}

// Significance is the two-sided p-value of the hypothesis slope == 0.
func (r *SimpleRegression) Significance() float64 {
	return r.SignificanceWithDegrees(float64(r.n - 2))
}

// SignificanceWithDegrees is Significance tested against a t distribution with nu degrees of freedom.
func (r *SimpleRegression) SignificanceWithDegrees(nu float64) float64 {
	if r.n < 3 {
		return math.NaN()
	}
	slope := r.Slope()
	stdErr := r.SlopeStdErr()
	if math.IsNaN(slope) || math.IsNaN(stdErr) {
		return math.NaN()
	}
	if stdErr == 0 {
		return 0
	}

	t := math.Abs(slope) / stdErr
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	return 2 * (1 - dist.CDF(t))
}
