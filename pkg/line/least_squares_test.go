package line_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/liucxer/perf-tools/pkg/line"
	"github.com/stretchr/testify/require"
)

func TestLeastSquares(t *testing.T) {
	/*
		1	5.919042797
		1	23.33703046
		1	25.14476282
		5	36.06610548
		11	53.49233359
		22	86.56219916
	*/
	x := []float64{1, 1, 1, 5, 11, 22}
	y := []float64{5.919042797, 23.33703046, 25.14476282, 36.06610548, 53.49233359, 86.56219916}
	res, err := line.LeastSquares(x, y)
	require.NoError(t, err)
	spew.Dump(res)

	require.Equal(t, 3.27, res.Line.Slope())
	require.Equal(t, 16.1, res.Line.Intercept())
	require.Equal(t, int64(6), res.DataCount)
	require.Equal(t, "3.27 * x +16.1", res.Line.String())
}

func TestLeastSquares_Exact(t *testing.T) {
	res, err := line.LeastSquares([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.NoError(t, err)
	require.Equal(t, line.NewLine(2, 1), res.Line)
}

func TestLeastSquares_Errors(t *testing.T) {
	_, err := line.LeastSquares([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, line.ErrLengthMismatch)

	_, err = line.LeastSquares([]float64{1}, []float64{1})
	require.ErrorIs(t, err, line.ErrNotEnoughData)

	_, err = line.LeastSquares([]float64{3, 3, 3}, []float64{1, 2, 3})
	require.ErrorIs(t, err, line.ErrZeroVariance)
}
