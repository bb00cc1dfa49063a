package csv_test

import (
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/liucxer/perf-tools/pkg/csv"
	"github.com/liucxer/perf-tools/pkg/line"
	"github.com/stretchr/testify/require"
)

type FileConfig struct {
	Path      string  `json:"path"`
	Window    int64   `json:"window"`
	Threshold float64 `json:"threshold"`
}

type Summary struct {
	Slope   float64 `json:"slope"`
	RSquare float64 `json:"rSquare"`
}

type FileResult struct {
	FileConfig
	Summary
	Line        line.Line `json:"line"`
	Degradation bool      `json:"degradation"`
	internal    int
}

func TestObjectToCsv(t *testing.T) {
	var res FileResult
	res.Path = "a.csv"
	res.Window = 5
	res.Summary.Slope = 0.5
	res.Line = line.NewLine(2, 3)
	res.Degradation = true
	res.internal = 1

	nameStr, valueStr, err := csv.ObjectToCsv(res)
	require.NoError(t, err)
	spew.Dump(nameStr)
	fmt.Println(valueStr)
	require.Equal(t, "FileConfig.Path,FileConfig.Window,FileConfig.Threshold,Summary.Slope,Summary.RSquare,Line,Degradation", nameStr)
	require.Equal(t, "a.csv,5,0,0.5,0,2.0 * x +3.0,true", valueStr)

	nameStr2, valueStr2, err := csv.ObjectToCsv(&res)
	require.NoError(t, err)
	require.Equal(t, nameStr, nameStr2)
	require.Equal(t, valueStr, valueStr2)

	_, _, err = csv.ObjectToCsv(3)
	require.Error(t, err)

	var nilResult *FileResult
	_, _, err = csv.ObjectToCsv(nilResult)
	require.Error(t, err)
}

func TestObjectListToCsv(t *testing.T) {
	var res FileResult
	res.Path = "a.csv"
	res.Summary.RSquare = 0.9

	var res1 FileResult
	res1.Path = "b.csv"
	res1.Degradation = true

	valueStr, err := csv.ObjectListToCsv([]FileResult{res, res1})
	require.NoError(t, err)
	fmt.Println(valueStr)
	require.Equal(t, "FileConfig.Path,FileConfig.Window,FileConfig.Threshold,Summary.Slope,Summary.RSquare,Line,Degradation\n"+
		"a.csv,0,0,0,0.9,0.0 * x +0.0,false\n"+
		"b.csv,0,0,0,0,0.0 * x +0.0,true\n", valueStr)

	valueStr, err = csv.ObjectListToCsv([]*FileResult{&res})
	require.NoError(t, err)
	require.Contains(t, valueStr, "a.csv")

	_, err = csv.ObjectListToCsv(res)
	require.Error(t, err)
}
