package csv_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/liucxer/perf-tools/pkg/csv"
	"github.com/liucxer/perf-tools/pkg/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Report(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	writer := csv.NewWriter(path)

	m := measurement.New(10, 1000, 100)
	m.Set(12.5)
	m.SetNamed("avg", 11.0)
	require.NoError(t, writer.Report(m))

	m = measurement.New(20, 62000, 200)
	m.Set("13 ms")
	m.SetNamed("other", 1)
	require.NoError(t, writer.Report(m))

	bts, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Time;Iterations;Result;avg\n"+
		"0:00:01;100;12.5;11\n"+
		"0:01:02;200;13 ms;\n", string(bts))
}

func TestWriter_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	writer := csv.NewWriter(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := measurement.New(0, int64(i)*1000, int64(i))
			m.Set(float64(i))
			assert.NoError(t, writer.Report(m))
		}(i)
	}
	wg.Wait()

	res, err := csv.ReadMeasurementsFile(path, "")
	require.NoError(t, err)
	require.Len(t, res, 20)
}

func TestReadMeasurements(t *testing.T) {
	data := "Time;Iterations;result;avg;label\r\n" +
		"0:00:01;100;12.5;11;fast\r\n" +
		"\n" +
		"0:00:02;200;;13.5;\n"
	res, err := csv.ReadMeasurements(strings.NewReader(data), ";")
	require.NoError(t, err)
	require.Len(t, res, 2)

	require.Equal(t, int64(1000), res[0].Time)
	require.Equal(t, int64(100), res[0].Iteration)
	require.Equal(t, 12.5, res[0].Get())
	require.Equal(t, 11.0, res[0].GetNamed("avg"))
	require.Equal(t, "fast", res[0].GetNamed("label"))

	require.Nil(t, res[1].Get())
	_, ok := res[1].Value(measurement.DefaultResult)
	require.False(t, ok)
	require.Equal(t, 13.5, res[1].GetNamed("avg"))
}

func TestReadMeasurements_Errors(t *testing.T) {
	_, err := csv.ReadMeasurements(strings.NewReader("a;b;c\n"), ";")
	require.Error(t, err)

	_, err = csv.ReadMeasurements(strings.NewReader("Time;Iterations;Result\nxx;1;2\n"), ";")
	require.Error(t, err)

	_, err = csv.ReadMeasurements(strings.NewReader("Time;Iterations;Result\n0:00:01;x;2\n"), ";")
	require.Error(t, err)

	_, err = csv.ReadMeasurementsFile(filepath.Join(t.TempDir(), "missing.csv"), ";")
	require.Error(t, err)
}

func TestWriterReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	writer := csv.NewWriter(path)
	writer.Delimiter = ","
	for i := 0; i < 5; i++ {
		m := measurement.New(0, int64(i)*1500, int64(i))
		m.Set(float64(i) * 1.5)
		require.NoError(t, writer.Report(m))
	}

	res, err := csv.ReadMeasurementsFile(path, ",")
	require.NoError(t, err)
	require.Len(t, res, 5)
	for i, m := range res {
		v, ok := m.Value(measurement.DefaultResult)
		require.True(t, ok)
		require.Equal(t, float64(i)*1.5, v)
		require.Equal(t, int64(i)*1500/1000*1000, m.Time)
	}
}
