package measurement_test

import (
	"testing"

	"github.com/liucxer/perf-tools/pkg/measurement"
	"github.com/stretchr/testify/require"
)

func TestFormatHMS(t *testing.T) {
	require.Equal(t, "0:00:00", measurement.FormatHMS(0))
	require.Equal(t, "0:00:00", measurement.FormatHMS(999))
	require.Equal(t, "0:00:01", measurement.FormatHMS(1000))
	require.Equal(t, "1:02:03", measurement.FormatHMS(3723456))
	require.Equal(t, "27:00:59", measurement.FormatHMS(27*measurement.MillisInHour+59*measurement.MillisInSecond))
}

func TestHMSFormat_Pattern(t *testing.T) {
	f := measurement.HMSFormat{Pattern: "H-M-S"}
	require.Equal(t, "1-02-03", f.Format(3723456))

	f = measurement.HMSFormat{Pattern: "Hh Mm Ss"}
	require.Equal(t, "0h 05m 00s", f.Format(5*measurement.MillisInMinute))
}

func TestParseHMS(t *testing.T) {
	v, err := measurement.ParseHMS("1:02:03")
	require.NoError(t, err)
	require.Equal(t, int64(3723000), v)

	v, err = measurement.ParseHMS(measurement.FormatHMS(3723456))
	require.NoError(t, err)
	require.Equal(t, int64(3723000), v)

	_, err = measurement.ParseHMS("1:02")
	require.Error(t, err)

	_, err = measurement.ParseHMS("a:02:03")
	require.Error(t, err)
}
