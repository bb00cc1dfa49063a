package measurement

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MillisInHour   = int64(3600000)
	MillisInMinute = int64(60000)
	MillisInSecond = int64(1000)
)

// HMSFormat renders milliseconds as hours, minutes and seconds.
// An empty Pattern gives H:MM:SS, otherwise the letters H, M and S in Pattern are substituted.
type HMSFormat struct {
	Pattern string
}

func (f HMSFormat) Format(millis int64) string {
	hours := millis / MillisInHour
	millis = millis % MillisInHour
	minutes := millis / MillisInMinute
	seconds := (millis % MillisInMinute) / MillisInSecond

	hoursStr := strconv.FormatInt(hours, 10)
	minutesStr := fmt.Sprintf("%02d", minutes)
	secondsStr := fmt.Sprintf("%02d", seconds)
	if f.Pattern == "" {
		return hoursStr + ":" + minutesStr + ":" + secondsStr
	}

	res := strings.ReplaceAll(f.Pattern, "H", hoursStr)
	res = strings.ReplaceAll(res, "M", minutesStr)
	res = strings.ReplaceAll(res, "S", secondsStr)
	return res
}

func FormatHMS(millis int64) string {
	return HMSFormat{}.Format(millis)
}

// ParseHMS reads H:MM:SS back into milliseconds.
func ParseHMS(s string) (int64, error) {
	tokens := strings.Split(strings.TrimSpace(s), ":")
	if len(tokens) != 3 {
		return 0, fmt.Errorf("invalid time stamp %q", s)
	}

	var res int64
	for i, unit := range []int64{MillisInHour, MillisInMinute, MillisInSecond} {
		v, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time stamp %q: %w", s, err)
		}
		res += v * unit
	}
	return res, nil
}
