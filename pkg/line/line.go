package line

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Line is y = a*x + b.
type Line struct {
	// a是斜率，b是截距
	a float64
	b float64
}

func NewLine(a float64, b float64) Line {
	return Line{a: a, b: b}
}

// Null returns the zero line. It is handed out by value so the sentinel itself can never be changed.
func Null() Line {
	return Line{}
}

func (l Line) Slope() float64 {
	return l.a
}

func (l Line) Intercept() float64 {
	return l.b
}

func (l *Line) SetSlope(a float64) {
	l.a = a
}

func (l *Line) SetIntercept(b float64) {
	l.b = b
}

func (l Line) IsNull() bool {
	return l.a == 0 && l.b == 0
}

func (l Line) Predict(x float64) float64 {
	return l.a*x + l.b
}

// 输出: 2.0 * x +3.0
func (l Line) String() string {
	return formatFloat(l.a) + " * x +" + formatFloat(l.b)
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type lineJSON struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineJSON{Slope: l.a, Intercept: l.b})
}

func (l *Line) UnmarshalJSON(bts []byte) error {
	var v lineJSON
	err := json.Unmarshal(bts, &v)
	if err != nil {
		return err
	}
	l.a = v.Slope
	l.b = v.Intercept
	return nil
}
