package anomaly

import (
	"github.com/liucxer/perf-tools/pkg/regression"
	"github.com/sirupsen/logrus"
)

// Item is the regression analysis of a single window of measurements.
type Item struct {
	Alpha float64 `json:"alpha"`

	DataSet DataSet `json:"-"`

	N         int64     `json:"n"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	R         float64   `json:"r"`
	RSquare   float64   `json:"rSquare"`
	P         float64   `json:"p"`
	IssueType IssueType `json:"issueType"`
}

func NewItem(dataSet DataSet) *Item {
	return &Item{
		Alpha:   DefaultAlpha,
		DataSet: dataSet,
	}
}

func (item *Item) Run() IssueType {
	reg := regression.NewSimpleRegression()
	reg.AddPoints(item.DataSet.Points())

	item.N = reg.N()
	item.Slope = reg.Slope()
	item.Intercept = reg.Intercept()
	item.R = reg.R()
	item.RSquare = reg.RSquare()
	// 自由度取 n
	item.P = reg.SignificanceWithDegrees(float64(item.N))
	item.IssueType = item.decide()

	logrus.Debugf("Item.Run. n:%d, slope:%v, r:%v, rSquare:%v, p:%v, issue:%s",
		item.N, item.Slope, item.R, item.RSquare, item.P, item.IssueType)
	return item.IssueType
}

func (item *Item) decide() IssueType {
	alpha := item.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}

	// 斜率明显 -> 持续上升
	if item.Slope > 0.4 {
		if item.RSquare > 0.7 {
			return Degradation
		}
		return OK
	}

	if item.Slope < 0.3 {
		if item.Slope < 0.001 {
			return OK
		}
		if item.RSquare < 0.1 {
			if item.P > alpha {
				return RegularSpikes
			}
		}
	}
	return OK
}
