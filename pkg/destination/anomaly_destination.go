package destination

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/liucxer/perf-tools/pkg/anomaly"
	"github.com/liucxer/perf-tools/pkg/measurement"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrNotOpened = errors.New("result set is not opened")

type Report struct {
	Title      string                    `json:"title"`
	Size       int                       `json:"size"`
	Analysis   *anomaly.AnalysisResult   `json:"analysis"`
	Statistics *anomaly.StatisticsResult `json:"statistics"`
	Heuristics string                    `json:"heuristics"`
}

// AnomalyDestination collects measurements of several result sets, reported concurrently,
// and runs anomaly detection on each of them once it is closed.
type AnomalyDestination struct {
	Threshold float64
	Window    int
	Alpha     float64

	mu         sync.Mutex
	resultSets map[string]anomaly.DataSet
	finished   map[string]bool
	reports    map[string]*Report
}

func NewAnomalyDestination(threshold float64, window int) *AnomalyDestination {
	return &AnomalyDestination{
		Threshold:  threshold,
		Window:     window,
		Alpha:      anomaly.DefaultAlpha,
		resultSets: map[string]anomaly.DataSet{},
		finished:   map[string]bool{},
		reports:    map[string]*Report{},
	}
}

// RecordsInWindow converts a time window into the number of measurements reported within it.
func RecordsInWindow(window, period time.Duration) int {
	if period <= 0 {
		return 0
	}
	return int(window / period)
}

func (d *AnomalyDestination) Open(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.resultSets[title]; !ok {
		d.resultSets[title] = anomaly.DataSet{}
	}
	d.finished[title] = false
}

func (d *AnomalyDestination) Report(title string, m *measurement.Measurement) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.resultSets[title]; !ok {
		return fmt.Errorf("%s: %w", title, ErrNotOpened)
	}
	d.resultSets[title] = append(d.resultSets[title], m)
	return nil
}

// Close finishes the result set and analyses it.
func (d *AnomalyDestination) Close(title string) (*Report, error) {
	d.mu.Lock()
	dataSet, ok := d.resultSets[title]
	if ok {
		d.finished[title] = true
	}
	d.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", title, ErrNotOpened)
	}

	report := d.analyze(title, dataSet)

	d.mu.Lock()
	d.reports[title] = report
	d.mu.Unlock()
	return report, nil
}

// CloseAll closes every result set that is still open, analysing them concurrently.
func (d *AnomalyDestination) CloseAll(ctx context.Context) ([]*Report, error) {
	d.mu.Lock()
	var titles []string
	for title, finished := range d.finished {
		if !finished {
			titles = append(titles, title)
		}
	}
	d.mu.Unlock()

	eg, ctx := errgroup.WithContext(ctx)
	for _, title := range titles {
		title := title
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := d.Close(title)
			return err
		})
	}
	err := eg.Wait()
	if err != nil {
		logrus.Errorf("CloseAll err. [err:%v]", err)
		return nil, err
	}
	return d.Reports(), nil
}

// Finished reports whether every opened result set has been closed.
func (d *AnomalyDestination) Finished() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, finished := range d.finished {
		if !finished {
			return false
		}
	}
	return true
}

// Reports lists the reports of closed result sets ordered by title.
func (d *AnomalyDestination) Reports() []*Report {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := make([]*Report, 0, len(d.reports))
	for _, report := range d.reports {
		res = append(res, report)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Title < res[j].Title
	})
	return res
}

func (d *AnomalyDestination) analyze(title string, dataSet anomaly.DataSet) *Report {
	analysis := anomaly.Analysis{
		Threshold: d.Threshold,
		Window:    d.Window,
		Alpha:     d.Alpha,
	}
	stats := anomaly.Statistics{Threshold: d.Threshold}
	heuristics := anomaly.NewRegressionHeuristics()
	if d.Alpha != 0 {
		heuristics.Alpha = d.Alpha
	}
	heuristics.Run(dataSet)

	report := &Report{
		Title:      title,
		Size:       len(dataSet),
		Analysis:   analysis.Run(dataSet),
		Statistics: stats.Run(dataSet),
		Heuristics: heuristics.AnalyzeResults(),
	}

	logrus.Infof("For test '%s' slope result is '%v', R is '%v', R square is '%v', significance is '%v', threshold was '%v'.",
		title, report.Analysis.Slope, report.Analysis.R, report.Analysis.RSquare, report.Analysis.P, report.Analysis.ThresholdExceeded)
	logrus.Infof("For test '%s' mean was '%v', stdDev was '%v', 95percentile was '%v', 99percentile was '%v', variance was '%v'.",
		title, report.Statistics.Mean, report.Statistics.StandardDeviation, report.Statistics.Percentile95,
		report.Statistics.Percentile99, report.Statistics.Variance)
	return report
}
