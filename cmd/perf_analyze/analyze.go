package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liucxer/perf-tools/pkg/config"
	"github.com/liucxer/perf-tools/pkg/csv"
	"github.com/liucxer/perf-tools/pkg/destination"
	"github.com/liucxer/perf-tools/pkg/host_client"
	"github.com/liucxer/perf-tools/pkg/line"
	"github.com/sirupsen/logrus"
)

// ReportRow is one line of the report csv.
type ReportRow struct {
	Title             string    `json:"title"`
	Size              int       `json:"size"`
	Line              line.Line `json:"line"`
	RSquare           float64   `json:"rSquare"`
	P                 float64   `json:"p"`
	ThresholdExceeded bool      `json:"thresholdExceeded"`
	Degradation       int       `json:"degradation"`
	RegularSpikes     int       `json:"regularSpikes"`
	TrafficSpike      int       `json:"trafficSpike"`
	Mean              float64   `json:"mean"`
	StandardDeviation float64   `json:"standardDeviation"`
	Percentile95      float64   `json:"percentile95"`
	Percentile99      float64   `json:"percentile99"`
	Heuristics        string    `json:"heuristics"`
}

func reportRows(reports []*destination.Report) []ReportRow {
	var rows []ReportRow
	for _, report := range reports {
		rows = append(rows, ReportRow{
			Title:             report.Title,
			Size:              report.Size,
			Line:              report.Analysis.Line,
			RSquare:           report.Analysis.RSquare,
			P:                 report.Analysis.P,
			ThresholdExceeded: report.Analysis.ThresholdExceeded,
			Degradation:       report.Analysis.DegradationProbability,
			RegularSpikes:     report.Analysis.RegularSpikesProbability,
			TrafficSpike:      report.Analysis.TrafficSpikeProbability,
			Mean:              report.Statistics.Mean,
			StandardDeviation: report.Statistics.StandardDeviation,
			Percentile95:      report.Statistics.Percentile95,
			Percentile99:      report.Statistics.Percentile99,
			Heuristics:        report.Heuristics,
		})
	}
	return rows
}

// remoteHost is the part of host_client.HostClient used to fetch results and publish the report.
type remoteHost interface {
	ExecCmds(cmds []string) error
	ResultFiles(dir string, suffix string) ([]string, error)
	DownloadToDir(dstDir string, srcPaths []string) ([]string, error)
	Upload(dstPath string, srcPath string) error
	Close() error
}

var dialHost = func(remote *config.RemoteConf) (remoteHost, error) {
	return host_client.NewHostClient(remote.IpAddr, remote.Port, remote.User, remote.Password)
}

// Analyze reads every configured result file, runs anomaly detection on each and writes the report csv.
// It returns the local path of the report.
func Analyze(ctx context.Context, conf *config.ExecConfig, out io.Writer) (string, error) {
	var (
		err        error
		hostClient remoteHost
	)

	startTime := time.Now()
	logrus.Debugf("Analyze start. [inputs:%v]", conf.Inputs)
	defer func() {
		cost := time.Now().Sub(startTime).Seconds()
		logrus.Debugf("Analyze end. [cost:%fs]", cost)
	}()

	inputs := append([]string{}, conf.Inputs...)
	if conf.Remote != nil {
		hostClient, err = dialHost(conf.Remote)
		if err != nil {
			return "", err
		}
		defer func() { _ = hostClient.Close() }()

		err = hostClient.ExecCmds(conf.Remote.PreCommands)
		if err != nil {
			return "", err
		}

		remoteInputs, err := fetchRemote(hostClient, conf.Remote.Paths, filepath.Join(conf.OutputDir, "remote"))
		if err != nil {
			return "", err
		}
		inputs = append(inputs, remoteInputs...)
	}

	window, err := conf.WindowRecords()
	if err != nil {
		return "", err
	}
	dest := destination.NewAnomalyDestination(conf.Threshold, window)
	dest.Alpha = conf.Alpha

	for _, input := range inputs {
		measurements, err := csv.ReadMeasurementsFile(input, conf.Delimiter)
		if err != nil {
			return "", err
		}
		dest.Open(input)
		for _, m := range measurements {
			err = dest.Report(input, m)
			if err != nil {
				return "", err
			}
		}
	}

	reports, err := dest.CloseAll(ctx)
	if err != nil {
		return "", err
	}

	rows := reportRows(reports)
	for _, row := range rows {
		_, _ = fmt.Fprintf(out, "%s: %s, R2:%.4f, p:%.4f, degradation:%d%%, regularSpikes:%d%%, trafficSpike:%d%%, thresholdExceeded:%v, mean:%.2f, p95:%.2f, p99:%.2f, heuristics:%s\n",
			row.Title, row.Line, row.RSquare, row.P, row.Degradation, row.RegularSpikes, row.TrafficSpike,
			row.ThresholdExceeded, row.Mean, row.Percentile95, row.Percentile99, row.Heuristics)
	}

	reportPath, err := writeReport(conf.OutputDir, rows)
	if err != nil {
		return "", err
	}
	_, _ = fmt.Fprintf(out, "report: %s\n", reportPath)

	if hostClient != nil && conf.Remote.UploadDir != "" {
		err = hostClient.Upload(conf.Remote.UploadDir, reportPath)
		if err != nil {
			return "", err
		}
	}
	return reportPath, nil
}

func fetchRemote(hostClient remoteHost, paths []string, dstDir string) ([]string, error) {
	var srcPaths []string
	for _, p := range paths {
		if !strings.HasSuffix(p, "/") {
			srcPaths = append(srcPaths, p)
			continue
		}
		files, err := hostClient.ResultFiles(p, ".csv")
		if err != nil {
			return nil, err
		}
		srcPaths = append(srcPaths, files...)
	}
	return hostClient.DownloadToDir(dstDir, srcPaths)
}

func writeReport(outputDir string, rows []ReportRow) (string, error) {
	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		logrus.Errorf("os.MkdirAll err. [err:%v,outputDir:%s]", err, outputDir)
		return "", err
	}

	content, err := csv.ObjectListToCsv(rows)
	if err != nil {
		return "", err
	}

	reportPath := filepath.Join(outputDir, uuid.New().String()+"_report.csv")
	err = os.WriteFile(reportPath, []byte(content), 0644)
	if err != nil {
		logrus.Errorf("os.WriteFile err. [err:%v,reportPath:%s]", err, reportPath)
		return "", err
	}
	return reportPath, nil
}
