package csv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/liucxer/perf-tools/pkg/measurement"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDelimiter = ";"

	timeColumn      = "Time"
	iterationColumn = "Iterations"
)

// Writer appends measurements to a delimiter separated file:
//
//	Time;Iterations;Result;name...
//	0:00:01;100;12.5;...
//
// The extra result columns are fixed by the first reported measurement.
type Writer struct {
	Path      string
	Delimiter string

	mu          sync.Mutex
	resultNames []string
}

func NewWriter(path string) *Writer {
	return &Writer{
		Path:      path,
		Delimiter: DefaultDelimiter,
	}
}

func (w *Writer) Report(m *measurement.Measurement) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	delimiter := w.Delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	if w.resultNames == nil {
		w.resultNames = m.Names()
	}

	var sb strings.Builder
	fileInfo, err := os.Stat(w.Path)
	if err != nil && !os.IsNotExist(err) {
		logrus.Errorf("os.Stat err. [err:%v,path:%s]", err, w.Path)
		return err
	}
	if err != nil || fileInfo.Size() == 0 {
		header := append([]string{timeColumn, iterationColumn, measurement.DefaultResult}, w.resultNames...)
		sb.WriteString(strings.Join(header, delimiter))
		sb.WriteString("\n")
	}

	row := []string{
		measurement.FormatHMS(m.Time),
		strconv.FormatInt(m.Iteration, 10),
		formatCell(m.Get()),
	}
	for _, name := range w.resultNames {
		row = append(row, formatCell(m.GetNamed(name)))
	}
	sb.WriteString(strings.Join(row, delimiter))
	sb.WriteString("\n")

	file, err := os.OpenFile(w.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		logrus.Errorf("os.OpenFile err. [err:%v,path:%s]", err, w.Path)
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.WriteString(sb.String())
	if err != nil {
		logrus.Errorf("file.WriteString err. [err:%v,path:%s]", err, w.Path)
		return fmt.Errorf("could not append a report to the file %s: %w", w.Path, err)
	}
	return nil
}

func formatCell(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	}
	return fmt.Sprintf("%v", v)
}

func ReadMeasurementsFile(path string, delimiter string) ([]*measurement.Measurement, error) {
	file, err := os.Open(path)
	if err != nil {
		logrus.Errorf("os.Open err. [err:%v,path:%s]", err, path)
		return nil, err
	}
	defer func() { _ = file.Close() }()

	res, err := ReadMeasurements(file, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func ReadMeasurements(r io.Reader, delimiter string) ([]*measurement.Measurement, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	var (
		res    []*measurement.Measurement
		header []string
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items := strings.Split(line, delimiter)
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}

		if header == nil {
			if len(items) < 3 || items[0] != timeColumn {
				return nil, fmt.Errorf("line %d: invalid header %q", lineNum, line)
			}
			header = items
			continue
		}

		if len(items) < 2 {
			return nil, fmt.Errorf("line %d: expected at least 2 columns, got %d", lineNum, len(items))
		}
		millis, err := measurement.ParseHMS(items[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		iteration, err := strconv.ParseInt(items[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		m := measurement.New(0, millis, iteration)
		for i := 2; i < len(items) && i < len(header); i++ {
			if items[i] == "" {
				continue
			}
			name := header[i]
			if i == 2 {
				name = measurement.DefaultResult
			}
			m.SetNamed(name, parseCell(items[i]))
		}
		res = append(res, m)
	}
	if err := scanner.Err(); err != nil {
		logrus.Errorf("scanner.Err. [err:%v]", err)
		return nil, err
	}
	return res, nil
}

func parseCell(s string) interface{} {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return v
}
