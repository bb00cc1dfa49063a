package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/liucxer/perf-tools/pkg/config"
	"github.com/liucxer/perf-tools/pkg/measurement"
	"github.com/stretchr/testify/require"
)

func TestFitCmd(t *testing.T) {
	var out bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"fit", "--x", "1,2,3", "--y", "2,4,6"})

	err := rootCmd.Execute()
	require.NoError(t, err)
	require.Equal(t, "2.0 * x +0.0\n", out.String())
}

func TestFitCmd_LengthMismatch(t *testing.T) {
	rootCmd := newRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"fit", "--x", "1,2,3", "--y", "2,4"})

	err := rootCmd.Execute()
	require.Error(t, err)
}

func writeResultFile(t *testing.T, dir string, name string, records int) string {
	var content strings.Builder
	content.WriteString("Time;Iterations;Result\n")
	for i := 0; i < records; i++ {
		content.WriteString(fmt.Sprintf("%s;%d;%d\n", measurement.FormatHMS(int64(i)*1000), i*10, i%7))
	}

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content.String()), 0644)
	require.NoError(t, err)
	return path
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	conf := config.ExecConfig{
		Inputs: []string{
			writeResultFile(t, dir, "a.csv", 30),
			writeResultFile(t, dir, "b.csv", 40),
		},
		Threshold: 100,
		Window:    5,
		OutputDir: filepath.Join(dir, "report"),
	}
	conf.SetDefaults()
	require.NoError(t, conf.Validate())

	var out bytes.Buffer
	reportPath, err := Analyze(context.Background(), &conf, &out)
	require.NoError(t, err)
	spew.Dump(out.String())

	require.True(t, strings.HasSuffix(reportPath, "_report.csv"))
	bts, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(bts)), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "Title,Size,Line,RSquare,P,ThresholdExceeded"))
	require.True(t, strings.HasPrefix(lines[1], conf.Inputs[0]+",30,"))
	require.True(t, strings.HasPrefix(lines[2], conf.Inputs[1]+",40,"))
	require.Contains(t, out.String(), "report: "+reportPath)
}

type fakeHost struct {
	dir      string
	cmds     []string
	uploaded []string
	closed   bool
}

func (h *fakeHost) ExecCmds(cmds []string) error {
	h.cmds = append(h.cmds, cmds...)
	return nil
}

func (h *fakeHost) ResultFiles(dir string, suffix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(h.dir, "*"+suffix))
	if err != nil {
		return nil, err
	}
	var res []string
	for _, match := range matches {
		res = append(res, dir+filepath.Base(match))
	}
	return res, nil
}

func (h *fakeHost) DownloadToDir(dstDir string, srcPaths []string) ([]string, error) {
	err := os.MkdirAll(dstDir, 0755)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, srcPath := range srcPaths {
		bts, err := os.ReadFile(filepath.Join(h.dir, filepath.Base(srcPath)))
		if err != nil {
			return nil, err
		}
		dstPath := filepath.Join(dstDir, filepath.Base(srcPath))
		err = os.WriteFile(dstPath, bts, 0644)
		if err != nil {
			return nil, err
		}
		res = append(res, dstPath)
	}
	return res, nil
}

func (h *fakeHost) Upload(dstPath string, srcPath string) error {
	h.uploaded = append(h.uploaded, dstPath+" <- "+srcPath)
	return nil
}

func (h *fakeHost) Close() error {
	h.closed = true
	return nil
}

func TestAnalyze_Remote(t *testing.T) {
	remoteDir := t.TempDir()
	writeResultFile(t, remoteDir, "remote_a.csv", 30)
	writeResultFile(t, remoteDir, "remote_b.csv", 20)

	host := &fakeHost{dir: remoteDir}
	dial := dialHost
	t.Cleanup(func() { dialHost = dial })
	dialHost = func(remote *config.RemoteConf) (remoteHost, error) {
		require.Equal(t, "10.0.20.28", remote.IpAddr)
		return host, nil
	}

	dir := t.TempDir()
	conf := config.ExecConfig{
		OutputDir: filepath.Join(dir, "report"),
		Remote: &config.RemoteConf{
			IpAddr:      "10.0.20.28",
			Paths:       []string{"/root/perfcake/results/"},
			UploadDir:   "/root/perfcake/reports",
			PreCommands: []string{"sync", "ls /root/perfcake/results"},
		},
	}
	conf.SetDefaults()
	require.NoError(t, conf.Validate())

	var out bytes.Buffer
	reportPath, err := Analyze(context.Background(), &conf, &out)
	require.NoError(t, err)
	spew.Dump(host)

	require.Equal(t, []string{"sync", "ls /root/perfcake/results"}, host.cmds)
	require.Equal(t, []string{"/root/perfcake/reports <- " + reportPath}, host.uploaded)
	require.True(t, host.closed)

	bts, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(bts)), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], filepath.Join(conf.OutputDir, "remote", "remote_a.csv")+",30,"))
	require.True(t, strings.HasPrefix(lines[2], filepath.Join(conf.OutputDir, "remote", "remote_b.csv")+",20,"))
}

func TestAnalyze_MissingInput(t *testing.T) {
	dir := t.TempDir()
	conf := config.ExecConfig{
		Inputs:    []string{filepath.Join(dir, "missing.csv")},
		OutputDir: filepath.Join(dir, "report"),
	}
	conf.SetDefaults()

	_, err := Analyze(context.Background(), &conf, &bytes.Buffer{})
	require.Error(t, err)
}
