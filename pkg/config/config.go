package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/liucxer/perf-tools/pkg/destination"
	"github.com/sirupsen/logrus"
)

type RemoteConf struct {
	IpAddr   string `json:"ipAddr" toml:"ipAddr"`
	Port     string `json:"port" toml:"port"`
	User     string `json:"user" toml:"user"`
	Password string `json:"password" toml:"password"`
	// Paths are remote result files; a path ending with / lists every .csv file in that directory.
	Paths     []string `json:"paths" toml:"paths"`
	UploadDir string   `json:"uploadDir" toml:"uploadDir"`
	// PreCommands run on the remote host before the result files are fetched.
	PreCommands []string `json:"preCommands" toml:"preCommands"`
}

type ExecConfig struct {
	Inputs    []string `json:"inputs" toml:"inputs"`
	Delimiter string   `json:"delimiter" toml:"delimiter"`
	Threshold float64  `json:"threshold" toml:"threshold"`
	// Window is the number of records in a sliding window. WindowTime/Period override it when both are set.
	Window     int     `json:"window" toml:"window"`
	WindowTime string  `json:"windowTime" toml:"windowTime"`
	Period     string  `json:"period" toml:"period"`
	Alpha      float64 `json:"alpha" toml:"alpha"`
	OutputDir  string  `json:"outputDir" toml:"outputDir"`
	LogLevel   string  `json:"logLevel" toml:"logLevel"`

	Remote *RemoteConf `json:"remote,omitempty" toml:"remote"`
}

func (conf *ExecConfig) ReadConfig(configFilePath string) error {
	bts, err := os.ReadFile(configFilePath)
	if err != nil {
		logrus.Errorf("os.ReadFile err:%v", err)
		return err
	}

	switch strings.ToLower(filepath.Ext(configFilePath)) {
	case ".toml":
		_, err = toml.Decode(string(bts), conf)
		if err != nil {
			logrus.Errorf("toml.Decode err:%v", err)
			return err
		}
	default:
		err = json.Unmarshal(bts, conf)
		if err != nil {
			logrus.Errorf("json.Unmarshal err:%v", err)
			return err
		}
	}

	conf.SetDefaults()
	return conf.Validate()
}

func (conf *ExecConfig) SetDefaults() {
	if conf.Delimiter == "" {
		conf.Delimiter = ";"
	}
	if conf.Alpha == 0 {
		conf.Alpha = 0.05
	}
	if conf.OutputDir == "" {
		conf.OutputDir = "./perf-report"
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "Info"
	}
	if conf.Remote != nil && conf.Remote.Port == "" {
		conf.Remote.Port = "22"
	}
	if conf.Remote != nil && conf.Remote.User == "" {
		conf.Remote.User = "root"
	}
}

func (conf *ExecConfig) Validate() error {
	if len(conf.Inputs) == 0 && (conf.Remote == nil || len(conf.Remote.Paths) == 0) {
		return errors.New("no inputs configured")
	}
	if conf.Window < 0 {
		return fmt.Errorf("window must not be negative, got %d", conf.Window)
	}
	if conf.Alpha <= 0 || conf.Alpha >= 1 {
		return fmt.Errorf("alpha must be within (0,1), got %v", conf.Alpha)
	}
	if conf.Remote != nil && conf.Remote.IpAddr == "" {
		return errors.New("remote.ipAddr is required")
	}
	_, err := conf.WindowRecords()
	return err
}

// WindowRecords resolves the sliding window size in records.
func (conf *ExecConfig) WindowRecords() (int, error) {
	if conf.WindowTime == "" || conf.Period == "" {
		return conf.Window, nil
	}

	window, err := time.ParseDuration(conf.WindowTime)
	if err != nil {
		return 0, fmt.Errorf("windowTime: %w", err)
	}
	period, err := time.ParseDuration(conf.Period)
	if err != nil {
		return 0, fmt.Errorf("period: %w", err)
	}
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %s", conf.Period)
	}
	return destination.RecordsInWindow(window, period), nil
}
