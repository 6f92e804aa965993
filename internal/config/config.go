// Package config loads the server configuration from YAML with struct defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wagnerlima/designdata-mcp/internal/issues"
)

// Config is the full server configuration.
type Config struct {
	File    string        `yaml:"-"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Figma   FigmaConfig   `yaml:"figma"`
	Issues  IssuesConfig  `yaml:"issues"`
}

// ServerConfig selects the MCP transport.
type ServerConfig struct {
	// Transport is stdio or http.
	Transport string `yaml:"transport" default:"stdio"`
	Port      string `yaml:"port" default:"8081"`
	// MetricsPath is served next to the MCP endpoint in http mode.
	MetricsPath string `yaml:"metrics-path" default:"/metrics"`
}

// StorageConfig locates the snapshot database.
type StorageConfig struct {
	DataDir      string `yaml:"data-dir" default:"./data"`
	SnapshotName string `yaml:"snapshot-name" default:"design-data-storage"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is parsed by zapcore.ParseLevel.
	Level string `yaml:"level" default:"info"`
	// File is the log file path; empty means stderr.
	File string `yaml:"file"`
	// Production switches to the JSON encoder.
	Production bool `yaml:"production" default:"false"`
}

// FigmaConfig configures the design-import client.
type FigmaConfig struct {
	BaseURL            string        `yaml:"base-url" default:"https://api.figma.com"`
	Timeout            time.Duration `yaml:"timeout" default:"30s"`
	RefreshConcurrency int           `yaml:"refresh-concurrency" default:"4"`
}

// IssuesConfig configures the optional issue tracker.
type IssuesConfig struct {
	Enabled  bool   `yaml:"enabled" default:"false"`
	Host     string `yaml:"host"`
	Email    string `yaml:"email"`
	APIToken string `yaml:"api-token"`
	Project  string `yaml:"project"`
}

// Tracker returns the tracker connection settings.
func (c IssuesConfig) Tracker() issues.Config {
	return issues.Config{Host: c.Host, Email: c.Email, APIToken: c.APIToken, Project: c.Project}
}

// Default returns a configuration holding only defaults.
func Default() (*Config, error) {
	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	return c, nil
}

// Load reads the YAML file at path on top of the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	realpath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve config path failed")
	}
	c.File = filepath.Clean(realpath)

	data, err := os.ReadFile(c.File)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config file failed")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	// defaults.Set only fills zero values, so this restores defaults for keys
	// present in the file but left empty.
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "re-set default config failed")
	}
	return c, nil
}
