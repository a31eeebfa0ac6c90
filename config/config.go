// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/ammvm/consts"
	"github.com/ava-labs/ammvm/pebble"
	"github.com/ava-labs/ammvm/server"
	"github.com/ava-labs/ammvm/trace"
)

const (
	defaultLogLevel        = "info"
	defaultLogMaxSizeMB    = 8
	defaultLogMaxFiles     = 5
	defaultDataDir         = ".ammvm"
	defaultHTTPHost        = "127.0.0.1"
	defaultHTTPPort        = 9650
	defaultShutdownTimeout = 10 * time.Second
	defaultReadTimeout     = 30 * time.Second
	defaultNetworkID       = 1
)

type Config struct {
	// Logging
	LogLevel     string `json:"logLevel" yaml:"logLevel"`
	LogDir       string `json:"logDir" yaml:"logDir"` // empty disables the file log
	LogMaxSizeMB int    `json:"logMaxSizeMB" yaml:"logMaxSizeMB"`
	LogMaxFiles  int    `json:"logMaxFiles" yaml:"logMaxFiles"`

	// Storage
	DataDir  string        `json:"dataDir" yaml:"dataDir"`
	Database pebble.Config `json:"database" yaml:"database"`

	// HTTP
	HTTPHost        string        `json:"httpHost" yaml:"httpHost"`
	HTTPPort        uint16        `json:"httpPort" yaml:"httpPort"`
	AllowedOrigins  []string      `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHosts    []string      `json:"allowedHosts" yaml:"allowedHosts"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
	ReadTimeout     time.Duration `json:"readTimeout" yaml:"readTimeout"`

	// Tracing
	TraceEnabled    bool    `json:"traceEnabled" yaml:"traceEnabled"`
	TraceSampleRate float64 `json:"traceSampleRate" yaml:"traceSampleRate"`
	TraceEndpoint   string  `json:"traceEndpoint" yaml:"traceEndpoint"`

	// Metrics
	MetricsEnabled bool `json:"metricsEnabled" yaml:"metricsEnabled"`

	// Chain
	NetworkID   uint32 `json:"networkID" yaml:"networkID"`
	GenesisFile string `json:"genesisFile" yaml:"genesisFile"`

	logLevel logging.Level
}

// New parses a JSON config. Empty input yields the defaults.
func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	return c, c.parse()
}

// NewYAML parses a YAML config. Empty input yields the defaults.
func NewYAML(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := yaml.UnmarshalStrict(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	return c, c.parse()
}

// Load reads the config at [file], choosing YAML for .yaml and .yml files
// and JSON otherwise.
func Load(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return NewYAML(b)
	default:
		return New(b)
	}
}

func (c *Config) setDefault() {
	c.LogLevel = defaultLogLevel
	c.LogMaxSizeMB = defaultLogMaxSizeMB
	c.LogMaxFiles = defaultLogMaxFiles
	c.DataDir = defaultDataDir
	c.Database = pebble.NewDefaultConfig()
	c.HTTPHost = defaultHTTPHost
	c.HTTPPort = defaultHTTPPort
	c.AllowedOrigins = []string{"*"}
	c.AllowedHosts = []string{"*"}
	c.ShutdownTimeout = defaultShutdownTimeout
	c.ReadTimeout = defaultReadTimeout
	c.TraceEndpoint = trace.DefaultEndpoint
	c.MetricsEnabled = true
	c.NetworkID = defaultNetworkID
}

func (c *Config) parse() error {
	level, err := logging.ToLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	c.logLevel = level
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.TraceSampleRate)
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level        { return c.logLevel }
func (c *Config) GetDatabaseDir() string            { return path.Join(c.DataDir, "db") }
func (c *Config) GetDatabaseConfig() pebble.Config  { return c.Database }
func (c *Config) GetHTTPAddress() string            { return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort) }
func (c *Config) GetShutdownTimeout() time.Duration { return c.ShutdownTimeout }
func (c *Config) GetMetricsEnabled() bool           { return c.MetricsEnabled }
func (c *Config) GetNetworkID() uint32              { return c.NetworkID }
func (c *Config) GetHTTPConfig() server.HTTPConfig {
	return server.HTTPConfig{
		ReadTimeout:       c.ReadTimeout,
		ReadHeaderTimeout: c.ReadTimeout,
		WriteTimeout:      c.ReadTimeout,
		IdleTimeout:       c.ReadTimeout,
	}
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &trace.Config{
		Enabled:         c.TraceEnabled,
		TraceSampleRate: c.TraceSampleRate,
		Endpoint:        c.TraceEndpoint,
		AppName:         consts.Name,
		Agent:           c.HTTPHost,
		Version:         consts.Version.String(),
	}
}

// Logger returns a logger writing to stderr and, when [LogDir] is set, to a
// rotating file named after [name].
func (c *Config) Logger(name string) logging.Logger {
	consoleCore := logging.NewWrappedCore(c.logLevel, os.Stderr, logging.Colors.ConsoleEncoder())
	cores := []logging.WrappedCore{consoleCore}
	if len(c.LogDir) > 0 {
		rw := &lumberjack.Logger{
			Filename:   path.Join(c.LogDir, name+".log"),
			MaxSize:    c.LogMaxSizeMB, // megabytes
			MaxBackups: c.LogMaxFiles,  // files
			Compress:   true,
		}
		cores = append(cores, logging.NewWrappedCore(c.logLevel, rw, logging.JSON.FileEncoder()))
	}
	log := logging.NewLogger(logging.Colors.WrapPrefix(name), cores...)
	log.Debug("logger initialized",
		zap.Stringer("level", c.logLevel),
		zap.String("dir", c.LogDir),
	)
	return log
}
