package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/compenguy/weatherradio/internal/frame"
	"github.com/compenguy/weatherradio/internal/options"
	"github.com/compenguy/weatherradio/internal/rtl433"
)

// Config represents the complete tool configuration
type Config struct {
	LogLevel      string        `yaml:"log_level"`
	Integrity     string        `yaml:"integrity"`
	RTL433        RTL433Config  `yaml:"rtl_433"`
	Metrics       MetricsConfig `yaml:"metrics"`
	SensorIgnores []string      `yaml:"sensor_ignores"`
}

// RTL433Config describes the external capture utility
type RTL433Config struct {
	Binary    string `yaml:"binary"`
	Frequency string `yaml:"frequency"`
	Protocols []int  `yaml:"protocols"`
	// Location of record timestamps, an IANA zone name; UTC when empty
	Location string `yaml:"location"`
}

// MetricsConfig contains the Prometheus listener configuration
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	rtl := rtl433.DefaultOptions()
	return &Config{
		LogLevel:  "error",
		Integrity: "strict",
		RTL433: RTL433Config{
			Binary:    rtl.Binary,
			Frequency: rtl.Frequency,
			Protocols: rtl.Protocols,
		},
	}
}

// Load reads and parses the configuration file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks every section of the configuration
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("integrity: %w", err)
	}
	if err := c.RTL433.Validate(); err != nil {
		return fmt.Errorf("rtl_433 config: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}
	return nil
}

// Validate checks the rtl_433 section
func (r *RTL433Config) Validate() error {
	if strings.TrimSpace(r.Binary) == "" {
		return fmt.Errorf("binary must not be empty")
	}
	for _, p := range r.Protocols {
		if p <= 0 {
			return fmt.Errorf("invalid protocol number %d", p)
		}
	}
	if _, err := r.TimeLocation(); err != nil {
		return err
	}
	return nil
}

// Options converts the section into capture options
func (r *RTL433Config) Options() rtl433.Options {
	return rtl433.Options{
		Binary:    r.Binary,
		Frequency: r.Frequency,
		Protocols: r.Protocols,
	}
}

// TimeLocation resolves the configured time zone
func (r *RTL433Config) TimeLocation() (*time.Location, error) {
	if r.Location == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", r.Location, err)
	}
	return loc, nil
}

// Validate checks the metrics listener address
func (m *MetricsConfig) Validate() error {
	if m.Address == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(m.Address); err != nil {
		return fmt.Errorf("invalid address %q: %w", m.Address, err)
	}
	return nil
}

// Level returns the configured logrus level
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// Mode returns the configured message validation mode
func (c *Config) Mode() (frame.Mode, error) {
	return options.ParseIntegrity(c.Integrity)
}

// Ignored reports whether records from sensorID should be dropped
func (c *Config) Ignored(sensorID string) bool {
	for _, s := range c.SensorIgnores {
		if s == sensorID {
			return true
		}
	}
	return false
}

// VerbosityLevel maps -q / repeated -v flags onto a logrus level the way
// the output level setting does: quiet, error, warn, info, debug, trace.
func VerbosityLevel(quiet bool, verbose int) logrus.Level {
	if quiet {
		return logrus.PanicLevel
	}
	switch verbose {
	case 0:
		return logrus.ErrorLevel
	case 1:
		return logrus.WarnLevel
	case 2:
		return logrus.InfoLevel
	case 3:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
