// Package config loads extractor and parser settings from an optional YAML
// file and SIPBODY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/arzzra/sipbody/pkg/sip/message"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "SIPBODY"

// Config holds the settings read once at startup
type Config struct {
	// CustomSDPIP overrides the media IP for every message
	CustomSDPIP string `yaml:"custom_sdp_ip" envconfig:"CUSTOM_SDP_IP"`
	// CustomSDPIPHeader names a header whose value overrides the media IP
	CustomSDPIPHeader string `yaml:"custom_sdp_ip_header" envconfig:"CUSTOM_SDP_IP_HEADER"`

	StrictParsing  bool `yaml:"strict_parsing" envconfig:"STRICT_PARSING"`
	MaxMessageSize int  `yaml:"max_message_size" envconfig:"MAX_MESSAGE_SIZE"`
	MaxHeaders     int  `yaml:"max_headers" envconfig:"MAX_HEADERS"`

	MetricsNamespace string `yaml:"metrics_namespace" envconfig:"METRICS_NAMESPACE"`
	LogLevel         string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		MaxMessageSize:   65536,
		MaxHeaders:       100,
		MetricsNamespace: "sipbody",
		LogLevel:         "info",
	}
}

// Load reads path (if non-empty) over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("config: max_message_size must be positive, got %d", c.MaxMessageSize)
	}
	if c.MaxHeaders <= 0 {
		return fmt.Errorf("config: max_headers must be positive, got %d", c.MaxHeaders)
	}
	if c.CustomSDPIP != "" && c.CustomSDPIPHeader != "" {
		return errors.New("config: custom_sdp_ip and custom_sdp_ip_header are mutually exclusive")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger returns a JSON logger writing to w at LogLevel, tagged with the
// component name.
func (c *Config) NewLogger(w io.Writer, component string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()})
	return slog.New(h).With(slog.String("component", component))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
}

// ParserOptions translates the parser settings into message.ParserOption values
func (c *Config) ParserOptions() []message.ParserOption {
	return []message.ParserOption{
		message.WithStrict(c.StrictParsing),
		message.WithMaxMessageSize(c.MaxMessageSize),
		message.WithMaxHeaders(c.MaxHeaders),
	}
}

// NewParser builds a message parser from the settings
func (c *Config) NewParser() *message.Parser {
	return message.NewParser(c.ParserOptions()...)
}
