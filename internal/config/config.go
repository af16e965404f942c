package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"

	"github.com/alnah/go-pdd/internal/fileutil"
	"github.com/alnah/go-pdd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxAddrLength      = 256
	MaxBodyLimitLength = 16
	MaxDurationLength  = 32
	MaxEnumLength      = 16
)

// Defaults applied by ApplyDefaults.
const (
	DefaultAddr            = ":8080"
	DefaultBodyLimit       = "1M"
	DefaultReadTimeout     = Duration("10s")
	DefaultWriteTimeout    = Duration("30s")
	DefaultShutdownTimeout = Duration("10s")
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultDocumentTimeout = Duration("30s")
)

// Config holds all configuration for the service and the CLI.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
	Document DocumentConfig `yaml:"document"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	BodyLimit       string   `yaml:"bodyLimit"` // "512K", "1M", "2MB"
	ReadTimeout     Duration `yaml:"readTimeout"`
	WriteTimeout    Duration `yaml:"writeTimeout"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
	RateLimit       float64  `yaml:"rateLimit"` // requests/second per client IP, 0 = off
	Demo            *bool    `yaml:"demo"`      // serve the demo page at / (default: true)
}

// MetricsConfig defines Prometheus exposition.
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled"` // default: true
	Addr    string `yaml:"addr"`    // empty = serve /metrics on the API listener
}

// LogConfig defines structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DocumentConfig defines document generation.
type DocumentConfig struct {
	InlineMarkdown *bool    `yaml:"inlineMarkdown"` // default: false
	Timeout        Duration `yaml:"timeout"`
}

// Duration is a time.ParseDuration string kept verbatim for error messages.
type Duration string

// Value returns the parsed duration, or 0 if d is empty or invalid.
func (d Duration) Value() time.Duration {
	v, err := time.ParseDuration(string(d))
	if err != nil {
		return 0
	}
	return v
}

// DemoEnabled reports whether the demo page is served.
func (s ServerConfig) DemoEnabled() bool {
	return s.Demo == nil || *s.Demo
}

// IsEnabled reports whether metrics are collected and exposed.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// InlineMarkdownEnabled reports whether field text is parsed as inline Markdown.
func (d DocumentConfig) InlineMarkdownEnabled() bool {
	return d.InlineMarkdown != nil && *d.InlineMarkdown
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

// ApplyDefaults fills unset fields. Explicit values are kept.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Server.Addr, DefaultAddr)
	setDefault(&c.Server.BodyLimit, DefaultBodyLimit)
	setDefault(&c.Server.ReadTimeout, DefaultReadTimeout)
	setDefault(&c.Server.WriteTimeout, DefaultWriteTimeout)
	setDefault(&c.Server.ShutdownTimeout, DefaultShutdownTimeout)
	setDefault(&c.Log.Level, DefaultLogLevel)
	setDefault(&c.Log.Format, DefaultLogFormat)
	setDefault(&c.Document.Timeout, DefaultDocumentTimeout)
}

func setDefault[T ~string](field *T, def T) {
	if *field == "" {
		*field = def
	}
}

// Validate checks field lengths, enums and durations.
// Empty fields are valid (ApplyDefaults fills them).
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("metrics.addr", c.Metrics.Addr, MaxAddrLength); err != nil {
		return err
	}

	if err := validateFieldLength("server.bodyLimit", c.Server.BodyLimit, MaxBodyLimitLength); err != nil {
		return err
	}
	if c.Server.BodyLimit != "" {
		n, err := bytes.Parse(c.Server.BodyLimit)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: server.bodyLimit %q (e.g. 512K, 1M)", ErrInvalidValue, c.Server.BodyLimit)
		}
	}

	durations := []struct {
		name  string
		value Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
		{"document.timeout", c.Document.Timeout},
	}
	for _, d := range durations {
		if err := validateDuration(d.name, d.value); err != nil {
			return err
		}
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rateLimit must be >= 0, got %g", ErrInvalidValue, c.Server.RateLimit)
	}

	if err := validateEnum("log.level", c.Log.Level, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if err := validateEnum("log.format", c.Log.Format, "console", "json"); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateDuration(fieldName string, value Duration) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, string(value), MaxDurationLength); err != nil {
		return err
	}
	d, err := time.ParseDuration(string(value))
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: %s %q (must be a positive duration like 10s)", ErrInvalidValue, fieldName, value)
	}
	return nil
}

func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, value, MaxEnumLength); err != nil {
		return err
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Defaults are not applied, so callers can layer overrides first.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the locations LoadConfig tries for a config name, in order:
// ./name.yaml, ./name.yml, then the same names under <UserConfigDir>/go-pdd/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-pdd", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
