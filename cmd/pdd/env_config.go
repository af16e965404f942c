package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-pdd/internal/config"
)

// envConfig holds configuration from PDD_* environment variables.
// Empty strings and nil pointers mean "not set".
type envConfig struct {
	ConfigPath     string   // PDD_CONFIG: config file name or path
	Addr           string   // PDD_ADDR: API listen address
	MetricsAddr    string   // PDD_METRICS_ADDR: separate metrics listener
	LogLevel       string   // PDD_LOG_LEVEL: debug, info, warn, error
	LogFormat      string   // PDD_LOG_FORMAT: console, json
	RateLimit      *float64 // PDD_RATE_LIMIT: requests/second per client IP
	Timeout        string   // PDD_TIMEOUT: generation timeout
	InlineMarkdown *bool    // PDD_INLINE_MARKDOWN: true/false
}

// knownEnvVars lists valid PDD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDD_CONFIG":          true,
	"PDD_ADDR":            true,
	"PDD_METRICS_ADDR":    true,
	"PDD_LOG_LEVEL":       true,
	"PDD_LOG_FORMAT":      true,
	"PDD_RATE_LIMIT":      true,
	"PDD_TIMEOUT":         true,
	"PDD_INLINE_MARKDOWN": true,
}

// loadEnvConfig reads the PDD_* variables. Unparsable numbers and booleans
// are errors rather than silently ignored.
func loadEnvConfig() (*envConfig, error) {
	env := &envConfig{
		ConfigPath:  os.Getenv("PDD_CONFIG"),
		Addr:        os.Getenv("PDD_ADDR"),
		MetricsAddr: os.Getenv("PDD_METRICS_ADDR"),
		LogLevel:    os.Getenv("PDD_LOG_LEVEL"),
		LogFormat:   os.Getenv("PDD_LOG_FORMAT"),
		Timeout:     os.Getenv("PDD_TIMEOUT"),
	}

	if v := os.Getenv("PDD_RATE_LIMIT"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: PDD_RATE_LIMIT=%q is not a number", ErrInvalidEnv, v)
		}
		env.RateLimit = &r
	}

	if v := os.Getenv("PDD_INLINE_MARKDOWN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: PDD_INLINE_MARKDOWN=%q is not a boolean", ErrInvalidEnv, v)
		}
		env.InlineMarkdown = &b
	}

	return env, nil
}

// warnUnknownEnvVars logs warnings for unrecognized PDD_* variables.
// Helps catch typos like PDD_ADRR instead of PDD_ADDR.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "PDD_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.MetricsAddr != "" {
		cfg.Metrics.Addr = env.MetricsAddr
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.RateLimit != nil {
		cfg.Server.RateLimit = *env.RateLimit
	}
	if env.Timeout != "" {
		cfg.Document.Timeout = config.Duration(env.Timeout)
	}
	if env.InlineMarkdown != nil {
		cfg.Document.InlineMarkdown = config.Bool(*env.InlineMarkdown)
	}
}
