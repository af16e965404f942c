package main

// Notes:
// - Every test here uses t.Setenv, so none of them run in parallel.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-pdd/internal/config"
	"github.com/alnah/go-pdd/internal/yamlutil"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("PDD_CONFIG", "team")
	t.Setenv("PDD_ADDR", ":9000")
	t.Setenv("PDD_METRICS_ADDR", ":9100")
	t.Setenv("PDD_LOG_LEVEL", "debug")
	t.Setenv("PDD_LOG_FORMAT", "json")
	t.Setenv("PDD_RATE_LIMIT", "2.5")
	t.Setenv("PDD_TIMEOUT", "5s")
	t.Setenv("PDD_INLINE_MARKDOWN", "true")

	env, err := loadEnvConfig()
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}

	if env.ConfigPath != "team" || env.Addr != ":9000" || env.MetricsAddr != ":9100" {
		t.Errorf("string fields = %+v", env)
	}
	if env.LogLevel != "debug" || env.LogFormat != "json" || env.Timeout != "5s" {
		t.Errorf("string fields = %+v", env)
	}
	if env.RateLimit == nil || *env.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v, want 2.5", env.RateLimit)
	}
	if env.InlineMarkdown == nil || !*env.InlineMarkdown {
		t.Errorf("InlineMarkdown = %v, want true", env.InlineMarkdown)
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"rate limit not a number", "PDD_RATE_LIMIT", "fast"},
		{"inline markdown not a boolean", "PDD_INLINE_MARKDOWN", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := loadEnvConfig()
			if !errors.Is(err, ErrInvalidEnv) {
				t.Errorf("error = %v, want ErrInvalidEnv", err)
			}
			if err != nil && !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q should name %s", err, tt.key)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("PDD_ADRR", ":1")
	t.Setenv("PDD_ADDR", ":2")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "PDD_ADRR") {
		t.Errorf("expected warning for PDD_ADRR, got %q", out)
	}
	if strings.Contains(out, "variable PDD_ADDR ") {
		t.Errorf("PDD_ADDR is known, got %q", out)
	}
}

func TestApplyEnvConfig_OverridesFile(t *testing.T) {
	rate := 3.0
	off := false
	cfg := &config.Config{
		Server: config.ServerConfig{Addr: ":1000", RateLimit: 1},
		Log:    config.LogConfig{Level: "info"},
	}
	applyEnvConfig(&envConfig{
		Addr:           ":2000",
		LogLevel:       "warn",
		RateLimit:      &rate,
		InlineMarkdown: &off,
	}, cfg)

	if cfg.Server.Addr != ":2000" {
		t.Errorf("Server.Addr = %q, want env value", cfg.Server.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want env value", cfg.Log.Level)
	}
	if cfg.Server.RateLimit != 3 {
		t.Errorf("Server.RateLimit = %g, want 3", cfg.Server.RateLimit)
	}
	if cfg.Document.InlineMarkdown == nil || *cfg.Document.InlineMarkdown {
		t.Error("InlineMarkdown should be explicitly false")
	}
}

func TestApplyEnvConfig_UnsetKeepsFile(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Addr: ":1000"}}
	applyEnvConfig(&envConfig{}, cfg)

	if cfg.Server.Addr != ":1000" {
		t.Errorf("Server.Addr = %q, want file value", cfg.Server.Addr)
	}
	if cfg.Document.InlineMarkdown != nil {
		t.Error("InlineMarkdown should stay unset")
	}
}

// ---------------------------------------------------------------------------
// Precedence through the config command: env > file > defaults
// ---------------------------------------------------------------------------

func TestConfigCommand_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pdd.yaml")
	content := "server:\n  addr: \":7000\"\nlog:\n  level: warn\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Setenv("PDD_CONFIG", path)
	t.Setenv("PDD_LOG_LEVEL", "error")

	env := newTestEnv("")
	if code := run(t, env, "config"); code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, env.stderr)
	}

	var got config.Config
	if err := yamlutil.UnmarshalStrict(env.stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not a config: %v\n%s", err, env.stdout)
	}
	if got.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want file value", got.Server.Addr)
	}
	if got.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want env value", got.Log.Level)
	}
	if got.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want file value", got.Log.Format)
	}
	if got.Server.BodyLimit != config.DefaultBodyLimit {
		t.Errorf("Server.BodyLimit = %q, want default", got.Server.BodyLimit)
	}
	if got.Server.Demo == nil || !*got.Server.Demo {
		t.Error("demo should be printed as true")
	}
}

func TestConfigCommand_InvalidEnv(t *testing.T) {
	t.Setenv("PDD_LOG_FORMAT", "xml")

	env := newTestEnv("")
	if code := run(t, env, "config"); code != ExitUsage {
		t.Errorf("exit code = %d, want ExitUsage\nstderr: %s", code, env.stderr)
	}
	if !strings.Contains(env.stderr.String(), "log.format") {
		t.Errorf("stderr should name the field: %s", env.stderr)
	}
}

func TestConfigCommand_NotFoundHint(t *testing.T) {
	t.Chdir(t.TempDir())

	env := newTestEnv("")
	code := run(t, env, "config", "-c", "missing")

	if code != ExitUsage {
		t.Errorf("exit code = %d, want ExitUsage", code)
	}
	if !strings.Contains(env.stderr.String(), "hint: use --config") {
		t.Errorf("expected config hint, got %s", env.stderr)
	}
}

// fileConfig stands in for values read from a config file.
func fileConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Addr: ":7000", RateLimit: 5},
		Log:    config.LogConfig{Level: "warn"},
	}
}
