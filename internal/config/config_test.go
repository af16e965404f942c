package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.BodyLimit != DefaultBodyLimit {
		t.Errorf("Server.BodyLimit = %q, want %q", cfg.Server.BodyLimit, DefaultBodyLimit)
	}
	if got := cfg.Server.ReadTimeout.Value(); got != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", got)
	}
	if got := cfg.Server.WriteTimeout.Value(); got != 30*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 30s", got)
	}
	if got := cfg.Document.Timeout.Value(); got != 30*time.Second {
		t.Errorf("Document.Timeout = %v, want 30s", got)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("Server.RateLimit = %g, want 0", cfg.Server.RateLimit)
	}
	if !cfg.Server.DemoEnabled() {
		t.Error("Server.DemoEnabled() = false, want true")
	}
	if !cfg.Metrics.IsEnabled() {
		t.Error("Metrics.IsEnabled() = false, want true")
	}
	if cfg.Document.InlineMarkdownEnabled() {
		t.Error("Document.InlineMarkdownEnabled() = true, want false")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want info/console", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Server: ServerConfig{Addr: "127.0.0.1:9000", BodyLimit: "2M", Demo: Bool(false)},
		Log:    LogConfig{Format: "json"},
	}
	cfg.ApplyDefaults()

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q, want explicit value", cfg.Server.Addr)
	}
	if cfg.Server.BodyLimit != "2M" {
		t.Errorf("Server.BodyLimit = %q, want explicit value", cfg.Server.BodyLimit)
	}
	if cfg.Server.DemoEnabled() {
		t.Error("explicit demo: false must survive ApplyDefaults")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default", cfg.Log.Level)
	}
}

func TestDuration_Value(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Duration
		want time.Duration
	}{
		{"", 0},
		{"250ms", 250 * time.Millisecond},
		{"1m30s", 90 * time.Second},
		{"soon", 0},
	}
	for _, tt := range tests {
		if got := tt.in.Value(); got != tt.want {
			t.Errorf("Duration(%q).Value() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value under limit is valid", "12345", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error should wrap ErrFieldTooLong, got %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		wantMsg string
	}{
		{
			name: "empty config is valid",
			cfg:  Config{},
		},
		{
			name: "body limit with unit",
			cfg:  Config{Server: ServerConfig{BodyLimit: "512K"}},
		},
		{
			name:    "body limit without meaning",
			cfg:     Config{Server: ServerConfig{BodyLimit: "lots"}},
			wantErr: ErrInvalidValue,
			wantMsg: "server.bodyLimit",
		},
		{
			name:    "body limit too long",
			cfg:     Config{Server: ServerConfig{BodyLimit: strings.Repeat("9", MaxBodyLimitLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "addr too long",
			cfg:     Config{Server: ServerConfig{Addr: strings.Repeat("a", MaxAddrLength+1)}},
			wantErr: ErrFieldTooLong,
			wantMsg: "server.addr",
		},
		{
			name:    "metrics addr too long",
			cfg:     Config{Metrics: MetricsConfig{Addr: strings.Repeat("a", MaxAddrLength+1)}},
			wantErr: ErrFieldTooLong,
			wantMsg: "metrics.addr",
		},
		{
			name:    "unparsable duration",
			cfg:     Config{Server: ServerConfig{ReadTimeout: "ten seconds"}},
			wantErr: ErrInvalidValue,
			wantMsg: "server.readTimeout",
		},
		{
			name:    "zero duration",
			cfg:     Config{Document: DocumentConfig{Timeout: "0s"}},
			wantErr: ErrInvalidValue,
			wantMsg: "document.timeout",
		},
		{
			name:    "negative duration",
			cfg:     Config{Server: ServerConfig{ShutdownTimeout: "-1s"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative rate limit",
			cfg:     Config{Server: ServerConfig{RateLimit: -1}},
			wantErr: ErrInvalidValue,
			wantMsg: "server.rateLimit",
		},
		{
			name: "log level is case-insensitive",
			cfg:  Config{Log: LogConfig{Level: "DEBUG", Format: "JSON"}},
		},
		{
			name:    "unknown log level",
			cfg:     Config{Log: LogConfig{Level: "verbose"}},
			wantErr: ErrInvalidValue,
			wantMsg: "debug, info, warn, error",
		},
		{
			name:    "unknown log format",
			cfg:     Config{Log: LogConfig{Format: "xml"}},
			wantErr: ErrInvalidValue,
			wantMsg: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// LoadConfig
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "pdd.yaml", `server:
  addr: ":9090"
  bodyLimit: "2M"
  rateLimit: 5
  demo: false
metrics:
  enabled: false
log:
  level: debug
  format: json
document:
  inlineMarkdown: true
  timeout: 5s
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Addr != ":9090" {
			t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
		}
		if cfg.Server.BodyLimit != "2M" {
			t.Errorf("Server.BodyLimit = %q, want 2M", cfg.Server.BodyLimit)
		}
		if cfg.Server.RateLimit != 5 {
			t.Errorf("Server.RateLimit = %g, want 5", cfg.Server.RateLimit)
		}
		if cfg.Server.DemoEnabled() {
			t.Error("Server.DemoEnabled() = true, want false")
		}
		if cfg.Metrics.IsEnabled() {
			t.Error("Metrics.IsEnabled() = true, want false")
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v", cfg.Log)
		}
		if !cfg.Document.InlineMarkdownEnabled() {
			t.Error("Document.InlineMarkdownEnabled() = false, want true")
		}
		if got := cfg.Document.Timeout.Value(); got != 5*time.Second {
			t.Errorf("Document.Timeout = %v, want 5s", got)
		}
	})

	t.Run("defaults are not applied on load", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "partial.yaml", "log:\n  level: warn\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Addr != "" {
			t.Errorf("Server.Addr = %q, want empty before ApplyDefaults", cfg.Server.Addr)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "invalid.yaml", "server: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "typo.yaml", "server:\n  adress: \":80\"\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "log:\n  format: xml\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

// Chdir and Setenv forbid t.Parallel.
func TestLoadConfig_ByName(t *testing.T) {
	t.Run("finds name.yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "local.yaml", "server:\n  addr: \":7000\"\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Addr != ":7000" {
			t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
		}
	})

	t.Run("falls back to .yml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "short.yml", "log:\n  level: error\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("short")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Level != "error" {
			t.Errorf("Log.Level = %q, want error", cfg.Log.Level)
		}
	})

	t.Run("searches user config dir", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME drives os.UserConfigDir on linux only")
		}
		home := t.TempDir()
		appDir := filepath.Join(home, "go-pdd")
		if err := os.MkdirAll(appDir, 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		writeConfig(t, appDir, "shared.yaml", "server:\n  addr: \":7100\"\n")
		t.Setenv("XDG_CONFIG_HOME", home)
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("shared")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Addr != ":7100" {
			t.Errorf("Server.Addr = %q, want :7100", cfg.Server.Addr)
		}
	})

	t.Run("missing name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "absent.yaml") || !strings.Contains(err.Error(), "absent.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("team")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "team.yaml" || paths[1] != "team.yml" {
		t.Errorf("local candidates = %v, want team.yaml then team.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join("go-pdd", "team.y")) {
			t.Errorf("user candidate %q should live under go-pdd/", p)
		}
	}
}
