package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions)
// - ToJSON output is compared after decoding, not byte for byte

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-pdd/internal/yamlutil"
)

type testConfig struct {
	Addr    string `yaml:"addr"`
	Limit   int    `yaml:"limit"`
	Enabled *bool  `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Strict decoding
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("addr: \":9000\"\nlimit: 5\nenabled: false"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Addr != ":9000" {
					t.Errorf("Addr = %q, want %q", cfg.Addr, ":9000")
				}
				if cfg.Limit != 5 {
					t.Errorf("Limit = %d, want 5", cfg.Limit)
				}
				if cfg.Enabled == nil || *cfg.Enabled {
					t.Errorf("Enabled = %v, want explicit false", cfg.Enabled)
				}
			},
		},
		{
			name: "absent optional bool stays nil",
			data: []byte("addr: x"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if v.(*testConfig).Enabled != nil {
					t.Error("Enabled should be nil when absent")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("addr: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalStrict_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	err := yamlutil.UnmarshalStrict([]byte("addr: x\nadress: y"), &testConfig{})
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error %q should carry the yamlutil prefix", err)
	}
}

func TestUnmarshalStrict_InvalidSyntax(t *testing.T) {
	t.Parallel()

	if err := yamlutil.UnmarshalStrict([]byte("addr: [unclosed"), &testConfig{}); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

// ---------------------------------------------------------------------------
// TestToJSON - YAML to JSON conversion
// ---------------------------------------------------------------------------

func TestToJSON(t *testing.T) {
	t.Parallel()

	data := []byte(`title: Invoice Intake
objectives:
  - Reduce errors
  - ""
requirements: []
manualSteps:
  - Open mailbox
`)

	out, err := yamlutil.ToJSON(data)
	if err != nil {
		t.Fatalf("ToJSON() unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("ToJSON() output is not JSON: %v\n%s", err, out)
	}

	want := map[string]any{
		"title":        "Invoice Intake",
		"objectives":   []any{"Reduce errors", ""},
		"requirements": []any{},
		"manualSteps":  []any{"Open mailbox"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToJSON() = %v, want %v", got, want)
	}
}

func TestToJSON_Errors(t *testing.T) {
	t.Parallel()

	if _, err := yamlutil.ToJSON(nil); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("ToJSON(nil) error = %v, want ErrNilData", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	enabled := true
	out, err := yamlutil.Marshal(testConfig{Addr: ":8080", Limit: 2, Enabled: &enabled})
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var back testConfig
	if err := yamlutil.UnmarshalStrict(out, &back); err != nil {
		t.Fatalf("Marshal() output does not decode: %v\n%s", err, out)
	}
	if back.Addr != ":8080" || back.Limit != 2 || back.Enabled == nil || !*back.Enabled {
		t.Errorf("decoded = %+v", back)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Memory exhaustion guard
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	t.Parallel()

	large := []byte("addr: " + strings.Repeat("x", yamlutil.MaxInputSize))

	if err := yamlutil.UnmarshalStrict(large, &testConfig{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
	if _, err := yamlutil.ToJSON(large); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("ToJSON() error = %v, want ErrInputTooLarge", err)
	}
}
