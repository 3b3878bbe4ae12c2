package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-resume2pdf/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		anyErr  bool
	}{
		{
			name: "known fields",
			data: []byte("name: test\ncount: 3\nenabled: true"),
			dest: &testConfig{},
		},
		{
			name:   "unknown field",
			data:   []byte("name: test\nunknown: 1"),
			dest:   &testConfig{},
			anyErr: true,
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Error("UnmarshalStrict() expected error, got nil")
				}
			default:
				if err != nil {
					t.Errorf("UnmarshalStrict() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestUnmarshalStrict_PreservesDefaults(t *testing.T) {
	t.Parallel()

	cfg := &testConfig{Name: "default", Count: 7}
	if err := yamlutil.UnmarshalStrict([]byte("enabled: true"), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "default" || cfg.Count != 7 || !cfg.Enabled {
		t.Errorf("got %+v, want defaults kept and enabled=true", cfg)
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalOrdered - Keeps mapping order
// ---------------------------------------------------------------------------

func TestUnmarshalOrdered(t *testing.T) {
	t.Parallel()

	t.Run("json object keeps key order", func(t *testing.T) {
		t.Parallel()

		var out any
		err := yamlutil.UnmarshalOrdered([]byte(`{"zeta": 1, "alpha": 2, "mid": 3}`), &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ms, ok := out.(yaml.MapSlice)
		if !ok {
			t.Fatalf("got %T, want yaml.MapSlice", out)
		}
		want := []string{"zeta", "alpha", "mid"}
		if len(ms) != len(want) {
			t.Fatalf("len = %d, want %d", len(ms), len(want))
		}
		for i, item := range ms {
			if item.Key != want[i] {
				t.Errorf("key[%d] = %v, want %q", i, item.Key, want[i])
			}
		}
	})

	t.Run("invalid syntax is wrapped", func(t *testing.T) {
		t.Parallel()

		var out any
		err := yamlutil.UnmarshalOrdered([]byte(`{"a": [1, 2}`), &out)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error %q should be prefixed with yamlutil:", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Rejects oversized input
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	var out any
	err := yamlutil.UnmarshalOrdered(data, &out)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("error = %v, want ErrInputTooLarge", err)
	}
}

func TestCheckInput(t *testing.T) {
	t.Parallel()

	if err := yamlutil.CheckInput([]byte("{}")); err != nil {
		t.Errorf("CheckInput() unexpected error: %v", err)
	}
	if err := yamlutil.CheckInput(nil); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("CheckInput(nil) error = %v, want ErrNilData", err)
	}
	big := []byte(strings.Repeat("a", yamlutil.MaxInputSize+1))
	if err := yamlutil.CheckInput(big); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("CheckInput(big) error = %v, want ErrInputTooLarge", err)
	}
}
