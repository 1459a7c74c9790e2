package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/trunnel/pkg/errors"
	"github.com/matzehuels/trunnel/pkg/render/trunnel/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultLayoutConfig(t *testing.T) {
	if diff := cmp.Diff(layout.DefaultConfig(), Default().LayoutConfig()); diff != "" {
		t.Errorf("Default().LayoutConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "trunnel.toml", `
[dimensions]
trunk_width = 0.6
leaves_count = 3

[right_axis]
width = 120

[colours]
end = "#00ff00"
`)
	got, err := Load(path, LoadOptions{Strict: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Dimensions.TrunkWidth = 0.6
	want.Dimensions.LeavesCount = 3
	want.RightAxis.Width = 120
	want.Colours.End = "#00ff00"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "trunnel.yaml", `
dimensions:
  trunk_height: 0.7
  leaves_height: 1
top_axis:
  height: 10
`)
	got, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.Dimensions.TrunkHeight = 0.7
	want.Dimensions.LeavesHeight = 1
	want.TopAxis.Height = 10
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUnknownKeys(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"toml", "s.toml", "[dimensions]\ntrunk_widht = 0.6\n"},
		{"yaml", "s.yml", "dimensions:\n  trunk_widht: 0.6\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			if _, err := Load(path, LoadOptions{}); err != nil {
				t.Errorf("lenient Load() error = %v", err)
			}
			_, err := Load(path, LoadOptions{Strict: true})
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("strict Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), LoadOptions{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Load(writeFile(t, "s.ini", "x=1"), LoadOptions{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension error = %v, want INVALID_FORMAT", err)
	}
	if _, err := Load(writeFile(t, "s.toml", "[dimensions\n"), LoadOptions{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed TOML error = %v, want INVALID_FORMAT", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := Default()
	s.Dimensions.LeavesCount = 4
	s.Colours.Start = "#123456"

	for _, name := range []string{"out.toml", "out.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		if err := s.Save(path); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		got, err := Load(path, LoadOptions{Strict: true})
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().WriteTOML(&buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[dimensions]", "trunk_width = 0.5", "[colours]", `start = "#118DFF"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("TOML missing %q:\n%s", want, buf.String())
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		items   int
		wantErr string
	}{
		{"defaults", func(*Settings) {}, 5, ""},
		{"trunk too wide", func(s *Settings) { s.Dimensions.TrunkWidth = 0.9 }, 5, "dimensions.trunk_width"},
		{"leaves too short", func(s *Settings) { s.Dimensions.LeavesHeight = 0.1 }, 5, "dimensions.leaves_height"},
		{"all leaves", func(s *Settings) { s.Dimensions.LeavesCount = 5 }, 5, ""},
		{"too many leaves", func(s *Settings) { s.Dimensions.LeavesCount = 6 }, 5, "dimensions.leaves_count = 6 outside [0, 5]"},
		{"negative inset", func(s *Settings) { s.LeftAxis.Width = -1 }, 5, "left_axis.width"},
		{"bad colour", func(s *Settings) { s.Colours.End = "orange" }, 5, "colours.end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate(tt.items)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Validate() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidRanges(t *testing.T) {
	got := ValidRanges(7)
	want := []Range{
		{Name: "dimensions.trunk_width", Min: 0.2, Max: 0.8, Step: 0.05},
		{Name: "dimensions.trunk_height", Min: 0.2, Max: 0.8, Step: 0.05},
		{Name: "dimensions.leaves_height", Min: 0.2, Max: 1, Step: 0.05},
		{Name: "dimensions.leaves_count", Min: 0, Max: 7, Step: 1, Integer: true},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Range{})); diff != "" {
		t.Errorf("ValidRanges(7) mismatch (-want +got):\n%s", diff)
	}
	if r := ValidRanges(-3); r[3].Max != 0 {
		t.Errorf("ValidRanges(-3) leaf max = %v, want 0", r[3].Max)
	}
}

func TestRangeSetClamps(t *testing.T) {
	s := Default()
	r := ValidRanges(4)
	r[0].Set(&s, 2)
	r[3].Set(&s, 9)
	if s.Dimensions.TrunkWidth != 0.8 {
		t.Errorf("TrunkWidth = %v, want 0.8", s.Dimensions.TrunkWidth)
	}
	if s.Dimensions.LeavesCount != 4 {
		t.Errorf("LeavesCount = %d, want 4", s.Dimensions.LeavesCount)
	}
	r[3].Set(&s, 2.4)
	if got := r[3].Get(s); got != 2 {
		t.Errorf("Get() = %v, want 2", got)
	}
}
