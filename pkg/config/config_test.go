package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/user/slidextract/pkg/orchestrator"
	"github.com/user/slidextract/pkg/pipeline"
)

func TestDefaults_MatchOrchestratorDefaults(t *testing.T) {
	got, err := Defaults().ToOrchestratorConfig()
	if err != nil {
		t.Fatalf("ToOrchestratorConfig failed: %v", err)
	}

	want := orchestrator.DefaultConfig()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slidextract.yaml")
	data := []byte(`
input: lecture.mp4
output: out/lecture.pdf
speaker_width: 0.25
speaker_height: 0.3
position: bottom-right
threshold: 0.4
min_interval: 1.5
sample_fps: 2
page_width: 1280
page_height: 720
background_color: "#ffffff"
timestamps: false
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	oc, err := cfg.ToOrchestratorConfig()
	if err != nil {
		t.Fatalf("ToOrchestratorConfig failed: %v", err)
	}

	want := orchestrator.Config{
		Input:      "lecture.mp4",
		OutputPath: "out/lecture.pdf",
		Region: pipeline.RegionSpec{
			WidthRatio:  0.25,
			HeightRatio: 0.3,
			Corner:      pipeline.BottomRight,
		},
		Params: pipeline.DetectionParams{
			Threshold:   0.4,
			MinInterval: 1500 * time.Millisecond,
		},
		SampleFPS:       2,
		PageSize:        pipeline.PageSize{Width: 1280, Height: 720},
		BackgroundColor: [4]uint8{255, 255, 255, 255},
		ShowTimestamps:  false,
		JPEGQuality:     90,
	}
	if diff := cmp.Diff(want, oc); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	// Unset keys keep their defaults.
	if cfg.Workers != 4 || cfg.DebugDir != "./temp_frames" {
		t.Errorf("expected defaults for unset keys, got workers=%d debug_dir=%q", cfg.Workers, cfg.DebugDir)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("threshold: [not, a, number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero speaker region", func(c *Config) { c.SpeakerWidth, c.SpeakerHeight = 0, 0 }, false},
		{"full speaker region", func(c *Config) { c.SpeakerWidth, c.SpeakerHeight = 1, 1 }, false},
		{"unknown position", func(c *Config) { c.Position = "center" }, true},
		{"speaker width above one", func(c *Config) { c.SpeakerWidth = 1.2 }, true},
		{"threshold negative", func(c *Config) { c.Threshold = -0.1 }, true},
		{"negative interval", func(c *Config) { c.MinInterval = -1 }, true},
		{"longest interval", func(c *Config) { c.MinInterval = maxIntervalSeconds }, false},
		{"interval overflows duration", func(c *Config) { c.MinInterval = maxIntervalSeconds + 1 }, true},
		{"huge interval", func(c *Config) { c.MinInterval = 1e300 }, true},
		{"bad color", func(c *Config) { c.BackgroundColor = "#12" }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"no output", func(c *Config) { c.OutputPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, pipeline.ErrInvalidConfiguration) {
					t.Errorf("expected ErrInvalidConfiguration, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#1a1a2e", color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}, false},
		{"FFFFFF", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#f00", color.RGBA{R: 255, A: 255}, false},
		{"#00000080", color.RGBA{A: 0x80}, false},
		{"", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
