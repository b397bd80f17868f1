// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/slidextract/pkg/orchestrator"
	"github.com/user/slidextract/pkg/pipeline"
)

// Config represents the full configuration for slidextract.
type Config struct {
	// Input/Output
	Input      string `yaml:"input"`
	OutputPath string `yaml:"output"`
	Title      string `yaml:"title"`

	// Speaker region
	SpeakerWidth  float64 `yaml:"speaker_width"`
	SpeakerHeight float64 `yaml:"speaker_height"`
	Position      string  `yaml:"position"`

	// Detection
	Threshold   float64 `yaml:"threshold"`
	MinInterval float64 `yaml:"min_interval"` // seconds
	SampleFPS   float64 `yaml:"sample_fps"`

	// Document
	PageWidth       int    `yaml:"page_width"`
	PageHeight      int    `yaml:"page_height"`
	BackgroundColor string `yaml:"background_color"`
	Timestamps      bool   `yaml:"timestamps"`
	JPEGQuality     int    `yaml:"jpeg_quality"`
	Workers         int    `yaml:"workers"`

	// External tools
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	YtDlpPath   string `yaml:"ytdlp_path"`

	// Temp files and debug
	KeepTemp bool   `yaml:"keep_temp"`
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
	Summary  string `yaml:"summary"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputPath: orchestrator.DefaultOutputPath,

		SpeakerWidth:  0.15,
		SpeakerHeight: 0.15,
		Position:      pipeline.TopLeft.String(),

		Threshold:   0.25,
		MinInterval: 2.0,

		BackgroundColor: "#000000",
		Timestamps:      true,
		JPEGQuality:     90,
		Workers:         4,

		DebugDir: "./temp_frames",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges. Every failure wraps pipeline.ErrInvalidConfiguration.
func (c Config) Validate() error {
	_, err := c.ToOrchestratorConfig()
	if err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", pipeline.ErrInvalidConfiguration, c.Workers)
	}
	return nil
}

// ParseColor parses "#rrggbb", "#rgb" or "#rrggbbaa" (the # is optional).
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]}) + "ff"
	case 6:
		s += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("%w: invalid color %q", pipeline.ErrInvalidConfiguration, hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: invalid color %q", pipeline.ErrInvalidConfiguration, hex)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	corner, err := pipeline.ParseCorner(c.Position)
	if err != nil {
		return orchestrator.Config{}, err
	}
	region, err := pipeline.NewRegionSpec(c.SpeakerWidth, c.SpeakerHeight, corner)
	if err != nil {
		return orchestrator.Config{}, err
	}

	if math.IsNaN(c.MinInterval) || math.IsInf(c.MinInterval, 0) || c.MinInterval > maxIntervalSeconds {
		return orchestrator.Config{}, fmt.Errorf("%w: invalid minimum interval %v", pipeline.ErrInvalidConfiguration, c.MinInterval)
	}
	params, err := pipeline.NewDetectionParams(c.Threshold, secondsToDuration(c.MinInterval))
	if err != nil {
		return orchestrator.Config{}, err
	}

	bg, err := ParseColor(c.BackgroundColor)
	if err != nil {
		return orchestrator.Config{}, err
	}

	cfg := orchestrator.Config{
		Input:      c.Input,
		OutputPath: c.OutputPath,

		Region:    region,
		Params:    params,
		SampleFPS: c.SampleFPS,

		PageSize:        pipeline.PageSize{Width: c.PageWidth, Height: c.PageHeight},
		BackgroundColor: [4]uint8{bg.R, bg.G, bg.B, bg.A},
		ShowTimestamps:  c.Timestamps,
		JPEGQuality:     c.JPEGQuality,
		Title:           c.Title,

		KeepTemp: c.KeepTemp,
	}

	// Input is checked at run time so that a config file may omit it.
	probe := cfg
	if probe.Input == "" {
		probe.Input = "-"
	}
	if err := probe.Validate(); err != nil {
		return orchestrator.Config{}, err
	}
	return cfg, nil
}

// maxIntervalSeconds is the longest interval secondsToDuration can represent.
const maxIntervalSeconds = float64(math.MaxInt64/int64(time.Millisecond)) / 1000

// secondsToDuration converts fractional seconds to a Duration, rounded to the millisecond.
func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s*1000)) * time.Millisecond
}
