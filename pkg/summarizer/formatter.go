package summarizer

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/slidextract/pkg/pipeline"
)

// Formatter renders a Summary as file content.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a function to Formatter.
type FormatFunc func(summary *Summary) string

// Format calls f.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// ForPath returns JSONFormatter for ".json" paths and md otherwise.
func ForPath(path string, md *MarkdownFormatter) Formatter {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONFormatter{}
	}
	return md
}

// JSONFormatter renders a Summary for scripts. Durations are in seconds.
type JSONFormatter struct{}

type jsonSlide struct {
	Index      int     `json:"index"`
	FrameIndex int     `json:"frame_index"`
	Seconds    float64 `json:"seconds"`
	Clock      string  `json:"clock"`
	Score      float64 `json:"score"`
}

type jsonSummary struct {
	GeneratedAt    time.Time `json:"generated_at"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	Input          struct {
		Source    string `json:"source"`
		VideoPath string `json:"video_path,omitempty"`
	} `json:"input"`
	Video struct {
		Width         int `json:"width"`
		Height        int `json:"height"`
		FramesScanned int `json:"frames_scanned"`
		MaskedPixels  int `json:"masked_pixels"`
	} `json:"video"`
	Settings struct {
		Position           string  `json:"position"`
		SpeakerWidth       float64 `json:"speaker_width"`
		SpeakerHeight      float64 `json:"speaker_height"`
		Threshold          float64 `json:"threshold"`
		MinIntervalSeconds float64 `json:"min_interval_seconds"`
		SampleFPS          float64 `json:"sample_fps"`
	} `json:"settings"`
	Slides   []jsonSlide `json:"slides"`
	Document struct {
		Path       string `json:"path"`
		PageCount  int    `json:"page_count"`
		PageWidth  int    `json:"page_width"`
		PageHeight int    `json:"page_height"`
	} `json:"document"`
}

// Format implements Formatter.
func (JSONFormatter) Format(s *Summary) string {
	var out jsonSummary
	out.GeneratedAt = s.GeneratedAt
	out.ElapsedSeconds = s.Elapsed.Seconds()

	out.Input.Source = s.Input.Source
	out.Input.VideoPath = s.Input.VideoPath

	out.Video.Width = s.Video.Width
	out.Video.Height = s.Video.Height
	out.Video.FramesScanned = s.Video.FramesScanned
	out.Video.MaskedPixels = s.Video.MaskedPixels

	out.Settings.Position = s.Settings.Position
	out.Settings.SpeakerWidth = s.Settings.SpeakerWidth
	out.Settings.SpeakerHeight = s.Settings.SpeakerHeight
	out.Settings.Threshold = s.Settings.Threshold
	out.Settings.MinIntervalSeconds = s.Settings.MinInterval.Seconds()
	out.Settings.SampleFPS = s.Settings.SampleFPS

	out.Slides = make([]jsonSlide, len(s.Slides))
	for i, sl := range s.Slides {
		out.Slides[i] = jsonSlide{
			Index:      sl.Index,
			FrameIndex: sl.FrameIndex,
			Seconds:    sl.Timestamp.Seconds(),
			Clock:      pipeline.FormatClock(sl.Timestamp),
			Score:      sl.Score,
		}
	}

	out.Document.Path = s.Document.Path
	out.Document.PageCount = s.Document.PageCount
	out.Document.PageWidth = s.Document.PageWidth
	out.Document.PageHeight = s.Document.PageHeight

	// Only plain values are marshalled, so this cannot fail.
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data) + "\n"
}
