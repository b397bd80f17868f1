// Package summarizer provides summary generation for extraction results.
package summarizer

import "time"

// Summary contains all data collected during an extraction run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Elapsed     time.Duration

	// Input video
	Input InputInfo
	Video VideoInfo

	// Detection settings and results
	Settings Settings
	Slides   []Slide

	// Output document
	Document DocumentInfo
}

// InputInfo describes where the video came from.
type InputInfo struct {
	Source    string // Path or URL as given
	VideoPath string // Local file that was decoded
}

// VideoInfo contains information about the scanned video.
type VideoInfo struct {
	Width         int
	Height        int
	FramesScanned int
	MaskedPixels  int
}

// Settings contains the detection configuration.
type Settings struct {
	Position      string
	SpeakerWidth  float64
	SpeakerHeight float64
	Threshold     float64
	MinInterval   time.Duration
	SampleFPS     float64 // 0 = every frame
}

// Slide describes one detected slide.
type Slide struct {
	Index      int
	FrameIndex int
	Timestamp  time.Duration
	Score      float64
}

// DocumentInfo contains information about the output document.
type DocumentInfo struct {
	Path       string
	PageCount  int
	PageWidth  int
	PageHeight int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets input information.
func (b *Builder) WithInput(source, videoPath string) *Builder {
	b.summary.Input = InputInfo{
		Source:    source,
		VideoPath: videoPath,
	}
	return b
}

// WithVideo sets scanned video information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithSettings sets detection settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddSlide appends a detected slide.
func (b *Builder) AddSlide(slide Slide) *Builder {
	b.summary.Slides = append(b.summary.Slides, slide)
	return b
}

// WithDocument sets output document information.
func (b *Builder) WithDocument(doc DocumentInfo) *Builder {
	b.summary.Document = doc
	return b
}

// WithElapsed sets the run duration.
func (b *Builder) WithElapsed(d time.Duration) *Builder {
	b.summary.Elapsed = d
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
