// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/ports"
)

// DefaultOutputPath is the output document used when none is given.
const DefaultOutputPath = "presentation_slides.pdf"

// downloadName is the file name of a fetched video inside the temp directory.
const downloadName = "video.mp4"

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	Input      string // Local video path or http(s) URL
	OutputPath string

	// Detection
	Region    pipeline.RegionSpec
	Params    pipeline.DetectionParams
	SampleFPS float64 // 0 scans every decoded frame

	// Document
	PageSize        pipeline.PageSize // Zero uses the first slide's size
	BackgroundColor [4]uint8          // RGBA
	ShowTimestamps  bool
	JPEGQuality     int
	Title           string

	// Temp files
	KeepTemp bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputPath: DefaultOutputPath,
		Region: pipeline.RegionSpec{
			WidthRatio:  0.15,
			HeightRatio: 0.15,
			Corner:      pipeline.TopLeft,
		},
		Params:          pipeline.DefaultDetectionParams(),
		BackgroundColor: [4]uint8{0, 0, 0, 255},
		ShowTimestamps:  true,
		JPEGQuality:     90,
	}
}

// Validate checks the configuration before any frame is read.
// Every failure wraps pipeline.ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: no input video", pipeline.ErrInvalidConfiguration)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: no output path", pipeline.ErrInvalidConfiguration)
	}
	if _, err := pipeline.NewRegionSpec(c.Region.WidthRatio, c.Region.HeightRatio, c.Region.Corner); err != nil {
		return err
	}
	if _, err := pipeline.NewDetectionParams(c.Params.Threshold, c.Params.MinInterval); err != nil {
		return err
	}
	if c.SampleFPS < 0 {
		return fmt.Errorf("%w: negative sample rate %v", pipeline.ErrInvalidConfiguration, c.SampleFPS)
	}
	if (c.PageSize.Width == 0) != (c.PageSize.Height == 0) || c.PageSize.Width < 0 || c.PageSize.Height < 0 {
		return fmt.Errorf("%w: page size %dx%d", pipeline.ErrInvalidConfiguration, c.PageSize.Width, c.PageSize.Height)
	}
	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: JPEG quality %d not in [0,100]", pipeline.ErrInvalidConfiguration, c.JPEGQuality)
	}
	return nil
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	fetcher       ports.VideoFetcher
	opener        ports.FrameSourceOpener
	detectStage   pipeline.Stage[pipeline.DetectInput, pipeline.DetectResult]
	documentStage pipeline.Stage[pipeline.DocumentInput, pipeline.DocumentResult]
	fs            ports.FileSystem
	logger        ports.Logger
}

// New creates a new Orchestrator. fetcher may be nil when only local inputs are used.
func New(
	fetcher ports.VideoFetcher,
	opener ports.FrameSourceOpener,
	detectStage pipeline.Stage[pipeline.DetectInput, pipeline.DetectResult],
	documentStage pipeline.Stage[pipeline.DocumentInput, pipeline.DocumentResult],
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		fetcher:       fetcher,
		opener:        opener,
		detectStage:   detectStage,
		documentStage: documentStage,
		fs:            fs,
		logger:        logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (result RunResult, err error) {
	start := time.Now()

	if err := config.Validate(); err != nil {
		o.logger.Error("Invalid configuration: %s", err)
		return RunResult{}, err
	}

	o.logger.Info("Starting pipeline")

	// 1. Acquire the video
	videoPath := config.Input
	if ports.IsRemoteURL(config.Input) {
		tempDir, err := o.fetch(ctx, config.Input)
		if tempDir != "" {
			result.TempDir = tempDir
			defer func() {
				if config.KeepTemp {
					o.logger.Info("Temporary files kept in %s", tempDir)
					return
				}
				if rerr := o.fs.RemoveAll(tempDir); rerr != nil {
					o.logger.Warn("Failed to remove temporary files: %s", rerr)
				}
				result.TempDir = ""
			}()
		}
		if err != nil {
			return result, err
		}
		videoPath = filepath.Join(tempDir, downloadName)
	}
	result.VideoPath = videoPath

	// 2. Open the frame source
	o.logger.Info("Opening video %s", videoPath)
	source, err := o.opener.Open(ctx, videoPath, config.SampleFPS)
	if err != nil {
		o.logger.Error("Failed to open video: %s", err)
		return result, fmt.Errorf("open video: %w", asFrameAccess(err))
	}
	defer source.Close()

	width, height := source.Dimensions()
	o.logger.Info("Video is %dx%d", width, height)

	// 3. Detect slides
	o.logger.Info("Detecting slides (threshold %.2f, min interval %s)", config.Params.Threshold, config.Params.MinInterval)
	detected, err := o.detectStage.Execute(ctx, pipeline.DetectInput{
		Source: source,
		Region: config.Region,
		Params: config.Params,
	})
	if err != nil {
		if ctx.Err() == nil {
			o.logger.Error("Failed to detect slides: %s", err)
		}
		return result, fmt.Errorf("detect stage: %w", err)
	}
	o.logger.Info("Detected %d slides in %d frames", len(detected.Events), detected.FramesScanned)

	result.Width = detected.Width
	result.Height = detected.Height
	result.FramesScanned = detected.FramesScanned
	result.MaskedPixels = detected.MaskedPixels
	result.Slides = summarizeSlides(detected.Events)

	// 4. Build the document
	o.logger.Info("Writing %d pages", len(detected.Events))
	doc, err := o.documentStage.Execute(ctx, pipeline.DocumentInput{
		Events:         detected.Events,
		OutputPath:     config.OutputPath,
		PageSize:       config.PageSize,
		Background:     rgbaFromArray(config.BackgroundColor),
		ShowTimestamps: config.ShowTimestamps,
		JPEGQuality:    config.JPEGQuality,
		Title:          config.Title,
	})
	if err != nil {
		if ctx.Err() == nil {
			o.logger.Error("Failed to write document: %s", err)
		}
		return result, fmt.Errorf("document stage: %w", err)
	}

	result.OutputPath = doc.Path
	result.PageCount = doc.PageCount
	result.PageSize = doc.PageSize
	result.Elapsed = time.Since(start)

	o.logger.Info("Pipeline completed successfully")
	return result, nil
}

// fetch downloads a remote video into a fresh temp directory and returns it.
func (o *Orchestrator) fetch(ctx context.Context, rawURL string) (string, error) {
	if o.fetcher == nil {
		return "", fmt.Errorf("%w: remote input %s needs a video fetcher", pipeline.ErrInvalidConfiguration, rawURL)
	}

	tempDir, err := o.fs.MkdirTemp("slidextract-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp dir: %v", pipeline.ErrFrameAccess, err)
	}

	o.logger.Info("Downloading %s", rawURL)
	if err := o.fetcher.Fetch(ctx, rawURL, filepath.Join(tempDir, downloadName)); err != nil {
		if ctx.Err() != nil {
			return tempDir, ctx.Err()
		}
		o.logger.Error("Failed to download video: %s", err)
		return tempDir, fmt.Errorf("%w: download %s: %v", pipeline.ErrFrameAccess, rawURL, err)
	}
	return tempDir, nil
}

// asFrameAccess tags source failures that are not already classified.
func asFrameAccess(err error) error {
	if errors.Is(err, pipeline.ErrFrameAccess) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", pipeline.ErrFrameAccess, err)
}

func summarizeSlides(events []pipeline.SlideEvent) []SlideInfo {
	slides := make([]SlideInfo, len(events))
	for i, ev := range events {
		slides[i] = SlideInfo{
			Index:      ev.Index,
			FrameIndex: ev.Frame.Index,
			Timestamp:  ev.Frame.Timestamp,
			Score:      ev.Score,
		}
	}
	return slides
}

func rgbaFromArray(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// SlideInfo describes one detected slide for reporting.
type SlideInfo struct {
	Index      int
	FrameIndex int
	Timestamp  time.Duration
	Score      float64
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Input
	VideoPath string
	TempDir   string // Set when a downloaded video was kept

	// Video information
	Width         int
	Height        int
	FramesScanned int
	MaskedPixels  int

	// Detection
	Slides []SlideInfo

	// Document
	OutputPath string
	PageCount  int
	PageSize   pipeline.PageSize

	Elapsed time.Duration
}
