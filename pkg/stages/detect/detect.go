// Package detect implements the slide boundary detection stage.
package detect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/ports"
	"github.com/user/slidextract/pkg/region"
)

// progressEvery controls how often scan progress is logged.
const progressEvery = 500

// Stage scans a frame source and emits one event per detected slide.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new detect stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("detect"),
	}
}

// Execute pulls frames until the source is exhausted.
func (s *Stage) Execute(ctx context.Context, input pipeline.DetectInput) (pipeline.DetectResult, error) {
	if input.Source == nil {
		return pipeline.DetectResult{}, fmt.Errorf("%w: no frame source", pipeline.ErrInvalidConfiguration)
	}

	width, height := input.Source.Dimensions()
	if width <= 0 || height <= 0 {
		return pipeline.DetectResult{}, fmt.Errorf("%w: source reports invalid dimensions %dx%d",
			pipeline.ErrFrameAccess, width, height)
	}

	mask := region.Build(width, height, input.Region)
	s.logger.Debug("Mask excludes %d of %d pixels at %s", mask.ExcludedCount(), width*height, input.Region.Corner)
	if s.sink.Enabled() {
		if err := s.sink.SaveMask(mask.Image()); err != nil {
			s.logger.Warn("Failed to save mask: %v", err)
		}
	}

	detector := NewDetector(input.Params, mask)
	result := pipeline.DetectResult{
		Events:       []pipeline.SlideEvent{},
		Width:        width,
		Height:       height,
		MaskedPixels: mask.ExcludedCount(),
	}
	total := input.Source.FrameCount()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		frame, err := input.Source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			if errors.Is(err, pipeline.ErrFrameAccess) {
				return result, err
			}
			return result, fmt.Errorf("%w: frame %d: %v", pipeline.ErrFrameAccess, result.FramesScanned, err)
		}
		result.FramesScanned++

		ev, emitted, err := detector.Observe(frame)
		if err != nil {
			return result, err
		}
		if emitted {
			s.logger.Debug("Slide %d at %s (score %.3f)", ev.Index+1, pipeline.FormatClock(ev.Frame.Timestamp), ev.Score)
			result.Events = append(result.Events, ev)

			if s.sink.Enabled() {
				if err := s.sink.SaveSlide(ev.Index, ev.Frame.Image()); err != nil {
					s.logger.Warn("Failed to save slide %d: %v", ev.Index, err)
				}
			}
			if input.OnSlide != nil {
				if err := input.OnSlide(ev); err != nil {
					return result, err
				}
			}
		}

		if result.FramesScanned%progressEvery == 0 {
			if total > 0 {
				s.logger.Debug("Scanned %d/%d frames", result.FramesScanned, total)
			} else {
				s.logger.Debug("Scanned %d frames", result.FramesScanned)
			}
		}
	}

	s.logger.Debug("Detected %d slides in %d frames", len(result.Events), result.FramesScanned)

	if s.sink.Enabled() {
		data, err := MarshalReport(input, result, mask.Rect())
		if err == nil {
			err = s.sink.SaveDetectionJSON(data)
		}
		if err != nil {
			s.logger.Warn("Failed to save detection report: %v", err)
		}
	}

	return result, nil
}

// Report is the JSON form of a detection run.
type Report struct {
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Mask          ReportRect    `json:"mask"`
	Corner        string        `json:"corner"`
	Threshold     float64       `json:"threshold"`
	MinIntervalMs int64         `json:"minIntervalMs"`
	FramesScanned int           `json:"framesScanned"`
	Slides        []ReportSlide `json:"slides"`
}

// ReportRect is the excluded region in pixels.
type ReportRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ReportSlide describes one detected slide.
type ReportSlide struct {
	Index       int     `json:"index"`
	FrameIndex  int     `json:"frameIndex"`
	TimestampMs int64   `json:"timestampMs"`
	Timestamp   string  `json:"timestamp"`
	Score       float64 `json:"score"`
}

// MarshalReport builds the indented JSON report for a detection run.
func MarshalReport(input pipeline.DetectInput, result pipeline.DetectResult, maskRect image.Rectangle) ([]byte, error) {
	report := Report{
		Width:  result.Width,
		Height: result.Height,
		Mask: ReportRect{
			X:      maskRect.Min.X,
			Y:      maskRect.Min.Y,
			Width:  maskRect.Dx(),
			Height: maskRect.Dy(),
		},
		Corner:        input.Region.Corner.String(),
		Threshold:     input.Params.Threshold,
		MinIntervalMs: input.Params.MinInterval.Milliseconds(),
		FramesScanned: result.FramesScanned,
		Slides:        make([]ReportSlide, len(result.Events)),
	}
	for i, ev := range result.Events {
		report.Slides[i] = ReportSlide{
			Index:       ev.Index,
			FrameIndex:  ev.Frame.Index,
			TimestampMs: ev.Frame.Timestamp.Milliseconds(),
			Timestamp:   pipeline.FormatClock(ev.Frame.Timestamp),
			Score:       ev.Score,
		}
	}
	return json.MarshalIndent(report, "", "  ")
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.DetectInput, pipeline.DetectResult] = (*Stage)(nil)
