package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"
)

// =============================================================================
// Frames
// =============================================================================

// Channels is the number of 8-bit channels per pixel in a Frame (RGB).
const Channels = 3

// Frame is a decoded video frame: a packed RGB pixel grid plus its
// presentation time. Frames are treated as immutable once produced.
type Frame struct {
	Index     int           // Position in the decoded (or sampled) sequence
	Width     int           // Width in pixels
	Height    int           // Height in pixels
	Pix       []uint8       // Packed RGB, row-major, len = Width*Height*Channels
	Timestamp time.Duration // Presentation time since the start of the video
}

// NewFrame allocates a black frame of the given size.
func NewFrame(index, width, height int, ts time.Duration) Frame {
	return Frame{
		Index:     index,
		Width:     width,
		Height:    height,
		Pix:       make([]uint8, width*height*Channels),
		Timestamp: ts,
	}
}

// Offset returns the index of the first channel of pixel (x, y) in Pix.
func (f Frame) Offset(x, y int) int {
	return (y*f.Width + x) * Channels
}

// Valid reports whether the pixel buffer matches the declared dimensions.
func (f Frame) Valid() bool {
	return f.Width > 0 && f.Height > 0 && len(f.Pix) == f.Width*f.Height*Channels
}

// Image returns a new RGBA image holding a copy of the frame's pixels.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i+Channels <= len(f.Pix); i, j = i+Channels, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FrameFromImage converts any image into a Frame. Alpha is dropped.
func FrameFromImage(img image.Image, index int, ts time.Duration) Frame {
	b := img.Bounds()
	f := NewFrame(index, b.Dx(), b.Dy(), ts)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < f.Height; y++ {
			row := rgba.Pix[(y+b.Min.Y-rgba.Rect.Min.Y)*rgba.Stride+(b.Min.X-rgba.Rect.Min.X)*4:]
			for x := 0; x < f.Width; x++ {
				o := f.Offset(x, y)
				f.Pix[o] = row[x*4]
				f.Pix[o+1] = row[x*4+1]
				f.Pix[o+2] = row[x*4+2]
			}
		}
		return f
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			o := f.Offset(x, y)
			f.Pix[o] = c.R
			f.Pix[o+1] = c.G
			f.Pix[o+2] = c.B
		}
	}
	return f
}

// FormatClock renders d as HH:MM:SS, truncated to whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// =============================================================================
// Detection Configuration
// =============================================================================

// Corner anchors the excluded region to one corner of the frame.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// String returns the CLI name of the corner.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ParseCorner parses a corner name such as "bottom-right".
func ParseCorner(s string) (Corner, error) {
	switch s {
	case "top-left":
		return TopLeft, nil
	case "top-right":
		return TopRight, nil
	case "bottom-left":
		return BottomLeft, nil
	case "bottom-right":
		return BottomRight, nil
	default:
		return TopLeft, fmt.Errorf("%w: unknown position %q", ErrInvalidConfiguration, s)
	}
}

// RegionSpec describes the screen region ignored during comparison,
// typically the speaker's camera feed.
type RegionSpec struct {
	WidthRatio  float64 // Fraction of the frame width, in [0,1]
	HeightRatio float64 // Fraction of the frame height, in [0,1]
	Corner      Corner
}

// NewRegionSpec validates and builds a RegionSpec.
func NewRegionSpec(widthRatio, heightRatio float64, corner Corner) (RegionSpec, error) {
	if !inUnitRange(widthRatio) {
		return RegionSpec{}, fmt.Errorf("%w: region width ratio %v not in [0,1]", ErrInvalidConfiguration, widthRatio)
	}
	if !inUnitRange(heightRatio) {
		return RegionSpec{}, fmt.Errorf("%w: region height ratio %v not in [0,1]", ErrInvalidConfiguration, heightRatio)
	}
	if corner < TopLeft || corner > BottomRight {
		return RegionSpec{}, fmt.Errorf("%w: unknown corner %d", ErrInvalidConfiguration, int(corner))
	}
	return RegionSpec{WidthRatio: widthRatio, HeightRatio: heightRatio, Corner: corner}, nil
}

// DetectionParams holds the slide detection threshold and debounce interval.
type DetectionParams struct {
	Threshold   float64       // Minimum dissimilarity in [0,1] for a new slide
	MinInterval time.Duration // Minimum time between two emitted slides
}

// NewDetectionParams validates and builds DetectionParams.
func NewDetectionParams(threshold float64, minInterval time.Duration) (DetectionParams, error) {
	if !inUnitRange(threshold) {
		return DetectionParams{}, fmt.Errorf("%w: threshold %v not in [0,1]", ErrInvalidConfiguration, threshold)
	}
	if minInterval < 0 {
		return DetectionParams{}, fmt.Errorf("%w: negative minimum interval %v", ErrInvalidConfiguration, minInterval)
	}
	return DetectionParams{Threshold: threshold, MinInterval: minInterval}, nil
}

// DefaultDetectionParams returns the defaults of the slidextract CLI.
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		Threshold:   0.25,
		MinInterval: 2 * time.Second,
	}
}

// inUnitRange also rejects NaN.
func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

// =============================================================================
// Detect Stage Types
// =============================================================================

// SlideEvent is a detected slide.
type SlideEvent struct {
	Index int     // 0-based position among detected slides
	Frame Frame   // Representative frame
	Score float64 // Dissimilarity against the previous slide (0 for slide 0)
}

// FrameIterator is the sequential view of a frame source that detection pulls from.
// ports.FrameSource satisfies it.
type FrameIterator interface {
	Dimensions() (width, height int)
	FrameCount() int
	Next(ctx context.Context) (Frame, error)
}

// DetectInput contains parameters for slide boundary detection.
type DetectInput struct {
	Source FrameIterator
	Region RegionSpec
	Params DetectionParams

	// OnSlide, if set, is called synchronously for every emitted slide in
	// order. Returning an error aborts detection.
	OnSlide func(SlideEvent) error
}

// DetectResult contains the detected slides.
type DetectResult struct {
	Events        []SlideEvent
	FramesScanned int
	Width         int
	Height        int
	MaskedPixels  int
}

// =============================================================================
// Document Stage Types
// =============================================================================

// PageSize is the fixed page size of the output document in pixels.
// A zero size means "use the first slide's dimensions".
type PageSize struct {
	Width  int
	Height int
}

// IsZero reports whether the page size is unset.
func (p PageSize) IsZero() bool {
	return p.Width <= 0 || p.Height <= 0
}

// DocumentInput contains parameters for document assembly.
type DocumentInput struct {
	Events         []SlideEvent
	OutputPath     string
	PageSize       PageSize
	Background     color.Color
	ShowTimestamps bool
	JPEGQuality    int
	Title          string
}

// DocumentResult describes the committed document.
type DocumentResult struct {
	Path      string
	PageCount int
	PageSize  PageSize
}
