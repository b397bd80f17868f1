package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows keeping the detected slides and detection metadata for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveMask saves the exclusion mask as an image.
	SaveMask(img image.Image) error

	// SaveSlide saves the representative frame of a detected slide.
	SaveSlide(index int, img image.Image) error

	// SaveDetectionJSON saves the detection report as JSON.
	SaveDetectionJSON(data []byte) error
}
