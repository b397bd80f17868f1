// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/slidextract/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveMask does nothing.
func (s *Sink) SaveMask(img image.Image) error {
	return nil
}

// SaveSlide does nothing.
func (s *Sink) SaveSlide(index int, img image.Image) error {
	return nil
}

// SaveDetectionJSON does nothing.
func (s *Sink) SaveDetectionJSON(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
