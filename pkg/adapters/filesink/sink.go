// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/slidextract/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// Dir returns the base directory.
func (s *Sink) Dir() string {
	return s.baseDir
}

// SaveMask saves the exclusion mask as mask.png.
func (s *Sink) SaveMask(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode mask: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "mask.png"), data)
}

// SaveSlide saves a slide as slides/frame_NNNN.jpg.
func (s *Sink) SaveSlide(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "slides")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatJPEG, 90)
	if err != nil {
		return fmt.Errorf("encode slide: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame_%04d.jpg", index))
	return s.fs.WriteFile(path, data)
}

// SaveDetectionJSON saves the detection report as detection.json.
func (s *Sink) SaveDetectionJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "detection.json"), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
