package mocks

import (
	"image"
	"sync"

	"github.com/user/slidextract/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Mask          image.Image
	Slides        map[int]image.Image
	DetectionJSON []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Slides:  make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveMask(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mask = img
	return nil
}

func (m *DebugSink) SaveSlide(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Slides[index] = img
	return nil
}

func (m *DebugSink) SaveDetectionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DetectionJSON = data
	return nil
}

// SlideCount returns the number of saved slides (for test verification).
func (m *DebugSink) SlideCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Slides)
}

var _ ports.DebugSink = (*DebugSink)(nil)
