package mocks

import (
	"context"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that replays a slice of frames.
type FrameSource struct {
	Frames []pipeline.Frame
	Width  int
	Height int

	// FailAt, if >= 0, makes Next return Err instead of that frame.
	FailAt int
	Err    error

	pos    int
	Closed int
}

// NewFrameSource creates a FrameSource replaying frames. Dimensions are taken from the first frame.
func NewFrameSource(frames ...pipeline.Frame) *FrameSource {
	s := &FrameSource{Frames: frames, FailAt: -1}
	if len(frames) > 0 {
		s.Width, s.Height = frames[0].Width, frames[0].Height
	}
	return s
}

func (m *FrameSource) Dimensions() (int, int) {
	return m.Width, m.Height
}

func (m *FrameSource) FrameCount() int {
	return len(m.Frames)
}

func (m *FrameSource) Next(ctx context.Context) (pipeline.Frame, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Frame{}, err
	}
	if m.FailAt >= 0 && m.pos == m.FailAt {
		return pipeline.Frame{}, m.Err
	}
	if m.pos >= len(m.Frames) {
		return pipeline.Frame{}, io.EOF
	}
	f := m.Frames[m.pos]
	m.pos++
	return f, nil
}

func (m *FrameSource) Close() error {
	m.Closed++
	return nil
}

var _ ports.FrameSource = (*FrameSource)(nil)

// SolidFrame builds a frame filled with c.
func SolidFrame(index, width, height int, ts time.Duration, c color.RGBA) pipeline.Frame {
	f := pipeline.NewFrame(index, width, height, ts)
	for i := 0; i < len(f.Pix); i += pipeline.Channels {
		f.Pix[i], f.Pix[i+1], f.Pix[i+2] = c.R, c.G, c.B
	}
	return f
}

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	ProbeFunc func(ctx context.Context, path string) (ports.VideoInfo, error)

	// Info and Err are returned when ProbeFunc is nil.
	Info ports.VideoInfo
	Err  error

	mu    sync.Mutex
	Calls []string
}

func (m *VideoProber) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, path)
	m.mu.Unlock()
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, path)
	}
	return m.Info, m.Err
}

var _ ports.VideoProber = (*VideoProber)(nil)

// VideoFetcher is a mock implementation of ports.VideoFetcher.
type VideoFetcher struct {
	FetchFunc func(ctx context.Context, url, destPath string) error

	mu      sync.Mutex
	Fetched map[string]string
}

func (m *VideoFetcher) Fetch(ctx context.Context, url, destPath string) error {
	m.mu.Lock()
	if m.Fetched == nil {
		m.Fetched = make(map[string]string)
	}
	m.Fetched[url] = destPath
	m.mu.Unlock()
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url, destPath)
	}
	return nil
}

var _ ports.VideoFetcher = (*VideoFetcher)(nil)

// FrameSourceOpener is a mock implementation of ports.FrameSourceOpener.
type FrameSourceOpener struct {
	OpenFunc func(ctx context.Context, path string, sampleFPS float64) (ports.FrameSource, error)

	// Source is returned when OpenFunc is nil.
	Source ports.FrameSource

	OpenedPath      string
	OpenedSampleFPS float64
}

func (m *FrameSourceOpener) Open(ctx context.Context, path string, sampleFPS float64) (ports.FrameSource, error) {
	m.OpenedPath = path
	m.OpenedSampleFPS = sampleFPS
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path, sampleFPS)
	}
	return m.Source, nil
}

var _ ports.FrameSourceOpener = (*FrameSourceOpener)(nil)
