// Package smartprobe provides a video prober that selects the cheapest
// metadata reader for a file and falls back to ffprobe.
package smartprobe

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/slidextract/pkg/adapters/ffmpegsource"
	"github.com/user/slidextract/pkg/adapters/mp4probe"
	"github.com/user/slidextract/pkg/ports"
)

// Backend identifies the metadata reader that produced a result.
type Backend string

const (
	// BackendMP4 reads the MP4 box structure in-process.
	BackendMP4 Backend = "mp4"
	// BackendFFprobe runs the external ffprobe binary.
	BackendFFprobe Backend = "ffprobe"
)

// ErrNoProberAvailable is returned when no backend can read the file.
var ErrNoProberAvailable = errors.New("smartprobe: no prober available")

// mp4Extensions lists containers the in-process reader understands.
var mp4Extensions = map[string]bool{
	".mp4": true,
	".m4v": true,
	".mov": true,
}

// Prober implements ports.VideoProber.
//
// The selection flow:
//   - MP4 family: read boxes in-process, then ffprobe if that fails
//   - Anything else: ffprobe
type Prober struct {
	mp4     ports.VideoProber
	ffprobe ports.VideoProber
	last    Backend
}

// New creates a Prober. ffprobePath may be empty to search the system.
func New(ffprobePath string) *Prober {
	return &Prober{
		mp4:     mp4probe.New(),
		ffprobe: ffmpegsource.NewProber(ffprobePath),
	}
}

// NewWith creates a Prober from explicit backends. Either may be nil.
func NewWith(mp4, ffprobe ports.VideoProber) *Prober {
	return &Prober{mp4: mp4, ffprobe: ffprobe}
}

// Probe returns metadata of the first video stream of path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	var errs []error

	if p.mp4 != nil && mp4Extensions[strings.ToLower(filepath.Ext(path))] {
		info, err := p.mp4.Probe(ctx, path)
		if err == nil && complete(info) {
			p.last = BackendMP4
			return info, nil
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", BackendMP4, err))
		}
	}

	if p.ffprobe != nil {
		info, err := p.ffprobe.Probe(ctx, path)
		if err == nil {
			p.last = BackendFFprobe
			return info, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", BackendFFprobe, err))
	}

	if len(errs) == 0 {
		return ports.VideoInfo{}, ErrNoProberAvailable
	}
	return ports.VideoInfo{}, fmt.Errorf("%w: %w", ErrNoProberAvailable, errors.Join(errs...))
}

// Backend returns the backend that served the last successful Probe.
func (p *Prober) Backend() Backend {
	return p.last
}

// complete reports whether info carries enough to drive a frame source.
func complete(info ports.VideoInfo) bool {
	return info.Width > 0 && info.Height > 0 && info.FrameRate > 0
}

// Ensure Prober implements ports.VideoProber
var _ ports.VideoProber = (*Prober)(nil)
