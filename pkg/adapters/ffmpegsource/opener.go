package ffmpegsource

import (
	"context"

	"github.com/user/slidextract/pkg/ports"
)

// Opener implements ports.FrameSourceOpener.
type Opener struct {
	prober     ports.VideoProber
	ffmpegPath string
}

// NewOpener creates an Opener that reads metadata with prober.
func NewOpener(prober ports.VideoProber, ffmpegPath string) *Opener {
	return &Opener{prober: prober, ffmpegPath: ffmpegPath}
}

// Open starts decoding path.
func (o *Opener) Open(ctx context.Context, path string, sampleFPS float64) (ports.FrameSource, error) {
	src, err := Open(ctx, path, o.prober, Options{FFmpegPath: o.ffmpegPath, SampleFPS: sampleFPS})
	if err != nil {
		return nil, err
	}
	return src, nil
}

// Ensure Opener implements ports.FrameSourceOpener
var _ ports.FrameSourceOpener = (*Opener)(nil)
