package ports

import (
	"context"
	"net/url"

	"github.com/user/slidextract/pkg/pipeline"
)

// FrameSource exposes the frames of a video as a lazy, ordered sequence.
type FrameSource interface {
	// Dimensions returns the frame width and height in pixels.
	Dimensions() (width, height int)

	// FrameCount returns the expected number of frames, or -1 if unknown.
	// With sampling enabled this is the number of sampled frames.
	FrameCount() int

	// Next returns the next frame in presentation order.
	// It returns io.EOF once the source is exhausted.
	Next(ctx context.Context) (pipeline.Frame, error)

	// Close releases decoder resources. It is safe to call more than once.
	Close() error
}

// VideoInfo describes a video stream.
type VideoInfo struct {
	Codec      string
	Width      int
	Height     int
	FrameRate  float64 // Frames per second (0 if unknown)
	FrameCount int     // Number of frames (0 if unknown)
	DurationMs int
}

// VideoProber reads stream metadata without decoding frames.
type VideoProber interface {
	// Probe returns metadata of the first video stream in the file.
	Probe(ctx context.Context, path string) (VideoInfo, error)
}

// IsRemoteURL reports whether input is an http(s) URL for a VideoFetcher
// rather than a local path.
func IsRemoteURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// VideoFetcher downloads a remote video to a local file.
type VideoFetcher interface {
	// Fetch downloads url to destPath.
	Fetch(ctx context.Context, url, destPath string) error
}

// FrameSourceOpener opens a local video as a FrameSource.
type FrameSourceOpener interface {
	// Open starts decoding path. sampleFPS > 0 resamples to that rate.
	Open(ctx context.Context, path string, sampleFPS float64) (FrameSource, error)
}
