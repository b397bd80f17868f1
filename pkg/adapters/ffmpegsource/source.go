// Package ffmpegsource provides a frame source that decodes video with an
// ffmpeg external process streaming raw RGB frames over a pipe.
package ffmpegsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/user/slidextract/pkg/pipeline"
	"github.com/user/slidextract/pkg/ports"
)

// Options configures the frame source.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string

	// SampleFPS resamples the video to this rate. 0 keeps the native frame rate.
	SampleFPS float64
}

// Source implements ports.FrameSource.
type Source struct {
	width      int
	height     int
	rate       float64
	frameCount int

	cmd    *exec.Cmd
	cancel context.CancelFunc
	stdout io.ReadCloser
	reader *bufio.Reader
	stderr bytes.Buffer

	index     int
	done      bool
	closeOnce sync.Once
}

// Open probes path and starts decoding it.
//
// Frames are delivered at a constant rate (SampleFPS, or the probed frame rate)
// and scaled to the probed dimensions, so every frame has the same size and
// frame i is presented at i/rate seconds.
func Open(ctx context.Context, path string, prober ports.VideoProber, opts Options) (*Source, error) {
	info, err := prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: probe %s: %v", pipeline.ErrFrameAccess, path, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid video dimensions %dx%d", pipeline.ErrFrameAccess, info.Width, info.Height)
	}

	rate := opts.SampleFPS
	if rate <= 0 {
		rate = info.FrameRate
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: unknown frame rate, set a sample rate", pipeline.ErrFrameAccess)
	}

	bin, err := FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrFrameAccess, err)
	}

	s := &Source{
		width:      info.Width,
		height:     info.Height,
		rate:       rate,
		frameCount: expectedFrames(info, opts.SampleFPS),
	}

	cmdCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.cmd = exec.CommandContext(cmdCtx, bin, buildArgs(path, info.Width, info.Height, rate)...)
	s.cmd.Stderr = &s.stderr

	s.stdout, err = s.cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: stdout pipe: %v", pipeline.ErrFrameAccess, err)
	}
	if err := s.cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: start ffmpeg: %v", pipeline.ErrFrameAccess, err)
	}
	s.reader = bufio.NewReaderSize(s.stdout, info.Width*info.Height*pipeline.Channels)

	return s, nil
}

// buildArgs returns the ffmpeg arguments for decoding path into rgb24 frames on stdout.
func buildArgs(path string, width, height int, rate float64) []string {
	filter := fmt.Sprintf("fps=%s,scale=%d:%d", strconv.FormatFloat(rate, 'f', -1, 64), width, height)
	return []string{
		"-nostdin",
		"-v", "error",
		"-i", path,
		"-an", "-sn",
		"-vf", filter,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}
}

// expectedFrames estimates the number of delivered frames, or -1 if unknown.
func expectedFrames(info ports.VideoInfo, sampleFPS float64) int {
	if sampleFPS <= 0 && info.FrameCount > 0 {
		return info.FrameCount
	}
	rate := sampleFPS
	if rate <= 0 {
		rate = info.FrameRate
	}
	if info.DurationMs <= 0 || rate <= 0 {
		return -1
	}
	return int(math.Ceil(float64(info.DurationMs) / 1000 * rate))
}

// Dimensions returns the frame width and height.
func (s *Source) Dimensions() (int, int) {
	return s.width, s.height
}

// FrameCount returns the expected number of frames, or -1 if unknown.
func (s *Source) FrameCount() int {
	return s.frameCount
}

// Rate returns the delivery frame rate.
func (s *Source) Rate() float64 {
	return s.rate
}

// Next reads the next frame. It returns io.EOF after the last frame.
func (s *Source) Next(ctx context.Context) (pipeline.Frame, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Frame{}, err
	}
	if s.done {
		return pipeline.Frame{}, io.EOF
	}

	ts := time.Duration(float64(s.index) / s.rate * float64(time.Second))
	frame := pipeline.NewFrame(s.index, s.width, s.height, ts)

	_, err := io.ReadFull(s.reader, frame.Pix)
	switch {
	case err == nil:
		s.index++
		return frame, nil
	case errors.Is(err, io.EOF):
		s.done = true
		if werr := s.wait(); werr != nil {
			return pipeline.Frame{}, werr
		}
		return pipeline.Frame{}, io.EOF
	default:
		s.done = true
		werr := s.wait()
		if werr == nil {
			werr = err
		}
		return pipeline.Frame{}, fmt.Errorf("%w: read frame %d: %v", pipeline.ErrFrameAccess, s.index, werr)
	}
}

func (s *Source) wait() error {
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("%w: ffmpeg decode failed: %v\nstderr: %s", pipeline.ErrFrameAccess, err, s.stderr.String())
	}
	return nil
}

// Close stops the decoder process and releases its resources.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		if !s.done {
			s.done = true
			// The process is killed by the cancelled context; its exit status is expected to be an error.
			_ = s.cmd.Wait()
		}
	})
	return nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
