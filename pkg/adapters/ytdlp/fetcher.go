// Package ytdlp downloads remote videos with the yt-dlp command line tool.
package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/user/slidextract/pkg/ports"
)

// DefaultFormat selects the best single-file MP4 rendition.
const DefaultFormat = "best[ext=mp4]"

// ErrNotFound is returned when yt-dlp is not found in PATH.
var ErrNotFound = errors.New("ytdlp: yt-dlp not found in PATH")

// Options configures the fetcher.
type Options struct {
	// BinaryPath is an optional custom path to the yt-dlp binary.
	BinaryPath string

	// Format is the yt-dlp format selector. Empty uses DefaultFormat.
	Format string
}

// Fetcher implements ports.VideoFetcher.
type Fetcher struct {
	opts Options
}

// New creates a new Fetcher.
func New(opts Options) *Fetcher {
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	return &Fetcher{opts: opts}
}

// Fetch downloads rawURL to destPath.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destPath string) error {
	if !ports.IsRemoteURL(rawURL) {
		return fmt.Errorf("ytdlp: not a URL: %q", rawURL)
	}

	bin, err := f.findBinary()
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, buildArgs(rawURL, destPath, f.opts.Format)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ytdlp: download failed: %w\nstderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	if _, err := os.Stat(destPath); err != nil {
		return fmt.Errorf("ytdlp: download produced no file at %s: %w", destPath, err)
	}
	return nil
}

func buildArgs(rawURL, destPath, format string) []string {
	return []string{
		"--quiet",
		"--no-warnings",
		"--no-playlist",
		"--format", format,
		"--output", destPath,
		"--force-overwrites",
		rawURL,
	}
}

func (f *Fetcher) findBinary() (string, error) {
	if f.opts.BinaryPath != "" {
		if _, err := os.Stat(f.opts.BinaryPath); err == nil {
			return f.opts.BinaryPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrNotFound, f.opts.BinaryPath)
	}

	name := "yt-dlp"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// Ensure Fetcher implements ports.VideoFetcher
var _ ports.VideoFetcher = (*Fetcher)(nil)
