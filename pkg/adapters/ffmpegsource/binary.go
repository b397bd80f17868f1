package ffmpegsource

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH.
	ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found in PATH")

	// ErrFFprobeNotFound is returned when ffprobe is not found in PATH.
	ErrFFprobeNotFound = errors.New("ffmpegsource: ffprobe not found in PATH")
)

// findBinary resolves name from an explicit path, PATH, then common install locations.
func findBinary(name, customPath string, notFound error) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", notFound, customPath)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/" + execName,
			"/usr/local/bin/" + execName,
			"/opt/homebrew/bin/" + execName,
			"/snap/bin/" + execName,
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}

// FindFFmpeg locates the ffmpeg binary. customPath takes precedence when set.
func FindFFmpeg(customPath string) (string, error) {
	return findBinary("ffmpeg", customPath, ErrFFmpegNotFound)
}

// FindFFprobe locates the ffprobe binary. customPath takes precedence when set.
func FindFFprobe(customPath string) (string, error) {
	return findBinary("ffprobe", customPath, ErrFFprobeNotFound)
}

// IsAvailable reports whether both ffmpeg and ffprobe can be found.
func IsAvailable() bool {
	if _, err := FindFFmpeg(""); err != nil {
		return false
	}
	_, err := FindFFprobe("")
	return err == nil
}
