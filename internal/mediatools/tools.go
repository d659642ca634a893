package mediatools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"media-inspector/internal/logging"
)

// ErrNotStarted is returned when a tool is requested before the media
// subsystem resolved it.
var ErrNotStarted = errors.New("media framework not started")

// versionTimeout bounds the "-version" probe made during Start.
const versionTimeout = 5 * time.Second

// Tools resolves the ffmpeg and ffprobe executables. It is the media
// framework subsystem: Start locates and checks the binaries, Stop forgets them.
type Tools struct {
	ffmpegName  string
	ffprobeName string

	mu      sync.RWMutex
	ffmpeg  string
	ffprobe string
}

// New creates Tools for the given executable names or paths.
func New(ffmpegName, ffprobeName string) *Tools {
	return &Tools{ffmpegName: ffmpegName, ffprobeName: ffprobeName}
}

// Name implements lifecycle.Subsystem.
func (t *Tools) Name() string {
	return "media"
}

// Start implements lifecycle.Subsystem. Each binary that resolves stays
// usable even when the other one is missing.
func (t *Tools) Start() error {
	ffmpeg, ffmpegErr := resolve(t.ffmpegName)
	ffprobe, ffprobeErr := resolve(t.ffprobeName)

	t.mu.Lock()
	t.ffmpeg, t.ffprobe = ffmpeg, ffprobe
	t.mu.Unlock()

	return errors.Join(ffmpegErr, ffprobeErr)
}

// Stop implements lifecycle.Subsystem.
func (t *Tools) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ffmpeg, t.ffprobe = "", ""
}

// FFmpeg returns the resolved ffmpeg path.
func (t *Tools) FFmpeg() (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.ffmpeg == "" {
		return "", fmt.Errorf("ffmpeg: %w", ErrNotStarted)
	}
	return t.ffmpeg, nil
}

// FFprobe returns the resolved ffprobe path.
func (t *Tools) FFprobe() (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.ffprobe == "" {
		return "", fmt.Errorf("ffprobe: %w", ErrNotStarted)
	}
	return t.ffprobe, nil
}

func resolve(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	logging.Debug("  %s path: %s", name, path)

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get %s version: %w", name, err)
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		logging.Debug("  %s version: %s", name, strings.TrimSpace(lines[0]))
	}

	return path, nil
}
