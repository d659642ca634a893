package duration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"media-inspector/internal/apperr"
	"media-inspector/internal/filesystem"
)

// probeTimeout bounds a single ffprobe run.
const probeTimeout = 30 * time.Second

// ticksPerSecond is the number of 100-nanosecond ticks in a second.
const ticksPerSecond = 10_000_000

// FFprobeLocator reports the resolved ffprobe binary.
type FFprobeLocator interface {
	FFprobe() (string, error)
}

// FFprobe is the production Framework. Streams are read-only files held open
// for the duration of the probe; readers run ffprobe on the stream's path so
// it can seek and size the input.
type FFprobe struct {
	tools FFprobeLocator
}

// NewFFprobe creates an FFprobe framework backed by tools.
func NewFFprobe(tools FFprobeLocator) *FFprobe {
	return &FFprobe{tools: tools}
}

// OpenStream implements Framework.
func (f *FFprobe) OpenStream(path string) (Stream, error) {
	file, err := filesystem.Open(path)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// NewReader implements Framework.
func (f *FFprobe) NewReader(s Stream) (Reader, error) {
	if s == nil || s.Name() == "" {
		return nil, errors.New("stream has no path")
	}
	if f.tools == nil {
		return nil, errors.New("no media framework configured")
	}
	ffprobe, err := f.tools.FFprobe()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	// ffprobe must open the file itself: pipe input is never seekable, and
	// MPEG-TS or MP3 durations need a seek to the end or the file size.
	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-i", s.Name(),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe error: %w - %s", err, stderr.String())
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &probeReader{format: out.Format}, nil
}

type probeOutput struct {
	Format probeFormat `json:"format"`
}

type probeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type probeReader struct {
	format probeFormat
}

func (r *probeReader) PresentationDuration() (uint64, error) {
	return parseTicks(r.format.Duration)
}

func (r *probeReader) Close() error {
	return nil
}

// parseTicks converts an ffprobe duration in seconds to 100ns ticks.
func parseTicks(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, apperr.ErrUnavailableAttribute
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, fmt.Errorf("%w: invalid duration %q", apperr.ErrUnavailableAttribute, s)
	}
	return uint64(math.Round(secs * ticksPerSecond)), nil
}
