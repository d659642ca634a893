package duration

import (
	"errors"
	"fmt"
	"io"

	"media-inspector/internal/apperr"
	"media-inspector/internal/filesystem"
	"media-inspector/internal/logging"
	"media-inspector/internal/timestamp"
)

const opName = "duration"

// Stream is an open, read-only handle on a media file.
type Stream interface {
	io.Closer
	Name() string
}

// Reader exposes presentation attributes of an opened stream.
type Reader interface {
	io.Closer
	// PresentationDuration returns the duration in 100-nanosecond ticks.
	PresentationDuration() (uint64, error)
}

// Framework opens streams and binds readers to them.
type Framework interface {
	OpenStream(path string) (Stream, error)
	NewReader(s Stream) (Reader, error)
}

// Prober reports the presentation duration of media files.
type Prober struct {
	framework Framework
}

// NewProber creates a Prober on top of framework.
func NewProber(framework Framework) *Prober {
	return &Prober{framework: framework}
}

// Probe returns the duration of path in milliseconds. Every handle acquired
// along the way is closed, in reverse order, before Probe returns.
func (p *Prober) Probe(path string) (float64, error) {
	if path == "" {
		return 0, apperr.New(opName, path, apperr.ErrNotFound, errors.New("empty path"))
	}
	if _, err := filesystem.Stat(path); err != nil {
		return 0, apperr.New(opName, path, apperr.ErrNotFound, err)
	}

	stream, err := p.framework.OpenStream(path)
	if err != nil {
		return 0, apperr.New(opName, path, apperr.ErrIO, err)
	}
	defer closeLogged(path, "stream", stream)

	reader, err := p.framework.NewReader(stream)
	if err != nil {
		return 0, apperr.New(opName, path, apperr.ErrBind, err)
	}
	defer closeLogged(path, "reader", reader)

	ticks, err := reader.PresentationDuration()
	if err != nil {
		return 0, apperr.New(opName, path, apperr.ErrUnavailableAttribute, err)
	}

	ms := timestamp.DurationMillis(ticks)
	logging.OpDebug(opName, path, "%d ticks = %.3f ms", ticks, ms)
	return ms, nil
}

func closeLogged(path, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		logging.OpWarn(opName, path, fmt.Errorf("close %s: %w", what, err))
	}
}
