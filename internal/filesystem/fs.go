package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"
)

// Stat performs os.Stat and records the operation with the installed observer.
func Stat(path string) (os.FileInfo, error) {
	start := time.Now()
	info, err := os.Stat(path)
	observe("stat", time.Since(start).Seconds(), err)
	return info, err
}

// ObserveStat records a stat-like call made outside this package, such as a
// platform attribute query, that started at start.
func ObserveStat(start time.Time, err error) {
	observe("stat", time.Since(start).Seconds(), err)
}

// Exists reports whether path names an existing filesystem entry.
func Exists(path string) bool {
	_, err := Stat(path)
	return err == nil
}

// IsNotExist reports whether err means the path does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Open opens path read-only and records the operation with the installed observer.
// The returned file counts its reads and observes them when closed.
func Open(path string) (*File, error) {
	start := time.Now()
	f, err := os.Open(path)
	observe("open", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}
	return &File{File: f}, nil
}

// File is an *os.File whose reads are timed. Close must be called exactly
// once; later calls return os.ErrClosed.
type File struct {
	*os.File
	readTime time.Duration
	readErr  error
	closed   bool
}

// Read reads from the underlying file and accumulates time spent reading.
func (f *File) Read(p []byte) (int, error) {
	start := time.Now()
	n, err := f.File.Read(p)
	f.readTime += time.Since(start)
	if err != nil && err != io.EOF && f.readErr == nil {
		f.readErr = err
	}
	return n, err
}

// Close closes the file and records the accumulated read time.
func (f *File) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true
	observe("read", f.readTime.Seconds(), f.readErr)
	return f.File.Close()
}
