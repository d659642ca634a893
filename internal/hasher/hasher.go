package hasher

import (
	"errors"
	"io"
	"sync"

	"media-inspector/internal/apperr"
	"media-inspector/internal/filesystem"
	"media-inspector/internal/logging"
	"media-inspector/internal/metrics"

	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultBufferSize is the read buffer used when none is requested (8 MiB).
	DefaultBufferSize = 8 * 1024 * 1024

	opName = "hash"
)

// Pool for default-size buffers; other sizes are allocated per call.
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, DefaultBufferSize)
		return &buf
	},
}

// Hasher computes xxHash64 digests of file contents.
type Hasher struct {
	bufferSize int
}

// New creates a Hasher reading bufferSize bytes at a time.
// A bufferSize of zero or less selects DefaultBufferSize.
func New(bufferSize int) *Hasher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hasher{bufferSize: bufferSize}
}

// BufferSize returns the number of bytes read per chunk.
func (h *Hasher) BufferSize() int {
	return h.bufferSize
}

// Hash returns the digest of the file at path. On failure it returns 0 and an
// *apperr.OpError of kind ErrNotFound (missing file) or ErrIO.
func (h *Hasher) Hash(path string) (uint64, error) {
	if path == "" {
		return 0, apperr.New(opName, path, apperr.ErrNotFound, errors.New("empty path"))
	}

	f, err := filesystem.Open(path)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return 0, apperr.New(opName, path, apperr.ErrNotFound, err)
		}
		return 0, apperr.New(opName, path, apperr.ErrIO, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.OpWarn(opName, path, err)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return 0, apperr.New(opName, path, apperr.ErrIO, err)
	}
	if info.IsDir() {
		return 0, apperr.New(opName, path, apperr.ErrIO, errors.New("is a directory"))
	}

	sum, err := h.HashReader(f)
	if err != nil {
		return 0, apperr.New(opName, path, apperr.ErrIO, err)
	}

	logging.OpDebug(opName, path, "digest=%016x size=%d", sum, info.Size())
	return sum, nil
}

// HashReader streams r through the buffer into a fresh accumulator until a
// read returns no bytes, and returns the final digest.
func (h *Hasher) HashReader(r io.Reader) (uint64, error) {
	buf, release := h.buffer()
	defer release()

	digest := xxhash.New()
	var total int64
	defer func() {
		metrics.HashBytesTotal.Add(float64(total))
	}()

	for {
		n, err := r.Read(buf)
		if n > 0 {
			// xxhash.Digest.Write never fails
			_, _ = digest.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
	}

	return digest.Sum64(), nil
}

func (h *Hasher) buffer() ([]byte, func()) {
	if h.bufferSize == DefaultBufferSize {
		bp := bufferPool.Get().(*[]byte)
		return *bp, func() { bufferPool.Put(bp) }
	}
	return make([]byte, h.bufferSize), func() {}
}
