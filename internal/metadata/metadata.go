package metadata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"media-inspector/internal/apperr"
	"media-inspector/internal/logging"
	"media-inspector/internal/timestamp"
)

const opName = "metadata"

// BinarySize is the length of the encoded FileMetadata record.
const BinarySize = 32

// FileMetadata holds the normalized filesystem attributes of a file.
// Timestamps are milliseconds since the Unix epoch and may be negative.
type FileMetadata struct {
	CreationTimeMs int64  `json:"creationTimeMs"`
	AccessTimeMs   int64  `json:"accessTimeMs"`
	ModifiedTimeMs int64  `json:"modifiedTimeMs"`
	FileSizeBytes  uint64 `json:"fileSizeBytes"`
}

// CreationTime returns the creation timestamp as a time.Time.
func (m FileMetadata) CreationTime() time.Time {
	return time.UnixMilli(m.CreationTimeMs)
}

// AccessTime returns the last access timestamp as a time.Time.
func (m FileMetadata) AccessTime() time.Time {
	return time.UnixMilli(m.AccessTimeMs)
}

// ModifiedTime returns the last write timestamp as a time.Time.
func (m FileMetadata) ModifiedTime() time.Time {
	return time.UnixMilli(m.ModifiedTimeMs)
}

// MarshalBinary encodes the record as four little-endian 64-bit integers in
// the order creation, access, modified, size.
func (m FileMetadata) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(make([]byte, 0, BinarySize))
}

// AppendBinary appends the encoded record to b.
func (m FileMetadata) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint64(b, uint64(m.CreationTimeMs))
	b = binary.LittleEndian.AppendUint64(b, uint64(m.AccessTimeMs))
	b = binary.LittleEndian.AppendUint64(b, uint64(m.ModifiedTimeMs))
	b = binary.LittleEndian.AppendUint64(b, m.FileSizeBytes)
	return b, nil
}

// UnmarshalBinary decodes a record produced by MarshalBinary.
func (m *FileMetadata) UnmarshalBinary(data []byte) error {
	if len(data) != BinarySize {
		return fmt.Errorf("metadata record must be %d bytes, got %d", BinarySize, len(data))
	}
	m.CreationTimeMs = int64(binary.LittleEndian.Uint64(data[0:8]))
	m.AccessTimeMs = int64(binary.LittleEndian.Uint64(data[8:16]))
	m.ModifiedTimeMs = int64(binary.LittleEndian.Uint64(data[16:24]))
	m.FileSizeBytes = binary.LittleEndian.Uint64(data[24:32])
	return nil
}

// Attributes is the raw attribute data reported for a path: three tick
// timestamps and a size split into 32-bit halves.
type Attributes struct {
	CreationTime   timestamp.Filetime
	LastAccessTime timestamp.Filetime
	LastWriteTime  timestamp.Filetime
	SizeHigh       uint32
	SizeLow        uint32
}

// Size combines the size halves into a byte count.
func (a Attributes) Size() uint64 {
	return uint64(a.SizeHigh)<<32 | uint64(a.SizeLow)
}

// AttributeSource queries filesystem attributes for a path.
type AttributeSource interface {
	Attributes(path string) (Attributes, error)
}

// Reader assembles FileMetadata records from an AttributeSource.
type Reader struct {
	source AttributeSource
}

// NewReader creates a Reader. A nil source selects the platform source.
func NewReader(source AttributeSource) *Reader {
	if source == nil {
		source = NativeSource{}
	}
	return &Reader{source: source}
}

// Read returns the metadata of path. An empty path or a failed attribute
// query yields ErrNotFound and a zero record.
func (r *Reader) Read(path string) (FileMetadata, error) {
	if path == "" {
		return FileMetadata{}, apperr.New(opName, path, apperr.ErrNotFound, errors.New("empty path"))
	}

	attrs, err := r.source.Attributes(path)
	if err != nil {
		return FileMetadata{}, apperr.New(opName, path, apperr.ErrNotFound, err)
	}

	md := FileMetadata{
		CreationTimeMs: timestamp.Normalize(attrs.CreationTime.Ticks()),
		AccessTimeMs:   timestamp.Normalize(attrs.LastAccessTime.Ticks()),
		ModifiedTimeMs: timestamp.Normalize(attrs.LastWriteTime.Ticks()),
		FileSizeBytes:  attrs.Size(),
	}

	logging.OpDebug(opName, path, "created=%d accessed=%d modified=%d size=%d",
		md.CreationTimeMs, md.AccessTimeMs, md.ModifiedTimeMs, md.FileSizeBytes)
	return md, nil
}

// attributesFromTimes builds Attributes from stat-style times and size.
func attributesFromTimes(created, accessed, modified time.Time, size int64) Attributes {
	u := uint64(size)
	return Attributes{
		CreationTime:   timestamp.SplitTicks(timestamp.FromTime(created)),
		LastAccessTime: timestamp.SplitTicks(timestamp.FromTime(accessed)),
		LastWriteTime:  timestamp.SplitTicks(timestamp.FromTime(modified)),
		SizeHigh:       uint32(u >> 32),
		SizeLow:        uint32(u),
	}
}
