package thumbnail

import (
	"image"
	"io"
	"os"

	"media-inspector/internal/mediatypes"
)

// Request asks for a thumbnail of Source to be written to Destination.
// Size is the requested edge length in pixels; the provider may return a
// bitmap of a different size.
type Request struct {
	Source      string
	Destination string
	Size        uint32
}

// Bitmap is a decoded thumbnail owned by the caller. Close releases it and
// must be called exactly once whatever happens to the pixels.
type Bitmap interface {
	Image() image.Image
	Close() error
}

// Provider produces a decoded bitmap for a source path.
type Provider interface {
	Thumbnail(path string, size uint32) (Bitmap, error)
}

// Item is a source path resolved to something a Handler can bind to.
type Item struct {
	Path string
	Type mediatypes.FileType
	Info os.FileInfo
}

// Handler turns an Item into a bitmap. Available reports whether the
// handler's native dependency is usable right now.
type Handler interface {
	Name() string
	Available() bool
	Accepts(item Item) bool
	Bitmap(item Item, size uint32) (Bitmap, error)
}

// Encoder serializes an image in one format.
type Encoder struct {
	MimeType string
	Encode   func(w io.Writer, img image.Image) error
}

// imageBitmap is a Bitmap backed by an in-memory image.
type imageBitmap struct {
	img image.Image
}

// NewImageBitmap wraps an already-decoded image.
func NewImageBitmap(img image.Image) Bitmap {
	return &imageBitmap{img: img}
}

func (b *imageBitmap) Image() image.Image {
	return b.img
}

func (b *imageBitmap) Close() error {
	b.img = nil
	return nil
}
