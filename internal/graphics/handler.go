package graphics

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"

	"media-inspector/internal/logging"
	"media-inspector/internal/mediatypes"
	"media-inspector/internal/thumbnail"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

// Handler renders image thumbnails with libvips, shrinking at decode time.
type Handler struct{}

// NewHandler creates a libvips thumbnail handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Name implements thumbnail.Handler.
func (h *Handler) Name() string { return "vips" }

// Available implements thumbnail.Handler.
func (h *Handler) Available() bool { return Running() }

// Accepts implements thumbnail.Handler.
func (h *Handler) Accepts(item thumbnail.Item) bool {
	return item.Type == mediatypes.FileTypeImage
}

// Bitmap implements thumbnail.Handler.
func (h *Handler) Bitmap(item thumbnail.Item, size uint32) (thumbnail.Bitmap, error) {
	if !Running() {
		return nil, ErrUnavailable
	}

	ref, err := vips.LoadImageFromFile(item.Path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips failed to load image: %w", err)
	}

	logging.Debug("Vips loaded %s: %dx%d, shrinking to %d",
		filepath.Base(item.Path), ref.Width(), ref.Height(), size)

	if size > 0 {
		if err := ref.Thumbnail(int(size), int(size), vips.InterestingNone); err != nil {
			ref.Close()
			return nil, fmt.Errorf("vips resize failed: %w", err)
		}
	}

	pngBytes, _, err := ref.ExportPng(vips.NewPngExportParams())
	if err != nil {
		ref.Close()
		return nil, fmt.Errorf("vips export failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		ref.Close()
		return nil, fmt.Errorf("failed to decode vips output: %w", err)
	}

	return &bitmap{ref: ref, img: img}, nil
}

// bitmap keeps the libvips image alive until the caller releases it.
type bitmap struct {
	ref *vips.ImageRef
	img image.Image
}

func (b *bitmap) Image() image.Image {
	return b.img
}

func (b *bitmap) Close() error {
	if b.ref != nil {
		b.ref.Close()
		b.ref = nil
	}
	b.img = nil
	return nil
}
