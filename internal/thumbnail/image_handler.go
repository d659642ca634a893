package thumbnail

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"media-inspector/internal/filesystem"
	"media-inspector/internal/logging"
	"media-inspector/internal/mediatypes"
)

// ImageHandler decodes still images in pure Go.
type ImageHandler struct{}

// NewImageHandler creates an ImageHandler.
func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

func (h *ImageHandler) Name() string { return "imaging" }

// Available always reports true; the decoders are compiled in.
func (h *ImageHandler) Available() bool { return true }

func (h *ImageHandler) Accepts(item Item) bool {
	return item.Type == mediatypes.FileTypeImage
}

func (h *ImageHandler) Bitmap(item Item, size uint32) (Bitmap, error) {
	img, err := imaging.Open(item.Path, imaging.AutoOrientation(true))
	if err != nil {
		logging.Debug("imaging.Open failed for %s: %v, trying plain decode", item.Path, err)
		img, err = decodeImageFile(item.Path)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
	}
	return NewImageBitmap(fit(img, size)), nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := filesystem.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	logging.Debug("Decoded image format: %s for %s", format, path)
	return img, nil
}

// fit scales img down so that neither edge exceeds size. A zero size keeps
// the original dimensions.
func fit(img image.Image, size uint32) image.Image {
	if size == 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= int(size) && b.Dy() <= int(size) {
		return img
	}
	return imaging.Fit(img, int(size), int(size), imaging.Lanczos)
}
