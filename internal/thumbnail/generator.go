package thumbnail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"media-inspector/internal/apperr"
	"media-inspector/internal/logging"
)

const opName = "thumbnail"

// Generator obtains bitmaps from a Provider and writes them as PNG files.
type Generator struct {
	provider Provider
	encoders []Encoder
}

// NewGenerator creates a Generator. A nil encoders slice selects DefaultEncoders.
func NewGenerator(provider Provider, encoders []Encoder) *Generator {
	if encoders == nil {
		encoders = DefaultEncoders()
	}
	return &Generator{provider: provider, encoders: encoders}
}

// Generate writes a PNG thumbnail for req. The destination is only created
// when encoding succeeds; on any failure it is left untouched.
func (g *Generator) Generate(req Request) error {
	if req.Source == "" {
		return apperr.New(opName, req.Source, apperr.ErrNotFound, errors.New("empty source path"))
	}
	if req.Destination == "" {
		return apperr.New(opName, req.Source, apperr.ErrEncode, errors.New("empty destination path"))
	}

	bitmap, err := g.provider.Thumbnail(req.Source, req.Size)
	if err != nil {
		if apperr.KindOf(err) != nil {
			return err
		}
		return apperr.New(opName, req.Source, apperr.ErrBind, err)
	}
	if bitmap == nil {
		return apperr.New(opName, req.Source, apperr.ErrBind, errors.New("provider returned no bitmap"))
	}
	defer func() {
		if err := bitmap.Close(); err != nil {
			logging.OpWarn(opName, req.Source, fmt.Errorf("release bitmap: %w", err))
		}
	}()

	img := bitmap.Image()
	if img == nil {
		return apperr.New(opName, req.Source, apperr.ErrBind, errors.New("provider returned an empty bitmap"))
	}

	encoder, ok := FindEncoder(g.encoders, MimePNG)
	if !ok {
		return apperr.New(opName, req.Source, apperr.ErrEncode, fmt.Errorf("no %s encoder available", MimePNG))
	}

	if err := writeAtomic(req.Destination, func(f *os.File) error {
		return encoder.Encode(f, img)
	}); err != nil {
		return apperr.New(opName, req.Source, apperr.ErrEncode, err)
	}

	b := img.Bounds()
	logging.OpDebug(opName, req.Source, "wrote %dx%d png to %s", b.Dx(), b.Dy(), req.Destination)
	return nil
}

// thumbnailMode is the permission of written thumbnails, matching os.Create
// under the usual 022 umask so other processes can serve them.
const thumbnailMode os.FileMode = 0o644

// writeAtomic writes into a temporary file next to dest and renames it into
// place only after write and close succeed. The temporary file is removed on
// any other outcome, including a panic in write.
func writeAtomic(dest string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(thumbnailMode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	committed = true
	return nil
}
