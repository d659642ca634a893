package thumbnail

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// MimePNG is the only output format the generator writes.
const MimePNG = "image/png"

// DefaultEncoders returns the encoders available in this build.
func DefaultEncoders() []Encoder {
	return []Encoder{
		{
			MimeType: "image/jpeg",
			Encode: func(w io.Writer, img image.Image) error {
				return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(80))
			},
		},
		{
			MimeType: MimePNG,
			Encode: func(w io.Writer, img image.Image) error {
				return imaging.Encode(w, img, imaging.PNG)
			},
		},
	}
}

// FindEncoder returns the first encoder for mimeType.
func FindEncoder(encoders []Encoder, mimeType string) (Encoder, bool) {
	for _, e := range encoders {
		if e.MimeType == mimeType && e.Encode != nil {
			return e, true
		}
	}
	return Encoder{}, false
}
