package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"time"

	"media-inspector/internal/logging"
	"media-inspector/internal/mediatypes"
)

// frameTimeout bounds a single ffmpeg frame extraction.
const frameTimeout = 30 * time.Second

// FFmpegLocator reports the resolved ffmpeg binary.
type FFmpegLocator interface {
	FFmpeg() (string, error)
}

// VideoHandler extracts a representative frame from a video with ffmpeg.
type VideoHandler struct {
	tools FFmpegLocator
}

// NewVideoHandler creates a VideoHandler backed by tools.
func NewVideoHandler(tools FFmpegLocator) *VideoHandler {
	return &VideoHandler{tools: tools}
}

func (h *VideoHandler) Name() string { return "ffmpeg" }

func (h *VideoHandler) Available() bool {
	if h.tools == nil {
		return false
	}
	_, err := h.tools.FFmpeg()
	return err == nil
}

func (h *VideoHandler) Accepts(item Item) bool {
	return item.Type == mediatypes.FileTypeVideo
}

func (h *VideoHandler) Bitmap(item Item, size uint32) (Bitmap, error) {
	ffmpeg, err := h.tools.FFmpeg()
	if err != nil {
		return nil, err
	}

	logging.Debug("Extracting video frame: %s", item.Path)

	out, err := extractFrame(ffmpeg, item.Path, "00:00:01")
	if err != nil {
		logging.Debug("FFmpeg first attempt failed for %s: %v", item.Path, err)
		out, err = extractFrame(ffmpeg, item.Path, "")
		if err != nil {
			return nil, err
		}
	}

	logging.Debug("FFmpeg output size: %d bytes", len(out))

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}
	return NewImageBitmap(fit(img, size)), nil
}

// extractFrame runs ffmpeg once and returns the PNG bytes of a single frame.
// An empty seek grabs the first frame.
func extractFrame(ffmpeg, path, seek string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), frameTimeout)
	defer cancel()

	args := []string{"-i", path}
	if seek != "" {
		args = append(args, "-ss", seek)
	}
	args = append(args, "-vframes", "1", "-f", "image2pipe", "-vcodec", "png", "-")

	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", path)
	}
	return stdout.Bytes(), nil
}
