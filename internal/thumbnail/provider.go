package thumbnail

import (
	"errors"
	"fmt"

	"media-inspector/internal/apperr"
	"media-inspector/internal/filesystem"
	"media-inspector/internal/logging"
	"media-inspector/internal/mediatypes"
	"media-inspector/internal/metrics"
)

// HandlerProvider resolves a path into an Item and binds the first handler
// that can serve it.
type HandlerProvider struct {
	handlers []Handler
}

// NewProvider creates a HandlerProvider. Handlers are tried in order.
func NewProvider(handlers ...Handler) *HandlerProvider {
	return &HandlerProvider{handlers: handlers}
}

// Resolve stats path and classifies it. Only existing regular files resolve.
func Resolve(path string) (Item, error) {
	if path == "" {
		return Item{}, apperr.New(opName, path, apperr.ErrNotFound, errors.New("empty path"))
	}
	info, err := filesystem.Stat(path)
	if err != nil {
		return Item{}, apperr.New(opName, path, apperr.ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return Item{}, apperr.New(opName, path, apperr.ErrNotFound, fmt.Errorf("not a regular file: %s", info.Mode().Type()))
	}
	return Item{Path: path, Type: mediatypes.Classify(path), Info: info}, nil
}

// Bind returns the first available handler that accepts item.
func (p *HandlerProvider) Bind(item Item) (Handler, error) {
	for _, h := range p.handlers {
		if !h.Available() {
			logging.OpDebug(opName, item.Path, "handler %s unavailable", h.Name())
			continue
		}
		if h.Accepts(item) {
			return h, nil
		}
	}
	return nil, apperr.New(opName, item.Path, apperr.ErrBind, fmt.Errorf("no handler for %s content", item.Type))
}

// Thumbnail implements Provider.
func (p *HandlerProvider) Thumbnail(path string, size uint32) (Bitmap, error) {
	item, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	h, err := p.Bind(item)
	if err != nil {
		return nil, err
	}
	logging.OpDebug(opName, path, "bound handler %s for %s", h.Name(), item.Type)

	bitmap, err := h.Bitmap(item, size)
	if err != nil {
		metrics.ThumbnailHandlerTotal.WithLabelValues(h.Name(), metrics.StatusError).Inc()
		return nil, apperr.New(opName, path, apperr.ErrBind, fmt.Errorf("%s: %w", h.Name(), err))
	}
	metrics.ThumbnailHandlerTotal.WithLabelValues(h.Name(), metrics.StatusSuccess).Inc()
	return bitmap, nil
}
