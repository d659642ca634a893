package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInitialization is returned when a subsystem failed to start.
	ErrInitialization = errors.New("initialization failed")

	// ErrNotFound is returned when a path is missing, empty, or its attributes cannot be queried.
	ErrNotFound = errors.New("not found")

	// ErrBind is returned when no provider could be resolved or bound for the requested capability.
	ErrBind = errors.New("bind failed")

	// ErrEncode is returned when no suitable encoder is available or the encode step failed.
	ErrEncode = errors.New("encode failed")

	// ErrIO is returned when opening or reading the underlying file fails.
	ErrIO = errors.New("i/o error")

	// ErrUnavailableAttribute is returned when a requested attribute is not present in the stream.
	ErrUnavailableAttribute = errors.New("attribute unavailable")
)

// OpError records the operation and path that failed, the taxonomy kind,
// and the underlying cause.
type OpError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

// New builds an OpError. err may be nil when the kind says everything.
func New(op, path string, kind, err error) *OpError {
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the taxonomy kind and the cause to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the taxonomy sentinel carried by err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrInitialization, ErrNotFound, ErrBind, ErrEncode, ErrIO, ErrUnavailableAttribute,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
