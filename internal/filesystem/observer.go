package filesystem

import "sync/atomic"

// Observer records filesystem operation metrics. Implementations are provided
// by the metrics package to break the import cycle between filesystem and metrics.
type Observer interface {
	// ObserveOperation records duration and error status for a filesystem operation.
	// operation is the fs operation type: "stat", "open", "read".
	ObserveOperation(operation string, durationSeconds float64, err error)
}

type observerHolder struct {
	o Observer
}

// defaultObserver is the package-level observer set at startup.
// If unset, metric recording is silently skipped (safe for tests).
var defaultObserver atomic.Pointer[observerHolder]

// SetObserver sets the package-level metrics observer. It may be called
// while operations are running.
func SetObserver(o Observer) {
	defaultObserver.Store(&observerHolder{o: o})
}

func observe(operation string, durationSeconds float64, err error) {
	if h := defaultObserver.Load(); h != nil && h.o != nil {
		h.o.ObserveOperation(operation, durationSeconds, err)
	}
}
