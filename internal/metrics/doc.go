// Package metrics provides Prometheus instrumentation for media-inspector.
//
// Collectors are registered with the default Prometheus registry through
// promauto, so a host that already serves /metrics picks them up without
// extra wiring. All metrics are prefixed with "media_inspector_".
//
// # Metric Categories
//
// Operations (one label value per facade query: thumbnail, duration,
// metadata, hash):
//   - OperationsTotal: Counter by operation and status (success, error, panic)
//   - OperationDuration: Histogram of operation latency
//
// Hasher:
//   - HashBytesTotal: Counter of bytes fed into the hash accumulator
//
// Thumbnails:
//   - ThumbnailHandlerTotal: Counter of bitmap requests by handler and status
//
// Subsystems:
//   - SubsystemUp: Gauge per native subsystem (runtime, media, graphics)
//   - SubsystemStartsTotal: Counter of start attempts by status
//
// Filesystem:
//   - FilesystemOperationDuration: Histogram per operation (stat, open, read)
//   - FilesystemOperationErrors: Counter per operation
//
// The filesystem package cannot import this package without a cycle, so it
// records through the filesystem.Observer interface; NewFilesystemObserver
// returns the implementation to install with filesystem.SetObserver.
//
// # Initialization
//
// InitializeMetrics pre-populates every expected label combination so that
// dashboards see zero-valued series from the first scrape.
package metrics
