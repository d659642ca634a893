package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation metrics
var (
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_inspector_operations_total",
			Help: "Total number of introspection operations by outcome",
		},
		[]string{"operation", "status"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_inspector_operation_duration_seconds",
			Help:    "Introspection operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
)

// Hasher metrics
var (
	HashBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_inspector_hash_bytes_total",
			Help: "Total number of bytes fed into the content hash accumulator",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailHandlerTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_inspector_thumbnail_handler_total",
			Help: "Total number of bitmap requests by bound handler and outcome",
		},
		[]string{"handler", "status"},
	)
)

// Subsystem lifecycle metrics
var (
	SubsystemUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_inspector_subsystem_up",
			Help: "Whether a native subsystem is started (1 = up, 0 = down)",
		},
		[]string{"subsystem"},
	)

	SubsystemStartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_inspector_subsystem_starts_total",
			Help: "Total number of subsystem start attempts by outcome",
		},
		[]string{"subsystem", "status"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_inspector_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_inspector_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"operation"},
	)
)

// Application info
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_inspector_app_info",
			Help: "Application build information",
		},
		[]string{"version", "go_version"},
	)
)

// Version is the library version reported by AppInfo (injected via -ldflags).
var Version = "dev"

// SetAppInfo publishes the build information gauge.
func SetAppInfo() {
	AppInfo.WithLabelValues(Version, runtime.Version()).Set(1)
}
