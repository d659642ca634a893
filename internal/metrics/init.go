package metrics

// Operation names used as label values.
const (
	OpThumbnail = "thumbnail"
	OpDuration  = "duration"
	OpMetadata  = "metadata"
	OpHash      = "hash"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPanic   = "panic"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, op := range []string{OpThumbnail, OpDuration, OpMetadata, OpHash} {
		for _, status := range []string{StatusSuccess, StatusError, StatusPanic} {
			OperationsTotal.WithLabelValues(op, status)
		}
		OperationDuration.WithLabelValues(op)
	}

	for _, subsystem := range []string{"runtime", "media", "graphics"} {
		SubsystemUp.WithLabelValues(subsystem)
		SubsystemStartsTotal.WithLabelValues(subsystem, StatusSuccess)
		SubsystemStartsTotal.WithLabelValues(subsystem, StatusError)
	}

	for _, handler := range []string{"vips", "imaging", "ffmpeg"} {
		ThumbnailHandlerTotal.WithLabelValues(handler, StatusSuccess)
		ThumbnailHandlerTotal.WithLabelValues(handler, StatusError)
	}

	for _, op := range []string{"stat", "open", "read"} {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
	}

	SetAppInfo()
}
