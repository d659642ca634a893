package inspector

import "sync"

var (
	defaultOnce     sync.Once
	defaultInstance *Inspector
)

// Default returns the process-wide Inspector, configured from the
// environment on first use.
func Default() *Inspector {
	defaultOnce.Do(func() {
		defaultInstance = New()
	})
	return defaultInstance
}

// Initialize starts the subsystems of the default Inspector.
func Initialize() {
	Default().Initialize()
}

// Shutdown stops the subsystems of the default Inspector for the rest of the
// process. A later Initialize does nothing; see Inspector.Shutdown.
func Shutdown() {
	Default().Shutdown()
}

// GetThumbnail renders src as a PNG at dst with the default Inspector.
func GetThumbnail(src, dst string, size uint32) bool {
	return Default().GetThumbnail(src, dst, size)
}

// GetVideoDuration returns the duration of path in milliseconds with the
// default Inspector, 0 on failure.
func GetVideoDuration(path string) float64 {
	return Default().GetVideoDuration(path)
}

// GetFileMetadata returns the metadata of path with the default Inspector.
func GetFileMetadata(path string) (FileMetadata, error) {
	return Default().GetFileMetadata(path)
}

// GetXXHashChecksum returns the xxHash64 digest of path with the default
// Inspector, 0 on failure.
func GetXXHashChecksum(path string, bufferSize uint64) uint64 {
	return Default().GetXXHashChecksum(path, bufferSize)
}
