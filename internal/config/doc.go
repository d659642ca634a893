/*
Package config loads media-inspector settings from the environment.

# Environment Variables

	HASH_BUFFER_SIZE     hasher read buffer in bytes (default 8388608)
	FFMPEG_PATH          ffmpeg binary used for video frames (default "ffmpeg")
	FFPROBE_PATH         ffprobe binary used for durations (default "ffprobe")
	VIPS_CONCURRENCY     libvips worker threads (default 1)
	VIPS_MAX_CACHE_MEM   libvips operation cache in bytes (default 52428800)
	VIPS_MAX_CACHE_SIZE  libvips cached operations (default 100)
	MEMORY_LIMIT         container memory limit in bytes, e.g. from the
	                     Kubernetes Downward API (default unset)
	MEMORY_RATIO         share of MEMORY_LIMIT given to the Go heap (default 0.85)
	METRICS_ENABLED      record Prometheus metrics (default true)
	LOG_LEVEL            debug, info, warn or error (read by package logging)

Unparseable or out-of-range values log a warning and fall back to the
default; Load never fails.
*/
package config
