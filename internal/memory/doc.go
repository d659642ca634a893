// Package memory provides the runtime subsystem: it bounds the Go heap so
// that libvips and ffmpeg, which allocate outside the Go heap, keep headroom
// inside a container memory limit.
//
// The limit is ContainerLimit * Ratio (MEMORY_LIMIT and MEMORY_RATIO in
// package config). When GOMEMLIMIT is set in the environment the Go runtime
// has already applied it and Start leaves it alone.
package memory
