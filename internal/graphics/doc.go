// Package graphics owns the libvips graphics subsystem.
//
// Subsystem starts libvips with the configured concurrency and cache limits
// and routes its log output into the logging package. libvips cannot be
// restarted once shut down, so Start after Stop reports an error instead.
//
// Handler is a thumbnail.Handler that decodes images with libvips, which
// shrinks JPEGs during decode and keeps peak memory low.
package graphics
