// Package mediatools is the media framework subsystem: it locates the
// ffmpeg and ffprobe executables once at initialization and hands their
// paths to the duration prober and the video thumbnail handler.
//
// Before Start, or when a binary is missing, the accessors return an error
// wrapping ErrNotStarted and the dependent operation fails on its own.
package mediatools
