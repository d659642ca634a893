// Package inspector is the entry point for media file introspection.
//
// A host calls Initialize once to bring up the runtime, media (ffmpeg and
// ffprobe) and graphics (libvips) subsystems, then issues any of the four
// queries concurrently and in any order:
//
//	inspector.Initialize()
//	defer inspector.Shutdown()
//
//	ok := inspector.GetThumbnail("in.jpg", "out.png", 256)
//	ms := inspector.GetVideoDuration("clip.mp4")
//	md, err := inspector.GetFileMetadata("clip.mp4")
//	sum := inspector.GetXXHashChecksum("clip.mp4", 0)
//
// The Get* functions return sentinel values on failure (false, 0.0, 0) after
// logging the cause with the operation name and path. A zero duration or a
// zero checksum is therefore ambiguous. Thumbnail, VideoDuration and Checksum
// return the same results with a typed error instead, which callers can
// inspect with errors.Is against ErrNotFound, ErrBind and the other kinds.
//
// Subsystems that fail to start are logged and skipped; operations that
// depend on them fail individually. Package-level functions use a default
// Inspector configured from the environment; New builds isolated instances
// with injected collaborators.
package inspector
