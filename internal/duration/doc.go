// Package duration reports the presentation duration of media files in
// milliseconds.
//
// A Prober checks the path exists, opens a Stream through the Framework,
// binds a Reader to it and asks for the duration in 100-nanosecond ticks.
// Milliseconds are ticks / 10000 as a float64, so sub-millisecond precision
// survives. Handles are released in reverse order of acquisition on every
// path, including failures.
//
// FFprobe is the production Framework; it keeps the file open as the Stream,
// runs ffprobe on the file's path and reads format.duration from its JSON
// output.
package duration
