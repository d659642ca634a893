// Package logging provides the leveled diagnostic log used by every
// media-inspector component.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//
// The log level is configured via the LOG_LEVEL environment variable, or
// forced to debug with DEBUG=true. Hosts may override it with SetLevel.
//
// Failed operations are reported with OpError, which tags the line with the
// operation name and the path it was invoked on:
//
//	[ERROR] op=hash path="/media/clip.mp4": not found: open /media/clip.mp4: no such file or directory
package logging
