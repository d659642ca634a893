// Package thumbnail turns a media file into a PNG thumbnail on disk.
//
// A Generator asks a Provider for a decoded Bitmap, picks the PNG Encoder and
// writes the result through a temporary file that is renamed onto the
// destination only after the encode succeeded. A failed request never leaves
// a file at the destination path.
//
// HandlerProvider is the production Provider. It resolves the source path to
// an Item, classifies it as image or video, and binds the first available
// Handler that accepts it: libvips (registered by the graphics package), the
// pure-Go imaging decoder, or ffmpeg frame extraction for video.
package thumbnail
