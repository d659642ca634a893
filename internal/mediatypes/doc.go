// Package mediatypes classifies files as images or videos so the thumbnail
// provider can bind a suitable handler.
//
// This package is a dependency-free foundation that other packages import
// without creating cycles.
//
// # Classification
//
// Classify looks at the lowercase extension first:
//
//	switch mediatypes.Classify(path) {
//	case mediatypes.FileTypeImage:
//	    // decode and shrink
//	case mediatypes.FileTypeVideo:
//	    // extract a frame
//	}
//
// Files with an unknown extension are identified by their magic bytes with
// DetectFormat, so a JPEG saved as "photo.dat" is still an image.
package mediatypes
