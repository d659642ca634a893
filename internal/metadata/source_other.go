//go:build !linux && !windows

package metadata

import "media-inspector/internal/filesystem"

// NativeSource reads attributes with os.Stat. Only the modification time is
// portable, so it is reported for all three timestamps.
type NativeSource struct{}

// Attributes implements AttributeSource.
func (NativeSource) Attributes(path string) (Attributes, error) {
	info, err := filesystem.Stat(path)
	if err != nil {
		return Attributes{}, err
	}
	mod := info.ModTime()
	return attributesFromTimes(mod, mod, mod, info.Size()), nil
}
