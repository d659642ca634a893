//go:build linux

package metadata

import (
	"time"

	"media-inspector/internal/filesystem"

	"golang.org/x/sys/unix"
)

// NativeSource reads attributes with statx(2). Birth time is used as the
// creation time when the filesystem reports it, otherwise the inode change time.
type NativeSource struct{}

// Attributes implements AttributeSource.
func (NativeSource) Attributes(path string) (Attributes, error) {
	var stx unix.Statx_t
	start := time.Now()
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT,
		unix.STATX_BASIC_STATS|unix.STATX_BTIME, &stx)
	filesystem.ObserveStat(start, err)
	if err != nil {
		return Attributes{}, err
	}

	created := stx.Ctime
	if stx.Mask&unix.STATX_BTIME != 0 {
		created = stx.Btime
	}

	return attributesFromTimes(
		statxTime(created),
		statxTime(stx.Atime),
		statxTime(stx.Mtime),
		int64(stx.Size),
	), nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
