//go:build windows

package metadata

import (
	"time"
	"unsafe"

	"media-inspector/internal/filesystem"
	"media-inspector/internal/timestamp"

	"golang.org/x/sys/windows"
)

// NativeSource reads attributes with GetFileAttributesEx.
type NativeSource struct{}

// Attributes implements AttributeSource.
func (NativeSource) Attributes(path string) (Attributes, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Attributes{}, err
	}

	var data windows.Win32FileAttributeData
	start := time.Now()
	err = windows.GetFileAttributesEx(p, windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&data)))
	filesystem.ObserveStat(start, err)
	if err != nil {
		return Attributes{}, err
	}

	return Attributes{
		CreationTime:   filetime(data.CreationTime),
		LastAccessTime: filetime(data.LastAccessTime),
		LastWriteTime:  filetime(data.LastWriteTime),
		SizeHigh:       data.FileSizeHigh,
		SizeLow:        data.FileSizeLow,
	}, nil
}

func filetime(ft windows.Filetime) timestamp.Filetime {
	return timestamp.Filetime{Low: ft.LowDateTime, High: ft.HighDateTime}
}
