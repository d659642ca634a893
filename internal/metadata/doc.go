// Package metadata reads filesystem attributes for a path and reports them
// as a FileMetadata record of Unix-epoch millisecond timestamps and a byte
// size.
//
// Attribute data comes from an AttributeSource in native form: three tick
// counts (100ns units since 1601-01-01) split into 32-bit halves and a size
// split the same way. NativeSource is the platform implementation:
//   - windows: GetFileAttributesEx
//   - linux: statx, with birth time when the filesystem records it
//   - elsewhere: os.Stat modification time for all three timestamps
//
// Records are built fresh on every Read and are never cached.
package metadata
