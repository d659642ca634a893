// Package hasher produces deterministic 64-bit content digests (xxHash64,
// seed 0) of files by streaming them through one reusable, fixed-size buffer.
//
// Memory use is bounded by the buffer size regardless of file size. The
// digest depends only on the bytes of the file and their order: the same
// content hashes identically whatever buffer size or path is used. An empty
// file hashes to xxHash64 of the empty input (0xef46db3751d8e999), which is
// distinct from the 0 returned alongside an error.
package hasher
