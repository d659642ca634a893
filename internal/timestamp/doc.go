// Package timestamp converts between native 100-nanosecond tick counts and
// the millisecond values reported to callers.
//
// Calendar timestamps are counted from 1601-01-01 and are normalized to
// milliseconds since the Unix epoch with Normalize. Durations carry no epoch
// and are converted with DurationMillis.
package timestamp
