package timestamp

import "time"

const (
	// TicksPerMillisecond is the number of 100ns ticks in one millisecond.
	TicksPerMillisecond = 10_000

	// EpochOffsetMillis is the distance from 1601-01-01 to 1970-01-01 in milliseconds.
	EpochOffsetMillis = 11_644_473_600_000

	// epochOffsetTicks is EpochOffsetMillis expressed in ticks.
	epochOffsetTicks = EpochOffsetMillis * TicksPerMillisecond
)

// Filetime is a tick count split into two 32-bit halves.
type Filetime struct {
	Low  uint32
	High uint32
}

// Ticks combines the halves into a single tick count.
func (f Filetime) Ticks() int64 {
	return int64(uint64(f.High)<<32 | uint64(f.Low))
}

// SplitTicks splits a tick count into its 32-bit halves.
func SplitTicks(ticks int64) Filetime {
	u := uint64(ticks)
	return Filetime{Low: uint32(u), High: uint32(u >> 32)}
}

// Normalize converts ticks since 1601-01-01 into milliseconds since the Unix epoch.
// Division truncates toward zero.
func Normalize(ticks int64) int64 {
	return ticks/TicksPerMillisecond - EpochOffsetMillis
}

// FromTime expresses t as ticks since 1601-01-01, truncated to tick precision.
func FromTime(t time.Time) int64 {
	return t.Unix()*10_000_000 + int64(t.Nanosecond())/100 + epochOffsetTicks
}

// DurationMillis converts a duration in ticks into fractional milliseconds.
// No epoch offset applies.
func DurationMillis(ticks uint64) float64 {
	return float64(ticks) / TicksPerMillisecond
}
