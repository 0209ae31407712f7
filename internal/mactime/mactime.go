// Package mactime converts between classic Mac OS timestamps and Go time
// values. A Mac timestamp is an unsigned 32-bit count of seconds since
// midnight, January 1, 1904.
package mactime

import "time"

// EpochOffset is the number of seconds between the Mac epoch (1904-01-01)
// and the Unix epoch (1970-01-01).
const EpochOffset = 2082844800

// ToTime converts a Mac timestamp to a UTC time value
func ToTime(secs uint32) time.Time {
	return time.Unix(int64(secs)-EpochOffset, 0).UTC()
}

// FromTime converts a time value to a Mac timestamp. Times before the Mac
// epoch or past the 32-bit range clamp to the representable bounds.
func FromTime(t time.Time) uint32 {
	secs := t.Unix() + EpochOffset
	if secs < 0 {
		return 0
	}
	if secs > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(secs)
}

// Now returns the current time as a Mac timestamp
func Now() uint32 {
	return FromTime(time.Now())
}
