package calendar

import (
	"math"
	"time"
)

const (
	secondsPerDay = 86400
	nanosPerSec   = 1_000_000_000

	// referenceDateUnix is 2001-01-01T00:00:00Z in Unix seconds.
	referenceDateUnix = 978307200
)

// Instant is an absolute point in time, independent of calendar and zone.
// It counts seconds and nanoseconds since 1970-01-01T00:00:00Z; nsec is
// always in [0, 1e9).
type Instant struct {
	sec  int64
	nsec int32
}

// Unix returns the instant sec seconds plus nsec nanoseconds after the Unix
// epoch. nsec may be outside [0, 1e9) and is normalized.
func Unix(sec, nsec int64) Instant {
	sec += floorDiv(nsec, nanosPerSec)
	nsec = floorMod(nsec, nanosPerSec)
	return Instant{sec: sec, nsec: int32(nsec)}
}

// FromUnixSeconds converts fractional seconds since the Unix epoch.
func FromUnixSeconds(s float64) Instant {
	whole := math.Floor(s)
	frac := math.Round((s - whole) * nanosPerSec)
	return Unix(int64(whole), int64(frac))
}

// FromReferenceSeconds converts fractional seconds since 2001-01-01T00:00:00Z.
func FromReferenceSeconds(s float64) Instant {
	return FromUnixSeconds(s).addSeconds(referenceDateUnix)
}

// FromTime converts a time.Time, dropping its location.
func FromTime(t time.Time) Instant {
	return Unix(t.Unix(), int64(t.Nanosecond()))
}

// UnixSeconds returns the whole seconds since the Unix epoch (floored).
func (i Instant) UnixSeconds() int64 { return i.sec }

// Nanosecond returns the sub-second part in [0, 1e9).
func (i Instant) Nanosecond() int { return int(i.nsec) }

// SinceUnixEpoch returns fractional seconds since 1970-01-01T00:00:00Z.
func (i Instant) SinceUnixEpoch() float64 {
	return float64(i.sec) + float64(i.nsec)/nanosPerSec
}

// SinceReferenceDate returns fractional seconds since 2001-01-01T00:00:00Z.
func (i Instant) SinceReferenceDate() float64 {
	return float64(i.sec-referenceDateUnix) + float64(i.nsec)/nanosPerSec
}

// Add returns the instant s seconds later (earlier when negative).
func (i Instant) Add(s float64) Instant {
	whole := math.Floor(s)
	frac := math.Round((s - whole) * nanosPerSec)
	return Unix(i.sec+int64(whole), int64(i.nsec)+int64(frac))
}

// AddDuration returns the instant d later.
func (i Instant) AddDuration(d time.Duration) Instant {
	return Unix(i.sec, int64(i.nsec)+int64(d))
}

func (i Instant) addSeconds(s int64) Instant {
	return Instant{sec: i.sec + s, nsec: i.nsec}
}

// Sub returns i-j in fractional seconds.
func (i Instant) Sub(j Instant) float64 {
	return float64(i.sec-j.sec) + float64(i.nsec-j.nsec)/nanosPerSec
}

// Compare returns -1, 0 or +1.
func (i Instant) Compare(j Instant) int {
	switch {
	case i.sec < j.sec:
		return -1
	case i.sec > j.sec:
		return 1
	case i.nsec < j.nsec:
		return -1
	case i.nsec > j.nsec:
		return 1
	}
	return 0
}

func (i Instant) Before(j Instant) bool { return i.Compare(j) < 0 }
func (i Instant) After(j Instant) bool  { return i.Compare(j) > 0 }
func (i Instant) Equal(j Instant) bool  { return i == j }

// Time returns the instant as a UTC time.Time.
func (i Instant) Time() time.Time {
	return time.Unix(i.sec, int64(i.nsec)).UTC()
}

func (i Instant) String() string {
	return i.Time().Format(time.RFC3339Nano)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
