package calendar

import "fmt"

// ZoneOffset is the UTC offset a zone applies at some instant.
type ZoneOffset struct {
	Seconds      int
	Abbreviation string
	DST          bool
}

// Zone resolves an identifier-bearing time zone to its offset at an instant.
// Implementations must be safe to call repeatedly with any instant.
type Zone interface {
	ID() string
	Offset(t Instant) ZoneOffset
}

// UTC is the zero-offset zone.
var UTC Zone = FixedZone("UTC", 0)

type fixedZone struct {
	id  string
	off ZoneOffset
}

// FixedZone returns a zone that always applies the given offset. The
// abbreviation is derived from the offset ("GMT-7", "GMT+5:30") unless the
// offset is zero.
func FixedZone(id string, seconds int) Zone {
	return fixedZone{id: id, off: ZoneOffset{Seconds: seconds, Abbreviation: gmtAbbreviation(seconds)}}
}

func (z fixedZone) ID() string                { return z.id }
func (z fixedZone) Offset(Instant) ZoneOffset { return z.off }

func gmtAbbreviation(seconds int) string {
	if seconds == 0 {
		return "GMT"
	}
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h, m := seconds/3600, seconds%3600/60
	if m == 0 {
		return fmt.Sprintf("GMT%c%d", sign, h)
	}
	return fmt.Sprintf("GMT%c%d:%02d", sign, h, m)
}
