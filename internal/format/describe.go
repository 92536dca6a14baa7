package format

import (
	"civcal/internal/calendar"
	"civcal/internal/locale"
)

// describePattern is the debugging form, always Gregorian UTC.
const describePattern = "yyyy-MM-dd HH:mm:ss Z"

// Describe renders t for logs and debugging: 2007-01-09 18:00:00 +0000.
func Describe(t calendar.Instant) string {
	return (&DateFormatter{Pattern: describePattern}).Format(t)
}

// DescribeLocalized renders t in full date and time styles for src, in
// cal's system and zone.
func DescribeLocalized(t calendar.Instant, cal *calendar.Calendar, src locale.Source) string {
	f := &DateFormatter{Calendar: cal, Locale: src, DateStyle: StyleFull, TimeStyle: StyleFull}
	return f.Format(t)
}
