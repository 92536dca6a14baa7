package format

import (
	"civcal/internal/calendar"
	"civcal/internal/locale"
)

// DateFormat is how much of the date Formatted writes.
type DateFormat int

const (
	DateOmitted DateFormat = iota
	DateNumeric
	DateAbbreviated
	DateLong
	DateComplete
)

// TimeFormat is how much of the time of day Formatted writes.
type TimeFormat int

const (
	TimeOmitted TimeFormat = iota
	TimeShortened
	TimeStandard
	TimeComplete
)

func (d DateFormat) key() locale.Style {
	switch d {
	case DateNumeric:
		return locale.Numeric
	case DateAbbreviated:
		return locale.Medium
	case DateLong:
		return locale.Long
	case DateComplete:
		return locale.Full
	}
	return ""
}

func (t TimeFormat) key() locale.Style {
	switch t {
	case TimeShortened:
		return locale.Short
	case TimeStandard:
		return locale.Medium
	case TimeComplete:
		return locale.Complete
	}
	return ""
}

// glue picks the date-time joiner: the long dates read as a sentence
// ("June 2, 2014 at 7:00 AM"), the short ones take a comma.
func (d DateFormat) glue() locale.Style {
	if d >= DateLong {
		return locale.Full
	}
	return locale.Short
}

// Formatted renders t with the named date and time lengths. With both
// omitted it falls back to numeric date and shortened time.
func Formatted(t calendar.Instant, cal *calendar.Calendar, src locale.Source, date DateFormat, tm TimeFormat) string {
	if date == DateOmitted && tm == TimeOmitted {
		date, tm = DateNumeric, TimeShortened
	}
	f := &DateFormatter{Calendar: cal, Locale: src}
	loc := f.locale()
	f.Pattern = stylePattern(loc, f.calendar().System().ID(), date.key(), tm.key(), date.glue())
	return f.Format(t)
}
