package format

import (
	"strings"

	"civcal/internal/calendar"
)

// ISO8601Options selects the parts of an ISO 8601 representation.
type ISO8601Options uint16

const (
	WithYear ISO8601Options = 1 << iota
	WithMonth
	WithDay
	WithWeekOfYear
	WithTime
	WithFractionalSeconds
	WithTimeZone
	WithDashSeparatorInDate
	WithColonSeparatorInTime
	WithColonSeparatorInTimeZone
	WithSpaceBetweenDateAndTime

	WithFullDate = WithYear | WithMonth | WithDay | WithDashSeparatorInDate
	WithFullTime = WithTime | WithColonSeparatorInTime | WithTimeZone | WithColonSeparatorInTimeZone

	// InternetDateTime is RFC 3339: 2014-06-02T07:00:00Z.
	InternetDateTime = WithFullDate | WithFullTime
)

// ISO8601Formatter writes and reads ISO 8601 text. Dates use the
// proleptic Gregorian calendar with ISO weeks regardless of any locale.
// A nil Zone means UTC; zero Options means InternetDateTime.
type ISO8601Formatter struct {
	Options ISO8601Options
	Zone    calendar.Zone
}

func (f ISO8601Formatter) options() ISO8601Options {
	if f.Options == 0 {
		return InternetDateTime
	}
	return f.Options
}

// Pattern is the UTS #35 pattern equivalent to the options.
func (f ISO8601Formatter) Pattern() string {
	o := f.options()
	has := func(x ISO8601Options) bool { return o&x != 0 }
	dash := ""
	if has(WithDashSeparatorInDate) {
		dash = "-"
	}

	var date []string
	switch {
	case has(WithWeekOfYear):
		if has(WithYear) {
			date = append(date, "YYYY")
		}
		if has(WithMonth) {
			date = append(date, "MM")
		}
		date = append(date, "'W'ww")
		if has(WithDay) {
			date = append(date, "ee")
		}
	case has(WithYear) && has(WithDay) && !has(WithMonth):
		date = append(date, "yyyy", "DDD")
	default:
		if has(WithYear) {
			date = append(date, "yyyy")
		}
		if has(WithMonth) {
			date = append(date, "MM")
		}
		if has(WithDay) {
			date = append(date, "dd")
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(date, dash))
	if has(WithTime) {
		if b.Len() > 0 {
			if has(WithSpaceBetweenDateAndTime) {
				b.WriteString(" ")
			} else {
				b.WriteString("'T'")
			}
		}
		if has(WithColonSeparatorInTime) {
			b.WriteString("HH:mm:ss")
		} else {
			b.WriteString("HHmmss")
		}
		if has(WithFractionalSeconds) {
			b.WriteString(".SSS")
		}
	}
	if has(WithTimeZone) {
		if has(WithColonSeparatorInTimeZone) {
			b.WriteString("XXXXX")
		} else {
			b.WriteString("XXXX")
		}
	}
	return b.String()
}

func (f ISO8601Formatter) formatter() *DateFormatter {
	cal := calendar.New(calendar.Gregorian, f.Zone, calendar.WithWeekRule(calendar.ISOWeekRule))
	return &DateFormatter{Calendar: cal, Pattern: f.Pattern()}
}

func (f ISO8601Formatter) Format(t calendar.Instant) string {
	return f.formatter().Format(t)
}

// Parse reads text in the shape Format writes.
func (f ISO8601Formatter) Parse(s string) (calendar.Instant, error) {
	return f.formatter().Parse(s)
}

// ISO8601 formats t as RFC 3339 in UTC.
func ISO8601(t calendar.Instant) string {
	return ISO8601Formatter{}.Format(t)
}
