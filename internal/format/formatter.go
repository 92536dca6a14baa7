// Package format renders instants as text and parses text back into
// instants, using UTS #35 date patterns and the canned styles of a locale.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"civcal/internal/calendar"
	"civcal/internal/locale"
	"civcal/internal/tz"
)

// Style is a canned date or time length.
type Style int

const (
	StyleNone Style = iota
	StyleShort
	StyleMedium
	StyleLong
	StyleFull
)

func (s Style) key() locale.Style {
	switch s {
	case StyleShort:
		return locale.Short
	case StyleMedium:
		return locale.Medium
	case StyleLong:
		return locale.Long
	case StyleFull:
		return locale.Full
	}
	return ""
}

// DateFormatter converts between instants and strings. A non-empty Pattern
// wins over DateStyle and TimeStyle. The zero value formats in Gregorian
// UTC with the root locale.
type DateFormatter struct {
	Calendar  *calendar.Calendar
	Locale    locale.Source
	DateStyle Style
	TimeStyle Style
	Pattern   string

	// Zones resolves zone identifiers and abbreviations met while parsing.
	Zones *tz.Database
	// TwoDigitStartYear is the first year a two-digit "yy" field can
	// denote when parsing. Zero means 1950.
	TwoDigitStartYear int
}

func (f *DateFormatter) calendar() *calendar.Calendar {
	if f.Calendar == nil {
		return calendar.New(nil, nil)
	}
	return f.Calendar
}

func (f *DateFormatter) locale() *locale.Locale {
	if f.Locale == nil {
		return locale.Default().Locale("")
	}
	return f.Locale.Current()
}

func (f *DateFormatter) zones() *tz.Database {
	if f.Zones == nil {
		return tz.Default()
	}
	return f.Zones
}

// EffectivePattern is the pattern Format and Parse use after styles are
// expanded against the locale.
func (f *DateFormatter) EffectivePattern() string {
	return f.effectivePattern(f.calendar(), f.locale())
}

func (f *DateFormatter) effectivePattern(cal *calendar.Calendar, loc *locale.Locale) string {
	if f.Pattern != "" {
		return f.Pattern
	}
	return stylePattern(loc, cal.System().ID(), f.DateStyle.key(), f.TimeStyle.key(), f.DateStyle.key())
}

// stylePattern joins a date template and a time template with the locale's
// glue for glueStyle. Either key may be empty.
func stylePattern(loc *locale.Locale, sys calendar.SystemID, date, time, glue locale.Style) string {
	var d, t string
	if date != "" {
		d = loc.DatePattern(sys, date)
	}
	if time != "" {
		t = loc.TimePattern(sys, time)
	}
	switch {
	case d == "":
		return t
	case t == "":
		return d
	}
	return strings.NewReplacer("{0}", t, "{1}", d).Replace(loc.DateTimePattern(sys, glue))
}

// Format renders t. Pattern letters this package does not know are
// copied through unchanged.
func (f *DateFormatter) Format(t calendar.Instant) string {
	cal, loc := f.calendar(), f.locale()
	st := newState(cal, loc, t)
	var b strings.Builder
	for _, tok := range tokenize(f.effectivePattern(cal, loc)) {
		if !tok.isField() {
			b.WriteString(tok.literal)
			continue
		}
		st.write(&b, tok)
	}
	return b.String()
}

// state is everything one Format call reads.
type state struct {
	cal    *calendar.Calendar
	loc    *locale.Locale
	sys    calendar.SystemID
	f      calendar.Fields
	offset calendar.ZoneOffset
	zoneID string
	digits [10]rune
}

func newState(cal *calendar.Calendar, loc *locale.Locale, t calendar.Instant) *state {
	return &state{
		cal:    cal,
		loc:    loc,
		sys:    cal.System().ID(),
		f:      cal.ExtractAll(t),
		offset: cal.Zone().Offset(t),
		zoneID: cal.Zone().ID(),
		digits: loc.Digits(),
	}
}

// localize swaps ASCII digits for the locale's digits.
func localize(s string, digits [10]rune) string {
	if digits[0] == '0' {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(digits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pad(v, width int) string {
	s := strconv.Itoa(abs(v))
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	if v < 0 {
		return "-" + s
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func width(count int) locale.Width {
	switch {
	case count == 4:
		return locale.Wide
	case count == 5:
		return locale.Narrow
	}
	return locale.Abbreviated
}

func (s *state) num(v, count int) string {
	return localize(pad(v, count), s.digits)
}

func (s *state) write(b *strings.Builder, tok token) {
	v := s.f.Value
	n := tok.count
	switch tok.letter {
	case 'G':
		b.WriteString(s.loc.EraName(s.sys, width(n), v(calendar.Era)))
	case 'y':
		y := v(calendar.Year)
		if n == 2 {
			y %= 100
		}
		b.WriteString(s.num(y, n))
	case 'Y':
		y := v(calendar.YearForWeekOfYear)
		if n == 2 {
			y = floorMod(y, 100)
		}
		b.WriteString(s.num(y, n))
	case 'u':
		b.WriteString(s.num(s.extendedYear(), n))
	case 'Q', 'q':
		if n <= 2 {
			b.WriteString(s.num(v(calendar.Quarter), n))
			return
		}
		b.WriteString(s.loc.QuarterName(s.sys, width(n), v(calendar.Quarter)))
	case 'M', 'L':
		if n <= 2 {
			b.WriteString(s.num(v(calendar.Month), n))
			return
		}
		b.WriteString(s.loc.MonthName(s.sys, width(n), v(calendar.Month)))
	case 'w':
		b.WriteString(s.num(v(calendar.WeekOfYear), n))
	case 'W':
		b.WriteString(s.num(v(calendar.WeekOfMonth), n))
	case 'd':
		b.WriteString(s.num(v(calendar.Day), n))
	case 'D':
		b.WriteString(s.num(v(calendar.DayOfYear), n))
	case 'F':
		b.WriteString(s.num(v(calendar.WeekdayOrdinal), n))
	case 'E':
		b.WriteString(s.loc.WeekdayName(s.sys, width(n), v(calendar.Weekday)))
	case 'e', 'c':
		if n <= 2 {
			b.WriteString(s.num(localWeekday(v(calendar.Weekday), s.cal.WeekRule()), n))
			return
		}
		b.WriteString(s.loc.WeekdayName(s.sys, width(n), v(calendar.Weekday)))
	case 'a':
		am, pm := s.loc.DayPeriods(s.sys)
		if v(calendar.Hour) < 12 {
			b.WriteString(am)
		} else {
			b.WriteString(pm)
		}
	case 'h':
		h := v(calendar.Hour) % 12
		if h == 0 {
			h = 12
		}
		b.WriteString(s.num(h, n))
	case 'H':
		b.WriteString(s.num(v(calendar.Hour), n))
	case 'K':
		b.WriteString(s.num(v(calendar.Hour)%12, n))
	case 'k':
		h := v(calendar.Hour)
		if h == 0 {
			h = 24
		}
		b.WriteString(s.num(h, n))
	case 'm':
		b.WriteString(s.num(v(calendar.Minute), n))
	case 's':
		b.WriteString(s.num(v(calendar.Second), n))
	case 'S':
		b.WriteString(localize(fraction(v(calendar.Nanosecond), n), s.digits))
	case 'z', 'Z', 'O', 'v', 'V', 'X', 'x':
		b.WriteString(s.zone(tok))
	default:
		b.WriteString(strings.Repeat(string(tok.letter), n))
	}
}

func (s *state) extendedYear() int {
	return s.cal.System().ExtendedYear(s.f.Value(calendar.Era), s.f.Value(calendar.Year))
}

// localWeekday numbers weekdays from the rule's first day: 1 is the first
// day of the week.
func localWeekday(weekday int, r calendar.WeekRule) int {
	return floorMod(weekday-r.FirstWeekday, 7) + 1
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// fraction truncates nanos to count digits.
func fraction(nanos, count int) string {
	s := fmt.Sprintf("%09d", nanos)
	if count <= 9 {
		return s[:count]
	}
	return s + strings.Repeat("0", count-9)
}
