package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"civcal/internal/calendar"
	"civcal/internal/locale"
)

// ParseError reports where parsing stopped. Err is one of the calendar
// sentinels, usually calendar.ErrPatternMismatch.
type ParseError struct {
	Input  string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("format: parsing %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads s strictly against the formatter's pattern: literals must
// match, numbers must be in their field's domain and the resulting fields
// must name exactly one instant.
func (f *DateFormatter) Parse(s string) (calendar.Instant, error) {
	cal, loc := f.calendar(), f.locale()
	p := &parser{
		f:     f,
		input: s,
		loc:   loc,
		sys:   cal.System().ID(),
		week:  cal.WeekRule(),
	}
	toks := tokenize(f.effectivePattern(cal, loc))
	// Numbers in an abutting run ("yyyyMMdd") read exactly their width.
	abuts := func(j int) bool {
		return j >= 0 && j < len(toks) && toks[j].isField() && toks[j].numeric()
	}
	for i, tok := range toks {
		var err error
		if tok.isField() {
			adjacent := tok.numeric() && (abuts(i-1) || abuts(i+1))
			err = p.field(tok, adjacent)
		} else {
			err = p.literal(tok.literal)
		}
		if err != nil {
			return calendar.Instant{}, p.fail(err)
		}
	}
	if p.pos < len(s) {
		return calendar.Instant{}, p.fail(calendar.ErrPatternMismatch)
	}

	fields, err := p.finish()
	if err != nil {
		return calendar.Instant{}, &ParseError{Input: s, Offset: len(s), Err: err}
	}
	cal = cal.With(calendar.WithStrict(true))
	if p.zone != nil {
		cal = cal.WithZone(p.zone)
	}
	if p.dst != nil {
		policy := calendar.RepeatedTimeLater
		if *p.dst {
			policy = calendar.RepeatedTimeEarlier
		}
		cal = cal.With(calendar.WithRepeatedTime(policy))
	}
	t, err := cal.Resolve(fields)
	if err != nil {
		return calendar.Instant{}, &ParseError{Input: s, Offset: len(s), Err: err}
	}
	return t, nil
}

type parser struct {
	f     *DateFormatter
	input string
	pos   int
	loc   *locale.Locale
	sys   calendar.SystemID
	week  calendar.WeekRule

	fields   calendar.Fields
	hour     int
	hourTok  byte
	pm       *bool
	twoDigit map[calendar.Field]bool
	zone     calendar.Zone
	dst      *bool
}

func (p *parser) fail(err error) error {
	return &ParseError{Input: p.input, Offset: p.pos, Err: err}
}

// isSpace includes the no-break spaces some locales put before day periods.
func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// literal matches text exactly, except that a run of white space in the
// pattern matches any non-empty run of white space in the input.
func (p *parser) literal(text string) error {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isSpace(r) {
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !isSpace(r) {
					break
				}
				i += size
			}
			n := 0
			for p.pos < len(p.input) {
				ir, isize := utf8.DecodeRuneInString(p.input[p.pos:])
				if !isSpace(ir) {
					break
				}
				p.pos += isize
				n++
			}
			if n == 0 {
				return calendar.ErrPatternMismatch
			}
			continue
		}
		if !strings.HasPrefix(p.input[p.pos:], text[i:i+size]) {
			return calendar.ErrPatternMismatch
		}
		p.pos += size
		i += size
	}
	return nil
}

// number reads digits (ASCII or the locale's). A fixed width reads exactly
// that many; otherwise the run is greedy. signed allows a leading '-'.
func (p *parser) number(fixed int, signed bool) (value, ndigits int, err error) {
	digits := p.loc.Digits()
	neg := false
	pos := p.pos
	if signed && strings.HasPrefix(p.input[pos:], "-") {
		neg = true
		pos++
	}
	for pos < len(p.input) && (fixed == 0 || ndigits < fixed) && ndigits < 10 {
		r, size := utf8.DecodeRuneInString(p.input[pos:])
		d := digitValue(r, digits)
		if d < 0 {
			break
		}
		value = value*10 + d
		ndigits++
		pos += size
	}
	if ndigits == 0 || (fixed > 0 && ndigits != fixed) {
		return 0, 0, calendar.ErrPatternMismatch
	}
	p.pos = pos
	if neg {
		value = -value
	}
	return value, ndigits, nil
}

var fold = cases.Fold()

// matchFold reports whether in starts with name, ignoring case, and how
// many bytes of in the match covers.
func matchFold(in, name string) (int, bool) {
	n := utf8.RuneCountInString(name)
	w := 0
	for i := 0; i < n; i++ {
		if w >= len(in) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(in[w:])
		w += size
	}
	if fold.String(in[:w]) != fold.String(name) {
		return 0, false
	}
	return w, true
}

// choose matches the longest of names at the cursor and returns its index.
func (p *parser) choose(lists ...[]string) (int, error) {
	best, bestW := -1, 0
	for _, names := range lists {
		for i, name := range names {
			if name == "" {
				continue
			}
			if w, ok := matchFold(p.input[p.pos:], name); ok && w > bestW {
				best, bestW = i, w
			}
		}
	}
	if best < 0 {
		return 0, calendar.ErrPatternMismatch
	}
	p.pos += bestW
	return best, nil
}

func (p *parser) set(f calendar.Field, v int) {
	p.fields = p.fields.Set(f, v)
}

func (p *parser) names(get func(calendar.SystemID, locale.Width) []string) [][]string {
	return [][]string{get(p.sys, locale.Wide), get(p.sys, locale.Abbreviated), get(p.sys, locale.Narrow)}
}

func (p *parser) field(tok token, adjacent bool) error {
	fixed := 0
	if adjacent {
		fixed = tok.count
	}
	numeric := func(f calendar.Field) error {
		v, _, err := p.number(fixed, false)
		if err != nil {
			return err
		}
		p.set(f, v)
		return nil
	}
	switch tok.letter {
	case 'G':
		i, err := p.choose(p.names(p.loc.EraNames)...)
		if err != nil {
			return err
		}
		p.set(calendar.Era, i)
	case 'y', 'Y':
		f := calendar.Year
		if tok.letter == 'Y' {
			f = calendar.YearForWeekOfYear
		}
		if tok.count == 2 {
			fixed = 2
		}
		v, n, err := p.number(fixed, false)
		if err != nil {
			return err
		}
		if tok.count == 2 && n == 2 {
			if p.twoDigit == nil {
				p.twoDigit = make(map[calendar.Field]bool)
			}
			p.twoDigit[f] = true
		}
		p.set(f, v)
	case 'u':
		v, _, err := p.number(fixed, true)
		if err != nil {
			return err
		}
		era, year := 1, v
		if v < 1 {
			era, year = 0, 1-v
		}
		p.set(calendar.Era, era)
		p.set(calendar.Year, year)
	case 'Q', 'q':
		if tok.count <= 2 {
			return numeric(calendar.Quarter)
		}
		i, err := p.choose(p.names(p.loc.QuarterNames)...)
		if err != nil {
			return err
		}
		p.set(calendar.Quarter, i+1)
	case 'M', 'L':
		if tok.count <= 2 {
			return numeric(calendar.Month)
		}
		i, err := p.choose(p.names(p.loc.MonthNames)...)
		if err != nil {
			return err
		}
		p.set(calendar.Month, i+1)
	case 'E':
		i, err := p.choose(p.names(p.loc.WeekdayNames)...)
		if err != nil {
			return err
		}
		p.set(calendar.Weekday, i+1)
	case 'e', 'c':
		if tok.count <= 2 {
			v, _, err := p.number(fixed, false)
			if err != nil {
				return err
			}
			if v < 1 || v > 7 {
				return &calendar.FieldError{Field: calendar.Weekday, Value: v, Err: calendar.ErrFieldOutOfRange}
			}
			p.set(calendar.Weekday, floorMod(v-1+p.week.FirstWeekday-1, 7)+1)
			return nil
		}
		i, err := p.choose(p.names(p.loc.WeekdayNames)...)
		if err != nil {
			return err
		}
		p.set(calendar.Weekday, i+1)
	case 'a':
		am, pm := p.loc.DayPeriods(p.sys)
		i, err := p.choose([]string{am, pm})
		if err != nil {
			return err
		}
		isPM := i == 1
		p.pm = &isPM
	case 'h', 'H', 'K', 'k':
		v, _, err := p.number(fixed, false)
		if err != nil {
			return err
		}
		p.hour, p.hourTok = v, tok.letter
	case 'w':
		return numeric(calendar.WeekOfYear)
	case 'W':
		return numeric(calendar.WeekOfMonth)
	case 'd':
		return numeric(calendar.Day)
	case 'D':
		return numeric(calendar.DayOfYear)
	case 'F':
		return numeric(calendar.WeekdayOrdinal)
	case 'm':
		return numeric(calendar.Minute)
	case 's':
		return numeric(calendar.Second)
	case 'S':
		v, n, err := p.number(fixed, false)
		if err != nil {
			return err
		}
		for ; n < 9; n++ {
			v *= 10
		}
		for ; n > 9; n-- {
			v /= 10
		}
		p.set(calendar.Nanosecond, v)
	case 'z', 'Z', 'O', 'v', 'V', 'X', 'x':
		m, err := parseZone(p.input[p.pos:], p.loc, p.f.zones())
		if err != nil {
			return err
		}
		p.pos += m.width
		p.zone, p.dst = m.zone, m.dst
	default:
		return p.literal(strings.Repeat(string(tok.letter), tok.count))
	}
	return nil
}

// finish turns the collected values into calendar fields: hours are
// combined with the day period and two-digit years are placed in the
// century that starts at TwoDigitStartYear.
func (p *parser) finish() (calendar.Fields, error) {
	f := p.fields
	for field := range p.twoDigit {
		start := p.f.TwoDigitStartYear
		if start == 0 {
			start = 1950
		}
		y := f.Value(field)
		century := start - floorMod(start, 100)
		y += century
		if y < start {
			y += 100
		}
		f = f.Set(field, y)
	}
	if p.hourTok == 0 {
		return f, nil
	}
	h := p.hour
	outOfRange := &calendar.FieldError{Field: calendar.Hour, Value: h, Err: calendar.ErrFieldOutOfRange}
	switch p.hourTok {
	case 'h':
		if h < 1 || h > 12 {
			return f, outOfRange
		}
		if p.pm != nil {
			h %= 12
			if *p.pm {
				h += 12
			}
		}
	case 'K':
		if h > 11 {
			return f, outOfRange
		}
		if p.pm != nil && *p.pm {
			h += 12
		}
	case 'k':
		if h < 1 || h > 24 {
			return f, outOfRange
		}
		h %= 24
	case 'H':
		if h > 23 {
			return f, outOfRange
		}
	}
	return f.Set(calendar.Hour, h), nil
}
