// Package calendar converts between absolute instants and civil calendar
// fields for a calendar system in a time zone.
//
// A Calendar is immutable; the With* methods return modified copies.
// Resolution (fields → instant) is lenient by default: out-of-range months
// and days carry into the next larger field. A strict calendar rejects them,
// which is what parsing uses.
package calendar

// RepeatedTimePolicy decides which instant a local time maps to when it
// occurs twice, as in the hour after a daylight-saving fall-back.
type RepeatedTimePolicy int

const (
	// RepeatedTimeStrict reports ErrAmbiguousFields.
	RepeatedTimeStrict RepeatedTimePolicy = iota
	RepeatedTimeEarlier
	RepeatedTimeLater
)

// Calendar binds a calendar system to a zone and week rule.
type Calendar struct {
	system   System
	zone     Zone
	week     WeekRule
	strict   bool
	repeated RepeatedTimePolicy
}

// Option configures a Calendar.
type Option func(*Calendar)

func WithWeekRule(r WeekRule) Option {
	return func(c *Calendar) {
		if r.valid() {
			c.week = r
		}
	}
}

func WithStrict(strict bool) Option {
	return func(c *Calendar) { c.strict = strict }
}

func WithRepeatedTime(p RepeatedTimePolicy) Option {
	return func(c *Calendar) { c.repeated = p }
}

// New returns a calendar for system in zone. A nil system means Gregorian
// and a nil zone means UTC.
func New(system System, zone Zone, opts ...Option) *Calendar {
	if system == nil {
		system = Gregorian
	}
	if zone == nil {
		zone = UTC
	}
	c := &Calendar{system: system, zone: zone, week: system.DefaultWeekRule()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calendar) System() System     { return c.system }
func (c *Calendar) Zone() Zone         { return c.zone }
func (c *Calendar) WeekRule() WeekRule { return c.week }
func (c *Calendar) Strict() bool       { return c.strict }

// With returns a copy of c with opts applied.
func (c *Calendar) With(opts ...Option) *Calendar {
	cp := *c
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// WithZone returns a copy of c in another zone.
func (c *Calendar) WithZone(z Zone) *Calendar {
	if z == nil {
		z = UTC
	}
	cp := *c
	cp.zone = z
	return &cp
}

func (c *Calendar) MonthsInYear(year int) int       { return c.system.MonthsInYear(year) }
func (c *Calendar) DaysInMonth(year, month int) int { return c.system.DaysInMonth(year, month) }
func (c *Calendar) DaysInYear(year int) int         { return c.system.DaysInYear(year) }

// Add moves t by n units of field. Year and month steps keep the day of
// month, clamped to the target month's length; day and week steps keep the
// local clock time; hour and smaller steps are exact elapsed time.
func (c *Calendar) Add(t Instant, field Field, n int) (Instant, error) {
	switch field {
	case Hour:
		return t.addSeconds(int64(n) * 3600), nil
	case Minute:
		return t.addSeconds(int64(n) * 60), nil
	case Second:
		return t.addSeconds(int64(n)), nil
	case Nanosecond:
		return Unix(t.sec, int64(t.nsec)+int64(n)), nil
	}

	f := c.Extract(t, NewFieldSet(Year, Era, Month, Day, Hour, Minute, Second, Nanosecond))
	year := c.system.ExtendedYear(f.Value(Era), f.Value(Year))
	month, day := f.Value(Month), f.Value(Day)

	switch field {
	case Year, Month:
		if field == Year {
			year += n
		} else {
			year, month = c.normalizeMonth(year, month+n)
		}
		if dim := c.system.DaysInMonth(year, month); day > dim {
			day = dim
		}
	case Day, Weekday, DayOfYear:
		day += n
	case WeekOfYear, WeekOfMonth:
		day += 7 * n
	default:
		return Instant{}, outOfRange(field, n)
	}

	out := DateFields(year, month, day).
		Set(Hour, f.Value(Hour)).Set(Minute, f.Value(Minute)).
		Set(Second, f.Value(Second)).Set(Nanosecond, f.Value(Nanosecond))
	lenient := c.With(WithStrict(false))
	if lenient.repeated == RepeatedTimeStrict {
		lenient.repeated = RepeatedTimeEarlier
	}
	return lenient.Resolve(out)
}

func (c *Calendar) normalizeMonth(year, month int) (int, int) {
	n := int64(c.system.MonthsInYear(year))
	m := int64(month - 1)
	return year + int(floorDiv(m, n)), int(floorMod(m, n)) + 1
}
