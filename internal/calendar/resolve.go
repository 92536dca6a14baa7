package calendar

// Resolve returns the instant described by f, read as local time in the
// calendar's zone.
//
// The date is chosen by the first rule that applies:
//
//  1. year, month and day
//  2. weekday and weekdayOrdinal, within the month if given, else the year
//  3. weekOfYear (weekday defaults to the first day of the week)
//  4. weekOfMonth with month
//  5. dayOfYear, or day without month, counted from January 1
//  6. month alone (first of the month), or nothing (January 1)
//
// Year defaults to 1. Hour, minute, second and nanosecond default to 0 and
// are added as elapsed local time, so {year: 2024, hour: 10000} lands 10,000
// hours after the start of 2024.
func (c *Calendar) Resolve(f Fields) (Instant, error) {
	day, used, err := c.resolveDay(f)
	if err != nil {
		return Instant{}, err
	}
	if c.strict {
		if err := c.checkFields(f, used, day); err != nil {
			return Instant{}, err
		}
	}
	secs, nanos, err := c.resolveTime(f)
	if err != nil {
		return Instant{}, err
	}
	return c.fromLocal(day*secondsPerDay+secs, nanos)
}

func (c *Calendar) resolveYear(f Fields) int {
	year := 1
	if y, ok := f.Get(Year); ok {
		year = y
	}
	if era, ok := f.Get(Era); ok {
		year = c.system.ExtendedYear(era, year)
	}
	return year
}

// resolveDay returns the local day number and the fields that chose it.
func (c *Calendar) resolveDay(f Fields) (int64, FieldSet, error) {
	year := c.resolveYear(f)

	switch {
	case f.Has(Month) && f.Has(Day):
		day, err := c.dayFromDate(year, f.Value(Month), f.Value(Day))
		return day, NewFieldSet(Month, Day), err
	case f.Has(Weekday) && f.Has(WeekdayOrdinal):
		day, err := c.dayFromOrdinal(year, f)
		return day, NewFieldSet(Month, Weekday, WeekdayOrdinal), err
	case f.Has(WeekOfYear):
		if y, ok := f.Get(YearForWeekOfYear); ok {
			year = y
		}
		day, err := c.dayFromWeekOfYear(year, f)
		return day, NewFieldSet(Weekday, WeekOfYear, YearForWeekOfYear), err
	case f.Has(WeekOfMonth) && f.Has(Month):
		day, err := c.dayFromWeekOfMonth(year, f)
		return day, NewFieldSet(Month, Weekday, WeekOfMonth), err
	case f.Has(DayOfYear):
		day, err := c.dayFromDayOfYear(year, DayOfYear, f.Value(DayOfYear))
		return day, NewFieldSet(DayOfYear), err
	case f.Has(Day):
		day, err := c.dayFromDayOfYear(year, Day, f.Value(Day))
		return day, NewFieldSet(Day), err
	case f.Has(Month):
		day, err := c.dayFromDate(year, f.Value(Month), 1)
		return day, NewFieldSet(Month), err
	}
	return c.system.DayNumber(year, 1, 1), 0, nil
}

// dayFromDate applies the direct year/month/day formula. Lenient calendars
// carry month overflow into years and day overflow into later months.
func (c *Calendar) dayFromDate(year, month, day int) (int64, error) {
	if c.strict {
		if month < 1 || month > c.system.MonthsInYear(year) {
			return 0, outOfRange(Month, month)
		}
		if day < 1 || day > maxDaysInMonth(c.system, year) {
			return 0, outOfRange(Day, day)
		}
		if day > c.system.DaysInMonth(year, month) {
			return 0, unsatisfiable(Day, day)
		}
	}
	year, month = c.normalizeMonth(year, month)
	return c.system.DayNumber(year, month, 1) + int64(day-1), nil
}

func (c *Calendar) monthBounds(year, month int) (first, last int64, err error) {
	if c.strict && (month < 1 || month > c.system.MonthsInYear(year)) {
		return 0, 0, outOfRange(Month, month)
	}
	year, month = c.normalizeMonth(year, month)
	first = c.system.DayNumber(year, month, 1)
	return first, first + int64(c.system.DaysInMonth(year, month)) - 1, nil
}

func (c *Calendar) yearBounds(year int) (first, last int64) {
	first = c.system.DayNumber(year, 1, 1)
	return first, first + int64(c.system.DaysInYear(year)) - 1
}

func checkWeekdayRange(f Fields) (int, error) {
	wd := f.Value(Weekday)
	if wd < 1 || wd > 7 {
		return 0, outOfRange(Weekday, wd)
	}
	return wd, nil
}

// dayFromOrdinal finds the n-th given weekday of the bounding period,
// counting from its end when n is negative.
func (c *Calendar) dayFromOrdinal(year int, f Fields) (int64, error) {
	wd, err := checkWeekdayRange(f)
	if err != nil {
		return 0, err
	}

	first, last := c.yearBounds(year)
	if f.Has(Month) {
		if first, last, err = c.monthBounds(year, f.Value(Month)); err != nil {
			return 0, err
		}
	}

	n := f.Value(WeekdayOrdinal)
	if c.strict && f.Has(Month) && (n < -5 || n > 5) {
		return 0, outOfRange(WeekdayOrdinal, n)
	}
	var day int64
	switch {
	case n > 0:
		day = first + floorMod(int64(wd-weekdayOf(first)), 7) + 7*int64(n-1)
	case n < 0:
		day = last - floorMod(int64(weekdayOf(last)-wd), 7) - 7*int64(-n-1)
	default:
		return 0, unsatisfiable(WeekdayOrdinal, n)
	}
	if day < first || day > last {
		return 0, unsatisfiable(WeekdayOrdinal, n)
	}
	return day, nil
}

func (c *Calendar) dayInWeek(weekStart int64, f Fields) (int64, error) {
	wd := c.week.FirstWeekday
	if f.Has(Weekday) {
		var err error
		if wd, err = checkWeekdayRange(f); err != nil {
			return 0, err
		}
	}
	return weekStart + floorMod(int64(wd-c.week.FirstWeekday), 7), nil
}

func (c *Calendar) dayFromWeekOfYear(year int, f Fields) (int64, error) {
	w := f.Value(WeekOfYear)
	if w < 1 || w > 53 {
		return 0, outOfRange(WeekOfYear, w)
	}
	start := c.week.firstWeekStart(c.system.DayNumber(year, 1, 1)) + 7*int64(w-1)
	if c.strict {
		next := c.week.firstWeekStart(c.system.DayNumber(year+1, 1, 1))
		if start >= next {
			return 0, unsatisfiable(WeekOfYear, w)
		}
	}
	return c.dayInWeek(start, f)
}

func (c *Calendar) dayFromWeekOfMonth(year int, f Fields) (int64, error) {
	w := f.Value(WeekOfMonth)
	if w < 0 || w > 6 {
		return 0, outOfRange(WeekOfMonth, w)
	}
	first, last, err := c.monthBounds(year, f.Value(Month))
	if err != nil {
		return 0, err
	}
	day, err := c.dayInWeek(c.week.firstWeekStart(first)+7*int64(w-1), f)
	if err != nil {
		return 0, err
	}
	if c.strict && (day < first || day > last) {
		return 0, unsatisfiable(WeekOfMonth, w)
	}
	return day, nil
}

func (c *Calendar) dayFromDayOfYear(year int, field Field, n int) (int64, error) {
	if c.strict && (n < 1 || n > c.system.DaysInYear(year)) {
		return 0, outOfRange(field, n)
	}
	return c.system.DayNumber(year, 1, 1) + int64(n-1), nil
}

// checkedFields are the date fields a strict calendar verifies against
// the resolved day when they did not take part in choosing it.
var checkedFields = NewFieldSet(Weekday, WeekdayOrdinal, WeekOfYear,
	YearForWeekOfYear, WeekOfMonth, Quarter, DayOfYear)

// checkFields rejects fields outside their domain, and fields that
// contradict the date fixed by the others. Lenient calendars ignore them.
func (c *Calendar) checkFields(f Fields, used FieldSet, day int64) error {
	year, month, dom := c.system.Date(day)
	actual := c.dayFields(day, checkedFields)
	for _, field := range checkedFields.Fields() {
		v, ok := f.Get(field)
		if !ok || used.Has(field) {
			continue
		}
		if err := c.checkRange(field, v, year); err != nil {
			return err
		}
		want := actual.Value(field)
		if field == WeekdayOrdinal && v < 0 {
			// Counted from the end of the month.
			want = -((c.system.DaysInMonth(year, month)-dom)/7 + 1)
		}
		if v != want {
			return unsatisfiable(field, v)
		}
	}
	return nil
}

func (c *Calendar) checkRange(field Field, v, year int) error {
	lo, hi := 1, 0
	switch field {
	case Weekday:
		hi = 7
	case WeekdayOrdinal:
		lo, hi = -5, 5
		if v == 0 {
			return outOfRange(field, v)
		}
	case WeekOfYear:
		hi = 53
	case WeekOfMonth:
		lo, hi = 0, 6
	case Quarter:
		hi = 4
	case DayOfYear:
		hi = c.system.DaysInYear(year)
	default:
		return nil
	}
	if v < lo || v > hi {
		return outOfRange(field, v)
	}
	return nil
}

func (c *Calendar) resolveTime(f Fields) (int64, int64, error) {
	h, m, s, ns := f.Value(Hour), f.Value(Minute), f.Value(Second), f.Value(Nanosecond)
	if c.strict {
		switch {
		case h < 0 || h > 23:
			return 0, 0, outOfRange(Hour, h)
		case m < 0 || m > 59:
			return 0, 0, outOfRange(Minute, m)
		case s < 0 || s > 59:
			return 0, 0, outOfRange(Second, s)
		case ns < 0 || ns >= nanosPerSec:
			return 0, 0, outOfRange(Nanosecond, ns)
		}
	}
	secs := int64(h)*3600 + int64(m)*60 + int64(s)
	return secs + floorDiv(int64(ns), nanosPerSec), floorMod(int64(ns), nanosPerSec), nil
}

// fromLocal maps local civil seconds to an instant. Zone offsets a day
// either side bracket any single transition, so at most two candidates can
// match: two means a repeated local time, none means a skipped one.
func (c *Calendar) fromLocal(local, nanos int64) (Instant, error) {
	before := int64(c.zone.Offset(Instant{sec: local - secondsPerDay}).Seconds)
	after := int64(c.zone.Offset(Instant{sec: local + secondsPerDay}).Seconds)

	var found []int64
	for _, off := range []int64{before, after} {
		sec := local - off
		if int64(c.zone.Offset(Instant{sec: sec}).Seconds) != off {
			continue
		}
		if len(found) == 0 || found[0] != sec {
			found = append(found, sec)
		}
	}

	switch len(found) {
	case 1:
		return Instant{sec: found[0], nsec: int32(nanos)}, nil
	case 2:
		earlier, later := found[0], found[1]
		if later < earlier {
			earlier, later = later, earlier
		}
		switch c.repeated {
		case RepeatedTimeEarlier:
			return Instant{sec: earlier, nsec: int32(nanos)}, nil
		case RepeatedTimeLater:
			return Instant{sec: later, nsec: int32(nanos)}, nil
		}
		return Instant{}, ErrAmbiguousFields
	}

	// Skipped local time: reading it with the pre-transition offset moves
	// it forward by the length of the gap.
	if c.strict {
		return Instant{}, ErrUnsatisfiableFields
	}
	return Instant{sec: local - before, nsec: int32(nanos)}, nil
}
