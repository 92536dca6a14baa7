package calendar

// Extract decomposes t into the requested fields, in local time of the
// calendar's zone. Year is the year of era; YearForWeekOfYear is an
// extended year, matching what Resolve expects back.
func (c *Calendar) Extract(t Instant, want FieldSet) Fields {
	off := c.zone.Offset(t)
	local := t.sec + int64(off.Seconds)
	sod := floorMod(local, secondsPerDay)

	f := c.dayFields(floorDiv(local, secondsPerDay), want)
	put := func(field Field, v int) {
		if want.Has(field) {
			f = f.Set(field, v)
		}
	}
	put(Hour, int(sod/3600))
	put(Minute, int(sod%3600/60))
	put(Second, int(sod%60))
	put(Nanosecond, int(t.nsec))
	return f
}

// dayFields holds the requested date fields of a local day number.
func (c *Calendar) dayFields(day int64, want FieldSet) Fields {
	year, month, dom := c.system.Date(day)
	era, yoe := c.system.EraYear(year)

	var f Fields
	put := func(field Field, v func() int) {
		if want.Has(field) {
			f = f.Set(field, v())
		}
	}
	put(Era, func() int { return era })
	put(Year, func() int { return yoe })
	put(Month, func() int { return month })
	put(Day, func() int { return dom })
	put(Weekday, func() int { return weekdayOf(day) })
	put(WeekdayOrdinal, func() int { return (dom-1)/7 + 1 })
	put(WeekOfYear, func() int { w, _ := c.weekOfYear(year, day); return w })
	put(YearForWeekOfYear, func() int { _, y := c.weekOfYear(year, day); return y })
	put(WeekOfMonth, func() int { return c.weekOfMonth(year, month, day) })
	put(Quarter, func() int { return min((month-1)/3+1, 4) })
	put(DayOfYear, func() int { return int(day-c.system.DayNumber(year, 1, 1)) + 1 })
	return f
}

// ExtractAll is Extract with every field requested.
func (c *Calendar) ExtractAll(t Instant) Fields {
	return c.Extract(t, AllFields)
}

// Date returns the extended year, month and day of t.
func (c *Calendar) Date(t Instant) (year, month, day int) {
	local := t.sec + int64(c.zone.Offset(t).Seconds)
	return c.system.Date(floorDiv(local, secondsPerDay))
}

// Weekday returns 1=Sunday … 7=Saturday for t.
func (c *Calendar) Weekday(t Instant) int {
	local := t.sec + int64(c.zone.Offset(t).Seconds)
	return weekdayOf(floorDiv(local, secondsPerDay))
}

// StartOfDay returns the first instant of t's local day.
func (c *Calendar) StartOfDay(t Instant) (Instant, error) {
	y, m, d := c.Date(t)
	return c.With(WithStrict(false), WithRepeatedTime(RepeatedTimeEarlier)).Resolve(DateFields(y, m, d))
}

// weekOfYear numbers the week holding day per the calendar's week rule.
// Days before week 1 belong to the last week of the previous year, and days
// from the next year's week 1 on belong to the next year.
func (c *Calendar) weekOfYear(year int, day int64) (week, weekYear int) {
	start := c.week.firstWeekStart(c.system.DayNumber(year, 1, 1))
	if day < start {
		prev := c.week.firstWeekStart(c.system.DayNumber(year-1, 1, 1))
		return int((day-prev)/7) + 1, year - 1
	}
	if next := c.week.firstWeekStart(c.system.DayNumber(year+1, 1, 1)); day >= next {
		return 1, year + 1
	}
	return int((day-start)/7) + 1, year
}

// weekOfMonth is 0 for days in a leading partial week too short to count.
func (c *Calendar) weekOfMonth(year, month int, day int64) int {
	start := c.week.firstWeekStart(c.system.DayNumber(year, month, 1))
	if day < start {
		return 0
	}
	return int((day-start)/7) + 1
}
