package calendar

import (
	"fmt"
	"strings"
)

// SystemID identifies a calendar system.
type SystemID string

const (
	GregorianID SystemID = "gregorian"
	CopticID    SystemID = "coptic"
)

// System is the arithmetic of one calendar system. Day numbers count days
// since 1970-01-01 (proleptic Gregorian), so every system shares the same
// linear day axis and weekday origin.
type System interface {
	ID() SystemID
	MonthsInYear(year int) int
	DaysInMonth(year, month int) int
	DaysInYear(year int) int
	// DayNumber expects month in [1, MonthsInYear]; day may be any value
	// and is counted linearly from the first of the month.
	DayNumber(year, month, day int) int64
	Date(day int64) (year, month, dom int)
	// EraYear splits an extended year (which may be zero or negative)
	// into era and year-of-era.
	EraYear(year int) (era, yearOfEra int)
	ExtendedYear(era, yearOfEra int) int
	DefaultWeekRule() WeekRule
}

var (
	Gregorian System = gregorian{}
	Coptic    System = coptic{}
)

// LookupSystem returns the system registered under id (case-insensitive).
func LookupSystem(id string) (System, error) {
	switch SystemID(strings.ToLower(strings.TrimSpace(id))) {
	case GregorianID:
		return Gregorian, nil
	case CopticID:
		return Coptic, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCalendarSystem, id)
}

// eraYearSplit is the era rule both systems share: era 1 counts up from
// year 1, era 0 counts backwards from the year before it.
func eraYearSplit(year int) (int, int) {
	if year >= 1 {
		return 1, year
	}
	return 0, 1 - year
}

func extendedYear(era, yearOfEra int) int {
	if era == 0 {
		return 1 - yearOfEra
	}
	return yearOfEra
}

// maxDaysInMonth is the longest month of the given year.
func maxDaysInMonth(s System, year int) int {
	longest := 0
	for m := 1; m <= s.MonthsInYear(year); m++ {
		if d := s.DaysInMonth(year, m); d > longest {
			longest = d
		}
	}
	return longest
}
