package calendar

// copticEpoch is 1 Thout 1 AM (29 August 284 Julian) as a day number.
const copticEpoch = -615558

// coptic has twelve 30-day months followed by the epagomenal month of five
// days, six in years where year mod 4 == 3.
type coptic struct{}

func isCopticLeap(year int) bool {
	return floorMod(int64(year), 4) == 3
}

func (coptic) ID() SystemID              { return CopticID }
func (coptic) MonthsInYear(int) int      { return 13 }
func (coptic) DefaultWeekRule() WeekRule { return USWeekRule }

func (coptic) DaysInMonth(year, month int) int {
	switch {
	case month >= 1 && month <= 12:
		return 30
	case month == 13 && isCopticLeap(year):
		return 6
	case month == 13:
		return 5
	}
	return 0
}

func (coptic) DaysInYear(year int) int {
	if isCopticLeap(year) {
		return 366
	}
	return 365
}

func (coptic) DayNumber(year, month, day int) int64 {
	y := int64(year)
	return copticEpoch - 1 + 365*(y-1) + floorDiv(y, 4) + 30*int64(month-1) + int64(day)
}

func (c coptic) Date(day int64) (int, int, int) {
	y := int(floorDiv(4*(day-copticEpoch)+1463, 1461))
	m := int(floorDiv(day-c.DayNumber(y, 1, 1), 30)) + 1
	d := int(day-c.DayNumber(y, m, 1)) + 1
	return y, m, d
}

func (coptic) EraYear(year int) (int, int)         { return eraYearSplit(year) }
func (coptic) ExtendedYear(era, yearOfEra int) int { return extendedYear(era, yearOfEra) }
