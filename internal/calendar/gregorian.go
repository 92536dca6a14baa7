package calendar

type gregorian struct{}

// gregorianMonthDays is indexed by month; February is adjusted for leap years.
var gregorianMonthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isGregorianLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func (gregorian) ID() SystemID              { return GregorianID }
func (gregorian) MonthsInYear(int) int      { return 12 }
func (gregorian) DefaultWeekRule() WeekRule { return USWeekRule }

func (gregorian) DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && isGregorianLeap(year) {
		return 29
	}
	return gregorianMonthDays[month]
}

func (gregorian) DaysInYear(year int) int {
	if isGregorianLeap(year) {
		return 366
	}
	return 365
}

// DayNumber uses the era-of-400-years decomposition with March as the first
// month, so February's length only ever affects the end of a cycle year.
func (gregorian) DayNumber(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64(month+9) % 12
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func (gregorian) Date(day int64) (int, int, int) {
	z := day + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func (gregorian) EraYear(year int) (int, int)         { return eraYearSplit(year) }
func (gregorian) ExtendedYear(era, yearOfEra int) int { return extendedYear(era, yearOfEra) }
