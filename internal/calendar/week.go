package calendar

// Weekday numbers, Sunday first.
const (
	Sunday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekRule decides where weeks start and which partial week counts as
// week 1 of a year or month.
type WeekRule struct {
	FirstWeekday       int // 1=Sunday … 7=Saturday
	MinDaysInFirstWeek int // 1 … 7
}

var (
	// USWeekRule starts weeks on Sunday; the week containing January 1 is week 1.
	USWeekRule = WeekRule{FirstWeekday: Sunday, MinDaysInFirstWeek: 1}
	// ISOWeekRule is ISO 8601: Monday weeks, week 1 holds the first Thursday.
	ISOWeekRule = WeekRule{FirstWeekday: Monday, MinDaysInFirstWeek: 4}
)

func (r WeekRule) valid() bool {
	return r.FirstWeekday >= 1 && r.FirstWeekday <= 7 &&
		r.MinDaysInFirstWeek >= 1 && r.MinDaysInFirstWeek <= 7
}

// weekdayOf maps a day number to 1=Sunday … 7=Saturday. Day 0 was a Thursday.
func weekdayOf(day int64) int {
	return int(floorMod(day+4, 7)) + 1
}

// firstWeekStart returns the day number on which week 1 of the period
// beginning at periodStart starts. It may precede periodStart.
func (r WeekRule) firstWeekStart(periodStart int64) int64 {
	offset := floorMod(int64(weekdayOf(periodStart)-r.FirstWeekday), 7)
	start := periodStart - offset
	if 7-offset < int64(r.MinDaysInFirstWeek) {
		start += 7
	}
	return start
}
