package recur_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civcal/internal/calendar"
	"civcal/internal/model"
	"civcal/internal/recur"
	"civcal/internal/tz"
)

func pacific(t *testing.T) *calendar.Calendar {
	t.Helper()
	z, err := tz.Default().Resolve("America/Los_Angeles")
	require.NoError(t, err)
	return calendar.New(calendar.Gregorian, z)
}

func resolve(t *testing.T, cal *calendar.Calendar, f calendar.Fields) calendar.Instant {
	t.Helper()
	at, err := cal.Resolve(f)
	require.NoError(t, err)
	return at
}

func TestExpand_NthWeekdayMatchesResolve(t *testing.T) {
	cal := pacific(t)
	tests := []struct {
		name    string
		rule    string
		start   calendar.Fields
		month   int
		weekday int
		ordinal int
		count   int
	}{
		{
			name:    "national donut day",
			rule:    "FREQ=YEARLY;BYMONTH=6;BYDAY=+1FR;COUNT=5",
			start:   calendar.DateFields(2024, 1, 1).Set(calendar.Hour, 9),
			month:   6,
			weekday: calendar.Friday,
			ordinal: 1,
			count:   5,
		},
		{
			name:    "third wednesday of july",
			rule:    "RRULE:FREQ=MONTHLY;BYMONTH=7;BYDAY=3WE;COUNT=3",
			start:   calendar.DateFields(2023, 1, 1).Set(calendar.Hour, 15).Set(calendar.Minute, 30),
			month:   7,
			weekday: calendar.Wednesday,
			ordinal: 3,
			count:   3,
		},
		{
			name:    "last sunday of october",
			rule:    "FREQ=YEARLY;BYMONTH=10;BYDAY=-1SU;COUNT=4",
			start:   calendar.DateFields(2024, 1, 1),
			month:   10,
			weekday: calendar.Sunday,
			ordinal: -1,
			count:   4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := recur.Expand(tt.rule, cal, resolve(t, cal, tt.start), recur.Config{})
			require.NoError(t, err)
			require.Len(t, res.Occurrences, tt.count)
			assert.False(t, res.Truncated)

			for i, occ := range res.Occurrences {
				want := resolve(t, cal, calendar.Fields{}.
					Set(calendar.Year, tt.start.Value(calendar.Year)+i).
					Set(calendar.Month, tt.month).
					Set(calendar.Weekday, tt.weekday).
					Set(calendar.WeekdayOrdinal, tt.ordinal).
					Set(calendar.Hour, tt.start.Value(calendar.Hour)).
					Set(calendar.Minute, tt.start.Value(calendar.Minute)))
				assert.Equal(t, want, occ.At, "occurrence %d", i)
				assert.Equal(t, i, occ.Index)
				assert.Equal(t, tt.weekday, occ.Fields.Value(calendar.Weekday))
				assert.Equal(t, tt.month, occ.Fields.Value(calendar.Month))
			}
		})
	}
}

func TestExpand_KeepsWallClockAcrossDST(t *testing.T) {
	cal := pacific(t)
	start := resolve(t, cal, calendar.DateFields(2024, 3, 3).Set(calendar.Hour, 9))

	res, err := recur.Expand("FREQ=WEEKLY;COUNT=2", cal, start, recur.Config{})
	require.NoError(t, err)
	require.Len(t, res.Occurrences, 2)

	second := res.Occurrences[1]
	assert.Equal(t, calendar.FromTime(time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC)), second.At)
	assert.Equal(t, 9, second.Fields.Value(calendar.Hour))
}

func TestExpand_CopticNewYear(t *testing.T) {
	cal := calendar.New(calendar.Coptic, calendar.UTC)
	start := calendar.FromTime(time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC))

	res, err := recur.Expand("FREQ=DAILY;COUNT=3", cal, start, recur.Config{})
	require.NoError(t, err)

	var got [][3]int
	for _, occ := range res.Occurrences {
		got = append(got, [3]int{occ.Fields.Value(calendar.Year), occ.Fields.Value(calendar.Month), occ.Fields.Value(calendar.Day)})
	}
	assert.Equal(t, [][3]int{{1740, 13, 5}, {1741, 1, 1}, {1741, 1, 2}}, got)
}

func TestExpand_FixedOffsetZone(t *testing.T) {
	cal := calendar.New(calendar.Gregorian, calendar.FixedZone("IST", 5*3600+1800))
	start := resolve(t, cal, calendar.DateFields(2024, 1, 1).Set(calendar.Hour, 9))

	// A local UNTIL is read in the calendar's zone.
	res, err := recur.Expand("FREQ=DAILY;UNTIL=20240103T090000", cal, start, recur.Config{})
	require.NoError(t, err)
	require.Len(t, res.Occurrences, 3)
	for i, occ := range res.Occurrences {
		assert.Equal(t, calendar.FromTime(time.Date(2024, 1, 1+i, 3, 30, 0, 0, time.UTC)), occ.At)
		assert.Equal(t, 9, occ.Fields.Value(calendar.Hour))
	}
}

func TestExpand_Range(t *testing.T) {
	cal := calendar.New(calendar.Gregorian, calendar.UTC)
	day := func(d int) calendar.Instant {
		return calendar.FromTime(time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC))
	}

	res, err := recur.Expand("FREQ=DAILY", cal, day(1), recur.Config{RangeStart: day(10), RangeEnd: day(12)})
	require.NoError(t, err)
	require.Len(t, res.Occurrences, 3)
	assert.False(t, res.Truncated)
	assert.Equal(t, 9, res.Occurrences[0].Index)
	assert.Equal(t, day(12), res.Occurrences[2].At)
}

func TestExpand_Cap(t *testing.T) {
	cal := calendar.New(calendar.Gregorian, calendar.UTC)
	res, err := recur.Expand("FREQ=HOURLY", cal, calendar.FromReferenceSeconds(0), recur.Config{MaxOccurrences: 10})
	require.NoError(t, err)
	assert.Len(t, res.Occurrences, 10)
	assert.True(t, res.Truncated)
}

func TestExpand_Errors(t *testing.T) {
	cal := calendar.New(calendar.Gregorian, calendar.UTC)
	start := calendar.FromReferenceSeconds(0)

	_, err := recur.Expand("FREQ=FORTNIGHTLY", cal, start, recur.Config{})
	assert.Error(t, err)

	_, err = recur.Expand("FREQ=DAILY", cal, start, recur.Config{
		RangeStart: start.Add(3600),
		RangeEnd:   start,
	})
	assert.Error(t, err)
}

func TestExpandMoment(t *testing.T) {
	cal := calendar.New(calendar.Gregorian, calendar.UTC)
	at := calendar.FromTime(time.Date(2007, 1, 9, 18, 0, 0, 0, time.UTC))

	single, err := recur.ExpandMoment(model.Moment{UID: "a", Name: "iPhone", At: at}, cal, recur.Config{})
	require.NoError(t, err)
	require.Len(t, single.Occurrences, 1)
	assert.Equal(t, "iPhone", single.Occurrences[0].Name)
	assert.Equal(t, 2007, single.Occurrences[0].Fields.Value(calendar.Year))

	yearly, err := recur.ExpandMoment(model.Moment{UID: "b", Name: "Anniversary", At: at, Rule: "FREQ=YEARLY;COUNT=3"}, cal, recur.Config{})
	require.NoError(t, err)
	require.Len(t, yearly.Occurrences, 3)
	for _, occ := range yearly.Occurrences {
		assert.Equal(t, "b", occ.UID)
	}
	assert.Equal(t, 2009, yearly.Occurrences[2].Fields.Value(calendar.Year))

	_, err = recur.ExpandMoment(model.Moment{UID: "c", At: at, Rule: "BOGUS"}, cal, recur.Config{})
	assert.ErrorContains(t, err, "moment c")
}
