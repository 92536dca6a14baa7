package tour_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civcal/internal/calendar"
	"civcal/internal/locale"
	"civcal/internal/tour"
	"civcal/internal/tz"
)

func pinned(t *testing.T) tour.Env {
	t.Helper()
	db := tz.NewDatabase()
	la, err := db.Resolve("America/Los_Angeles")
	require.NoError(t, err)
	return tour.Env{
		Now:    func() calendar.Instant { return calendar.FromUnixSeconds(1_700_000_000) },
		Zone:   la,
		Locale: locale.Default().Locale("en_US"),
		Zones:  db,
	}
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestPart1(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tour.Part1(&buf, pinned(t)))
	out := lines(buf.String())

	for _, want := range []string{
		"• momentInTime.description: 2023-11-14 22:13:20 +0000",
		"• momentInTime happened 0 seconds ago,",
		"• 721692800 seconds since January 1, 2001,",
		"• 1700000000 seconds since January 1, 1970.",
		"• en-US: Tuesday, November 14, 2023 at 2:13:20 PM Pacific Standard Time",
		"• The iPhone Stevenote took place on Tuesday, January 9, 2007 at 10:00:00 AM Pacific Standard Time.",
		"• The Mother of All Demos took place on Monday, December 9, 1968 at 3:45:00 PM Pacific Standard Time.",
		"• Once again, the Mother of All Demos took place on Monday, December 9, 1968 at 3:45:00 PM Pacific Standard Time.",
		"• The current calendar is gregorian.",
		"• The current calendar’s time zone is America/Los_Angeles.",
		"• Once again, the iPad Stevenote took place on Wednesday, January 27, 2010 at 10:00:00 AM Pacific Standard Time.",
		"• In UTC, that’s 2025-02-21 00:00:00 +0000.",
		"• The 243rd day of 2024 will be Friday, August 30, 2024 at 12:00:00 AM Pacific Daylight Time.",
		"• The first Friday of 2024 will be Friday, January 5, 2024 at 12:00:00 AM Pacific Standard Time.",
		"• The first National Donut Day of 2024 will be Friday, June 7, 2024 at 12:00:00 AM Pacific Daylight Time.",
		"• The Thursday of the 33rd week of 2024 will be Thursday, August 15, 2024 at 12:00:00 AM Pacific Daylight Time.",
		"• September 50, 2024 is actually Sunday, October 20, 2024 at 12:00:00 AM Pacific Daylight Time.",
		"• happens on day 2 of the week (Monday),",
		"• on week 14 of 2024.",
		"• The challenge date in the Gregorian calendar is Wednesday, July 17, 2024 at 3:30:00 PM Pacific Daylight Time.",
		"• melbourneDateComponents: year: 2024 month: 7 day: 18 hour: 8 minute: 30 weekday: 5",
		"••• year 1740",
		"••• month 11 (أبيب)",
		"••• day 11",
		"••• weekday 5 (الخميس)",
		"••• minute 30 (Melbourne time).",
	} {
		assert.Contains(t, out, want)
	}

	fields := strings.Join(out, "\n")
	assert.Contains(t, fields, strings.Join([]string{
		"• Calendar: gregorian",
		"• Day: 9",
		"• Era: 1",
		"• Hour: 10",
		"• Minute: 0",
		"• Month: 1",
		"• Nanosecond: 0",
		"• Quarter: 1",
		"• Second: 0",
		"• Time zone: America/Los_Angeles",
		"• Weekday: 3",
		"• Weekday ordinal: 2",
		"• Week of month: 2",
		"• Week of year: 2",
		"• Year: 2007",
		"• Year for week of year: 2007",
	}, "\n"))
}

func TestPart2(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tour.Part2(&buf, pinned(t)))
	out := lines(buf.String())

	for _, want := range []string{
		"Swift's debut date: 6/2/2014, 12:00 AM",
		"1. Complete: Monday, June 2, 2014",
		"2. Abbreviated: Jun 2, 2014",
		"3. Long: June 2, 2014",
		"4. Numeric: 6/2/2014",
		"1. Complete: 12:00:00 AM PDT",
		"2. Shortened: 12:00 AM",
		"3. Standard: 12:00:00 AM",
		"1. Complete/Complete: Monday, June 2, 2014 at 12:00:00 AM PDT",
		"2. Abbreviated/Shortened: Jun 2, 2014, 12:00 AM",
		"3. Numeric/Shortened: 6/2/2014, 12:00 AM",
		"• ISO 8601 format for Swift’s debut date: 2014-06-02T07:00:00Z.",
		"• Customized ISO 8601 format for Swift’s debut date: 2014W23T07:00:00.000.",
		"• Swift’s debut date, via the DateFormatter: ",
		"• Swift’s debut date, “short” style: 6/2/14",
		"• Swift’s debut date, “full” style: Monday, June 2, 2014",
		"• The newly-created date: Monday, June 3, 2019 at 12:08:00 PM Pacific Daylight Time.",
		"• Swift’s debut date and time, “short” style: 6/3/19, 12:08 PM.",
		"• Swift’s debut date and time, “long” style: June 3, 2019 at 12:08:00 PM PDT.",
		"• Swift’s debut time: 12:08:00 PM.",
		"• International French: lundi 3 juin 2019 à 12:08:00 heure d’été du Pacifique nord-américain.",
		"• Canadian French: lundi 3 juin 2019 à 12 h 08 min 00 s heure avancée du Pacifique.",
		"• Croatian: ponedjeljak, 3. lipnja 2019. u 12:08:00 (pacifičko ljetno vrijeme).",
		"• Korean: 2019년 6월 3일 월요일 오후 12시 8분 0초 미 태평양 하계 표준시.",
		"• y-MM-dd format: 2019-06-03.",
		"• EEEE, MMMM dd, yyyy' at 'h:mm a zzzz format: Monday, June 03, 2019 at 12:08 PM Pacific Daylight Time.",
		"• Zero Wing format: 🚀 In AD 2019, SwiftUI was beginning. All your UI are belong to us! 🚀.",
		"• newDate1’s value is: 2019-06-03 19:08:00 +0000.",
		"• newDate2’s value is: nil.",
		"• newDate3’s value is: nil.",
		"• newDate4’s value is: 2019-06-06 19:08:00 +0000.",
		"• emojiDate’s value is: 2024-11-28 08:00:00 +0000.",
		"• The challenge date in the Gregorian calendar and the US Pacific time zone is Wednesday, July 19, 2023 at 3:30:00 PM Pacific Daylight Time.",
		"• The challenge date is الخميس، ١٣ أبيب ١٧٣٩ ERA1 في ٨:٣٠:٠٠ ص توقيت شرق أستراليا الرسمي.",
	} {
		assert.Contains(t, out, want)
	}
}

func TestParts_FollowTheLocale(t *testing.T) {
	env := pinned(t)
	env.Locale = locale.Default().Locale("en-GB")

	var buf bytes.Buffer
	require.NoError(t, tour.Part2(&buf, env))
	assert.Contains(t, lines(buf.String()), "4. Numeric: 02/06/2014")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestParts_ReportWriteErrors(t *testing.T) {
	assert.EqualError(t, tour.Part1(failingWriter{}, pinned(t)), "disk full")
	assert.EqualError(t, tour.Part2(failingWriter{}, pinned(t)), "disk full")
}
