package locale_test

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"civcal/internal/calendar"
	"civcal/internal/locale"
)

func TestLoad_EmbeddedFilesMatchData(t *testing.T) {
	tbl, err := locale.Load(os.DirFS("data"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ar", "ar-EG", "en", "en-GB", "es", "fr", "fr-CA", "hr", "ko", "zh-Hans"}, tbl.Tags())
	assert.Equal(t, tbl.Tags(), locale.Default().Tags())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{"no root", fstest.MapFS{"en.yaml": {Data: []byte("locale: en\n")}}},
		{"bad yaml", fstest.MapFS{"und.yaml": {Data: []byte("locale: [\n")}}},
		{"bad digits", fstest.MapFS{"und.yaml": {Data: []byte("locale: und\ndigits: \"0123\"\n")}}},
		{"bad week", fstest.MapFS{"und.yaml": {Data: []byte("locale: und\nweek: {first_day: 9, min_days: 1}\n")}}},
		{"bad tag", fstest.MapFS{"und.yaml": {Data: []byte("locale: und\n")}, "x.yaml": {Data: []byte("locale: \"not a tag!\"\n")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := locale.Load(tt.files)
			assert.Error(t, err)
		})
	}
}

func TestLookup_Fallback(t *testing.T) {
	tbl := locale.Default()
	tests := []struct {
		tag  string
		sys  calendar.SystemID
		key  string
		want string
	}{
		{"en", calendar.GregorianID, "months.wide.7", "July"},
		{"en-GB", calendar.GregorianID, "months.wide.7", "July"},
		{"en-GB", calendar.GregorianID, "months.abbreviated.9", "Sept"},
		{"en-GB", calendar.GregorianID, "date.short", "dd/MM/y"},
		{"en-US", calendar.GregorianID, "date.short", "M/d/yy"},
		{"fr-CA", calendar.GregorianID, "months.wide.2", "février"},
		{"fr-CA", calendar.GregorianID, "date.short", "y-MM-dd"},
		{"fr", calendar.GregorianID, "date.short", "dd/MM/y"},
		{"zh-Hans-CN", calendar.GregorianID, "weekdays.wide.4", "星期三"},
		{"zh", calendar.GregorianID, "day_periods.am", "上午"},
		{"ar-EG", calendar.CopticID, "months.wide.11", "أبيب"},
		{"ar-EG", calendar.CopticID, "weekdays.wide.5", "الخميس"},
		{"ar-EG", calendar.CopticID, "eras.abbreviated.1", "ERA1"},
		{"en", calendar.CopticID, "months.wide.1", "Tout"},
		{"en", calendar.CopticID, "day_periods.pm", "PM"},
		{"de", calendar.GregorianID, "months.wide.1", "M01"},
		{"und", calendar.GregorianID, "date.short", "y-MM-dd"},
		{"ar-EG", calendar.GregorianID, "digits", "٠١٢٣٤٥٦٧٨٩"},
		{"ar", calendar.GregorianID, "digits", "0123456789"},
		{"fr-CA", calendar.GregorianID, "gmt_format", "UTC{0}"},
		{"en-GB", calendar.GregorianID, "zones.Europe/London.short_daylight", "BST"},
		{"en-GB", calendar.GregorianID, "zones.America/Los_Angeles.long_standard", "Pacific Standard Time"},
		{"ar-EG", calendar.GregorianID, "week.first_day", "7"},
		{"en-GB", calendar.GregorianID, "week.min_days", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.key, func(t *testing.T) {
			got, ok := tbl.Lookup(language.MustParse(tt.tag), tt.sys, tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_Missing(t *testing.T) {
	tbl := locale.Default()
	for _, key := range []string{
		"months.wide.13",
		"months.wide.0",
		"months.wide.x",
		"zones.Mars/Olympus.long_standard",
		"nonsense",
		"date",
	} {
		_, ok := tbl.Lookup(language.English, calendar.GregorianID, key)
		assert.False(t, ok, key)
	}
}

func TestLocale_ParsesPOSIXIdentifiers(t *testing.T) {
	tbl := locale.Default()
	tests := []struct {
		id       string
		resolved string
	}{
		{"ar_EG", "ar-EG"},
		{"en_US_POSIX", "en"},
		{"ko_KR", "ko"},
		{"fr_CA", "fr-CA"},
		{"", "und"},
		{"!!", "und"},
		{"sw", "und"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.resolved, tbl.Locale(tt.id).Resolved())
		})
	}
}

func TestLocale_Names(t *testing.T) {
	l := locale.Default().Locale("en")
	assert.Equal(t, "Jul", l.MonthName(calendar.GregorianID, locale.Abbreviated, 7))
	assert.Equal(t, "J", l.MonthName(calendar.GregorianID, locale.Narrow, 7))
	assert.Equal(t, "Wednesday", l.WeekdayName(calendar.GregorianID, locale.Wide, calendar.Wednesday))
	assert.Equal(t, "Anno Domini", l.EraName(calendar.GregorianID, locale.Wide, 1))
	assert.Equal(t, "BC", l.EraName(calendar.GregorianID, locale.Abbreviated, 0))
	assert.Equal(t, "Q3", l.QuarterName(calendar.GregorianID, locale.Abbreviated, 3))
	assert.Equal(t, "Nasie", l.MonthName(calendar.CopticID, locale.Wide, 13))
	assert.Len(t, l.MonthNames(calendar.CopticID, locale.Wide), 13)

	am, pm := locale.Default().Locale("ko").DayPeriods(calendar.GregorianID)
	assert.Equal(t, "오전", am)
	assert.Equal(t, "오후", pm)

	// Inheritance beats width fallback: root's narrow form wins over the
	// abbreviated form fr defines.
	fr := locale.Default().Locale("fr")
	assert.Equal(t, "2", fr.QuarterName(calendar.GregorianID, locale.Narrow, 2))
	assert.Equal(t, "T2", fr.QuarterName(calendar.GregorianID, locale.Abbreviated, 2))
	assert.Equal(t, "Q2", locale.Default().Locale("ko").QuarterName(calendar.GregorianID, locale.Wide, 2))
}

func TestLocale_WeekRule(t *testing.T) {
	tbl := locale.Default()
	assert.Equal(t, calendar.USWeekRule, tbl.Locale("en-US").WeekRule())
	assert.Equal(t, calendar.ISOWeekRule, tbl.Locale("en-GB").WeekRule())
	assert.Equal(t, calendar.WeekRule{FirstWeekday: calendar.Saturday, MinDaysInFirstWeek: 1}, tbl.Locale("ar-EG").WeekRule())
	assert.Equal(t, calendar.WeekRule{FirstWeekday: calendar.Monday, MinDaysInFirstWeek: 1}, tbl.Locale("").WeekRule())
}

func TestLocale_ZoneNames(t *testing.T) {
	l := locale.Default().Locale("en-GB")
	name, ok := l.ZoneName("America/Los_Angeles", true, true)
	require.True(t, ok)
	assert.Equal(t, "Pacific Daylight Time", name)

	_, ok = locale.Default().Locale("en").ZoneName("Australia/Melbourne", false, false)
	assert.False(t, ok, "en has no short Melbourne name")

	var bst *locale.ZoneMatch
	for _, m := range l.ZoneNameList() {
		if m.Name == "BST" {
			m := m
			bst = &m
		}
	}
	require.NotNil(t, bst)
	assert.Equal(t, locale.ZoneMatch{Name: "BST", ZoneID: "Europe/London", DST: true}, *bst)
}

func TestPatterns(t *testing.T) {
	l := locale.Default().Locale("ar_EG")
	assert.Equal(t, "EEEE، d MMMM y G", l.DatePattern(calendar.CopticID, locale.Full))
	assert.Equal(t, "h:mm:ss a zzzz", l.TimePattern(calendar.CopticID, locale.Full))
	assert.Equal(t, "{1} في {0}", l.DateTimePattern(calendar.CopticID, locale.Full))
	assert.Equal(t, "", l.DatePattern(calendar.GregorianID, locale.Complete))
}

func TestAutoUpdating(t *testing.T) {
	id := "fr"
	auto := locale.AutoUpdating{Table: locale.Default(), Source: func() string { return id }}
	assert.Equal(t, "fr", auto.Current().Resolved())
	id = "ko_KR"
	assert.Equal(t, "ko", auto.Current().Resolved())
}

func TestSystemLocaleID(t *testing.T) {
	tests := []struct {
		lcAll, lcTime, lang string
		want                string
	}{
		{"", "", "fr_CA.UTF-8", "fr_CA"},
		{"", "hr_HR.UTF-8@euro", "en_US.UTF-8", "hr_HR"},
		{"C", "", "fr_FR", "en_US_POSIX"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		t.Setenv("LC_ALL", tt.lcAll)
		t.Setenv("LC_TIME", tt.lcTime)
		t.Setenv("LANG", tt.lang)
		assert.Equal(t, tt.want, locale.SystemLocaleID())
	}
}
