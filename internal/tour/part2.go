package tour

import (
	"io"

	"civcal/internal/calendar"
	"civcal/internal/format"
)

// Part2 turns instants into strings and strings back into instants.
func Part2(w io.Writer, env Env) error {
	env = env.withDefaults()
	p := &printer{w: w}
	user := env.gregorian()
	formatted := func(t calendar.Instant, d format.DateFormat, tm format.TimeFormat) string {
		return format.Formatted(t, user, env.Locale, d, tm)
	}

	swiftDebut := p.resolve(user, calendar.DateFields(2014, 6, 2))
	p.printf("Swift's debut date: %s\n", formatted(swiftDebut, format.DateOmitted, format.TimeOmitted))

	p.printf("\nJust the date, in all its forms:\n")
	p.printf("1. Complete: %s\n", formatted(swiftDebut, format.DateComplete, format.TimeOmitted))
	p.printf("2. Abbreviated: %s\n", formatted(swiftDebut, format.DateAbbreviated, format.TimeOmitted))
	p.printf("3. Long: %s\n", formatted(swiftDebut, format.DateLong, format.TimeOmitted))
	p.printf("4. Numeric: %s\n", formatted(swiftDebut, format.DateNumeric, format.TimeOmitted))

	p.printf("\nJust the time, in all its forms:\n")
	p.printf("1. Complete: %s\n", formatted(swiftDebut, format.DateOmitted, format.TimeComplete))
	p.printf("2. Shortened: %s\n", formatted(swiftDebut, format.DateOmitted, format.TimeShortened))
	p.printf("3. Standard: %s\n", formatted(swiftDebut, format.DateOmitted, format.TimeStandard))

	p.printf("\nJust a few date and time combinations:\n")
	p.printf("1. Complete/Complete: %s\n", formatted(swiftDebut, format.DateComplete, format.TimeComplete))
	p.printf("2. Abbreviated/Shortened: %s\n", formatted(swiftDebut, format.DateAbbreviated, format.TimeShortened))
	p.printf("3. Numeric/Shortened: %s\n", formatted(swiftDebut, format.DateNumeric, format.TimeShortened))

	p.printf("\nDates to ISO8601 strings:\n")
	p.printf("• ISO 8601 format for Swift’s debut date: %s.\n", format.ISO8601(swiftDebut))
	custom := format.ISO8601Formatter{Options: format.WithWeekOfYear | format.WithYear |
		format.WithTime | format.WithFractionalSeconds | format.WithColonSeparatorInTime}
	p.printf("• Customized ISO 8601 format for Swift’s debut date: %s.\n", custom.Format(swiftDebut))

	// Canned styles.
	p.printf("\nDates to strings:\n")
	f := &format.DateFormatter{Calendar: user, Locale: env.Locale, Zones: env.Zones}
	p.printf("• Swift’s debut date, via the DateFormatter: %s\n", f.Format(swiftDebut))
	for _, s := range []struct {
		name  string
		style format.Style
	}{
		{"short", format.StyleShort},
		{"medium", format.StyleMedium},
		{"long", format.StyleLong},
		{"full", format.StyleFull},
		{"none", format.StyleNone},
	} {
		f.DateStyle = s.style
		p.printf("• Swift’s debut date, “%s” style: %s\n", s.name, f.Format(swiftDebut))
	}

	p.printf("\nThe SwiftUI debut date and time, converted into a string:\n")
	swiftUIDebut := p.resolve(env.calendar(calendar.Gregorian, env.zone("PDT")),
		calendar.DateFields(2019, 6, 3).Set(calendar.Hour, 12).Set(calendar.Minute, 8))
	p.printf("• The newly-created date: %s.\n", env.describe(swiftUIDebut))
	for _, s := range []struct {
		label      string
		date, time format.Style
	}{
		{"Swift’s debut date and time, “short” style", format.StyleShort, format.StyleShort},
		{"Swift’s debut date and time, “medium” style", format.StyleMedium, format.StyleMedium},
		{"Swift’s debut date and time, “long” style", format.StyleLong, format.StyleLong},
		{"Swift’s debut date and time, “full” style", format.StyleFull, format.StyleFull},
		{"Swift’s debut date and time, with “full” style date and “short” style time", format.StyleFull, format.StyleShort},
		{"Swift’s debut time", format.StyleNone, format.StyleMedium},
		{"Swift’s debut date", format.StyleFull, format.StyleNone},
	} {
		f.DateStyle, f.TimeStyle = s.date, s.time
		p.printf("• %s: %s.\n", s.label, f.Format(swiftUIDebut))
	}

	p.printf("\nDates and times in languages other than English\n")
	f.DateStyle, f.TimeStyle = format.StyleFull, format.StyleFull
	for _, l := range []struct{ label, id string }{
		{"International French", "fr"},
		{"Canadian French", "fr-CA"},
		{"Croatian", "hr"},
		{"Korean", "ko_KR"},
	} {
		f.Locale = env.Locales.Locale(l.id)
		p.printf("• %s: %s.\n", l.label, f.Format(swiftUIDebut))
	}

	// Custom patterns.
	p.printf("\nDates and times in custom formats\n")
	f.Locale = env.Locales.Locale("en_US_POSIX")
	for _, pattern := range []string{
		"y-MM-dd",
		"MM/dd/yy",
		"MMM dd, yyyy",
		"EEEE, MMMM dd, yyyy' at 'h:mm a zzzz",
	} {
		f.Pattern = pattern
		p.printf("• %s format: %s.\n", pattern, f.Format(swiftUIDebut))
	}
	f.Pattern = "'🚀 In' G y', SwiftUI was beginning. All your UI are belong to us! 🚀"
	p.printf("• Zero Wing format: %s.\n", f.Format(swiftUIDebut))

	// Parsing is strict: only text in the pattern's exact shape is read.
	p.printf("\nTurning strings into Dates with DateFormatter\n")
	parse := func(label, pattern, input string) {
		f.Pattern = pattern
		t, err := f.Parse(input)
		value := "nil"
		if err == nil {
			value = format.Describe(t)
		}
		p.printf("• %s’s value is: %s.\n", label, value)
	}
	parse("newDate1", "yyyy/MM/dd hh:mm Z", "2019/06/03 12:08 -0700")
	parse("newDate2", "yyyy/MM/dd hh:mm Z", "Jun 6, 2019, 12:08 PM PDT")
	parse("newDate3", "MMM d, yyyy, hh:mm a zz", "2019/06/03 12:08 -0700")
	parse("newDate4", "MMM d, yyyy, hh:mm a zz", "Jun 6, 2019, 12:08 PM PDT")
	parse("emojiDate", "y 😍 D", "2024 😍 333")

	p.printf("\nThe Big Challenge, once again\n")
	challenge := p.resolve(env.calendar(calendar.Gregorian, env.zone("America/Los_Angeles")), calendar.Fields{}.
		Set(calendar.Year, 2023).
		Set(calendar.Month, 7).
		Set(calendar.Hour, 15).
		Set(calendar.Minute, 30).
		Set(calendar.Weekday, calendar.Wednesday).
		Set(calendar.WeekdayOrdinal, 3))
	p.printf("• The challenge date in the Gregorian calendar and the US Pacific time zone is %s.\n", env.describe(challenge))

	arEG := env.Locales.Locale("ar_EG")
	copticFormatter := &format.DateFormatter{
		Calendar:  calendar.New(calendar.Coptic, env.zone("Australia/Melbourne"), calendar.WithWeekRule(arEG.WeekRule())),
		Locale:    arEG,
		DateStyle: format.StyleFull,
		TimeStyle: format.StyleFull,
	}
	p.printf("• The challenge date is %s.\n", copticFormatter.Format(challenge))

	return p.err
}
