package tour

import (
	"io"

	"civcal/internal/calendar"
	"civcal/internal/format"
	"civcal/internal/locale"
	appLog "civcal/internal/log"
)

// Seconds the tutorial's keynotes are given in.
const (
	iPhoneStevenoteSinceReference = 190_058_400.0
	iPadStevenoteSinceUnixEpoch   = 1_264_615_200.0
	appleSiliconAfterIPad         = 328_230_000.0
)

var allFields = []calendar.Field{
	calendar.Day, calendar.Era, calendar.Hour, calendar.Minute, calendar.Month,
	calendar.Nanosecond, calendar.Quarter, calendar.Second, calendar.Weekday,
	calendar.WeekdayOrdinal, calendar.WeekOfMonth, calendar.WeekOfYear,
	calendar.Year, calendar.YearForWeekOfYear,
}

var fieldLabels = map[calendar.Field]string{
	calendar.Day:               "Day",
	calendar.Era:               "Era",
	calendar.Hour:              "Hour",
	calendar.Minute:            "Minute",
	calendar.Month:             "Month",
	calendar.Nanosecond:        "Nanosecond",
	calendar.Quarter:           "Quarter",
	calendar.Second:            "Second",
	calendar.Weekday:           "Weekday",
	calendar.WeekdayOrdinal:    "Weekday ordinal",
	calendar.WeekOfMonth:       "Week of month",
	calendar.WeekOfYear:        "Week of year",
	calendar.Year:              "Year",
	calendar.YearForWeekOfYear: "Year for week of year",
}

// Part1 creates instants, builds them from calendar fields and takes them
// apart again.
func Part1(w io.Writer, env Env) error {
	env = env.withDefaults()
	p := &printer{w: w}
	user := env.gregorian()

	// Creating instants: the basics.
	moment := env.Now()
	p.printf("momentInTime contains the current date and time!\n")
	p.printf("• momentInTime.description: %s\n", format.Describe(moment))
	p.printf("• momentInTime happened %s seconds ago,\n", seconds(env.Now().Sub(moment)))
	p.printf("• %s seconds since January 1, 2001,\n", seconds(moment.SinceReferenceDate()))
	p.printf("• %s seconds since January 1, 1970.\n", seconds(moment.SinceUnixEpoch()))

	p.printf("\nDate descriptions in different locales:\n")
	for _, id := range []string{"en-US", "en-GB", "", "zh-Hans"} {
		loc := env.Locales.Locale(id)
		p.printf("• %s: %s\n", id, format.DescribeLocalized(moment, user, loc))
	}

	// The hard way: offsets from now, the reference date and the Unix epoch.
	p.printf("\nCreating dates and times the hard way:\n")
	p.printf("• 5 seconds ago, it was %s.\n", env.describe(env.Now().Add(-5)))
	p.printf("• 8 minutes from now, it will be %s.\n", env.describe(env.Now().Add(8*60)))
	iPhone := calendar.FromReferenceSeconds(iPhoneStevenoteSinceReference)
	p.printf("• The iPhone Stevenote took place on %s.\n", env.describe(iPhone))
	iPad := calendar.FromUnixSeconds(iPadStevenoteSinceUnixEpoch)
	p.printf("• The iPad Stevenote took place on %s.\n", env.describe(iPad))
	silicon := iPad.Add(appleSiliconAfterIPad)
	p.printf("• The Apple Silicon Timnote took place on %s.\n", env.describe(silicon))

	// The simpler ways: a pattern and ISO 8601.
	demoFormatter := &format.DateFormatter{
		Calendar: user,
		Locale:   env.Locales.Locale("en"),
		Pattern:  "MMMM d, y 'at' h:mm a, zzzz",
		Zones:    env.Zones,
	}
	p.printf("\nCreating dates and times with DateFormatter:\n")
	demo, err := demoFormatter.Parse("December 9, 1968 at 3:45 PM, Pacific Standard Time")
	p.printf("• The Mother of All Demos took place on %s.\n", describeOrNil(env, demo, err))

	p.printf("\nCreating dates and times with ISO8601Formatter:\n")
	demo, err = format.ISO8601Formatter{}.Parse("1968-12-09T15:45:00-08:00")
	p.printf("• Once again, the Mother of All Demos took place on %s.\n", describeOrNil(env, demo, err))

	p.printf("\nCalendar:\n")
	p.printf("• The current calendar is %s.\n", user.System().ID())
	p.printf("• The current calendar’s time zone is %s.\n", user.Zone().ID())

	// Building instants from fields.
	p.printf("\nCreating a Date with Calendar and fields:\n")
	pacific := env.calendar(calendar.Gregorian, env.zone("America/Los_Angeles"))
	iPhone = p.resolve(pacific, calendar.DateFields(2007, 1, 9).Set(calendar.Hour, 10).Set(calendar.Minute, 0))
	p.printf("• Once again, the iPhone Stevenote took place on %s.\n", env.describe(iPhone))
	iPad = p.resolve(pacific, calendar.DateFields(2010, 1, 27).Set(calendar.Hour, 10).Set(calendar.Minute, 0))
	p.printf("• Once again, the iPad Stevenote took place on %s.\n", env.describe(iPad))

	tenThousandHours := p.resolve(user, calendar.Fields{}.Set(calendar.Year, 2024).Set(calendar.Hour, 10000))
	p.printf("\n• 10,000 hours into 2024, the date and time will be %s.\n", env.describe(tenThousandHours))
	p.printf("• In UTC, that’s %s.\n", format.Describe(tenThousandHours))

	day243 := p.resolve(user, calendar.Fields{}.Set(calendar.Year, 2024).Set(calendar.Day, 243))
	p.printf("\n• The 243rd day of 2024 will be %s.\n", env.describe(day243))

	firstFriday := p.resolve(user, calendar.Fields{}.
		Set(calendar.Year, 2024).
		Set(calendar.Weekday, calendar.Friday).
		Set(calendar.WeekdayOrdinal, 1))
	p.printf("\n• The first Friday of 2024 will be %s.\n", env.describe(firstFriday))

	donutDay := p.resolve(user, calendar.Fields{}.
		Set(calendar.Year, 2024).
		Set(calendar.Month, 6).
		Set(calendar.Weekday, calendar.Friday).
		Set(calendar.WeekdayOrdinal, 1))
	p.printf("\n• The first National Donut Day of 2024 will be %s.\n", env.describe(donutDay))

	thursday33 := p.resolve(user, calendar.Fields{}.
		Set(calendar.Year, 2024).
		Set(calendar.Weekday, calendar.Thursday).
		Set(calendar.WeekOfYear, 33))
	p.printf("\n• The Thursday of the 33rd week of 2024 will be %s.\n", env.describe(thursday33))

	sept50 := p.resolve(user, calendar.DateFields(2024, 9, 50))
	p.printf("\n• September 50, 2024 is actually %s.\n", env.describe(sept50))

	// Taking instants apart.
	p.printf("\nThe date components for the iPhone Stevenote date:\n")
	printFields(p, user, iPhone)
	p.printf("\nThe date components for the iPhone Stevenote date - for the Pacific Calendar - are:\n")
	printFields(p, pacific, iPhone)

	aprilFools := p.resolve(user, calendar.DateFields(2024, 4, 1))
	wanted := user.Extract(aprilFools, calendar.NewFieldSet(calendar.Weekday, calendar.WeekOfYear))
	weekday := wanted.Value(calendar.Weekday)
	p.printf("\nApril Fools’ Day 2024:\n")
	p.printf("• happens on day %d of the week (%s),\n", weekday,
		env.Locale.Current().WeekdayName(calendar.GregorianID, locale.Wide, weekday))
	p.printf("• on week %d of 2024.\n", wanted.Value(calendar.WeekOfYear))

	// The big challenge: third Wednesday of July 2024, 3:30 p.m. Pacific,
	// seen from Melbourne in the Coptic calendar.
	p.printf("\nThe Big Challenge!\n")
	challenge := p.resolve(pacific, calendar.Fields{}.
		Set(calendar.Year, 2024).
		Set(calendar.Month, 7).
		Set(calendar.Hour, 15).
		Set(calendar.Minute, 30).
		Set(calendar.Weekday, calendar.Wednesday).
		Set(calendar.WeekdayOrdinal, 3))
	p.printf("• The challenge date in the Gregorian calendar is %s.\n", env.describe(challenge))

	melbourne := env.zone("Australia/Melbourne")
	challengeFields := calendar.NewFieldSet(calendar.Year, calendar.Month, calendar.Day,
		calendar.Weekday, calendar.Hour, calendar.Minute)
	p.printf("• melbourneDateComponents: %s\n",
		calendar.New(calendar.Gregorian, melbourne).Extract(challenge, challengeFields))

	arEG := env.Locales.Locale("ar_EG")
	coptic := calendar.New(calendar.Coptic, melbourne, calendar.WithWeekRule(arEG.WeekRule()))
	c := coptic.Extract(challenge, challengeFields)
	month, wd := c.Value(calendar.Month), c.Value(calendar.Weekday)
	p.printf("• The challenge date in the Coptic calendar happens on: \n")
	p.printf("••• year %d\n", c.Value(calendar.Year))
	p.printf("••• month %d (%s)\n", month, arEG.MonthName(calendar.CopticID, locale.Wide, month))
	p.printf("••• day %d\n", c.Value(calendar.Day))
	p.printf("••• weekday %d (%s)\n", wd, arEG.WeekdayName(calendar.CopticID, locale.Wide, wd))
	p.printf("••• hour %d\n", c.Value(calendar.Hour))
	p.printf("••• minute %d (Melbourne time).\n", c.Value(calendar.Minute))

	return p.err
}

func printFields(p *printer, cal *calendar.Calendar, t calendar.Instant) {
	f := cal.ExtractAll(t)
	p.printf("• Calendar: %s\n", cal.System().ID())
	for _, field := range allFields {
		p.printf("• %s: %d\n", fieldLabels[field], f.Value(field))
		if field == calendar.Second {
			p.printf("• Time zone: %s\n", cal.Zone().ID())
		}
	}
}

// describeOrNil prints a parse result the way the tutorials print an
// optional: the description, or nil.
func describeOrNil(env Env, t calendar.Instant, err error) string {
	if err != nil {
		appLog.Debug("tour: parse failed", "err", err)
		return "nil"
	}
	return env.describe(t)
}
