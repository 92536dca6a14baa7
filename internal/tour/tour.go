// Package tour replays the two date and time tutorials the engine was built
// for. Each part writes its narration to an io.Writer; everything it reads
// from the host (clock, zone, locale) comes through Env so a run can be
// pinned for tests.
package tour

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"civcal/internal/calendar"
	"civcal/internal/format"
	"civcal/internal/locale"
	appLog "civcal/internal/log"
	"civcal/internal/tz"
)

// Env is the host state the tutorials read.
type Env struct {
	// Now is the clock. Nil means the system clock.
	Now func() calendar.Instant
	// Zone is the user's zone. Nil means tz.Current.
	Zone calendar.Zone
	// Locale is the user's locale. Nil means locale.Host.
	Locale locale.Source
	// Week adjusts the locale's week rule, for configured overrides.
	Week func(calendar.WeekRule) calendar.WeekRule

	Zones   *tz.Database
	Locales *locale.Table
}

func (e Env) withDefaults() Env {
	if e.Zones == nil {
		e.Zones = tz.Default()
	}
	if e.Locales == nil {
		e.Locales = locale.Default()
	}
	if e.Now == nil {
		e.Now = func() calendar.Instant { return calendar.FromTime(time.Now()) }
	}
	if e.Zone == nil {
		e.Zone = tz.Current(e.Zones)
	}
	if e.Locale == nil {
		e.Locale = locale.Host(e.Locales)
	}
	return e
}

// gregorian is the user's Gregorian calendar: their zone and their
// locale's week rule.
func (e Env) gregorian() *calendar.Calendar {
	return e.calendar(calendar.Gregorian, e.Zone)
}

func (e Env) calendar(system calendar.System, zone calendar.Zone) *calendar.Calendar {
	week := e.Locale.Current().WeekRule()
	if e.Week != nil {
		week = e.Week(week)
	}
	return calendar.New(system, zone, calendar.WithWeekRule(week))
}

// zone resolves an identifier the tutorials hard-code.
func (e Env) zone(id string) calendar.Zone {
	z, err := e.Zones.Resolve(id)
	if err != nil {
		appLog.Warn("tour: zone unavailable, using UTC", "id", id, "err", err)
		return calendar.UTC
	}
	return z
}

// describe is the tutorials' description(with: userLocale).
func (e Env) describe(t calendar.Instant) string {
	return format.DescribeLocalized(t, e.gregorian(), e.Locale)
}

// printer keeps the first write or resolution error so the scripts read
// as a straight sequence of lines.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) resolve(cal *calendar.Calendar, f calendar.Fields) calendar.Instant {
	t, err := cal.Resolve(f)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("tour: resolving %v: %w", f, err)
	}
	return t
}

// seconds prints a float the way the tutorials do: shortest exact form.
func seconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
