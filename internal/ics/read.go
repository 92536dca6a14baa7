// Package ics keeps the moment catalog: named instants stored as VEVENTs
// in an iCalendar file.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"

	ical "github.com/arran4/golang-ical"

	"civcal/internal/calendar"
	"civcal/internal/format"
	appLog "civcal/internal/log"
	"civcal/internal/model"
	"civcal/internal/tz"
)

// DTSTART forms, as date patterns.
const (
	utcPattern   = "yyyyMMdd'T'HHmmssX"
	localPattern = "yyyyMMdd'T'HHmmss"
	datePattern  = "yyyyMMdd"
)

// ReadMoments reads every VEVENT in r as a moment. Zone identifiers in
// TZID parameters are resolved with db; a nil db means tz.Default().
// Events that cannot be read are logged and skipped.
func ReadMoments(r io.Reader, db *tz.Database) ([]model.Moment, error) {
	if db == nil {
		db = tz.Default()
	}
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		appLog.Error("ics parse failed", err)
		return nil, fmt.Errorf("ics: %w", err)
	}

	moments := make([]model.Moment, 0)
	for _, ev := range cal.Events() {
		m, err := readEvent(ev, db)
		if err != nil {
			appLog.Error("ics vevent skipped", err, "uid", ev.Id())
			continue
		}
		moments = append(moments, m)
	}

	appLog.Debug("ics parse completed", "moment_count", len(moments))
	return moments, nil
}

func readEvent(ev *ical.VEvent, db *tz.Database) (model.Moment, error) {
	var out model.Moment

	uidProp := ev.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Name = p.Value
	}
	if p := ev.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ev.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.Rule = p.Value
	}

	start := ev.GetProperty(ical.ComponentPropertyDtStart)
	if start == nil {
		return out, errors.New("missing DTSTART")
	}
	at, zoneID, err := readStart(start.Value, start.ICalParameters["TZID"], db)
	if err != nil {
		return out, fmt.Errorf("DTSTART %q: %w", start.Value, err)
	}
	out.At, out.ZoneID = at, zoneID
	return out, nil
}

// readStart parses a DTSTART value. Floating times and dates without a
// TZID are read as UTC. A local time that occurs twice takes its first
// occurrence, as RFC 5545 asks.
func readStart(value string, tzid []string, db *tz.Database) (calendar.Instant, string, error) {
	value = strings.TrimSpace(value)
	var (
		zone   calendar.Zone = calendar.UTC
		zoneID string
	)
	if len(tzid) > 0 && !strings.HasSuffix(value, "Z") {
		z, err := db.Resolve(tzid[0])
		if err != nil {
			return calendar.Instant{}, "", err
		}
		zone, zoneID = z, tzid[0]
	}

	pattern := localPattern
	switch {
	case strings.HasSuffix(value, "Z"):
		pattern = utcPattern
	case !strings.Contains(value, "T"):
		pattern = datePattern
	}
	f := &format.DateFormatter{
		Calendar: calendar.New(calendar.Gregorian, zone, calendar.WithRepeatedTime(calendar.RepeatedTimeEarlier)),
		Pattern:  pattern,
		Zones:    db,
	}
	at, err := f.Parse(value)
	return at, zoneID, err
}
