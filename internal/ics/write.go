package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"civcal/internal/calendar"
	"civcal/internal/format"
	"civcal/internal/model"
	"civcal/internal/tz"
)

// now stamps DTSTAMP; tests replace it.
var now = time.Now

// WriteMoments writes moments as an iCalendar file. A moment with a zone
// is written as local time with a TZID parameter, otherwise as UTC.
// Moments without a UID get a random one. Sub-second precision is lost.
func WriteMoments(w io.Writer, moments []model.Moment) error {
	cal := ical.NewCalendarFor("civcal")
	cal.SetXWRCalName("civcal moments")
	stamp := now()

	for _, m := range moments {
		uid := m.UID
		if uid == "" {
			uid = uuid.NewString()
		}
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp)
		ev.SetSummary(m.Name)
		if m.Description != "" {
			ev.SetDescription(m.Description)
		}

		if m.ZoneID == "" {
			ev.SetStartAt(m.At.Time())
		} else {
			local, err := localTime(m.At, m.ZoneID)
			if err != nil {
				return fmt.Errorf("ics: moment %s: %w", uid, err)
			}
			ev.SetProperty(ical.ComponentPropertyDtStart, local, ical.WithTZID(m.ZoneID))
		}

		if m.Rule != "" {
			ev.AddRrule(strings.TrimPrefix(m.Rule, "RRULE:"))
		}
	}
	return cal.SerializeTo(w)
}

func localTime(t calendar.Instant, zoneID string) (string, error) {
	z, err := tz.Default().Resolve(zoneID)
	if err != nil {
		return "", err
	}
	f := &format.DateFormatter{Calendar: calendar.New(calendar.Gregorian, z), Pattern: localPattern}
	return f.Format(t), nil
}
