// Package recur expands RRULE recurrences (RFC 5545) into instants and
// decomposes every occurrence with a calendar, so a rule written against
// Gregorian dates can be read back in any calendar system.
package recur

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"

	"civcal/internal/calendar"
	appLog "civcal/internal/log"
	"civcal/internal/model"
	"civcal/internal/tz"
)

const defaultMaxOccurrences = 5000

// Config controls an expansion.
type Config struct {
	// RangeStart and RangeEnd bound the occurrences, both inclusive. The
	// zero Instant leaves that side open.
	RangeStart calendar.Instant
	RangeEnd   calendar.Instant

	// MaxOccurrences caps the expansion of rules without COUNT or UNTIL.
	// If zero, defaultMaxOccurrences is used.
	MaxOccurrences int
}

// Result holds the expanded occurrences in order.
type Result struct {
	Occurrences []model.Occurrence
	// Truncated reports that MaxOccurrences stopped the expansion.
	Truncated bool
}

// Expand evaluates rule with start as DTSTART in cal's zone and extracts
// every occurrence's fields with cal. rule may carry an "RRULE:" prefix.
func Expand(rule string, cal *calendar.Calendar, start calendar.Instant, cfg Config) (Result, error) {
	var result Result
	if cal == nil {
		cal = calendar.New(calendar.Gregorian, calendar.UTC)
	}
	var zero calendar.Instant
	if cfg.RangeEnd != zero && cfg.RangeEnd.Before(cfg.RangeStart) {
		return result, errors.New("recur: RangeEnd is before RangeStart")
	}
	if cfg.MaxOccurrences <= 0 {
		cfg.MaxOccurrences = defaultMaxOccurrences
	}

	// rrule-go computes wall-clock recurrences in DTSTART's location.
	loc := tz.Location(cal.Zone(), start)
	opt, err := rrule.StrToROptionInLocation(strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:"), loc)
	if err != nil {
		return result, fmt.Errorf("recur: parsing rule %q: %w", rule, err)
	}
	opt.Dtstart = start.Time().In(loc)
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return result, fmt.Errorf("recur: building rule %q: %w", rule, err)
	}

	next := r.Iterator()
	for seen := 0; ; seen++ {
		t, ok := next()
		if !ok {
			break
		}
		if seen == cfg.MaxOccurrences {
			result.Truncated = true
			appLog.Warn("recur: truncated occurrences due to cap", "rule", rule, "cap", cfg.MaxOccurrences)
			break
		}
		at := calendar.FromTime(t)
		if cfg.RangeEnd != zero && at.After(cfg.RangeEnd) {
			break
		}
		if at.Before(cfg.RangeStart) && cfg.RangeStart != zero {
			continue
		}
		result.Occurrences = append(result.Occurrences, model.Occurrence{
			Index:  seen,
			At:     at,
			Fields: cal.ExtractAll(at),
		})
	}
	return result, nil
}

// ExpandMoment expands m.Rule from m.At. A moment without a rule yields
// itself as its only occurrence.
func ExpandMoment(m model.Moment, cal *calendar.Calendar, cfg Config) (Result, error) {
	if cal == nil {
		cal = calendar.New(calendar.Gregorian, calendar.UTC)
	}
	var result Result
	if m.Rule == "" {
		result.Occurrences = []model.Occurrence{{At: m.At, Fields: cal.ExtractAll(m.At)}}
	} else {
		var err error
		if result, err = Expand(m.Rule, cal, m.At, cfg); err != nil {
			return result, fmt.Errorf("recur: moment %s: %w", m.UID, err)
		}
	}
	for i := range result.Occurrences {
		result.Occurrences[i].UID = m.UID
		result.Occurrences[i].Name = m.Name
	}
	return result, nil
}
