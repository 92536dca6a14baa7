// Package tz resolves time zone identifiers for the calendar engine using
// the IANA database embedded in the Go toolchain (time/tzdata), so results
// do not depend on the host's zoneinfo files.
package tz

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"civcal/internal/calendar"
)

// Zone is an IANA zone. Its offsets vary with daylight saving time.
type Zone struct {
	id  string
	loc *time.Location
}

func (z *Zone) ID() string { return z.id }

// Location exposes the underlying location for libraries that work on
// time.Time.
func (z *Zone) Location() *time.Location { return z.loc }

func (z *Zone) Offset(t calendar.Instant) calendar.ZoneOffset {
	lt := t.Time().In(z.loc)
	name, off := lt.Zone()
	return calendar.ZoneOffset{Seconds: off, Abbreviation: name, DST: lt.IsDST()}
}

// abbreviations maps common zone abbreviations to a representative zone.
var abbreviations = map[string]string{
	"PST": "America/Los_Angeles", "PDT": "America/Los_Angeles",
	"MST": "America/Denver", "MDT": "America/Denver",
	"CST": "America/Chicago", "CDT": "America/Chicago",
	"EST": "America/New_York", "EDT": "America/New_York",
	"AKST": "America/Anchorage", "AKDT": "America/Anchorage",
	"HST": "Pacific/Honolulu",
	"BST": "Europe/London", "WET": "Europe/Lisbon", "WEST": "Europe/Lisbon",
	"CET": "Europe/Paris", "CEST": "Europe/Paris",
	"EET": "Africa/Cairo", "EEST": "Africa/Cairo",
	"MSK": "Europe/Moscow",
	"IST": "Asia/Kolkata",
	"HKT": "Asia/Hong_Kong",
	"JST": "Asia/Tokyo",
	"KST": "Asia/Seoul",
	"AEST": "Australia/Melbourne", "AEDT": "Australia/Melbourne",
	"NZST": "Pacific/Auckland", "NZDT": "Pacific/Auckland",
}

// Database resolves and caches zones. It is safe for concurrent use.
type Database struct {
	mu    sync.RWMutex
	zones map[string]*Zone
}

func NewDatabase() *Database {
	return &Database{zones: make(map[string]*Zone)}
}

var defaultDB = NewDatabase()

// Default is the process-wide database. Zones are immutable, so sharing
// the cache is safe.
func Default() *Database { return defaultDB }

// Resolve accepts an IANA identifier ("America/Los_Angeles"), "UTC"/"GMT",
// a GMT or UTC offset ("GMT-08:00", "UTC+5:30") or a known abbreviation
// ("PDT"). Anything else fails with calendar.ErrUnknownZone.
func (db *Database) Resolve(id string) (calendar.Zone, error) {
	id = strings.TrimSpace(id)
	switch id {
	case "":
		return nil, fmt.Errorf("%w: empty identifier", calendar.ErrUnknownZone)
	case "UTC", "GMT", "Z", "Etc/UTC", "Etc/GMT":
		return calendar.FixedZone(id, 0), nil
	}
	if secs, ok := ParseGMTOffset(id); ok {
		return calendar.FixedZone(id, secs), nil
	}
	if name, ok := abbreviations[id]; ok {
		return db.load(name)
	}
	return db.load(id)
}

// ResolveOffset is the offset of zone id at t.
func (db *Database) ResolveOffset(id string, t calendar.Instant) (calendar.ZoneOffset, error) {
	z, err := db.Resolve(id)
	if err != nil {
		return calendar.ZoneOffset{}, err
	}
	return z.Offset(t), nil
}

// Abbreviation maps an abbreviation such as "PDT" to its zone identifier.
func Abbreviation(abbr string) (string, bool) {
	id, ok := abbreviations[strings.ToUpper(abbr)]
	return id, ok
}

// daylight lists the abbreviations above that name a daylight-saving offset.
var daylight = map[string]bool{
	"PDT": true, "MDT": true, "CDT": true, "EDT": true, "AKDT": true,
	"BST": true, "WEST": true, "CEST": true, "EEST": true, "AEDT": true, "NZDT": true,
}

// IsDaylightAbbreviation reports whether abbr names a daylight-saving offset.
func IsDaylightAbbreviation(abbr string) bool {
	return daylight[strings.ToUpper(abbr)]
}

func (db *Database) load(id string) (*Zone, error) {
	db.mu.RLock()
	z, ok := db.zones[id]
	db.mu.RUnlock()
	if ok {
		return z, nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil || id == "Local" {
		return nil, fmt.Errorf("%w: %q", calendar.ErrUnknownZone, id)
	}
	z = &Zone{id: id, loc: loc}

	db.mu.Lock()
	db.zones[id] = z
	db.mu.Unlock()
	return z, nil
}

// ParseGMTOffset reads "GMT", "GMT-8", "GMT+05:30", "UTC-0700" and returns
// the offset in seconds.
func ParseGMTOffset(s string) (int, bool) {
	var rest string
	switch {
	case strings.HasPrefix(s, "GMT"):
		rest = s[3:]
	case strings.HasPrefix(s, "UTC"):
		rest = s[3:]
	default:
		return 0, false
	}
	if rest == "" {
		return 0, true
	}
	return parseSignedOffset(rest)
}

// parseSignedOffset reads ±h, ±hh, ±hhmm, ±h:mm or ±hh:mm.
func parseSignedOffset(s string) (int, bool) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]

	var hs, ms string
	switch {
	case strings.Contains(body, ":"):
		hs, ms, _ = strings.Cut(body, ":")
	case len(body) > 2:
		hs, ms = body[:len(body)-2], body[len(body)-2:]
	default:
		hs = body
	}
	h, err := strconv.Atoi(hs)
	if err != nil || len(hs) > 2 || h > 18 {
		return 0, false
	}
	m := 0
	if ms != "" {
		if m, err = strconv.Atoi(ms); err != nil || len(ms) != 2 || m > 59 {
			return 0, false
		}
	}
	return sign * (h*3600 + m*60), true
}

// Location returns a *time.Location for z. IANA zones give their own
// location; any other zone is pinned to its offset at t.
func Location(z calendar.Zone, t calendar.Instant) *time.Location {
	if l, ok := z.(interface{ Location() *time.Location }); ok {
		return l.Location()
	}
	off := z.Offset(t)
	return time.FixedZone(off.Abbreviation, off.Seconds)
}
