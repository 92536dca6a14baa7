package model

import "civcal/internal/calendar"

// Moment is a named instant, the unit the moment catalog reads and writes.
type Moment struct {
	UID  string // iCalendar UID
	Name string

	Description string

	// At is the instant itself.
	At calendar.Instant

	// ZoneID is the IANA zone the moment was recorded in, used when it is
	// shown again. Empty means UTC.
	ZoneID string

	// Rule is an optional RRULE value (without the "RRULE:" prefix).
	Rule string
}

// Occurrence is a single instance of a recurring moment after expansion.
type Occurrence struct {
	UID  string
	Name string

	// Index counts occurrences from 0 in rule order.
	Index int

	At calendar.Instant

	// Fields holds the instant's calendar fields in the calendar the
	// expansion ran with.
	Fields calendar.Fields
}
