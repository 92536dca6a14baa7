package calendar

import (
	"strconv"
	"strings"
)

// Field names one calendar component.
type Field int

const (
	Era Field = iota
	Year
	Month
	Day
	Hour
	Minute
	Second
	Nanosecond
	Weekday
	WeekdayOrdinal
	WeekOfYear
	WeekOfMonth
	Quarter
	YearForWeekOfYear
	DayOfYear

	numFields
)

var fieldNames = [numFields]string{
	"era", "year", "month", "day", "hour", "minute", "second", "nanosecond",
	"weekday", "weekdayOrdinal", "weekOfYear", "weekOfMonth", "quarter",
	"yearForWeekOfYear", "dayOfYear",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// FieldSet is a request set of fields for extraction.
type FieldSet uint32

// AllFields requests every field.
const AllFields FieldSet = 1<<numFields - 1

func NewFieldSet(fields ...Field) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s = s.With(f)
	}
	return s
}

func (s FieldSet) With(f Field) FieldSet { return s | 1<<uint(f) }
func (s FieldSet) Has(f Field) bool      { return s&(1<<uint(f)) != 0 }

// Fields lists the members of s in field order.
func (s FieldSet) Fields() []Field {
	var out []Field
	for f := Field(0); f < numFields; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Fields is a sparse set of calendar field values. The zero value has no
// fields populated. Set returns a modified copy, so a Fields value can be
// shared freely.
type Fields struct {
	set FieldSet
	v   [numFields]int
}

// DateFields is shorthand for a year/month/day triple.
func DateFields(year, month, day int) Fields {
	return Fields{}.Set(Year, year).Set(Month, month).Set(Day, day)
}

func (f Fields) Set(field Field, value int) Fields {
	f.set = f.set.With(field)
	f.v[field] = value
	return f
}

func (f Fields) Clear(field Field) Fields {
	f.set &^= 1 << uint(field)
	f.v[field] = 0
	return f
}

func (f Fields) Get(field Field) (int, bool) {
	if !f.set.Has(field) {
		return 0, false
	}
	return f.v[field], true
}

// Value returns the field value, or 0 when unset.
func (f Fields) Value(field Field) int { return f.v[field] }

func (f Fields) Has(field Field) bool { return f.set.Has(field) }

// Populated returns the set of fields that carry a value.
func (f Fields) Populated() FieldSet { return f.set }

// Map returns the populated fields keyed by name.
func (f Fields) Map() map[string]int {
	m := make(map[string]int)
	for _, field := range f.set.Fields() {
		m[field.String()] = f.v[field]
	}
	return m
}

func (f Fields) String() string {
	var b strings.Builder
	for _, field := range f.set.Fields() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field.String())
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(f.v[field]))
	}
	return b.String()
}
