package calendar

import (
	"errors"
	"fmt"
)

// Error kinds reported by the engine. Callers match them with errors.Is;
// detail types such as FieldError unwrap to one of these.
var (
	ErrUnsatisfiableFields   = errors.New("calendar: no instant satisfies the fields")
	ErrAmbiguousFields       = errors.New("calendar: fields match more than one instant")
	ErrUnknownZone           = errors.New("calendar: unknown time zone")
	ErrUnknownCalendarSystem = errors.New("calendar: unknown calendar system")
	ErrPatternMismatch       = errors.New("calendar: input does not match pattern")
	ErrFieldOutOfRange       = errors.New("calendar: field value out of range")
)

// FieldError reports which field caused a resolution failure.
type FieldError struct {
	Field Field
	Value int
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v (%s=%d)", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func outOfRange(f Field, v int) error {
	return &FieldError{Field: f, Value: v, Err: ErrFieldOutOfRange}
}

func unsatisfiable(f Field, v int) error {
	return &FieldError{Field: f, Value: v, Err: ErrUnsatisfiableFields}
}
