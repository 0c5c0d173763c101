package calendar

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	// ErrInvalidRange is returned when a date range is constructed with a
	// start date after its end date.
	ErrInvalidRange = errors.New("start date must be before or equal to end date")

	// ErrInvalidPeriod is returned when a counting period ends before it starts.
	ErrInvalidPeriod = errors.New("period end must not be before period start")
)

// UnsupportedDayTypeCodeError reports an override code from a data source
// that maps to no known day type. It is a data-shape problem and is never
// retried.
type UnsupportedDayTypeCodeError struct {
	Code string
}

func (e *UnsupportedDayTypeCodeError) Error() string {
	return fmt.Sprintf("unsupported day type code %q", e.Code)
}

// YearNotFoundError reports that a data source has no calendar for the
// requested year.
type YearNotFoundError struct {
	Year int
}

func (e *YearNotFoundError) Error() string {
	return fmt.Sprintf("calendar for year %d was not found", e.Year)
}

// FetchError reports that every attempt to fetch a year's calendar data
// failed. It carries the error of each individual attempt.
type FetchError struct {
	Year     int
	Attempts []error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching calendar data for year %d failed after %d attempts: %v",
		e.Year, len(e.Attempts), multierr.Combine(e.Attempts...))
}

func (e *FetchError) Unwrap() []error {
	return e.Attempts
}

// UnsupportedDayTypeError reports a day resolving to a type the counting
// logic does not recognize. It indicates a bug and should be unreachable.
type UnsupportedDayTypeError struct {
	Type DayType
}

func (e *UnsupportedDayTypeError) Error() string {
	return fmt.Sprintf("unknown day type value: %d", int(e.Type))
}
