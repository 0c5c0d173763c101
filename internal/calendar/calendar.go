// Package calendar answers working-day questions against the ordinary
// Gregorian weekly pattern (Mon-Fri working, Sat-Sun off) overridden by a
// sparse per-date exception table.
package calendar

import (
	"time"

	"github.com/username/workcal/pkg/dateutil"
)

// dayOfWeekOffsets maps a weekday to its distance from Monday.
var dayOfWeekOffsets = map[time.Weekday]int{
	time.Monday:    0,
	time.Tuesday:   1,
	time.Wednesday: 2,
	time.Thursday:  3,
	time.Friday:    4,
	time.Saturday:  5,
	time.Sunday:    6,
}

// WorkingCalendar resolves and counts working days. It is immutable after
// construction and holds no state beyond its exceptions provider.
type WorkingCalendar struct {
	provider ExceptionsProvider
}

// New creates a working calendar over the given provider.
func New(provider ExceptionsProvider) *WorkingCalendar {
	return &WorkingCalendar{provider: provider}
}

// SupportedDateRange returns the span of years the underlying provider can
// serve. The boolean is false for providers without a bounded range.
func (c *WorkingCalendar) SupportedDateRange() (DateRange, bool) {
	if ranger, ok := c.provider.(SupportedRanger); ok {
		return ranger.SupportedDateRange(), true
	}
	return DateRange{}, false
}

// GetDayType resolves the day type of the given date-time. An override from
// the provider always wins; otherwise Saturday and Sunday are weekends and
// every other day is working.
func (c *WorkingCalendar) GetDayType(dateTime time.Time) (DayType, error) {
	date := dateutil.DateKey(dateTime)

	dayType, ok, err := c.provider.TryGet(date)
	if err != nil {
		return 0, err
	}
	if ok {
		return dayType, nil
	}

	if dateutil.IsWeekend(date) {
		return DayTypeWeekend, nil
	}
	return DayTypeWorking, nil
}

// IsWorkingDay reports whether the given date-time falls on a working day.
// Working and short days count as working; weekends and holidays do not.
func (c *WorkingCalendar) IsWorkingDay(dateTime time.Time) (bool, error) {
	dayType, err := c.GetDayType(dateTime)
	if err != nil {
		return false, err
	}

	switch dayType {
	case DayTypeWorking, DayTypeShort:
		return true, nil
	case DayTypeHoliday, DayTypeWeekend:
		return false, nil
	default:
		return false, &UnsupportedDayTypeError{Type: dayType}
	}
}

// CountWorkingDaysInPeriod counts whole working days in [start, end).
// Partial boundary days are prorated: the fraction of a working first or
// last day contributes to the total, with whole days credited after integer
// truncation. The count is closed-form over the weekly pattern, so the cost
// is proportional to the number of exceptions in the period rather than its
// length.
func (c *WorkingCalendar) CountWorkingDaysInPeriod(start, end time.Time) (int, error) {
	start = dateutil.Normalize(start)
	end = dateutil.Normalize(end)

	if end.Before(start) {
		return 0, ErrInvalidPeriod
	}
	if end.Equal(start) {
		return 0, nil
	}

	// A partial first day is excluded from the whole-day span and handled
	// by proration below; the last day is always excluded (end exclusive).
	startRounded := dateutil.DateKey(start)
	if !startRounded.Equal(start) {
		startRounded = startRounded.AddDate(0, 0, 1)
	}
	endRounded := dateutil.DateKey(end)

	totalElapsedDays := int(endRounded.Sub(startRounded).Hours() / 24)

	daysFromNearestMonday := dayOfWeekOffsets[startRounded.Weekday()] + totalElapsedDays
	weekendDays := (daysFromNearestMonday / 7) * 2
	if daysFromNearestMonday%7 == 6 {
		weekendDays++
	}

	exceptions, err := c.provider.GetExceptionsInPeriod(startRounded, endRounded)
	if err != nil {
		return 0, err
	}

	// Holidays on weekends are already excluded by the weekend count;
	// working and short overrides only matter on days the weekend count
	// incorrectly excluded.
	holidays := 0
	workingWeekendDays := 0
	for _, exception := range exceptions {
		switch exception.Type {
		case DayTypeHoliday:
			if !dateutil.IsWeekend(exception.Date) {
				holidays++
			}
		case DayTypeWorking, DayTypeShort:
			if dateutil.IsWeekend(exception.Date) {
				workingWeekendDays++
			}
		}
	}

	var boundaryParts time.Duration
	startIsWorking, err := c.IsWorkingDay(start)
	if err != nil {
		return 0, err
	}
	if startIsWorking {
		boundaryParts += startRounded.Sub(start)
	}
	endIsWorking, err := c.IsWorkingDay(end)
	if err != nil {
		return 0, err
	}
	if endIsWorking {
		boundaryParts += end.Sub(endRounded)
	}
	totalElapsedDays += int(boundaryParts.Hours() / 24)

	return totalElapsedDays - weekendDays - holidays + workingWeekendDays, nil
}

// AddWorkingDays returns the date-time n working days away from dateTime,
// stepping forward for positive n and backward for negative n. Time-of-day
// is preserved; only the date advances. Termination relies on every week
// containing at least one working day; an exception table marking entire
// weeks as holidays is not a supported configuration.
func (c *WorkingCalendar) AddWorkingDays(dateTime time.Time, n int) (time.Time, error) {
	if n == 0 {
		return dateTime, nil
	}

	step := 1
	if n < 0 {
		step = -1
		n = -n
	}

	current := dateTime
	for counted := 0; counted < n; {
		current = current.AddDate(0, 0, step)

		working, err := c.IsWorkingDay(current)
		if err != nil {
			return time.Time{}, err
		}
		if working {
			counted++
		}
	}

	return current, nil
}
