package calendar

import (
	"fmt"
	"time"

	"github.com/username/workcal/pkg/dateutil"
)

// DateRange is an inclusive, date-only interval. Time-of-day information is
// stripped on construction.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a date range from start to end inclusive. Both bounds
// are truncated to their date part. Returns ErrInvalidRange when start is
// after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = dateutil.DateKey(start)
	end = dateutil.DateKey(end)

	if start.After(end) {
		return DateRange{}, ErrInvalidRange
	}

	return DateRange{Start: start, End: end}, nil
}

// IsInRange reports whether date falls within the range, bounds included.
func (r DateRange) IsInRange(date time.Time) bool {
	date = dateutil.DateKey(date)
	return !date.Before(r.Start) && !date.After(r.End)
}

// Intersect returns the overlap of two ranges. The second return value is
// false when the ranges are disjoint. Ranges touching at exactly one date
// intersect in a single-date range.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	earlier, later := r, other
	if other.Start.Before(r.Start) {
		earlier, later = other, r
	}

	if later.Start.After(earlier.End) {
		return DateRange{}, false
	}

	end := earlier.End
	if later.End.Before(end) {
		end = later.End
	}

	return DateRange{Start: later.Start, End: end}, true
}

// Equal reports structural equality on both bounds.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
