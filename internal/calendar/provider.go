package calendar

import "time"

// Exception is a single date whose day type differs from the weekly pattern.
// Weekend is never an exception type: it is the default, not an override.
type Exception struct {
	Date time.Time
	Type DayType
}

// ExceptionsProvider answers override lookups for the working calendar.
// Implementations guarantee that the data for every year touched by a query
// is loaded before answering.
type ExceptionsProvider interface {
	// TryGet looks up the override for a single date. The boolean reports
	// whether an override exists.
	TryGet(date time.Time) (DayType, bool, error)

	// GetExceptionsInPeriod returns every override with start <= date < end,
	// in no particular order.
	GetExceptionsInPeriod(start, end time.Time) ([]Exception, error)
}

// SupportedRanger is implemented by providers that can only serve a bounded
// span of years.
type SupportedRanger interface {
	SupportedDateRange() DateRange
}

// YearSource supplies per-year exception data to a caching provider.
type YearSource interface {
	// AvailableYears lists the years the source has data for.
	AvailableYears() []int

	// YearExceptions returns all overrides of the given year.
	YearExceptions(year int) ([]Exception, error)
}
