package calendar

import (
	"time"

	"github.com/username/workcal/pkg/dateutil"
)

// FixedProvider serves overrides from a caller-supplied table. It never
// loads anything and never fails.
type FixedProvider struct {
	exceptions map[time.Time]DayType
}

// NewFixedProvider wraps the given exception table. Keys are normalized to
// their date-only part.
func NewFixedProvider(exceptions map[time.Time]DayType) *FixedProvider {
	normalized := make(map[time.Time]DayType, len(exceptions))
	for date, dayType := range exceptions {
		normalized[dateutil.DateKey(date)] = dayType
	}

	return &FixedProvider{exceptions: normalized}
}

// TryGet looks up the override for a single date.
func (p *FixedProvider) TryGet(date time.Time) (DayType, bool, error) {
	dayType, ok := p.exceptions[dateutil.DateKey(date)]
	return dayType, ok, nil
}

// GetExceptionsInPeriod returns every override with start <= date < end.
func (p *FixedProvider) GetExceptionsInPeriod(start, end time.Time) ([]Exception, error) {
	start = dateutil.Normalize(start)
	end = dateutil.Normalize(end)

	var result []Exception
	for date, dayType := range p.exceptions {
		if !date.Before(start) && date.Before(end) {
			result = append(result, Exception{Date: date, Type: dayType})
		}
	}

	return result, nil
}
