package calendar

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/username/workcal/pkg/dateutil"
)

// CachedProvider lazily loads exception data from a YearSource one year at a
// time and memoizes it. Safe for concurrent use: concurrent requests for the
// same unloaded year collapse into a single fetch, and a year is only marked
// loaded after its data has been fully merged. A failed load leaves the
// table untouched, so a later call retries from zero.
type CachedProvider struct {
	source YearSource
	logger *zap.Logger

	group singleflight.Group

	mu          sync.RWMutex
	loadedYears map[int]bool
	exceptions  map[time.Time]DayType

	supportedRange DateRange
}

// NewCachedProvider creates a caching provider over source. The supported
// date range is derived from the years the source advertises: January 1 of
// the first year through December 31 of the last.
func NewCachedProvider(source YearSource, logger *zap.Logger) (*CachedProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	years := source.AvailableYears()
	if len(years) == 0 {
		return nil, errors.New("year source advertises no available years")
	}

	minYear, maxYear := years[0], years[0]
	for _, year := range years[1:] {
		if year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	start := time.Date(minYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(maxYear, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(1, 0, 0).
		AddDate(0, 0, -1)

	supportedRange, err := NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	return &CachedProvider{
		source:         source,
		logger:         logger,
		loadedYears:    make(map[int]bool),
		exceptions:     make(map[time.Time]DayType),
		supportedRange: supportedRange,
	}, nil
}

// SupportedDateRange returns the span of years the provider can serve.
func (p *CachedProvider) SupportedDateRange() DateRange {
	return p.supportedRange
}

// TryGet looks up the override for a single date, loading the date's year
// first if necessary.
func (p *CachedProvider) TryGet(date time.Time) (DayType, bool, error) {
	date = dateutil.DateKey(date)

	if err := p.ensureYear(date.Year()); err != nil {
		return 0, false, err
	}

	p.mu.RLock()
	dayType, ok := p.exceptions[date]
	p.mu.RUnlock()

	return dayType, ok, nil
}

// GetExceptionsInPeriod returns every override with start <= date < end,
// loading all touched years first.
func (p *CachedProvider) GetExceptionsInPeriod(start, end time.Time) ([]Exception, error) {
	start = dateutil.Normalize(start)
	end = dateutil.Normalize(end)

	for year := start.Year(); year <= end.Year(); year++ {
		if err := p.ensureYear(year); err != nil {
			return nil, err
		}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []Exception
	for date, dayType := range p.exceptions {
		if !date.Before(start) && date.Before(end) {
			result = append(result, Exception{Date: date, Type: dayType})
		}
	}

	return result, nil
}

// ensureYear loads the year's exceptions unless it is already loaded.
// Concurrent callers for the same year share one fetch; the loaded marker is
// set only after the fetched entries are fully merged, so readers never see
// a partially merged year.
func (p *CachedProvider) ensureYear(year int) error {
	p.mu.RLock()
	loaded := p.loadedYears[year]
	p.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := p.group.Do(strconv.Itoa(year), func() (interface{}, error) {
		p.mu.RLock()
		loaded := p.loadedYears[year]
		p.mu.RUnlock()
		if loaded {
			return nil, nil
		}

		entries, err := p.source.YearExceptions(year)
		if err != nil {
			p.logger.Warn("Failed to load year exceptions",
				zap.Int("year", year),
				zap.Error(err))
			return nil, err
		}

		p.mu.Lock()
		for _, exception := range entries {
			p.exceptions[dateutil.DateKey(exception.Date)] = exception.Type
		}
		p.loadedYears[year] = true
		p.mu.Unlock()

		p.logger.Debug("Year exceptions loaded",
			zap.Int("year", year),
			zap.Int("exceptions", len(entries)))

		return nil, nil
	})

	return err
}
