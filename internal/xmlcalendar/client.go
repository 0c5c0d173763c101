// Package xmlcalendar supplies per-year Russian working-day exception data
// in the xmlcalendar.ru format, either over HTTP or from the embedded
// dataset.
package xmlcalendar

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/username/workcal/internal/calendar"
)

const (
	defaultBaseURL       = "http://xmlcalendar.ru"
	defaultMaxRetryCount = 3
	defaultHTTPTimeout   = 10 * time.Second
)

// Client fetches year calendars over HTTP with bounded retries. It
// implements calendar.YearSource for the configured span of years.
type Client struct {
	baseURL       string
	minYear       int
	maxYear       int
	maxRetryCount int
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient creates a client serving years minYear through maxYear from the
// given base URL. Empty baseURL and non-positive maxRetryCount fall back to
// the defaults.
func NewClient(baseURL string, minYear, maxYear, maxRetryCount int, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if maxRetryCount <= 0 {
		maxRetryCount = defaultMaxRetryCount
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:       baseURL,
		minYear:       minYear,
		maxYear:       maxYear,
		maxRetryCount: maxRetryCount,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger: logger,
	}
}

// AvailableYears lists the configured year span.
func (c *Client) AvailableYears() []int {
	if c.maxYear < c.minYear {
		return nil
	}

	years := make([]int, 0, c.maxYear-c.minYear+1)
	for year := c.minYear; year <= c.maxYear; year++ {
		years = append(years, year)
	}
	return years
}

// YearExceptions fetches and parses the calendar for the given year.
func (c *Client) YearExceptions(year int) ([]calendar.Exception, error) {
	data, err := c.fetchYearData(year)
	if err != nil {
		return nil, err
	}

	return parseYear(year, data)
}

// fetchYearData downloads the raw calendar document, retrying transient
// failures up to the retry cap. Every failed attempt's error is kept; when
// all attempts fail they are surfaced together. A 404 means the source has
// no data for the year and is not retried.
func (c *Client) fetchYearData(year int) ([]byte, error) {
	url := fmt.Sprintf("%s/data/ru/%d/calendar.xml", c.baseURL, year)

	attempts := make([]error, 0, c.maxRetryCount)
	for attempt := 0; attempt < c.maxRetryCount; attempt++ {
		data, fatal, err := c.fetchOnce(url, year)
		if err == nil {
			return data, nil
		}
		if fatal {
			return nil, err
		}

		c.logger.Warn("Calendar fetch attempt failed",
			zap.Int("year", year),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		attempts = append(attempts, err)
	}

	return nil, &calendar.FetchError{Year: year, Attempts: attempts}
}

func (c *Client) fetchOnce(url string, year int) (data []byte, fatal bool, err error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, true, &calendar.YearNotFoundError{Year: year}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("request to %q returned status %d [%s]",
			url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response: %w", err)
	}

	return data, false, nil
}
