package calendar

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeYearSource counts loads per year and can fail the first few attempts.
type fakeYearSource struct {
	mu        sync.Mutex
	years     []int
	data      map[int][]Exception
	failFirst map[int]int
	calls     map[int]int
	loadDelay time.Duration
}

func newFakeYearSource(years ...int) *fakeYearSource {
	return &fakeYearSource{
		years:     years,
		data:      make(map[int][]Exception),
		failFirst: make(map[int]int),
		calls:     make(map[int]int),
	}
}

func (s *fakeYearSource) AvailableYears() []int {
	return s.years
}

func (s *fakeYearSource) YearExceptions(year int) ([]Exception, error) {
	s.mu.Lock()
	s.calls[year]++
	shouldFail := s.failFirst[year] > 0
	if shouldFail {
		s.failFirst[year]--
	}
	s.mu.Unlock()

	if s.loadDelay > 0 {
		time.Sleep(s.loadDelay)
	}
	if shouldFail {
		return nil, fmt.Errorf("transient failure loading year %d", year)
	}
	return s.data[year], nil
}

func (s *fakeYearSource) callCount(year int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[year]
}

func TestNewCachedProvider_SupportedDateRange(t *testing.T) {
	source := newFakeYearSource(2021, 2019, 2020)

	provider, err := NewCachedProvider(source, nil)
	if err != nil {
		t.Fatalf("NewCachedProvider() error = %v", err)
	}

	want := mustRange(t, date(2019, time.January, 1), date(2021, time.December, 31))
	if got := provider.SupportedDateRange(); !got.Equal(want) {
		t.Errorf("SupportedDateRange() = %v, want %v", got, want)
	}
}

func TestNewCachedProvider_NoYears(t *testing.T) {
	if _, err := NewCachedProvider(newFakeYearSource(), nil); err == nil {
		t.Fatal("NewCachedProvider() expected error for a source without years")
	}
}

func TestCachedProvider_LoadsYearOnce(t *testing.T) {
	source := newFakeYearSource(2020)
	source.data[2020] = []Exception{
		{Date: date(2020, time.May, 1), Type: DayTypeHoliday},
	}

	provider, err := NewCachedProvider(source, nil)
	if err != nil {
		t.Fatalf("NewCachedProvider() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		dayType, ok, err := provider.TryGet(date(2020, time.May, 1))
		if err != nil {
			t.Fatalf("TryGet() error = %v", err)
		}
		if !ok || dayType != DayTypeHoliday {
			t.Fatalf("TryGet() = %v, %v; want holiday, true", dayType, ok)
		}
	}
	if _, err := provider.GetExceptionsInPeriod(date(2020, time.April, 1), date(2020, time.June, 1)); err != nil {
		t.Fatalf("GetExceptionsInPeriod() error = %v", err)
	}

	if got := source.callCount(2020); got != 1 {
		t.Errorf("year 2020 loaded %d times, want 1", got)
	}
}

func TestCachedProvider_ConcurrentCallersShareOneLoad(t *testing.T) {
	source := newFakeYearSource(2020)
	source.data[2020] = []Exception{
		{Date: date(2020, time.May, 1), Type: DayTypeHoliday},
	}
	source.loadDelay = 20 * time.Millisecond

	provider, err := NewCachedProvider(source, nil)
	if err != nil {
		t.Fatalf("NewCachedProvider() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dayType, ok, err := provider.TryGet(date(2020, time.May, 1))
			if err != nil {
				t.Errorf("TryGet() error = %v", err)
				return
			}
			if !ok || dayType != DayTypeHoliday {
				t.Errorf("TryGet() = %v, %v; want holiday, true", dayType, ok)
			}
		}()
	}
	wg.Wait()

	if got := source.callCount(2020); got != 1 {
		t.Errorf("year 2020 loaded %d times under concurrency, want 1", got)
	}
}

func TestCachedProvider_FailedLoadIsRetried(t *testing.T) {
	source := newFakeYearSource(2020)
	source.data[2020] = []Exception{
		{Date: date(2020, time.May, 1), Type: DayTypeHoliday},
	}
	source.failFirst[2020] = 1

	provider, err := NewCachedProvider(source, nil)
	if err != nil {
		t.Fatalf("NewCachedProvider() error = %v", err)
	}

	if _, _, err := provider.TryGet(date(2020, time.May, 1)); err == nil {
		t.Fatal("TryGet() expected error from the failing load")
	}

	// The failed attempt must not have marked the year loaded.
	dayType, ok, err := provider.TryGet(date(2020, time.May, 1))
	if err != nil {
		t.Fatalf("TryGet() after failed load error = %v", err)
	}
	if !ok || dayType != DayTypeHoliday {
		t.Errorf("TryGet() = %v, %v; want holiday, true", dayType, ok)
	}

	if got := source.callCount(2020); got != 2 {
		t.Errorf("year 2020 loaded %d times, want 2 (one failure, one retry)", got)
	}
}

func TestCachedProvider_ExceptionsInPeriodAcrossYears(t *testing.T) {
	source := newFakeYearSource(2020, 2021)
	source.data[2020] = []Exception{
		{Date: date(2020, time.December, 31), Type: DayTypeShort},
	}
	source.data[2021] = []Exception{
		{Date: date(2021, time.January, 1), Type: DayTypeHoliday},
		{Date: date(2021, time.March, 8), Type: DayTypeHoliday},
	}

	provider, err := NewCachedProvider(source, nil)
	if err != nil {
		t.Fatalf("NewCachedProvider() error = %v", err)
	}

	exceptions, err := provider.GetExceptionsInPeriod(date(2020, time.December, 1), date(2021, time.February, 1))
	if err != nil {
		t.Fatalf("GetExceptionsInPeriod() error = %v", err)
	}
	if len(exceptions) != 2 {
		t.Fatalf("GetExceptionsInPeriod() returned %d entries, want 2", len(exceptions))
	}
	if source.callCount(2020) != 1 || source.callCount(2021) != 1 {
		t.Errorf("loads = %d/%d, want 1/1", source.callCount(2020), source.callCount(2021))
	}

	// Empty interval never errors and loads nothing new.
	empty, err := provider.GetExceptionsInPeriod(date(2021, time.March, 1), date(2021, time.March, 1))
	if err != nil {
		t.Fatalf("GetExceptionsInPeriod() on empty interval error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("GetExceptionsInPeriod() on empty interval returned %d entries", len(empty))
	}
}

func TestCachedProvider_SourceErrorPropagates(t *testing.T) {
	source := newFakeYearSource(2020)
	source.failFirst[2020] = 100

	provider, err := NewCachedProvider(source, nil)
	if err != nil {
		t.Fatalf("NewCachedProvider() error = %v", err)
	}

	_, err = provider.GetExceptionsInPeriod(date(2020, time.January, 1), date(2020, time.February, 1))
	if err == nil {
		t.Fatal("GetExceptionsInPeriod() expected source error")
	}
	if errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("GetExceptionsInPeriod() error = %v, want source failure", err)
	}
}
