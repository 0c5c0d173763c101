package xmlcalendar

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/username/workcal/internal/calendar"
)

//go:embed data/*.xml
var calendarFS embed.FS

// Embedded serves year calendars from the dataset shipped with the module.
// It implements calendar.YearSource.
type Embedded struct{}

// NewEmbedded returns a source over the embedded calendar dataset.
func NewEmbedded() *Embedded {
	return &Embedded{}
}

// AvailableYears enumerates the years present in the embedded dataset.
func (e *Embedded) AvailableYears() []int {
	entries, err := fs.ReadDir(calendarFS, "data")
	if err != nil {
		return nil
	}

	var years []int
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".xml")
		year, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		years = append(years, year)
	}

	sort.Ints(years)
	return years
}

// YearExceptions parses the embedded calendar for the given year.
func (e *Embedded) YearExceptions(year int) ([]calendar.Exception, error) {
	data, err := calendarFS.ReadFile(fmt.Sprintf("data/%d.xml", year))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &calendar.YearNotFoundError{Year: year}
		}
		return nil, err
	}

	return parseYear(year, data)
}
