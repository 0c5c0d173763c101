package xmlcalendar

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/workcal/internal/calendar"
)

// yearDocument represents an xmlcalendar.ru per-year calendar document.
type yearDocument struct {
	XMLName xml.Name     `xml:"calendar"`
	Year    int          `xml:"year,attr"`
	Days    []dayElement `xml:"days>day"`
}

type dayElement struct {
	Date string `xml:"d,attr"` // "MM.DD"
	Type string `xml:"t,attr"` // 1 = holiday, 2 = short
}

// parseYear decodes a year calendar document into exception entries.
// An unrecognized day type code is fatal: it signals a data-shape problem,
// not a transient fault.
func parseYear(year int, data []byte) ([]calendar.Exception, error) {
	var doc yearDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse calendar document for year %d: %w", year, err)
	}

	exceptions := make([]calendar.Exception, 0, len(doc.Days))
	for _, day := range doc.Days {
		month, dayOfMonth, err := parseDayAttribute(day.Date)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}

		var dayType calendar.DayType
		switch day.Type {
		case "1":
			dayType = calendar.DayTypeHoliday
		case "2":
			dayType = calendar.DayTypeShort
		default:
			return nil, &calendar.UnsupportedDayTypeCodeError{Code: day.Type}
		}

		exceptions = append(exceptions, calendar.Exception{
			Date: time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC),
			Type: dayType,
		})
	}

	return exceptions, nil
}

// parseDayAttribute splits a "MM.DD" day attribute into its components.
func parseDayAttribute(value string) (month, day int, err error) {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed day attribute %q", value)
	}

	month, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed month in day attribute %q", value)
	}

	day, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed day in day attribute %q", value)
	}

	return month, day, nil
}
