package calendar

// DayType represents the type of day
type DayType int

const (
	DayTypeWorking DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShort
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorking:
		return "working"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeShort:
		return "short"
	default:
		return "unknown"
	}
}
