package holiday

import (
	"time"

	"github.com/username/window-finder/pkg/dateutil"
)

// DayType represents the type of day in a production calendar
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShortened
)

// String returns the production calendar name of the day type
func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeShortened:
		return "shortened"
	}
	return "unknown"
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	WorkingHours int
	Note         string
}

// dayTable indexes production calendar days by date key
type dayTable map[string]DayInfo

func (t dayTable) add(info DayInfo) {
	t[dateutil.DateKey(info.Date)] = info
}

func (t dayTable) isHoliday(date time.Time) bool {
	info, ok := t[dateutil.DateKey(date)]
	return ok && info.Type == DayTypeHoliday
}

// nonWorkingType classifies a non-working day by its weekday
func nonWorkingType(date time.Time) DayType {
	if dateutil.IsWeekend(date) {
		return DayTypeWeekend
	}
	return DayTypeHoliday
}
