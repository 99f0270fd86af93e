package finder

import (
	"time"

	"github.com/username/window-finder/internal/holiday"
	"github.com/username/window-finder/pkg/dateutil"
)

// IsValidDate reports whether a search may use date.
// Dates after the deadline are never valid. Weekends and holidays are
// excluded unless included explicitly.
func IsValidDate(date time.Time, includeWeekends, includeHolidays bool, deadline *time.Time, policy holiday.Policy) bool {
	if deadline != nil && dateutil.CompareDate(date, *deadline) > 0 {
		return false
	}
	if !includeWeekends && dateutil.IsWeekend(date) {
		return false
	}
	if !includeHolidays && policy != nil && policy.IsHoliday(date) {
		return false
	}
	return true
}
