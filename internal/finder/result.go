package finder

import (
	"time"

	"github.com/username/window-finder/internal/schedule"
)

// Window is a free slot on one date
type Window struct {
	Date            time.Time
	Start           schedule.Clock
	End             schedule.Clock
	DurationMinutes int
}

func newWindow(date time.Time, start schedule.Clock, minutes int) Window {
	return Window{
		Date:            date,
		Start:           start,
		End:             start + schedule.Clock(minutes),
		DurationMinutes: minutes,
	}
}

// StartTime returns the window start as an instant
func (w Window) StartTime() time.Time {
	return w.Start.On(w.Date)
}

// EndTime returns the window end as an instant
func (w Window) EndTime() time.Time {
	return w.End.On(w.Date)
}

// MultiDayWindow is a run of consecutive days with one window each
type MultiDayWindow struct {
	StartDate    time.Time
	EndDate      time.Time
	DaysCount    int
	WidthMinutes int
	Windows      []Window
}

// VolumeWindow is a set of windows adding up to a total
type VolumeWindow struct {
	TotalMinutes int
	DaysCount    int // distinct dates
	Windows      []Window
}

// CommonWindow is a window free in several calendars at once
type CommonWindow struct {
	Window
	ParticipantsCount int
	CalendarIndices   []int
}
