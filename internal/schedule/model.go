// Package schedule holds weekly occupancy calendars and turns them into
// per-date busy intervals.
package schedule

import (
	"fmt"
	"time"
)

// Lesson is one occupied slot. Only Time is interpreted.
type Lesson struct {
	Time     string `json:"time" yaml:"time"` // "HH:MM-HH:MM"
	Subject  string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Room     string `json:"room,omitempty" yaml:"room,omitempty"`
	Lecturer string `json:"lecturer,omitempty" yaml:"lecturer,omitempty"`
	Teacher  string `json:"teacher,omitempty" yaml:"teacher,omitempty"`
}

// DayRecord is a date label ("Пн, 17 февраля") with its lessons
type DayRecord struct {
	Day     string   `json:"day" yaml:"day"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

// Calendar is one party's schedule
type Calendar []DayRecord

// Clock is a wall-clock time in minutes since midnight
type Clock int

// MinutesPerDay is the end of the last representable Clock
const MinutesPerDay Clock = 24 * 60

// ClockAt returns the Clock for hour:minute
func ClockAt(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// Hour returns the hour part
func (c Clock) Hour() int {
	return int(c) / 60
}

// Minute returns the minute part
func (c Clock) Minute() int {
	return int(c) % 60
}

// String formats as HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On returns the instant of c on the given date, in the date's location
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

// Interval is a [Start, End) time range within one day. Start < End.
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// Minutes returns the interval duration
func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
