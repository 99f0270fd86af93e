package finder

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned when a SearchConfig cannot be searched
var ErrInvalidConfig = errors.New("invalid search config")

const (
	DefaultMinStartHour    = 7
	DefaultMaxEndHour      = 23
	DefaultMaxDaysToCheck  = 30
	DefaultMinWidthMinutes = 60
)

// SearchConfig is the parameter bundle shared by all searches.
// Start from DefaultSearchConfig: the zero value does not validate.
type SearchConfig struct {
	WidthMinutes    int   `validate:"gte=0"`
	DaysCount       int   `validate:"gte=0"`
	TotalMinutes    int   `validate:"gte=0"`
	MinWidthMinutes int   `validate:"gte=0"`
	CalendarIndex   int   `validate:"gte=0"`
	CalendarIndices []int `validate:"omitempty,dive,gte=0"` // nil means every calendar

	MinStartHour int `validate:"gte=0,lte=23"`
	MaxEndHour   int `validate:"gte=1,lte=24,gtfield=MinStartHour"`

	IncludeWeekends bool
	IncludeHolidays bool

	Deadline       *time.Time // inclusive
	StartDate      *time.Time // today when nil
	MaxDaysToCheck int        `validate:"gt=0"`
}

// DefaultSearchConfig returns the default bounds and budget
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MinWidthMinutes: DefaultMinWidthMinutes,
		MinStartHour:    DefaultMinStartHour,
		MaxEndHour:      DefaultMaxEndHour,
		MaxDaysToCheck:  DefaultMaxDaysToCheck,
	}
}
