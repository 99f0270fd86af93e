package holiday

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrUnknownRegion is returned for region codes without a builtin calendar
var ErrUnknownRegion = errors.New("unknown holiday region")

// Policy decides whether a date is a holiday
type Policy interface {
	// IsHoliday checks if the given date is a non-working holiday.
	// Implementations must not perform I/O.
	IsHoliday(date time.Time) bool
}

// CoveragePolicy is a Policy that knows which years it has data for
type CoveragePolicy interface {
	Policy

	// Covers reports whether the policy has authoritative data for the year
	Covers(year int) bool
}

// PolicyFunc adapts a function to Policy
type PolicyFunc func(date time.Time) bool

// IsHoliday calls f(date)
func (f PolicyFunc) IsHoliday(date time.Time) bool {
	return f(date)
}

// None is a Policy without holidays
var None Policy = PolicyFunc(func(time.Time) bool { return false })

// Union reports a holiday when any of its policies does
type Union []Policy

// IsHoliday checks every policy in order
func (u Union) IsHoliday(date time.Time) bool {
	for _, p := range u {
		if p != nil && p.IsHoliday(date) {
			return true
		}
	}
	return false
}

// DayMonth is a year-independent calendar day
type DayMonth struct {
	Day   int
	Month time.Month
}

// NewDayMonth validates day and month. February 29 is accepted.
func NewDayMonth(day, month int) (DayMonth, error) {
	if month < 1 || month > 12 {
		return DayMonth{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	// 2024 is a leap year, so 29.02 passes
	maxDay := time.Date(2024, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > maxDay {
		return DayMonth{}, fmt.Errorf("day must be between 1 and %d for month %d, got %d", maxDay, month, day)
	}
	return DayMonth{Day: day, Month: time.Month(month)}, nil
}

// ParseDayMonth parses "DD.MM"
func ParseDayMonth(s string) (DayMonth, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 2 {
		return DayMonth{}, fmt.Errorf("invalid day.month %q: expected DD.MM", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return DayMonth{}, fmt.Errorf("invalid day in %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return DayMonth{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	return NewDayMonth(day, month)
}

// String formats as DD.MM
func (d DayMonth) String() string {
	return fmt.Sprintf("%02d.%02d", d.Day, int(d.Month))
}

// CustomSet holds user-defined holidays matched by day and month in every year
type CustomSet struct {
	mu   sync.RWMutex
	days map[DayMonth]struct{}
}

// NewCustomSet creates a set from the given days
func NewCustomSet(days ...DayMonth) *CustomSet {
	s := &CustomSet{days: make(map[DayMonth]struct{}, len(days))}
	for _, d := range days {
		s.days[d] = struct{}{}
	}
	return s
}

// Add adds a day to the set
func (s *CustomSet) Add(d DayMonth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[d] = struct{}{}
}

// Replace replaces the whole set
func (s *CustomSet) Replace(days []DayMonth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = make(map[DayMonth]struct{}, len(days))
	for _, d := range days {
		s.days[d] = struct{}{}
	}
}

// List returns the days ordered by month, then day
func (s *CustomSet) List() []DayMonth {
	s.mu.RLock()
	out := make([]DayMonth, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Day < out[j].Day
	})
	return out
}

// IsHoliday matches by day and month only
func (s *CustomSet) IsHoliday(date time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.days[DayMonth{Day: date.Day(), Month: date.Month()}]
	return ok
}
