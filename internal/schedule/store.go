package schedule

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/username/window-finder/internal/holiday"
	"github.com/username/window-finder/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrCalendarIndex is returned for a calendar index outside the store
var ErrCalendarIndex = errors.New("calendar index out of range")

// Store holds calendars and the holiday policy used to search them.
//
// Lookups are safe for concurrent use. Mutations must not run concurrently
// with lookups or with each other.
type Store struct {
	baseYear  int
	loc       *time.Location
	logger    *zap.Logger
	calendars []Calendar
	region    holiday.Policy
	custom    *holiday.CustomSet
	cache     *intervalCache
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithLocation sets the location of resolved dates (default time.Local)
func WithLocation(loc *time.Location) StoreOption {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewStore creates an empty store. Date labels resolve against baseYear
// (current year when zero). The region policy defaults to builtin RU.
func NewStore(baseYear int, logger *zap.Logger, opts ...StoreOption) *Store {
	if baseYear == 0 {
		baseYear = time.Now().Year()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	region, _ := holiday.NewRegion("RU")
	s := &Store{
		baseYear: baseYear,
		loc:      time.Local,
		logger:   logger,
		region:   region,
		custom:   holiday.NewCustomSet(),
		cache:    newIntervalCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddCalendar appends a calendar. Empty calendars are ignored.
func (s *Store) AddCalendar(cal Calendar) {
	if len(cal) == 0 {
		s.logger.Debug("Ignoring empty calendar")
		return
	}
	s.calendars = append(s.calendars, cal)
	s.cache.invalidate()
}

// SetCalendars replaces all calendars
func (s *Store) SetCalendars(cals []Calendar) {
	s.calendars = slices.Clone(cals)
	s.cache.invalidate()
}

// Len returns the number of calendars
func (s *Store) Len() int {
	return len(s.calendars)
}

// BaseYear returns the year used for date labels
func (s *Store) BaseYear() int {
	return s.baseYear
}

// SetBaseYear changes the year used for date labels
func (s *Store) SetBaseYear(year int) {
	s.baseYear = year
	s.cache.invalidate()
}

// Location returns the location of resolved dates
func (s *Store) Location() *time.Location {
	return s.loc
}

// SetHolidayPolicy switches to the builtin calendar of region
func (s *Store) SetHolidayPolicy(region string, years ...int) error {
	r, err := holiday.NewRegion(region, years...)
	if err != nil {
		return fmt.Errorf("failed to set holiday policy: %w", err)
	}
	s.SetRegionPolicy(r)
	return nil
}

// SetRegionPolicy sets the exact-date holiday policy. Nil disables it.
func (s *Store) SetRegionPolicy(p holiday.Policy) {
	if p == nil {
		p = holiday.None
	}
	s.region = p
	s.cache.invalidate()
}

// AddCustomHoliday adds a holiday matched by day and month in every year
func (s *Store) AddCustomHoliday(day, month int) error {
	d, err := holiday.NewDayMonth(day, month)
	if err != nil {
		return fmt.Errorf("invalid custom holiday: %w", err)
	}
	s.custom.Add(d)
	s.cache.invalidate()
	return nil
}

// SetCustomHolidays replaces all custom holidays
func (s *Store) SetCustomHolidays(days []holiday.DayMonth) error {
	for _, d := range days {
		if _, err := holiday.NewDayMonth(d.Day, int(d.Month)); err != nil {
			return fmt.Errorf("invalid custom holiday %s: %w", d, err)
		}
	}
	s.custom.Replace(days)
	s.cache.invalidate()
	return nil
}

// CustomHolidays returns the custom holidays ordered by date
func (s *Store) CustomHolidays() []holiday.DayMonth {
	return s.custom.List()
}

// IsHoliday checks the region calendar, then the custom holidays
func (s *Store) IsHoliday(date time.Time) bool {
	return holiday.Union{s.region, s.custom}.IsHoliday(date)
}

// BusyIntervals returns the busy intervals of a calendar on date, sorted by start.
// The bool reports whether the calendar has a record for the date at all.
func (s *Store) BusyIntervals(index int, date time.Time) ([]Interval, bool, error) {
	idx, err := s.index(index)
	if err != nil {
		return nil, false, err
	}
	busy, ok := idx.days[dateutil.DateKey(date)]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(busy), true, nil
}

// Skipped returns the number of day records dropped as malformed
func (s *Store) Skipped(index int) (int, error) {
	idx, err := s.index(index)
	if err != nil {
		return 0, err
	}
	return idx.skipped, nil
}

// CheckIndex validates a calendar index
func (s *Store) CheckIndex(index int) error {
	if index < 0 || index >= len(s.calendars) {
		return fmt.Errorf("%w: %d (have %d)", ErrCalendarIndex, index, len(s.calendars))
	}
	return nil
}

func (s *Store) index(index int) (*dayIndex, error) {
	if err := s.CheckIndex(index); err != nil {
		return nil, err
	}
	return s.cache.get(index, func() *dayIndex {
		return s.buildIndex(index)
	}), nil
}

func (s *Store) buildIndex(index int) *dayIndex {
	idx := &dayIndex{days: make(map[string][]Interval)}

	for _, rec := range s.calendars[index] {
		date, busy, err := s.parseRecord(rec)
		if err != nil {
			idx.skipped++
			s.logger.Debug("Skipping malformed day record",
				zap.Int("calendar", index),
				zap.String("day", rec.Day),
				zap.Error(err))
			continue
		}
		key := dateutil.DateKey(date)
		idx.days[key] = append(idx.days[key], busy...)
	}

	for _, busy := range idx.days {
		sort.SliceStable(busy, func(i, j int) bool {
			return busy[i].Start < busy[j].Start
		})
	}

	s.logger.Debug("Busy interval index built",
		zap.Int("calendar", index),
		zap.Int("dates", len(idx.days)),
		zap.Int("skipped", idx.skipped))
	return idx
}

// parseRecord resolves a record. Any bad lesson time rejects the whole record.
func (s *Store) parseRecord(rec DayRecord) (time.Time, []Interval, error) {
	date, err := ParseDateLabel(rec.Day, s.baseYear, s.loc)
	if err != nil {
		return time.Time{}, nil, err
	}

	busy := make([]Interval, 0, len(rec.Lessons))
	for _, l := range rec.Lessons {
		if l.Time == "" {
			continue
		}
		iv, err := ParseTimeRange(l.Time)
		if err != nil {
			return time.Time{}, nil, err
		}
		busy = append(busy, iv)
	}
	return date, busy, nil
}
