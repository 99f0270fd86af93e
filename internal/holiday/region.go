package holiday

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/username/window-finder/pkg/dateutil"
)

// Holiday is a single dated holiday
type Holiday struct {
	Date time.Time
	Name string
}

type ruleFunc func(year int) []Holiday

var regionRules = map[string]ruleFunc{
	"RU": russianHolidays,
	"US": unitedStatesHolidays,
}

// SupportedRegions returns the builtin region codes
func SupportedRegions() []string {
	codes := make([]string, 0, len(regionRules))
	for code := range regionRules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Region is a builtin national holiday calendar matched by exact date.
// Years are computed on first use and kept for the lifetime of the Region.
type Region struct {
	code  string
	rules ruleFunc
	mu    sync.RWMutex
	years map[int]map[string]string // year → date key → name
}

// NewRegion creates a Region for the code, precomputing the given years
func NewRegion(code string, years ...int) (*Region, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	rules, ok := regionRules[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownRegion, code, strings.Join(SupportedRegions(), ", "))
	}

	r := &Region{
		code:  code,
		rules: rules,
		years: make(map[int]map[string]string),
	}
	for _, y := range years {
		r.year(y)
	}
	return r, nil
}

// Code returns the region code
func (r *Region) Code() string {
	return r.code
}

// Covers is always true: rules are defined for every year
func (r *Region) Covers(int) bool {
	return true
}

// IsHoliday checks the exact date against the region calendar
func (r *Region) IsHoliday(date time.Time) bool {
	_, ok := r.year(date.Year())[dateutil.DateKey(date)]
	return ok
}

// Holidays returns the year's holidays ordered by date
func (r *Region) Holidays(year int) []Holiday {
	days := r.rules(year)
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

func (r *Region) year(year int) map[string]string {
	r.mu.RLock()
	days, ok := r.years[year]
	r.mu.RUnlock()
	if ok {
		return days
	}

	days = make(map[string]string)
	for _, h := range r.rules(year) {
		days[dateutil.DateKey(h.Date)] = h.Name
	}

	r.mu.Lock()
	r.years[year] = days
	r.mu.Unlock()
	return days
}

func fixed(year int, month time.Month, day int, name string) Holiday {
	return Holiday{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Name: name}
}

// russianHolidays follows the Labour Code non-working holidays (art. 112).
// Government day transfers are not modeled; use the isdayoff source for them.
func russianHolidays(year int) []Holiday {
	days := make([]Holiday, 0, 14)
	for d := 1; d <= 8; d++ {
		name := "New Year Holidays"
		if d == 7 {
			name = "Orthodox Christmas"
		}
		days = append(days, fixed(year, time.January, d, name))
	}
	return append(days,
		fixed(year, time.February, 23, "Defender of the Fatherland Day"),
		fixed(year, time.March, 8, "International Women's Day"),
		fixed(year, time.May, 1, "Holiday of Spring and Labor"),
		fixed(year, time.May, 9, "Victory Day"),
		fixed(year, time.June, 12, "Russia Day"),
		fixed(year, time.November, 4, "Unity Day"),
	)
}

// unitedStatesHolidays lists federal holidays with Saturday/Sunday observance shifts
func unitedStatesHolidays(year int) []Holiday {
	days := make([]Holiday, 0, 16)

	withObserved := func(h Holiday) {
		days = append(days, h)
		switch h.Date.Weekday() {
		case time.Saturday:
			days = append(days, Holiday{Date: h.Date.AddDate(0, 0, -1), Name: h.Name + " (observed)"})
		case time.Sunday:
			days = append(days, Holiday{Date: h.Date.AddDate(0, 0, 1), Name: h.Name + " (observed)"})
		}
	}
	nth := func(month time.Month, weekday time.Weekday, n int, name string) {
		days = append(days, Holiday{Date: dateutil.NthWeekday(year, month, weekday, n, time.UTC), Name: name})
	}

	// New Year's Day on a Saturday is observed on December 31 of the previous year
	newYear := fixed(year, time.January, 1, "New Year's Day")
	days = append(days, newYear)
	if newYear.Date.Weekday() == time.Sunday {
		days = append(days, Holiday{Date: newYear.Date.AddDate(0, 0, 1), Name: "New Year's Day (observed)"})
	}
	if next := fixed(year+1, time.January, 1, "New Year's Day"); next.Date.Weekday() == time.Saturday {
		days = append(days, Holiday{Date: next.Date.AddDate(0, 0, -1), Name: "New Year's Day (observed)"})
	}

	if year >= 1986 {
		nth(time.January, time.Monday, 3, "Martin Luther King Jr. Day")
	}
	nth(time.February, time.Monday, 3, "Washington's Birthday")
	nth(time.May, time.Monday, -1, "Memorial Day")
	if year >= 2021 {
		withObserved(fixed(year, time.June, 19, "Juneteenth National Independence Day"))
	}
	withObserved(fixed(year, time.July, 4, "Independence Day"))
	nth(time.September, time.Monday, 1, "Labor Day")
	nth(time.October, time.Monday, 2, "Columbus Day")
	withObserved(fixed(year, time.November, 11, "Veterans Day"))
	nth(time.November, time.Thursday, 4, "Thanksgiving")
	withObserved(fixed(year, time.December, 25, "Christmas Day"))

	return days
}
