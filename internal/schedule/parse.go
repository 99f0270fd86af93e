package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Russian labels use genitive month names, English labels the nominative ones
var monthNames = map[string]time.Month{
	"января": time.January, "февраля": time.February, "марта": time.March,
	"апреля": time.April, "мая": time.May, "июня": time.June,
	"июля": time.July, "августа": time.August, "сентября": time.September,
	"октября": time.October, "ноября": time.November, "декабря": time.December,
}

func init() {
	for m := time.January; m <= time.December; m++ {
		monthNames[fold(m.String())] = m
	}
}

// fold case-folds s. A Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ParseDateLabel parses "Пн, 17 февраля" or "Mon, 17 February" in the given year.
// The weekday part is not checked against the resolved date.
func ParseDateLabel(label string, year int, loc *time.Location) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(label), ",", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid date label %q: expected \"weekday, day month\"", label)
	}

	dayMonth := strings.Fields(parts[1])
	if len(dayMonth) != 2 {
		return time.Time{}, fmt.Errorf("invalid date label %q: expected \"day month\" after comma", label)
	}

	day, err := strconv.Atoi(dayMonth[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in %q: %w", label, err)
	}

	month, ok := monthNames[fold(dayMonth[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q in %q", dayMonth[1], label)
	}

	if loc == nil {
		loc = time.Local
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, fmt.Errorf("day %d out of range for %s %d", day, month, year)
	}
	return date, nil
}

// ParseClock parses "HH:MM" (00:00 to 23:59)
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return ClockAt(hour, minute), nil
}

// ParseTimeRange parses "HH:MM-HH:MM". The start must be before the end.
func ParseTimeRange(s string) (Interval, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return Interval{}, fmt.Errorf("invalid time range %q: expected HH:MM-HH:MM", s)
	}

	start, err := ParseClock(startStr)
	if err != nil {
		return Interval{}, fmt.Errorf("failed to parse range start: %w", err)
	}
	end, err := ParseClock(endStr)
	if err != nil {
		return Interval{}, fmt.Errorf("failed to parse range end: %w", err)
	}

	if start >= end {
		return Interval{}, fmt.Errorf("time range %q does not end after it starts", s)
	}
	return Interval{Start: start, End: end}, nil
}
