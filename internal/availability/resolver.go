// Package availability derives free time from busy intervals.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/username/window-finder/internal/schedule"
)

// ErrInvalidBounds is returned when day bounds are not 0 <= min < max <= 24
var ErrInvalidBounds = errors.New("invalid day bounds")

// BusySource provides per-date busy intervals for indexed calendars
type BusySource interface {
	BusyIntervals(index int, date time.Time) ([]schedule.Interval, bool, error)
	Len() int
}

// Resolver computes free intervals within day bounds
type Resolver struct {
	src BusySource
}

// NewResolver creates a Resolver over src
func NewResolver(src BusySource) *Resolver {
	return &Resolver{src: src}
}

// Bounds converts hour bounds to clock bounds
func Bounds(minStartHour, maxEndHour int) (schedule.Clock, schedule.Clock, error) {
	if minStartHour < 0 || maxEndHour > 24 || minStartHour >= maxEndHour {
		return 0, 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidBounds, minStartHour, maxEndHour)
	}
	return schedule.ClockAt(minStartHour, 0), schedule.ClockAt(maxEndHour, 0), nil
}

// FreeIntervals returns the free intervals of one calendar on date.
// A date without a record is free for the whole bound.
func (r *Resolver) FreeIntervals(date time.Time, index, minStartHour, maxEndHour int) ([]schedule.Interval, error) {
	lo, hi, err := Bounds(minStartHour, maxEndHour)
	if err != nil {
		return nil, err
	}
	busy, ok, err := r.src.BusyIntervals(index, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []schedule.Interval{{Start: lo, End: hi}}, nil
	}
	return Sweep(busy, lo, hi), nil
}

// CommonFreeIntervals returns the time free in every listed calendar, sorted by start
func (r *Resolver) CommonFreeIntervals(date time.Time, indices []int, minStartHour, maxEndHour int) ([]schedule.Interval, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: no calendars selected", schedule.ErrCalendarIndex)
	}
	for _, i := range indices {
		if i < 0 || i >= r.src.Len() {
			return nil, fmt.Errorf("%w: %d (have %d)", schedule.ErrCalendarIndex, i, r.src.Len())
		}
	}

	common, err := r.FreeIntervals(date, indices[0], minStartHour, maxEndHour)
	if err != nil {
		return nil, err
	}
	for _, i := range indices[1:] {
		if len(common) == 0 {
			break
		}
		free, err := r.FreeIntervals(date, i, minStartHour, maxEndHour)
		if err != nil {
			return nil, err
		}
		common = Intersect(common, free)
	}

	sort.Slice(common, func(i, j int) bool {
		return common[i].Start < common[j].Start
	})
	return common, nil
}

// Sweep returns the gaps in [lo, hi) not covered by busy, which must be sorted by start.
// Busy intervals may overlap or touch. Busy time outside the bounds is clipped.
func Sweep(busy []schedule.Interval, lo, hi schedule.Clock) []schedule.Interval {
	var free []schedule.Interval
	cursor := lo // occupied until

	for _, b := range busy {
		start, end := max(b.Start, lo), min(b.End, hi)
		if start >= end {
			continue
		}
		if cursor < start {
			free = append(free, schedule.Interval{Start: cursor, End: start})
		}
		cursor = max(cursor, end)
	}

	if cursor < hi {
		free = append(free, schedule.Interval{Start: cursor, End: hi})
	}
	return free
}

// Intersect returns the pairwise overlaps of a and b
func Intersect(a, b []schedule.Interval) []schedule.Interval {
	var out []schedule.Interval
	for _, x := range a {
		for _, y := range b {
			start, end := max(x.Start, y.Start), min(x.End, y.End)
			if start < end {
				out = append(out, schedule.Interval{Start: start, End: end})
			}
		}
	}
	return out
}
