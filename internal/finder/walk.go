package finder

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/username/window-finder/internal/schedule"
	"github.com/username/window-finder/pkg/dateutil"
	"go.uber.org/zap"
)

// walkDays calls visit for each valid day from the start date, for at most
// MaxDaysToCheck days. It stops when visit reports a match or fails.
func (f *Finder) walkDays(cfg SearchConfig, log *zap.Logger, visit func(date time.Time) (bool, error)) (bool, error) {
	date := f.startDate(cfg)
	for checked := 0; checked < cfg.MaxDaysToCheck; checked++ {
		if !f.IsValidDate(date, cfg) {
			log.Debug("Skipping date", zap.String("date", dateutil.DateKey(date)))
			date = dateutil.AddDays(date, 1)
			continue
		}

		done, err := visit(date)
		if err != nil {
			return false, fmt.Errorf("failed to search %s: %w", dateutil.DateKey(date), err)
		}
		if done {
			return true, nil
		}
		date = dateutil.AddDays(date, 1)
	}

	log.Info("No window found", zap.Int("days_checked", cfg.MaxDaysToCheck))
	return false, nil
}

func (f *Finder) startDate(cfg SearchConfig) time.Time {
	if cfg.StartDate != nil {
		return dateutil.StartOfDay(*cfg.StartDate)
	}
	return dateutil.StartOfDay(f.now())
}

// searchLogger tags a search's log lines with a fresh search id
func (f *Finder) searchLogger(algorithm string, cfg SearchConfig) *zap.Logger {
	log := f.logger.With(
		zap.String("search_id", uuid.NewString()),
		zap.String("algorithm", algorithm))

	fields := []zap.Field{
		zap.String("start_date", dateutil.DateKey(f.startDate(cfg))),
		zap.Int("max_days", cfg.MaxDaysToCheck),
		zap.Int("min_start_hour", cfg.MinStartHour),
		zap.Int("max_end_hour", cfg.MaxEndHour),
	}
	if cfg.Deadline != nil {
		fields = append(fields, zap.String("deadline", dateutil.DateKey(*cfg.Deadline)))
	}
	log.Info("Search started", fields...)
	return log
}

// check validates the whole config and one algorithm-specific positive field
func (f *Finder) check(cfg SearchConfig, field string, value int) error {
	if err := f.validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return f.checkVar(field, value)
}

func (f *Finder) checkVar(field string, value int) error {
	if err := f.validate.Var(value, "gt=0"); err != nil {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, field, value)
	}
	return nil
}

func (f *Finder) checkIndex(index int) error {
	if index < 0 || index >= f.store.Len() {
		return fmt.Errorf("%w: %d (have %d)", schedule.ErrCalendarIndex, index, f.store.Len())
	}
	return nil
}

// indices returns the selected calendars without repeats, or all of them when
// none are selected
func (f *Finder) indices(cfg SearchConfig) []int {
	if cfg.CalendarIndices != nil {
		seen := make(map[int]bool, len(cfg.CalendarIndices))
		out := make([]int, 0, len(cfg.CalendarIndices))
		for _, i := range cfg.CalendarIndices {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
		return out
	}
	all := make([]int, f.store.Len())
	for i := range all {
		all[i] = i
	}
	return all
}

// firstWide returns the first interval of at least width minutes, truncated to width
func firstWide(date time.Time, free []schedule.Interval, width int) (Window, bool) {
	for _, iv := range free {
		if iv.Minutes() >= width {
			return newWindow(date, iv.Start, width), true
		}
	}
	return Window{}, false
}

// byDurationDesc returns a copy ordered longest first; ties keep chronological order
func byDurationDesc(free []schedule.Interval) []schedule.Interval {
	out := make([]schedule.Interval, len(free))
	copy(out, free)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minutes() > out[j].Minutes()
	})
	return out
}
