// Package finder searches calendars for free windows.
package finder

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/username/window-finder/internal/availability"
	"github.com/username/window-finder/internal/holiday"
	"github.com/username/window-finder/internal/schedule"
	"github.com/username/window-finder/pkg/dateutil"
	"go.uber.org/zap"
)

// Store is the calendar and holiday data a Finder searches
type Store interface {
	availability.BusySource
	holiday.Policy
}

// Finder runs window searches over a Store
type Finder struct {
	store    Store
	resolver *availability.Resolver
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Finder
type Option func(*Finder)

// WithClock sets the source of "today" for searches without a start date
func WithClock(now func() time.Time) Option {
	return func(f *Finder) {
		f.now = now
	}
}

// NewFinder creates a Finder over store
func NewFinder(store Store, logger *zap.Logger, opts ...Option) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Finder{
		store:    store,
		resolver: availability.NewResolver(store),
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsValidDate applies the config's deadline, weekend and holiday rules to date
func (f *Finder) IsValidDate(date time.Time, cfg SearchConfig) bool {
	return IsValidDate(date, cfg.IncludeWeekends, cfg.IncludeHolidays, cfg.Deadline, f.store)
}

// FreeIntervals returns the free intervals of one calendar on date within the config bounds
func (f *Finder) FreeIntervals(date time.Time, cfg SearchConfig) ([]schedule.Interval, error) {
	return f.resolver.FreeIntervals(date, cfg.CalendarIndex, cfg.MinStartHour, cfg.MaxEndHour)
}

// CommonFreeIntervals returns the time free in all selected calendars on date
func (f *Finder) CommonFreeIntervals(date time.Time, cfg SearchConfig) ([]schedule.Interval, error) {
	return f.resolver.CommonFreeIntervals(date, f.indices(cfg), cfg.MinStartHour, cfg.MaxEndHour)
}

// FindNearestWindow returns the first free interval of at least WidthMinutes,
// truncated to exactly WidthMinutes.
func (f *Finder) FindNearestWindow(cfg SearchConfig) (Window, bool, error) {
	if err := f.check(cfg, "WidthMinutes", cfg.WidthMinutes); err != nil {
		return Window{}, false, err
	}
	if err := f.checkIndex(cfg.CalendarIndex); err != nil {
		return Window{}, false, err
	}

	log := f.searchLogger("nearest", cfg)
	var found Window
	ok, err := f.walkDays(cfg, log, func(date time.Time) (bool, error) {
		free, err := f.FreeIntervals(date, cfg)
		if err != nil {
			return false, err
		}
		w, ok := firstWide(date, free, cfg.WidthMinutes)
		found = w
		return ok, nil
	})
	if err != nil || !ok {
		return Window{}, false, err
	}

	log.Info("Window found",
		zap.String("date", dateutil.DateKey(found.Date)),
		zap.Stringer("start", found.Start),
		zap.Stringer("end", found.End))
	return found, true, nil
}

// FindMultiDayWindow returns the first run of DaysCount consecutive valid days
// that each have a window of WidthMinutes. A failed run restarts at the next day.
func (f *Finder) FindMultiDayWindow(cfg SearchConfig) (MultiDayWindow, bool, error) {
	if err := f.check(cfg, "WidthMinutes", cfg.WidthMinutes); err != nil {
		return MultiDayWindow{}, false, err
	}
	if err := f.checkVar("DaysCount", cfg.DaysCount); err != nil {
		return MultiDayWindow{}, false, err
	}
	if err := f.checkIndex(cfg.CalendarIndex); err != nil {
		return MultiDayWindow{}, false, err
	}

	log := f.searchLogger("multiday", cfg)
	var found MultiDayWindow
	ok, err := f.walkDays(cfg, log, func(start time.Time) (bool, error) {
		windows := make([]Window, 0, cfg.DaysCount)
		for offset := 0; offset < cfg.DaysCount; offset++ {
			date := dateutil.AddDays(start, offset)
			if !f.IsValidDate(date, cfg) {
				return false, nil
			}
			free, err := f.FreeIntervals(date, cfg)
			if err != nil {
				return false, err
			}
			w, ok := firstWide(date, free, cfg.WidthMinutes)
			if !ok {
				log.Debug("Run broken",
					zap.String("start", dateutil.DateKey(start)),
					zap.String("date", dateutil.DateKey(date)))
				return false, nil
			}
			windows = append(windows, w)
		}

		found = MultiDayWindow{
			StartDate:    start,
			EndDate:      dateutil.AddDays(start, cfg.DaysCount-1),
			DaysCount:    cfg.DaysCount,
			WidthMinutes: cfg.WidthMinutes,
			Windows:      windows,
		}
		return true, nil
	})
	if err != nil || !ok {
		return MultiDayWindow{}, false, err
	}

	log.Info("Multi-day window found",
		zap.String("start_date", dateutil.DateKey(found.StartDate)),
		zap.String("end_date", dateutil.DateKey(found.EndDate)))
	return found, true, nil
}

// FindWindowByVolume accumulates free time, largest intervals first, until
// TotalMinutes is reached. Chunks shorter than MinWidthMinutes are not used.
func (f *Finder) FindWindowByVolume(cfg SearchConfig) (VolumeWindow, bool, error) {
	if err := f.check(cfg, "TotalMinutes", cfg.TotalMinutes); err != nil {
		return VolumeWindow{}, false, err
	}
	if err := f.checkVar("MinWidthMinutes", cfg.MinWidthMinutes); err != nil {
		return VolumeWindow{}, false, err
	}
	if err := f.checkIndex(cfg.CalendarIndex); err != nil {
		return VolumeWindow{}, false, err
	}

	log := f.searchLogger("volume", cfg)
	var (
		windows     []Window
		accumulated int
		days        = make(map[string]struct{})
	)
	ok, err := f.walkDays(cfg, log, func(date time.Time) (bool, error) {
		free, err := f.FreeIntervals(date, cfg)
		if err != nil {
			return false, err
		}
		for _, iv := range byDurationDesc(free) {
			take := min(iv.Minutes(), cfg.TotalMinutes-accumulated)
			if take < cfg.MinWidthMinutes {
				continue
			}
			windows = append(windows, newWindow(date, iv.Start, take))
			days[dateutil.DateKey(date)] = struct{}{}
			accumulated += take
			if accumulated >= cfg.TotalMinutes {
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return VolumeWindow{}, false, err
	}
	if !ok {
		log.Debug("Volume not reached", zap.Int("accumulated_minutes", accumulated))
		return VolumeWindow{}, false, nil
	}

	found := VolumeWindow{
		TotalMinutes: accumulated,
		DaysCount:    len(days),
		Windows:      windows,
	}
	log.Info("Volume window found",
		zap.Int("days", found.DaysCount),
		zap.Int("windows", len(found.Windows)))
	return found, true, nil
}

// FindCommonWindow is FindNearestWindow over the time free in every selected calendar
func (f *Finder) FindCommonWindow(cfg SearchConfig) (CommonWindow, bool, error) {
	if err := f.check(cfg, "WidthMinutes", cfg.WidthMinutes); err != nil {
		return CommonWindow{}, false, err
	}
	indices := f.indices(cfg)
	if len(indices) == 0 {
		return CommonWindow{}, false, fmt.Errorf("%w: no calendars selected", schedule.ErrCalendarIndex)
	}
	for _, i := range indices {
		if err := f.checkIndex(i); err != nil {
			return CommonWindow{}, false, err
		}
	}

	log := f.searchLogger("common", cfg).With(zap.Ints("calendars", indices))
	var found Window
	ok, err := f.walkDays(cfg, log, func(date time.Time) (bool, error) {
		free, err := f.resolver.CommonFreeIntervals(date, indices, cfg.MinStartHour, cfg.MaxEndHour)
		if err != nil {
			return false, err
		}
		w, ok := firstWide(date, free, cfg.WidthMinutes)
		found = w
		return ok, nil
	})
	if err != nil || !ok {
		return CommonWindow{}, false, err
	}

	log.Info("Common window found",
		zap.String("date", dateutil.DateKey(found.Date)),
		zap.Stringer("start", found.Start),
		zap.Stringer("end", found.End))
	return CommonWindow{
		Window:            found,
		ParticipantsCount: len(indices),
		CalendarIndices:   indices,
	}, true, nil
}
