package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/window-finder/internal/config"
	"github.com/username/window-finder/internal/finder"
	"github.com/username/window-finder/internal/holiday"
	"github.com/username/window-finder/internal/ics"
	"github.com/username/window-finder/internal/schedule"
	"go.uber.org/zap"
)

// session is the loaded state a command searches in
type session struct {
	cfg    *config.Config
	loc    *time.Location
	store  *schedule.Store
	finder *finder.Finder
	search finder.SearchConfig
}

// newSession loads config, calendars and the holiday policy
func newSession(ctx context.Context, cmd *cobra.Command, f *searchFlags) (*session, error) {
	cfg, loc, err := loadConfig()
	if err != nil {
		return nil, err
	}

	sc, err := f.searchConfig(cmd, cfg, loc)
	if err != nil {
		return nil, err
	}

	baseYear := cfg.BaseYear
	if cmd.Flags().Changed("base-year") {
		baseYear = f.baseYear
	}
	if baseYear == 0 && sc.StartDate != nil {
		baseYear = sc.StartDate.Year()
	}
	store := schedule.NewStore(baseYear, logger, schedule.WithLocation(loc))

	paths := cfg.Calendars
	if len(f.calendars) > 0 {
		paths = f.calendars
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no calendars: pass --calendar or set calendars in config")
	}
	for _, path := range paths {
		cal, err := loadCalendar(path, loc)
		if err != nil {
			return nil, err
		}
		if len(cal) == 0 {
			return nil, fmt.Errorf("calendar %s has no days", path)
		}
		store.AddCalendar(cal)
	}

	years := append(searchYears(sc, loc), cfg.Holidays.Years...)
	if err := configureHolidays(ctx, store, &cfg.Holidays, years); err != nil {
		return nil, err
	}

	logger.Debug("Session ready",
		zap.Int("calendars", store.Len()),
		zap.Int("base_year", store.BaseYear()),
		zap.String("holidays", cfg.Holidays.Source),
		zap.String("location", loc.String()))

	return &session{
		cfg:    cfg,
		loc:    loc,
		store:  store,
		finder: finder.NewFinder(store, logger, finder.WithClock(func() time.Time { return now().In(loc) })),
		search: sc,
	}, nil
}

// newHolidaySession loads only the holiday policy for year
func newHolidaySession(ctx context.Context, year int) (*session, error) {
	cfg, loc, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store := schedule.NewStore(year, logger, schedule.WithLocation(loc))
	years := append([]int{year}, cfg.Holidays.Years...)
	if err := configureHolidays(ctx, store, &cfg.Holidays, years); err != nil {
		return nil, err
	}
	return &session{cfg: cfg, loc: loc, store: store}, nil
}

func loadConfig() (*config.Config, *time.Location, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	loc, err := cfg.GetLocation()
	if err != nil {
		return nil, nil, err
	}
	return cfg, loc, nil
}

// loadCalendar reads an iCalendar file or a JSON/YAML schedule by extension
func loadCalendar(path string, loc *time.Location) (schedule.Calendar, error) {
	if !strings.EqualFold(filepath.Ext(path), ".ics") {
		cal, err := schedule.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Info("Calendar loaded", zap.String("path", path), zap.Int("days", len(cal)))
		return cal, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar: %w", err)
	}
	defer file.Close()

	cal, stats, err := ics.Import(file, loc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	logger.Info("Calendar imported",
		zap.String("path", path),
		zap.Int("events", stats.Events),
		zap.Int("imported", stats.Imported),
		zap.Int("skipped", stats.Skipped))
	return cal, nil
}

// configureHolidays installs the configured holiday source on the store.
// Production calendars fall back to the builtin region for years they lack.
func configureHolidays(ctx context.Context, store *schedule.Store, cfg *config.HolidaysConfig, years []int) error {
	switch cfg.Source {
	case config.SourceIsDayOff, config.SourceFile:
		fallback, err := holiday.NewRegion(cfg.Region, years...)
		if err != nil {
			return err
		}

		var primary holiday.CoveragePolicy
		if cfg.Source == config.SourceIsDayOff {
			src := holiday.NewDayOffSource(cfg.FallbackURL, cfg.GetCacheTTL(), logger)
			if err := src.Prefetch(ctx, years...); err != nil {
				logger.Warn("Production calendar unavailable, using builtin region",
					zap.String("region", fallback.Code()),
					zap.Error(err))
			}
			primary = src
		} else {
			src := holiday.NewFileSource(cfg.File, logger)
			if err := src.Load(); err != nil {
				return err
			}
			primary = src
		}
		store.SetRegionPolicy(holiday.NewComposite(primary, fallback, logger))
	default:
		if err := store.SetHolidayPolicy(cfg.Region, years...); err != nil {
			return err
		}
	}

	custom, err := cfg.CustomDays()
	if err != nil {
		return err
	}
	return store.SetCustomHolidays(custom)
}
