package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/window-finder/internal/config"
	"github.com/username/window-finder/internal/finder"
	"github.com/username/window-finder/pkg/dateutil"
)

// searchFlags holds the command line overrides of a search
type searchFlags struct {
	calendars []string
	baseYear  int
	start     string
	deadline  string
	minStart  int
	maxEnd    int
	weekends  bool
	holidays  bool
	maxDays   int
	width     int
	days      int
	total     int
	minWidth  int
	index     int
	indices   []int
	icsOut    string
}

// addInputFlags registers calendar and day bound flags
func (f *searchFlags) addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.calendars, "calendar", nil, "Calendar file (JSON/YAML or .ics), repeatable; overrides config calendars")
	cmd.Flags().IntVar(&f.baseYear, "base-year", 0, "Year for date labels without a year")
	cmd.Flags().IntVar(&f.minStart, "min-start", finder.DefaultMinStartHour, "Earliest hour of a window")
	cmd.Flags().IntVar(&f.maxEnd, "max-end", finder.DefaultMaxEndHour, "Hour by which a window must end")
}

// addSearchFlags registers the flags shared by all searches
func (f *searchFlags) addSearchFlags(cmd *cobra.Command) {
	f.addInputFlags(cmd)
	cmd.Flags().StringVar(&f.start, "start", "", "First date to check (YYYY-MM-DD or DD.MM.YYYY, default today)")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "Last date a window may fall on")
	cmd.Flags().BoolVar(&f.weekends, "weekends", false, "Allow Saturdays and Sundays")
	cmd.Flags().BoolVar(&f.holidays, "include-holidays", false, "Allow holidays")
	cmd.Flags().IntVar(&f.maxDays, "max-days", finder.DefaultMaxDaysToCheck, "Number of days to check")
	cmd.Flags().StringVar(&f.icsOut, "ics-out", "", "Write found windows to an iCalendar file")
}

// searchConfig layers changed flags over the config defaults
func (f *searchFlags) searchConfig(cmd *cobra.Command, cfg *config.Config, loc *time.Location) (finder.SearchConfig, error) {
	sc := finder.DefaultSearchConfig()
	sc.MinStartHour = cfg.Search.MinStartHour
	sc.MaxEndHour = cfg.Search.MaxEndHour
	sc.IncludeWeekends = cfg.Search.IncludeWeekends
	sc.IncludeHolidays = cfg.Search.IncludeHolidays
	sc.MaxDaysToCheck = cfg.Search.MaxDaysToCheck
	sc.MinWidthMinutes = cfg.Search.MinWidthMinutes

	flags := cmd.Flags()
	if flags.Changed("min-start") {
		sc.MinStartHour = f.minStart
	}
	if flags.Changed("max-end") {
		sc.MaxEndHour = f.maxEnd
	}
	if flags.Changed("weekends") {
		sc.IncludeWeekends = f.weekends
	}
	if flags.Changed("include-holidays") {
		sc.IncludeHolidays = f.holidays
	}
	if flags.Changed("max-days") {
		sc.MaxDaysToCheck = f.maxDays
	}
	if flags.Changed("min-width") {
		sc.MinWidthMinutes = f.minWidth
	}

	sc.WidthMinutes = f.width
	sc.DaysCount = f.days
	sc.TotalMinutes = f.total
	sc.CalendarIndex = f.index
	if flags.Changed("indices") {
		sc.CalendarIndices = f.indices
	}

	if f.start != "" {
		start, err := dateutil.ParseDate(f.start, loc)
		if err != nil {
			return sc, fmt.Errorf("invalid --start: %w", err)
		}
		sc.StartDate = &start
	}
	if f.deadline != "" {
		deadline, err := dateutil.ParseDate(f.deadline, loc)
		if err != nil {
			return sc, fmt.Errorf("invalid --deadline: %w", err)
		}
		sc.Deadline = &deadline
	}
	return sc, nil
}

// searchYears returns the years a search over sc can touch
func searchYears(sc finder.SearchConfig, loc *time.Location) []int {
	start := dateutil.StartOfDay(now().In(loc))
	if sc.StartDate != nil {
		start = *sc.StartDate
	}
	end := dateutil.AddDays(start, sc.MaxDaysToCheck+sc.DaysCount)

	years := make([]int, 0, 2)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}
