package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/username/window-finder/internal/finder"
	"github.com/username/window-finder/pkg/dateutil"
)

const defaultWidthMinutes = 90

// day returns the requested date, today when unset
func (s *session) day() time.Time {
	if s.search.StartDate != nil {
		return *s.search.StartDate
	}
	return dateutil.StartOfDay(now().In(s.loc))
}

func freeCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "free",
		Short: "Show free intervals of one calendar on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, f)
			if err != nil {
				return err
			}
			date := s.day()
			free, err := s.finder.FreeIntervals(date, s.search)
			if err != nil {
				return err
			}
			printIntervals(date, free)
			return nil
		},
	}
	f.addInputFlags(cmd)
	cmd.Flags().StringVar(&f.start, "date", "", "Date (YYYY-MM-DD or DD.MM.YYYY, default today)")
	cmd.Flags().IntVar(&f.index, "index", 0, "Calendar index")
	return cmd
}

func commonFreeCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "common-free",
		Short: "Show time free in several calendars on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, f)
			if err != nil {
				return err
			}
			date := s.day()
			free, err := s.finder.CommonFreeIntervals(date, s.search)
			if err != nil {
				return err
			}
			printIntervals(date, free)
			return nil
		},
	}
	f.addInputFlags(cmd)
	cmd.Flags().StringVar(&f.start, "date", "", "Date (YYYY-MM-DD or DD.MM.YYYY, default today)")
	cmd.Flags().IntSliceVar(&f.indices, "indices", nil, "Calendar indices (default all)")
	return cmd
}

func nearestCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Find the nearest free window of a given width",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, f)
			if err != nil {
				return err
			}
			w, ok, err := s.finder.FindNearestWindow(s.search)
			if err != nil {
				return err
			}
			if !ok {
				printNotFound("window")
				return nil
			}
			printWindow(w)
			return exportWindows(f.icsOut, "Free window", []finder.Window{w})
		},
	}
	f.addSearchFlags(cmd)
	cmd.Flags().IntVar(&f.width, "width", defaultWidthMinutes, "Window width in minutes")
	cmd.Flags().IntVar(&f.index, "index", 0, "Calendar index")
	return cmd
}

func multidayCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "multiday",
		Short: "Find consecutive days with a free window each",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, f)
			if err != nil {
				return err
			}
			w, ok, err := s.finder.FindMultiDayWindow(s.search)
			if err != nil {
				return err
			}
			if !ok {
				printNotFound("multi-day window")
				return nil
			}
			printf("%d days from %s to %s\n", w.DaysCount,
				dateutil.DateKey(w.StartDate), dateutil.DateKey(w.EndDate))
			printWindows(w.Windows)
			return exportWindows(f.icsOut, "Free window", w.Windows)
		},
	}
	f.addSearchFlags(cmd)
	cmd.Flags().IntVar(&f.width, "width", defaultWidthMinutes, "Window width in minutes per day")
	cmd.Flags().IntVar(&f.days, "days", 2, "Number of consecutive days")
	cmd.Flags().IntVar(&f.index, "index", 0, "Calendar index")
	return cmd
}

func volumeCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Collect free windows adding up to a total",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, f)
			if err != nil {
				return err
			}
			w, ok, err := s.finder.FindWindowByVolume(s.search)
			if err != nil {
				return err
			}
			if !ok {
				printNotFound("windows for the requested volume")
				return nil
			}
			printf("%d min over %d days\n", w.TotalMinutes, w.DaysCount)
			printWindows(w.Windows)
			return exportWindows(f.icsOut, "Work block", w.Windows)
		},
	}
	f.addSearchFlags(cmd)
	cmd.Flags().IntVar(&f.total, "total", 240, "Total minutes to collect")
	cmd.Flags().IntVar(&f.minWidth, "min-width", finder.DefaultMinWidthMinutes, "Smallest window worth taking, in minutes")
	cmd.Flags().IntVar(&f.index, "index", 0, "Calendar index")
	return cmd
}

func commonCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "common",
		Short: "Find the nearest window free in several calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), cmd, f)
			if err != nil {
				return err
			}
			w, ok, err := s.finder.FindCommonWindow(s.search)
			if err != nil {
				return err
			}
			if !ok {
				printNotFound("common window")
				return nil
			}
			printf("Calendars %v (%d participants)\n", w.CalendarIndices, w.ParticipantsCount)
			printWindow(w.Window)
			return exportWindows(f.icsOut, "Meeting", []finder.Window{w.Window})
		},
	}
	f.addSearchFlags(cmd)
	cmd.Flags().IntVar(&f.width, "width", defaultWidthMinutes, "Window width in minutes")
	cmd.Flags().IntSliceVar(&f.indices, "indices", nil, "Calendar indices (default all)")
	return cmd
}

func holidaysCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the non-working weekdays of a year under the configured policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = now().Year()
			}
			s, err := newHolidaySession(cmd.Context(), year)
			if err != nil {
				return err
			}

			count := 0
			first := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
			for d := first; d.Year() == year; d = d.AddDate(0, 0, 1) {
				if !dateutil.IsWeekend(d) && s.store.IsHoliday(d) {
					printf("%s\n", d.Format(dateLayout))
					count++
				}
			}
			printf("%d non-working weekdays in %d\n", count, year)
			if custom := s.store.CustomHolidays(); len(custom) > 0 {
				printf("Custom holidays (every year): %v\n", custom)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year (default current)")
	return cmd
}
