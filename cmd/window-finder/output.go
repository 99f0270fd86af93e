package main

import (
	"fmt"
	"os"
	"time"

	"github.com/username/window-finder/internal/finder"
	"github.com/username/window-finder/internal/ics"
	"github.com/username/window-finder/internal/schedule"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02 Mon"

func printf(format string, a ...interface{}) {
	fmt.Fprintf(out, format, a...)
}

func printWindow(w finder.Window) {
	printf("%s  %s-%s  (%d min)\n", w.Date.Format(dateLayout), w.Start, w.End, w.DurationMinutes)
}

func printWindows(windows []finder.Window) {
	for _, w := range windows {
		printWindow(w)
	}
}

func printIntervals(date time.Time, free []schedule.Interval) {
	if len(free) == 0 {
		printf("%s  no free time\n", date.Format(dateLayout))
		return
	}
	for _, iv := range free {
		printf("%s  %s  (%d min)\n", date.Format(dateLayout), iv, iv.Minutes())
	}
}

func printNotFound(what string) {
	printf("No %s found\n", what)
}

// exportWindows writes windows to an iCalendar file when path is set
func exportWindows(path, summary string, windows []finder.Window) error {
	if path == "" || len(windows) == 0 {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := ics.Export(file, windows, summary); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("Windows exported", zap.String("path", path), zap.Int("windows", len(windows)))
	return nil
}
