// Package ics converts between iCalendar data and calendars or found windows.
package ics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/username/window-finder/internal/schedule"
	"github.com/username/window-finder/pkg/dateutil"
	"go.uber.org/zap"
)

// LabelLayout formats English date labels understood by schedule.ParseDateLabel
const LabelLayout = "Mon, 2 January"

// ImportStats counts what Import did with the VEVENTs it saw
type ImportStats struct {
	Events   int
	Imported int
	Skipped  int
	Years    []int // distinct years of imported events
}

// Import reads VEVENTs as busy lessons. Recurring, all-day, multi-day and
// incomplete events are skipped. Times are converted to loc.
func Import(r io.Reader, loc *time.Location, logger *zap.Logger) (schedule.Calendar, ImportStats, error) {
	if loc == nil {
		loc = time.Local
	}
	var stats ImportStats

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse ics: %w", err)
	}

	days := make(map[string]*schedule.DayRecord)
	dates := make(map[string]time.Time)
	years := make(map[int]struct{})

	for _, ve := range cal.Events() {
		stats.Events++
		lesson, date, err := parseVEvent(ve, loc)
		if err != nil {
			stats.Skipped++
			logger.Debug("Skipping event", zap.String("uid", propValue(ve, ical.ComponentPropertyUniqueId)), zap.Error(err))
			continue
		}

		key := dateutil.DateKey(date)
		rec, ok := days[key]
		if !ok {
			rec = &schedule.DayRecord{Day: date.Format(LabelLayout)}
			days[key] = rec
			dates[key] = date
		}
		rec.Lessons = append(rec.Lessons, lesson)
		years[date.Year()] = struct{}{}
		stats.Imported++
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(schedule.Calendar, 0, len(keys))
	for _, k := range keys {
		out = append(out, *days[k])
	}
	for y := range years {
		stats.Years = append(stats.Years, y)
	}
	sort.Ints(stats.Years)

	if len(stats.Years) > 1 {
		logger.Warn("Events span several years; date labels carry no year",
			zap.Ints("years", stats.Years))
	}
	logger.Info("ICS imported",
		zap.Int("events", stats.Events),
		zap.Int("imported", stats.Imported),
		zap.Int("skipped", stats.Skipped))
	return out, stats, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (schedule.Lesson, time.Time, error) {
	if ve.GetProperty(ical.ComponentPropertyRrule) != nil {
		return schedule.Lesson{}, time.Time{}, fmt.Errorf("recurring events are not expanded")
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return schedule.Lesson{}, time.Time{}, fmt.Errorf("missing DTSTART")
	}
	allDay := !strings.Contains(dtStart.Value, "T")
	if vs := dtStart.ICalParameters["VALUE"]; len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}
	if allDay {
		return schedule.Lesson{}, time.Time{}, fmt.Errorf("all-day event")
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return schedule.Lesson{}, time.Time{}, fmt.Errorf("failed to parse DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return schedule.Lesson{}, time.Time{}, fmt.Errorf("failed to parse DTEND: %w", err)
	}
	start, end = start.In(loc), end.In(loc)

	if !end.After(start) {
		return schedule.Lesson{}, time.Time{}, fmt.Errorf("event ends before it starts")
	}
	if !dateutil.IsSameDay(start, end) {
		return schedule.Lesson{}, time.Time{}, fmt.Errorf("event spans several days")
	}

	lesson := schedule.Lesson{
		Time:    start.Format("15:04") + "-" + end.Format("15:04"),
		Subject: propValue(ve, ical.ComponentPropertySummary),
		Room:    propValue(ve, ical.ComponentPropertyLocation),
	}
	return lesson, dateutil.StartOfDay(start), nil
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}
