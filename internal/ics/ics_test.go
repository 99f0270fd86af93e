package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/username/window-finder/internal/finder"
	"github.com/username/window-finder/internal/schedule"
	"go.uber.org/zap"
)

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:lesson-2
DTSTAMP:20250101T000000Z
DTSTART:20250217T111000Z
DTEND:20250217T124500Z
SUMMARY:Physics
END:VEVENT
BEGIN:VEVENT
UID:lesson-1
DTSTAMP:20250101T000000Z
DTSTART:20250217T092000Z
DTEND:20250217T105500Z
SUMMARY:Math
LOCATION:101
END:VEVENT
BEGIN:VEVENT
UID:lesson-3
DTSTAMP:20250101T000000Z
DTSTART:20250218T134500Z
DTEND:20250218T152000Z
SUMMARY:History
END:VEVENT
BEGIN:VEVENT
UID:all-day
DTSTAMP:20250101T000000Z
DTSTART;VALUE=DATE:20250219
DTEND;VALUE=DATE:20250220
SUMMARY:Holiday
END:VEVENT
BEGIN:VEVENT
UID:weekly
DTSTAMP:20250101T000000Z
DTSTART:20250220T090000Z
DTEND:20250220T100000Z
RRULE:FREQ=WEEKLY;COUNT=4
SUMMARY:Seminar
END:VEVENT
BEGIN:VEVENT
UID:overnight
DTSTAMP:20250101T000000Z
DTSTART:20250220T220000Z
DTEND:20250221T020000Z
SUMMARY:Night shift
END:VEVENT
END:VCALENDAR
`

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func TestImport(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	cal, stats, err := Import(strings.NewReader(crlf(sampleICS)), time.UTC, logger)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if stats.Events != 6 || stats.Imported != 3 || stats.Skipped != 3 {
		t.Errorf("stats = %+v, want 6 events, 3 imported, 3 skipped", stats)
	}
	if len(stats.Years) != 1 || stats.Years[0] != 2025 {
		t.Errorf("stats.Years = %v, want [2025]", stats.Years)
	}

	if len(cal) != 2 {
		t.Fatalf("len(cal) = %d, want 2", len(cal))
	}
	if cal[0].Day != "Mon, 17 February" || cal[1].Day != "Tue, 18 February" {
		t.Errorf("labels = %q, %q", cal[0].Day, cal[1].Day)
	}
	if len(cal[0].Lessons) != 2 {
		t.Fatalf("Feb 17 lessons = %+v, want 2", cal[0].Lessons)
	}
	if cal[0].Lessons[1].Time != "09:20-10:55" || cal[0].Lessons[1].Room != "101" {
		t.Errorf("Feb 17 second lesson = %+v", cal[0].Lessons[1])
	}

	// The labels feed the store
	store := schedule.NewStore(2025, logger, schedule.WithLocation(time.UTC))
	store.AddCalendar(cal)
	busy, ok, err := store.BusyIntervals(0, time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC))
	if err != nil || !ok || len(busy) != 2 || busy[0].Start != schedule.ClockAt(9, 20) {
		t.Errorf("BusyIntervals(Feb 17) = %v, %v, %v", busy, ok, err)
	}
}

func TestImport_ConvertsLocation(t *testing.T) {
	logger := zap.NewNop()
	moscow := time.FixedZone("MSK", 3*60*60)

	cal, _, err := Import(strings.NewReader(crlf(sampleICS)), moscow, logger)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	// 22:00Z-02:00Z is 01:00-05:00 in Moscow, within one day
	last := cal[len(cal)-1]
	if last.Day != "Fri, 21 February" || last.Lessons[0].Time != "01:00-05:00" {
		t.Errorf("last record = %+v, want Fri, 21 February 01:00-05:00", last)
	}
}

func TestImport_Invalid(t *testing.T) {
	if _, _, err := Import(strings.NewReader("this is not a calendar\r\n"), time.UTC, zap.NewNop()); err == nil {
		t.Error("Import() of non-calendar input expected error, got nil")
	}
}

func TestExport(t *testing.T) {
	day := time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC)
	windows := []finder.Window{
		{Date: day, Start: schedule.ClockAt(7, 0), End: schedule.ClockAt(9, 0), DurationMinutes: 120},
		{Date: day.AddDate(0, 0, 1), Start: schedule.ClockAt(10, 0), End: schedule.ClockAt(11, 45), DurationMinutes: 105},
	}

	var buf bytes.Buffer
	if err := Export(&buf, windows, "Free window"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + productID,
		"DTSTART:20250217T070000Z",
		"DTEND:20250218T114500Z",
		"SUMMARY:Free window",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Export() output missing %q", want)
		}
	}
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("Export() wrote %d events, want 2", n)
	}

	cal, stats, err := Import(&buf, time.UTC, zap.NewNop())
	if err != nil {
		t.Fatalf("Import(Export()) error = %v", err)
	}
	if stats.Imported != 2 || len(cal) != 2 || cal[1].Lessons[0].Time != "10:00-11:45" {
		t.Errorf("Import(Export()) = %+v, stats %+v", cal, stats)
	}
}
