package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/username/window-finder/internal/finder"
)

const productID = "-//window-finder//EN"

// Export writes windows as VEVENTs with the given summary
func Export(w io.Writer, windows []finder.Window, summary string) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := time.Now().UTC()
	for _, win := range windows {
		event := cal.AddEvent(uuid.NewString())
		event.SetDtStampTime(stamp)
		event.SetStartAt(win.StartTime())
		event.SetEndAt(win.EndTime())
		event.SetSummary(summary)
		event.SetDescription(fmt.Sprintf("%d minutes", win.DurationMinutes))
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write ics: %w", err)
	}
	return nil
}
