package holiday

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestComposite_IsHoliday(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	primary := NewFileSource("", logger)
	// 2025 covered, but Jan 1 deliberately a workday
	if err := primary.Read(strings.NewReader("2025-01-01 workday 8\n2025-03-10 holiday 0\n")); err != nil {
		t.Fatal(err)
	}
	fallback, _ := NewRegion("RU")
	cc := NewComposite(primary, fallback, logger)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"covered year uses primary", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"primary-only holiday", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"uncovered year uses fallback", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"uncovered year again", time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cc.IsHoliday(tt.date); got != tt.want {
				t.Errorf("IsHoliday(%v) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}

	if !cc.Covers(2030) {
		t.Error("Covers(2030) = false, want true via region fallback")
	}
}

func TestComposite_NilFallback(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	cc := NewComposite(NewFileSource("", logger), nil, logger)

	if cc.IsHoliday(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("IsHoliday with empty primary and no fallback = true, want false")
	}
	if cc.Covers(2025) {
		t.Error("Covers(2025) = true, want false")
	}
}
