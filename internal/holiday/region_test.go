package holiday

import (
	"errors"
	"testing"
	"time"
)

func TestRegion_IsHoliday(t *testing.T) {
	ru, err := NewRegion("ru", 2025)
	if err != nil {
		t.Fatalf("NewRegion(ru) error = %v", err)
	}
	us, err := NewRegion("US")
	if err != nil {
		t.Fatalf("NewRegion(US) error = %v", err)
	}

	tests := []struct {
		name   string
		region *Region
		date   time.Time
		want   bool
	}{
		{"RU New Year", ru, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"RU Orthodox Christmas", ru, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), true},
		{"RU Defender Day", ru, time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC), true},
		{"RU Victory Day next year", ru, time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC), true},
		{"RU regular day", ru, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), false},
		{"US Independence Day", us, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), true},
		{"US Feb 23 is not a holiday", us, time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC), false},
		{"US Thanksgiving", us, time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC), true},
		{"US Memorial Day", us, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), true},
		{"US Independence Day observed on Friday", us, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC), true},
		{"US New Year observed in previous year", us, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"US Christmas observed", us, time.Date(2021, 12, 24, 0, 0, 0, 0, time.UTC), true},
		{"US Juneteenth before 2021", us, time.Date(2020, 6, 19, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.IsHoliday(tt.date); got != tt.want {
				t.Errorf("%s.IsHoliday(%v) = %v, want %v",
					tt.region.Code(), tt.date.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestRegion_IgnoresLocation(t *testing.T) {
	ru, _ := NewRegion("RU")
	moscow := time.FixedZone("MSK", 3*60*60)

	if !ru.IsHoliday(time.Date(2025, 2, 23, 0, 0, 0, 0, moscow)) {
		t.Error("IsHoliday should match by calendar date regardless of location")
	}
}

func TestNewRegion_Unknown(t *testing.T) {
	_, err := NewRegion("XX")
	if !errors.Is(err, ErrUnknownRegion) {
		t.Errorf("NewRegion(XX) error = %v, want ErrUnknownRegion", err)
	}
}

func TestRegion_Holidays(t *testing.T) {
	ru, _ := NewRegion("RU")
	days := ru.Holidays(2025)

	if len(days) != 14 {
		t.Fatalf("len(Holidays(2025)) = %d, want 14", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date.Before(days[i-1].Date) {
			t.Errorf("Holidays not sorted at %d: %v before %v", i, days[i].Date, days[i-1].Date)
		}
	}
	if days[len(days)-1].Name != "Unity Day" {
		t.Errorf("last holiday = %q, want Unity Day", days[len(days)-1].Name)
	}
}
