package schedule

import (
	"testing"
	"time"
)

func TestParseDateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    time.Time
		wantErr bool
	}{
		{"russian", "Пн, 17 февраля", time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), false},
		{"russian upper case", "ВТ, 18 ФЕВРАЛЯ", time.Date(2025, 2, 18, 0, 0, 0, 0, time.UTC), false},
		{"english", "Mon, 17 February", time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), false},
		{"extra spaces", "  Пт,   21   февраля ", time.Date(2025, 2, 21, 0, 0, 0, 0, time.UTC), false},
		{"no comma", "Пн 17 февраля", time.Time{}, true},
		{"missing month", "Пн, 17", time.Time{}, true},
		{"bad day", "Пн, XVII февраля", time.Time{}, true},
		{"unknown month", "Пн, 17 брюмера", time.Time{}, true},
		{"impossible date", "Вс, 30 февраля", time.Time{}, true},
		{"zero day", "Вс, 0 марта", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateLabel(tt.label, 2025, time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDateLabel(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input   string
		want    Interval
		wantErr bool
	}{
		{"09:20-10:55", Interval{Start: ClockAt(9, 20), End: ClockAt(10, 55)}, false},
		{"9:20 - 10:55", Interval{Start: ClockAt(9, 20), End: ClockAt(10, 55)}, false},
		{"00:00-23:59", Interval{Start: 0, End: ClockAt(23, 59)}, false},
		{"10:55-09:20", Interval{}, true},
		{"10:00-10:00", Interval{}, true},
		{"24:00-25:00", Interval{}, true},
		{"09:60-10:00", Interval{}, true},
		{"0920-1055", Interval{}, true},
		{"09:20", Interval{}, true},
		{"", Interval{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeRange(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClock(t *testing.T) {
	c := ClockAt(9, 5)
	if c.String() != "09:05" {
		t.Errorf("String() = %q, want 09:05", c.String())
	}
	on := c.On(time.Date(2025, 2, 17, 23, 59, 0, 0, time.UTC))
	if want := time.Date(2025, 2, 17, 9, 5, 0, 0, time.UTC); !on.Equal(want) {
		t.Errorf("On() = %v, want %v", on, want)
	}
	if iv := (Interval{Start: ClockAt(7, 0), End: ClockAt(9, 20)}); iv.Minutes() != 140 {
		t.Errorf("Minutes() = %d, want 140", iv.Minutes())
	}
}
