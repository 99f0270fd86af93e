package holiday

import (
	"testing"
	"time"
)

func TestParseDayMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    DayMonth
		wantErr bool
	}{
		{"23.02", DayMonth{Day: 23, Month: time.February}, false},
		{"8.3", DayMonth{Day: 8, Month: time.March}, false},
		{"29.02", DayMonth{Day: 29, Month: time.February}, false},
		{"30.02", DayMonth{}, true},
		{"31.04", DayMonth{}, true},
		{"01.13", DayMonth{}, true},
		{"0.01", DayMonth{}, true},
		{"2302", DayMonth{}, true},
		{"aa.bb", DayMonth{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDayMonth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDayMonth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDayMonth(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCustomSet_IsHoliday(t *testing.T) {
	set := NewCustomSet(DayMonth{Day: 23, Month: time.February})
	set.Add(DayMonth{Day: 8, Month: time.March})

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Feb 23 2025", time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC), true},
		{"Feb 23 in another year", time.Date(2031, 2, 23, 15, 0, 0, 0, time.UTC), true},
		{"Mar 8 2025", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), true},
		{"Feb 24 2025", time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.IsHoliday(tt.date); got != tt.want {
				t.Errorf("IsHoliday(%v) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestCustomSet_ReplaceAndList(t *testing.T) {
	set := NewCustomSet(DayMonth{Day: 1, Month: time.May})
	set.Replace([]DayMonth{
		{Day: 8, Month: time.March},
		{Day: 23, Month: time.February},
		{Day: 8, Month: time.March},
	})

	list := set.List()
	if len(list) != 2 {
		t.Fatalf("List() = %v, want 2 days", list)
	}
	if list[0].String() != "23.02" || list[1].String() != "08.03" {
		t.Errorf("List() = %v, want [23.02 08.03]", list)
	}
	if set.IsHoliday(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Replace() kept a previous day")
	}
}

func TestUnion(t *testing.T) {
	feb23 := time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC)
	mar8 := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	u := Union{
		None,
		nil,
		NewCustomSet(DayMonth{Day: 23, Month: time.February}),
	}

	if !u.IsHoliday(feb23) {
		t.Error("Union should report Feb 23")
	}
	if u.IsHoliday(mar8) {
		t.Error("Union should not report Mar 8")
	}
	if (Union{}).IsHoliday(feb23) {
		t.Error("empty Union should not report holidays")
	}
}
