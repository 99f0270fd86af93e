package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("SCHEDULE_DIR", "/data")
	path := writeConfig(t, `
calendars:
  - $SCHEDULE_DIR/group1.json
  - group2.ics
base_year: 2025
holidays:
  source: builtin
  region: us
  custom: ["23.02", "8.3"]
search:
  min_start_hour: 9
  max_end_hour: 20
  include_weekends: true
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Calendars) != 2 || cfg.Calendars[0] != "/data/group1.json" {
		t.Errorf("Calendars = %v", cfg.Calendars)
	}
	if cfg.BaseYear != 2025 {
		t.Errorf("BaseYear = %d, want 2025", cfg.BaseYear)
	}
	if cfg.Search.MinStartHour != 9 || cfg.Search.MaxEndHour != 20 || !cfg.Search.IncludeWeekends {
		t.Errorf("Search = %+v", cfg.Search)
	}
	// Defaults fill the rest
	if cfg.Search.MaxDaysToCheck != 30 || cfg.Search.MinWidthMinutes != 60 {
		t.Errorf("Search defaults = %+v", cfg.Search)
	}

	days, err := cfg.Holidays.CustomDays()
	if err != nil {
		t.Fatalf("CustomDays() error = %v", err)
	}
	if len(days) != 2 || days[1].Day != 8 || days[1].Month != time.March {
		t.Errorf("CustomDays() = %v", days)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "search:\n  max_end_hour: 20\n")
	t.Setenv("WINDOW_FINDER_SEARCH_MAX_END_HOUR", "18")
	t.Setenv("WINDOW_FINDER_BASE_YEAR", "2026")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Search.MaxEndHour != 18 {
		t.Errorf("MaxEndHour = %d, want 18", cfg.Search.MaxEndHour)
	}
	if cfg.BaseYear != 2026 {
		t.Errorf("BaseYear = %d, want 2026", cfg.BaseYear)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Holidays.Source != SourceBuiltin || cfg.Holidays.Region != "RU" {
		t.Errorf("Holidays = %+v", cfg.Holidays)
	}
	if cfg.Search.MinStartHour != 7 || cfg.Search.MaxEndHour != 23 {
		t.Errorf("Search = %+v", cfg.Search)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"inverted bounds", "search:\n  min_start_hour: 20\n  max_end_hour: 8\n"},
		{"unknown source", "holidays:\n  source: oracle\n"},
		{"unknown region", "holidays:\n  region: XX\n"},
		{"file source without file", "holidays:\n  source: file\n"},
		{"bad custom holiday", "holidays:\n  custom: [\"31.02\"]\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"bad location", "location: Mars/Olympus\n"},
		{"zero day budget", "search:\n  max_days_to_check: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("Load() expected error, got nil")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing explicit file expected error, got nil")
	}
}

func TestGetCacheTTL(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"", 24 * time.Hour},
		{"6h", 6 * time.Hour},
		{"soon", 24 * time.Hour},
		{"-1h", 24 * time.Hour},
	}

	for _, tt := range tests {
		c := HolidaysConfig{CacheTTL: tt.input}
		if got := c.GetCacheTTL(); got != tt.want {
			t.Errorf("GetCacheTTL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// testChdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
