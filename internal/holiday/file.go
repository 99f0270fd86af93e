package holiday

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FileSource is a production calendar loaded from a local text file.
//
// Format, one day per line: YYYY-MM-DD type working_hours [note]
// Example: 2025-01-01 holiday 0 Новогодние каникулы
type FileSource struct {
	filePath string
	logger   *zap.Logger

	mu    sync.RWMutex
	days  dayTable
	years map[int]struct{}
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		days:     make(dayTable),
		years:    make(map[int]struct{}),
	}
}

// Load loads calendar data from file
func (fs *FileSource) Load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	if err := fs.Read(file); err != nil {
		return err
	}

	fs.logger.Info("Calendar file loaded",
		zap.String("file", fs.filePath),
		zap.Int("years", len(fs.years)))
	return nil
}

// Read replaces the loaded data with the calendar read from r.
// Malformed lines are logged and skipped.
func (fs *FileSource) Read(r io.Reader) error {
	days := make(dayTable)
	years := make(map[int]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		info, err := parseDayLine(line)
		if err != nil {
			fs.logger.Warn("Invalid calendar line", zap.String("line", line), zap.Error(err))
			continue
		}
		days.add(info)
		years[info.Date.Year()] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	fs.mu.Lock()
	fs.days = days
	fs.years = years
	fs.mu.Unlock()
	return nil
}

func parseDayLine(line string) (DayInfo, error) {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 3 {
		return DayInfo{}, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}

	date, err := time.Parse("2006-01-02", parts[0])
	if err != nil {
		return DayInfo{}, fmt.Errorf("failed to parse date: %w", err)
	}

	hours, err := strconv.Atoi(parts[2])
	if err != nil {
		return DayInfo{}, fmt.Errorf("failed to parse hours: %w", err)
	}

	info := DayInfo{Date: date, WorkingHours: hours}
	if len(parts) == 4 {
		info.Note = parts[3]
	}

	switch parts[1] {
	case "workday":
		info.Type = DayTypeWorkday
	case "weekend":
		info.Type = DayTypeWeekend
	case "holiday":
		info.Type = DayTypeHoliday
	case "shortened":
		info.Type = DayTypeShortened
	default:
		return DayInfo{}, fmt.Errorf("unknown day type %q", parts[1])
	}
	return info, nil
}

// Covers reports whether the file has any day of the year
func (fs *FileSource) Covers(year int) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.years[year]
	return ok
}

// IsHoliday reports days marked as holiday
func (fs *FileSource) IsHoliday(date time.Time) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.days.isHoliday(date)
}
