package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/window-finder/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	isdayoffBaseURL    = "https://isdayoff.ru"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// DayOffSource is a Russian production calendar backed by the isdayoff.ru API,
// with xmlcalendar.ru as a fallback. Years must be loaded with Prefetch before
// searching: IsHoliday only consults loaded data.
type DayOffSource struct {
	baseURL     string
	fallbackURL string
	httpClient  *http.Client
	logger      *zap.Logger
	cacheTTL    time.Duration

	mu        sync.RWMutex
	days      dayTable
	fetchedAt map[int]time.Time // year → load time
}

// DayOffOption configures a DayOffSource
type DayOffOption func(*DayOffSource)

// WithBaseURL overrides the isdayoff.ru endpoint
func WithBaseURL(url string) DayOffOption {
	return func(c *DayOffSource) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) DayOffOption {
	return func(c *DayOffSource) {
		c.httpClient = client
	}
}

// xmlCalendarYear represents xmlcalendar.ru JSON structure
type xmlCalendarYear struct {
	Year   int                `json:"year"`
	Months []xmlCalendarMonth `json:"months"`
}

type xmlCalendarMonth struct {
	Month int    `json:"month"`
	Days  string `json:"days"` // "1*,2,3+,4,8,9,..." where * = shortened, + = transferred
}

// NewDayOffSource creates a new DayOffSource instance
func NewDayOffSource(fallbackURL string, cacheTTL time.Duration, logger *zap.Logger, opts ...DayOffOption) *DayOffSource {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	c := &DayOffSource{
		baseURL:     isdayoffBaseURL,
		fallbackURL: fallbackURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:    logger,
		cacheTTL:  cacheTTL,
		days:      make(dayTable),
		fetchedAt: make(map[int]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prefetch loads every given year, skipping years loaded within the cache TTL.
// A year that fails does not stop the others; all failures are returned joined.
func (c *DayOffSource) Prefetch(ctx context.Context, years ...int) error {
	var errs []error
	for _, year := range years {
		c.mu.RLock()
		fetched, ok := c.fetchedAt[year]
		c.mu.RUnlock()
		if ok && time.Since(fetched) < c.cacheTTL {
			c.logger.Debug("Using cached production calendar", zap.Int("year", year))
			continue
		}

		days, err := c.fetchYearFromAPI(ctx, year)
		if err != nil {
			c.logger.Warn("Failed to fetch year from API, trying fallback",
				zap.Int("year", year),
				zap.Error(err))

			var fallbackErr error
			days, fallbackErr = c.fetchYearFromFallback(ctx, year)
			if fallbackErr != nil {
				errs = append(errs, fmt.Errorf("API and fallback both failed for %d: API=%w, Fallback=%v", year, err, fallbackErr))
				continue
			}
			c.logger.Info("Using fallback data", zap.Int("year", year))
		}

		c.mu.Lock()
		for _, d := range days {
			c.days.add(d)
		}
		c.fetchedAt[year] = time.Now()
		c.mu.Unlock()
	}
	return errors.Join(errs...)
}

// Covers reports whether the year has been loaded
func (c *DayOffSource) Covers(year int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.fetchedAt[year]
	return ok
}

// IsHoliday reports non-working weekdays. Regular weekends are not holidays.
func (c *DayOffSource) IsHoliday(date time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.days.isHoliday(date)
}

// fetchYearFromAPI fetches an entire year from isdayoff.ru bulk API
func (c *DayOffSource) fetchYearFromAPI(ctx context.Context, year int) ([]DayInfo, error) {
	// Build URL: https://isdayoff.ru/api/getdata?year=2025&pre=1
	url := fmt.Sprintf("%s/api/getdata?year=%d&pre=1", c.baseURL, year)

	c.logger.Debug("Fetching year from isdayoff.ru",
		zap.String("url", url),
		zap.Int("year", year))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	days, err := parseBulkYear(year, strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}

	c.logger.Info("Production calendar fetched from API",
		zap.Int("year", year),
		zap.Int("days", len(days)))

	return days, nil
}

// parseBulkYear parses isdayoff.ru bulk response string, one code per day of year:
// 0 = working day (8 hours)
// 1 = non-working day (holiday/weekend)
// 2 = shortened day (7 hours)
func parseBulkYear(year int, data string) ([]DayInfo, error) {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysInYear := first.AddDate(1, 0, 0).Sub(first).Hours() / 24

	if len(data) != int(daysInYear) {
		return nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", int(daysInYear), len(data))
	}

	days := make([]DayInfo, 0, len(data))
	for i, code := range data {
		date := first.AddDate(0, 0, i)

		info := DayInfo{Date: date}
		switch code {
		case '0':
			info.Type = DayTypeWorkday
			info.WorkingHours = 8
		case '1':
			info.Type = nonWorkingType(date)
		case '2':
			info.Type = DayTypeShortened
			info.WorkingHours = 7
		default:
			return nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}
		days = append(days, info)
	}

	return days, nil
}

// fetchYearFromFallback fetches a year from xmlcalendar.ru
func (c *DayOffSource) fetchYearFromFallback(ctx context.Context, year int) ([]DayInfo, error) {
	if c.fallbackURL == "" {
		return nil, fmt.Errorf("no fallback URL configured")
	}
	url := strings.ReplaceAll(c.fallbackURL, "{year}", strconv.Itoa(year))

	c.logger.Info("Downloading fallback calendar data",
		zap.String("url", url),
		zap.Int("year", year))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fallback data: %w", err)
	}

	var yearData xmlCalendarYear
	if err := json.Unmarshal(body, &yearData); err != nil {
		return nil, fmt.Errorf("failed to parse fallback JSON: %w", err)
	}

	var days []DayInfo
	for i := range yearData.Months {
		m := yearData.Months[i]
		if m.Month < 1 || m.Month > 12 {
			c.logger.Warn("Skipping fallback month out of range", zap.Int("month", m.Month))
			continue
		}
		days = append(days, c.parseXMLCalendarMonth(year, time.Month(m.Month), m.Days)...)
	}

	c.logger.Info("Fallback data downloaded",
		zap.Int("year", year),
		zap.Int("months", len(yearData.Months)))

	return days, nil
}

// parseXMLCalendarMonth parses xmlcalendar.ru compact format
// Format: "1*,2,3+,4,8,9,15,16,22,23,29,30"
// * = shortened day, + = transferred day, others = weekends/holidays
func (c *DayOffSource) parseXMLCalendarMonth(year int, month time.Month, spec string) []DayInfo {
	markers := make(map[int]rune) // day → marker (* or + or 0)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		marker := rune(0)
		dayStr := part
		if strings.HasSuffix(part, "*") {
			marker = '*'
			dayStr = strings.TrimSuffix(part, "*")
		} else if strings.HasSuffix(part, "+") {
			marker = '+'
			dayStr = strings.TrimSuffix(part, "+")
		}

		day, err := strconv.Atoi(dayStr)
		if err != nil {
			c.logger.Warn("Failed to parse day number",
				zap.String("part", part),
				zap.Error(err))
			continue
		}
		markers[day] = marker
	}

	n := dateutil.DaysInMonth(year, month)
	days := make([]DayInfo, 0, n)
	for day := 1; day <= n; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		marker, nonWorking := markers[day]

		info := DayInfo{Date: date}
		switch {
		case marker == '*':
			info.Type = DayTypeShortened
			info.WorkingHours = 7
		case nonWorking:
			info.Type = nonWorkingType(date)
		default:
			info.Type = DayTypeWorkday
			info.WorkingHours = 8
		}
		days = append(days, info)
	}
	return days
}

func (c *DayOffSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// ClearCache drops all loaded years
func (c *DayOffSource) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.days = make(dayTable)
	c.fetchedAt = make(map[int]time.Time)
	c.logger.Info("Production calendar cache cleared")
}
