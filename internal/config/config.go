package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/username/window-finder/internal/holiday"
)

const envPrefix = "WINDOW_FINDER"

// Holiday sources
const (
	SourceBuiltin  = "builtin"
	SourceIsDayOff = "isdayoff"
	SourceFile     = "file"
)

// Config represents application configuration
type Config struct {
	Calendars []string       `mapstructure:"calendars"` // JSON/YAML or .ics files
	BaseYear  int            `mapstructure:"base_year" validate:"gte=0"`
	Location  string         `mapstructure:"location"` // IANA zone, empty for local
	Holidays  HolidaysConfig `mapstructure:"holidays"`
	Search    SearchConfig   `mapstructure:"search"`
	Log       LogConfig      `mapstructure:"log"`
}

// HolidaysConfig represents holiday policy configuration
type HolidaysConfig struct {
	Source      string   `mapstructure:"source" validate:"oneof=builtin isdayoff file"`
	Region      string   `mapstructure:"region"`
	Years       []int    `mapstructure:"years" validate:"dive,gte=1900,lte=2100"`
	Custom      []string `mapstructure:"custom"`       // "DD.MM"
	FallbackURL string   `mapstructure:"fallback_url"` // xmlcalendar.ru, {year} placeholder
	File        string   `mapstructure:"file"`         // YYYY-MM-DD type hours [note]
	CacheTTL    string   `mapstructure:"cache_ttl"`
}

// SearchConfig holds search defaults
type SearchConfig struct {
	MinStartHour    int  `mapstructure:"min_start_hour" validate:"gte=0,lte=23"`
	MaxEndHour      int  `mapstructure:"max_end_hour" validate:"gte=1,lte=24,gtfield=MinStartHour"`
	IncludeWeekends bool `mapstructure:"include_weekends"`
	IncludeHolidays bool `mapstructure:"include_holidays"`
	MaxDaysToCheck  int  `mapstructure:"max_days_to_check" validate:"gt=0"`
	MinWidthMinutes int  `mapstructure:"min_width_minutes" validate:"gt=0"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendars", []string{})
	v.SetDefault("base_year", 0)
	v.SetDefault("location", "")
	v.SetDefault("holidays.source", SourceBuiltin)
	v.SetDefault("holidays.region", "RU")
	v.SetDefault("holidays.years", []int{})
	v.SetDefault("holidays.custom", []string{})
	v.SetDefault("holidays.fallback_url", "https://xmlcalendar.ru/data/ru/{year}/calendar.json")
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("search.min_start_hour", 7)
	v.SetDefault("search.max_end_hour", 23)
	v.SetDefault("search.include_weekends", false)
	v.SetDefault("search.include_holidays", false)
	v.SetDefault("search.max_days_to_check", 30)
	v.SetDefault("search.min_width_minutes", 60)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. Without an explicit path a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.window-finder")
		v.AddConfigPath("/etc/window-finder")
	}

	// Read environment variables, e.g. WINDOW_FINDER_SEARCH_MAX_END_HOUR
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Holidays.Source {
	case SourceBuiltin:
		if _, err := holiday.NewRegion(c.Holidays.Region); err != nil {
			return fmt.Errorf("holidays.region: %w", err)
		}
	case SourceIsDayOff:
		if c.Holidays.FallbackURL != "" && !strings.Contains(c.Holidays.FallbackURL, "{year}") {
			return fmt.Errorf("holidays.fallback_url must contain {year}")
		}
	case SourceFile:
		if c.Holidays.File == "" {
			return fmt.Errorf("holidays.file is required for file source")
		}
	}

	if _, err := c.Holidays.CustomDays(); err != nil {
		return err
	}
	if _, err := c.GetLocation(); err != nil {
		return err
	}
	return nil
}

// CustomDays parses the custom holidays
func (c *HolidaysConfig) CustomDays() ([]holiday.DayMonth, error) {
	days := make([]holiday.DayMonth, 0, len(c.Custom))
	for _, s := range c.Custom {
		d, err := holiday.ParseDayMonth(s)
		if err != nil {
			return nil, fmt.Errorf("holidays.custom: %w", err)
		}
		days = append(days, d)
	}
	return days, nil
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil || duration <= 0 {
		return 24 * time.Hour
	}
	return duration
}

// GetLocation returns the configured location, time.Local by default
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	return loc, nil
}

// ExpandEnvVars expands environment variables in file paths
func (c *Config) ExpandEnvVars() {
	for i, p := range c.Calendars {
		c.Calendars[i] = os.ExpandEnv(p)
	}
	c.Holidays.File = os.ExpandEnv(c.Holidays.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
