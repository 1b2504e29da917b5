// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	API      APIConfig      `toml:"api"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds working-hours settings for the calendar grid.
type ScheduleConfig struct {
	WorkingDays []string `toml:"working_days"` // e.g., ["monday", "tuesday", ...]
	DayStart    string   `toml:"day_start"`    // e.g., "08:00", must be on the hour
	DayEnd      string   `toml:"day_end"`      // e.g., "18:00", must be on the hour
	Granularity int      `toml:"granularity_minutes"`
}

// APIConfig holds the remote appointment API settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// StorageConfig holds the local store settings for offline and demo use.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			WorkingDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart:    "08:00",
			DayEnd:      "18:00",
			Granularity: 15,
		},
		API: APIConfig{
			BaseURL:        "",
			TimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "turnos.db"
	}
	return filepath.Join(home, ".local", "share", "turnos", "turnos.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "turnos", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TURNOS_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("TURNOS_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("TURNOS_WORKING_DAYS"); v != "" {
		cfg.Schedule.WorkingDays = strings.Split(v, ",")
	}
	if v := os.Getenv("TURNOS_GRANULARITY"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.Granularity = mins
		}
	}

	if v := os.Getenv("TURNOS_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TURNOS_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}

	if v := os.Getenv("TURNOS_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("TURNOS_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateHour(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateHour(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Schedule.Granularity <= 0 || 60%c.Schedule.Granularity != 0 {
		return fmt.Errorf("granularity_minutes must divide 60 evenly, got %d", c.Schedule.Granularity)
	}

	if len(c.Schedule.WorkingDays) == 0 {
		return errors.New("at least one working day must be configured")
	}
	for _, day := range c.Schedule.WorkingDays {
		if !isValidWeekday(day) {
			return fmt.Errorf("invalid working day: %s", day)
		}
	}
	if c.Storage.DBPath == "" && c.API.BaseURL == "" {
		return errors.New("either api.base_url or storage.db_path must be set")
	}
	return nil
}

// StartHour returns day_start as an hour integer.
func (c *Config) StartHour() int {
	h, _ := strconv.Atoi(c.Schedule.DayStart[:2])
	return h
}

// EndHour returns day_end as an hour integer.
func (c *Config) EndHour() int {
	h, _ := strconv.Atoi(c.Schedule.DayEnd[:2])
	return h
}

// validateHour checks that a time string is HH:MM on a whole hour.
// The grid horizon is hour-aligned, so working hours must be too.
func validateHour(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	mins := t[3:5]
	if !isDigits(hour) || !isDigits(mins) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if mins != "00" {
		return fmt.Errorf("%s must fall on a whole hour, got %q", field, t)
	}
	if h, _ := strconv.Atoi(hour); h > 24 {
		return fmt.Errorf("%s hour out of range: %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func isValidWeekday(day string) bool {
	return validWeekdays[strings.ToLower(day)]
}

// IsWorkingDay returns true if the given weekday name is configured as a
// working day. Non-working days are visually dimmed in the calendar but
// remain bookable.
func (c *Config) IsWorkingDay(weekday string) bool {
	weekday = strings.ToLower(weekday)
	for _, d := range c.Schedule.WorkingDays {
		if strings.ToLower(d) == weekday {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
