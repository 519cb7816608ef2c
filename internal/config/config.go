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

	"github.com/javiermolinar/lienzo/internal/layout"
)

// Config holds the application configuration.
type Config struct {
	Layout   LayoutConfig   `toml:"layout"`
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// LayoutConfig holds the layout engine knobs.
type LayoutConfig struct {
	PixelsPerHour          int `toml:"pixels_per_hour"`
	MinimumHeightPx        int `toml:"minimum_height_px"`
	DefaultDurationMinutes int `toml:"default_duration_minutes"`
}

// CalendarConfig holds feed and day-view settings.
type CalendarConfig struct {
	Feeds    []string `toml:"feeds"`     // ICS URLs or file paths
	DayStart string   `toml:"day_start"` // first visible hour, e.g. "07:00"
	DayEnd   string   `toml:"day_end"`   // last visible hour, e.g. "22:00"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	RowsPerHour int `toml:"rows_per_hour"` // vertical resolution of the TUI day view
}

// Default returns the default configuration.
func Default() *Config {
	lc := layout.DefaultConfig()
	return &Config{
		Layout: LayoutConfig{
			PixelsPerHour:          lc.PixelsPerHour,
			MinimumHeightPx:        lc.MinimumHeightPx,
			DefaultDurationMinutes: lc.DefaultDurationMinutes,
		},
		Calendar: CalendarConfig{
			Feeds:    nil,
			DayStart: "07:00",
			DayEnd:   "22:00",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			RowsPerHour: 4, // 15-minute rows
		},
	}
}

// LayoutConfig converts the configured knobs into an engine config.
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		PixelsPerHour:          c.Layout.PixelsPerHour,
		MinimumHeightPx:        c.Layout.MinimumHeightPx,
		DefaultDurationMinutes: c.Layout.DefaultDurationMinutes,
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lienzo.db"
	}
	return filepath.Join(home, ".local", "share", "lienzo", "lienzo.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "lienzo", "config.toml")
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
	// Layout overrides
	if v := envInt("LIENZO_PIXELS_PER_HOUR"); v > 0 {
		cfg.Layout.PixelsPerHour = v
	}
	if v := envInt("LIENZO_MINIMUM_HEIGHT_PX"); v > 0 {
		cfg.Layout.MinimumHeightPx = v
	}
	if v := envInt("LIENZO_DEFAULT_DURATION_MINUTES"); v > 0 {
		cfg.Layout.DefaultDurationMinutes = v
	}

	// Calendar overrides
	if v := os.Getenv("LIENZO_FEEDS"); v != "" {
		cfg.Calendar.Feeds = strings.Split(v, ",")
	}
	if v := os.Getenv("LIENZO_DAY_START"); v != "" {
		cfg.Calendar.DayStart = v
	}
	if v := os.Getenv("LIENZO_DAY_END"); v != "" {
		cfg.Calendar.DayEnd = v
	}

	// Storage overrides
	if v := os.Getenv("LIENZO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := envInt("LIENZO_ROWS_PER_HOUR"); v > 0 {
		cfg.UI.RowsPerHour = v
	}
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
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
	if err := c.LayoutConfig().Validate(); err != nil {
		return err
	}

	if err := validateTime(c.Calendar.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Calendar.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Calendar.DayStart >= c.Calendar.DayEnd {
		return errors.New("day_start must be before day_end")
	}

	for _, feed := range c.Calendar.Feeds {
		if strings.TrimSpace(feed) == "" {
			return errors.New("feeds cannot contain empty entries")
		}
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.UI.RowsPerHour <= 0 {
		return errors.New("rows_per_hour must be positive")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
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
