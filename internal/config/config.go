package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chris/mapdate/internal/timeaxis"
)

// Config is the on-disk configuration. Geometry values are in terminal
// cells, which the time axis treats as pixels.
type Config struct {
	// MinDate / MaxDate bound every committed date, inclusive.
	MinDate timeaxis.Date `yaml:"min_date"`
	MaxDate timeaxis.Date `yaml:"max_date"`

	// StartDate is the date committed at launch. Zero means MaxDate.
	StartDate timeaxis.Date `yaml:"start_date,omitempty"`

	// Resolution is one of "days", "months", "years".
	Resolution string `yaml:"resolution"`

	// EdgeThreshold is the width of the auto-scroll bands at each end of the axis.
	EdgeThreshold float64 `yaml:"edge_threshold"`

	// AutoScrollStep is how far each auto-scroll tick pans the window.
	AutoScrollStep   float64       `yaml:"autoscroll_step"`
	AutoScrollPeriod time.Duration `yaml:"autoscroll_period"`

	// CommitPeriod is the throttle interval for live commits while dragging.
	CommitPeriod time.Duration `yaml:"commit_period"`

	Margin timeaxis.Margin `yaml:"margin"`

	// DateFormat is the strftime layout of the committed date in the
	// explorer header.
	DateFormat string `yaml:"date_format"`

	LogLevel string `yaml:"log_level"`
	// LogFile receives log lines while the terminal UI owns the screen.
	// Empty discards them.
	LogFile string `yaml:"log_file,omitempty"`
}

var (
	defaultMinDate = timeaxis.NewDate(2000, time.January, 1)
	defaultMaxDate = timeaxis.NewDate(2016, time.December, 31)
)

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		MinDate:          defaultMinDate,
		MaxDate:          defaultMaxDate,
		Resolution:       "days",
		EdgeThreshold:    2,
		AutoScrollStep:   1,
		AutoScrollPeriod: timeaxis.DefaultAutoScrollPeriod,
		CommitPeriod:     timeaxis.DefaultCommitPeriod,
		Margin:           timeaxis.Margin{Left: 2, Right: 2},
		DateFormat:       "%A %Y-%m-%d",
		LogLevel:         "info",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/mapdate/config.yaml or its OS equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "mapdate", "config.yaml"), nil
}

// Normalize fills zero values with defaults so partial files still work.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.MinDate.IsZero() {
		c.MinDate = def.MinDate
	}
	if c.MaxDate.IsZero() {
		c.MaxDate = def.MaxDate
	}
	if _, err := timeaxis.ParseResolution(c.Resolution); err != nil {
		c.Resolution = def.Resolution
	}
	if c.EdgeThreshold <= 0 {
		c.EdgeThreshold = def.EdgeThreshold
	}
	if c.AutoScrollStep <= 0 {
		c.AutoScrollStep = def.AutoScrollStep
	}
	if c.AutoScrollPeriod <= 0 {
		c.AutoScrollPeriod = def.AutoScrollPeriod
	}
	if c.CommitPeriod <= 0 {
		c.CommitPeriod = def.CommitPeriod
	}
	if c.DateFormat == "" {
		c.DateFormat = def.DateFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Bounds validates and returns the configured date range
func (c *Config) Bounds() (timeaxis.Bounds, error) {
	return timeaxis.NewBounds(c.MinDate, c.MaxDate)
}

// InitialDate is StartDate, or MaxDate when unset, clamped to the bounds
func (c *Config) InitialDate() timeaxis.Date {
	d := c.StartDate
	if d.IsZero() {
		d = c.MaxDate
	}
	return timeaxis.Bounds{Min: c.MinDate, Max: c.MaxDate}.Clamp(d)
}

// ParsedResolution returns Resolution as a timeaxis value
func (c *Config) ParsedResolution() (timeaxis.Resolution, error) {
	return timeaxis.ParseResolution(c.Resolution)
}

// TimelineOptions carries the interaction tuning into a Timeline
func (c *Config) TimelineOptions() []timeaxis.Option {
	return []timeaxis.Option{
		timeaxis.WithEdgeThreshold(c.EdgeThreshold),
		timeaxis.WithAutoScroll(c.AutoScrollStep, c.AutoScrollPeriod),
		timeaxis.WithCommitPeriod(c.CommitPeriod),
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there with
//     0600 perms and returned.
//   - Otherwise the YAML is read, normalized and the bounds validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// caller decides whether an unwritable config dir is fatal
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Normalize()

	if _, err := cfg.Bounds(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg atomically (temp file + rename) with 0600 permissions,
// creating the parent directory with 0700.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".mapdate-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
