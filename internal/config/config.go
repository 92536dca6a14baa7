package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"civcal/internal/calendar"
	appLog "civcal/internal/log"
	"civcal/internal/tz"
)

// Config is the host configuration. Every field can be left empty in the
// file; Normalize fills in defaults. Fields tagged env can be overridden
// with CIVCAL_-prefixed environment variables.
type Config struct {
	// Locale is a BCP 47 or POSIX identifier ("fr-CA", "ko_KR"). Empty
	// follows the host's LC_ALL/LC_TIME/LANG on every use.
	Locale string `yaml:"locale" env:"LOCALE"`

	// Timezone is an IANA identifier (e.g. "America/Los_Angeles"). Empty
	// follows the host's TZ and /etc/localtime on every use.
	Timezone string `yaml:"timezone" env:"TIMEZONE"`

	// Calendar is the calendar system: "gregorian" (default) or "coptic".
	Calendar string `yaml:"calendar" env:"CALENDAR"`

	// WeekStart overrides the locale's first weekday. Supported values are
	// the English weekday names in lower case; empty keeps the locale's.
	WeekStart string `yaml:"week_start"`

	// MinDaysInFirstWeek overrides the locale's minimum days in the first
	// week of a year (1..7). Zero keeps the locale's.
	MinDaysInFirstWeek int `yaml:"min_days_in_first_week"`

	// Clock is the cron schedule (e.g. "*/15 * * * *") of the host's clock
	// loop, which prints the current time in the configured styles.
	Clock string `yaml:"clock" env:"CLOCK"`

	// MomentsFile is an iCalendar file with named moments to list.
	MomentsFile string `yaml:"moments_file" env:"MOMENTS_FILE"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

const (
	defaultCalendar = "gregorian"
	defaultClock    = "* * * * *"
	defaultLogLevel = "info"
)

var weekdays = map[string]int{
	"sunday":    calendar.Sunday,
	"monday":    calendar.Monday,
	"tuesday":   calendar.Tuesday,
	"wednesday": calendar.Wednesday,
	"thursday":  calendar.Thursday,
	"friday":    calendar.Friday,
	"saturday":  calendar.Saturday,
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Calendar: defaultCalendar,
		Clock:    defaultClock,
		LogLevel: defaultLogLevel,
	}
}

// Normalize fills in missing values and drops ones that cannot be used,
// so older or hand-edited files still behave.
func (c *Config) Normalize() {
	c.Calendar = strings.ToLower(strings.TrimSpace(c.Calendar))
	if c.Calendar == "" {
		c.Calendar = defaultCalendar
	}

	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if _, ok := weekdays[c.WeekStart]; !ok && c.WeekStart != "" {
		appLog.Warn("config: unknown week_start, using the locale's", "week_start", c.WeekStart)
		c.WeekStart = ""
	}
	if c.MinDaysInFirstWeek < 0 || c.MinDaysInFirstWeek > 7 {
		c.MinDaysInFirstWeek = 0
	}

	if strings.TrimSpace(c.Clock) == "" {
		c.Clock = defaultClock
	}
	if _, ok := appLog.ParseLevel(c.LogLevel); !ok {
		c.LogLevel = defaultLogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
}

// Validate reports every setting the host cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if _, err := calendar.LookupSystem(c.Calendar); err != nil {
		errs = append(errs, err)
	}
	if c.Timezone != "" {
		if _, err := tz.Default().Resolve(c.Timezone); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := cron.ParseStandard(c.Clock); err != nil {
		errs = append(errs, fmt.Errorf("clock %q: %w", c.Clock, err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// WeekRule applies the week overrides to the locale's rule.
func (c *Config) WeekRule(localeRule calendar.WeekRule) calendar.WeekRule {
	r := localeRule
	if d, ok := weekdays[c.WeekStart]; ok {
		r.FirstWeekday = d
	}
	if c.MinDaysInFirstWeek > 0 {
		r.MinDaysInFirstWeek = c.MinDaysInFirstWeek
	}
	return r
}

// ApplyEnv overrides fields from CIVCAL_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: "CIVCAL_"}); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     permissions and returned.
//   - If the file exists, it is unmarshalled into Config.
//   - Environment overrides are applied, then defaults, then validation.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		if err := Save(path, cfg); err != nil {
			// Even if save fails, return cfg with error so caller can decide.
			return cfg, err
		}
		appLog.Info("config: wrote default config", "path", path)
	case err != nil:
		return nil, fmt.Errorf("config: %w", err)
	default:
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path atomically: the YAML goes to a temp file in the
// same directory, which is chmod 0600 and renamed over the target. The
// parent directory is created with 0700 if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
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

	tmp, err := os.CreateTemp(dir, ".civcal-config-*.tmp")
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

func (c *Config) Save(path string) error {
	return Save(path, c)
}
