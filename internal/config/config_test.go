package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civcal/internal/calendar"
)

func TestLoad_FirstRunWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locale: ar_EG
timezone: Australia/Melbourne
calendar: Coptic
week_start: Monday
min_days_in_first_week: 4
clock: "*/15 * * * *"
log_level: WARN
`), 0o600))

	t.Setenv("CIVCAL_LOCALE", "fr-CA")
	t.Setenv("CIVCAL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Locale:             "fr-CA",
		Timezone:           "Australia/Melbourne",
		Calendar:           "coptic",
		WeekStart:          "monday",
		MinDaysInFirstWeek: 4,
		Clock:              "*/15 * * * *",
		LogLevel:           "debug",
	}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown calendar", "calendar: hebrew\n"},
		{"unknown zone", "timezone: Mars/Olympus_Mons\n"},
		{"bad clock", "clock: every now and then\n"},
		{"bad yaml", "locale: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate_UnwrapsCalendarErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Calendar = "julian"
	cfg.Timezone = "Nowhere/Special"
	err := cfg.Validate()
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendarSystem)
	assert.ErrorIs(t, err, calendar.ErrUnknownZone)
}

func TestNormalize(t *testing.T) {
	cfg := &Config{WeekStart: "someday", MinDaysInFirstWeek: 9, LogLevel: "loud"}
	cfg.Normalize()
	assert.Equal(t, &Config{
		Calendar: "gregorian",
		Clock:    "* * * * *",
		LogLevel: "info",
	}, cfg)
}

func TestWeekRule(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want calendar.WeekRule
	}{
		{"locale rule kept", Config{}, calendar.USWeekRule},
		{"first weekday", Config{WeekStart: "monday"}, calendar.WeekRule{FirstWeekday: calendar.Monday, MinDaysInFirstWeek: 1}},
		{"both", Config{WeekStart: "monday", MinDaysInFirstWeek: 4}, calendar.ISOWeekRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.WeekRule(calendar.USWeekRule))
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Locale = "ko_KR"
	cfg.MomentsFile = "/var/lib/civcal/moments.ics"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}
