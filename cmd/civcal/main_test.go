package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civcal/internal/config"
)

func TestRunTour_Parts(t *testing.T) {
	conf := config.DefaultConfig()
	conf.Locale = "en"
	conf.Timezone = "America/Los_Angeles"
	env := hostEnv(conf)

	var buf bytes.Buffer
	require.NoError(t, runTour(&buf, env, -1))
	assert.Empty(t, buf.String())

	require.NoError(t, runTour(&buf, env, 2))
	assert.Contains(t, buf.String(), "Swift's debut date: 6/2/2014, 12:00 AM")

	assert.EqualError(t, runTour(&buf, env, 3), "unknown part 3")
}

func TestListMoments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moments.ics")
	data := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:standup",
		"SUMMARY:Standup",
		"DTSTART;TZID=America/Los_Angeles:20240102T093000",
		"RRULE:FREQ=DAILY",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	conf := config.DefaultConfig()
	conf.Locale = "en"
	conf.Timezone = "America/Los_Angeles"
	conf.MomentsFile = path

	var buf bytes.Buffer
	require.NoError(t, listMoments(&buf, conf, hostEnv(conf), 3))
	out := buf.String()
	assert.Contains(t, out, "Moments in the next 3 days:")
	// 2 to 4 depending on where the window and DST fall.
	n := strings.Count(out, "• Standup: ")
	assert.True(t, n >= 2 && n <= 4, "got %d occurrences", n)
	assert.Contains(t, out, "9:30 AM")
}

func TestListMoments_MissingFile(t *testing.T) {
	conf := config.DefaultConfig()
	conf.MomentsFile = filepath.Join(t.TempDir(), "absent.ics")

	var buf bytes.Buffer
	assert.Error(t, listMoments(&buf, conf, hostEnv(conf), 1))
}
