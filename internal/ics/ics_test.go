package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civcal/internal/calendar"
	"civcal/internal/model"
	"civcal/internal/tz"
)

func at(y int, m time.Month, d, h, min int) calendar.Instant {
	return calendar.FromTime(time.Date(y, m, d, h, min, 0, 0, time.UTC))
}

func TestWriteMoments_RoundTrip(t *testing.T) {
	now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	moments := []model.Moment{
		{UID: "iphone", Name: "iPhone Stevenote", At: at(2007, time.January, 9, 18, 0), ZoneID: "America/Los_Angeles"},
		{UID: "ipad", Name: "iPad Stevenote", At: calendar.FromUnixSeconds(1_264_615_200)},
		{UID: "donut", Name: "National Donut Day", At: at(2024, time.June, 7, 16, 0), ZoneID: "America/Los_Angeles",
			Rule: "FREQ=YEARLY;BYMONTH=6;BYDAY=+1FR"},
		{UID: "demo", Name: "Mother of All Demos", Description: "Doug Engelbart", At: at(1968, time.December, 9, 23, 45)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMoments(&buf, moments))
	out := buf.String()
	assert.Contains(t, out, "DTSTART;TZID=America/Los_Angeles:20070109T100000")
	assert.Contains(t, out, "DTSTART:20100127T180000Z")
	assert.Contains(t, out, "RRULE:FREQ=YEARLY;BYMONTH=6;BYDAY=+1FR")
	assert.Contains(t, out, "DTSTAMP:20240101T000000Z")

	got, err := ReadMoments(strings.NewReader(out), tz.NewDatabase())
	require.NoError(t, err)
	if diff := cmp.Diff(moments, got, cmp.AllowUnexported(calendar.Instant{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteMoments_GeneratesUID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMoments(&buf, []model.Moment{{Name: "anonymous", At: at(2014, time.June, 2, 7, 0)}}))

	got, err := ReadMoments(&buf, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].UID, 36)
}

func TestWriteMoments_UnknownZone(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMoments(&buf, []model.Moment{{UID: "x", At: at(2014, time.June, 2, 7, 0), ZoneID: "Mars/Olympus_Mons"}})
	assert.ErrorIs(t, err, calendar.ErrUnknownZone)
}

const catalog = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:fallback
SUMMARY:Fall back
DTSTART;TZID=America/Los_Angeles:20241103T013000
END:VEVENT
BEGIN:VEVENT
UID:allday
SUMMARY:Leap day
DTSTART;VALUE=DATE:20240229
END:VEVENT
BEGIN:VEVENT
SUMMARY:No UID
DTSTART:20240101T000000Z
END:VEVENT
BEGIN:VEVENT
UID:badzone
DTSTART;TZID=Nowhere/Special:20240101T000000
END:VEVENT
BEGIN:VEVENT
UID:nostart
SUMMARY:No start
END:VEVENT
BEGIN:VEVENT
UID:baddate
DTSTART:20240230T000000Z
END:VEVENT
END:VCALENDAR
`

func TestReadMoments_SkipsBadEvents(t *testing.T) {
	got, err := ReadMoments(strings.NewReader(catalog), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// 01:30 happens twice on 2024-11-03 in Los Angeles; the PDT one wins.
	assert.Equal(t, "fallback", got[0].UID)
	assert.Equal(t, at(2024, time.November, 3, 8, 30), got[0].At)
	assert.Equal(t, "America/Los_Angeles", got[0].ZoneID)

	assert.Equal(t, model.Moment{UID: "allday", Name: "Leap day", At: at(2024, time.February, 29, 0, 0)}, got[1])
}

func TestReadMoments_Malformed(t *testing.T) {
	_, err := ReadMoments(strings.NewReader("BEGIN:VTODO\nEND:VTODO\n"), nil)
	assert.Error(t, err)
}
