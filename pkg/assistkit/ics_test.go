package assistkit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestWriteICS(t *testing.T) {
	events := []*calendar.Event{
		{
			Id:       "ev1",
			ICalUID:  "ev1@google.com",
			Summary:  "Team Sync",
			Location: "Room 4",
			Start:    &calendar.EventDateTime{DateTime: "2024-03-15T09:30:00Z"},
			End:      &calendar.EventDateTime{DateTime: "2024-03-15T10:00:00Z"},
		},
		{
			Id:      "ev2",
			Summary: "Holiday",
			Start:   &calendar.EventDateTime{Date: "2024-12-25"},
			End:     &calendar.EventDateTime{Date: "2024-12-26"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, events))
	out := buf.String()

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "VERSION:2.0")
	assert.Contains(t, out, "UID:ev1@google.com")
	assert.Contains(t, out, "SUMMARY:Team Sync")
	assert.Contains(t, out, "LOCATION:Room 4")
	assert.Contains(t, out, "DTSTART:20240315T093000Z")
	assert.Contains(t, out, "UID:ev2")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20241225")
	assert.Contains(t, out, "END:VCALENDAR")
}

func TestWriteICSEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, nil))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
}

func TestWriteICSBadTimestamp(t *testing.T) {
	events := []*calendar.Event{
		{
			Id:    "bad",
			Start: &calendar.EventDateTime{DateTime: "not-a-time"},
		},
	}
	var buf bytes.Buffer
	assert.Error(t, WriteICS(&buf, events))
}
