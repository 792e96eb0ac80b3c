package assistkit

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
)

const (
	layoutDateTime = "2006-01-02 15:04"
	layoutDate     = "2006-01-02"
)

// EventTime is a parsed start or end for event creation: either a wall-clock
// instant in the configured zone or a date-only all-day value.
type EventTime struct {
	DateTime time.Time
	Date     string
	AllDay   bool
}

// ParseEventTime parses "YYYY-MM-DD HH:MM" as a timed value in loc, or
// "YYYY-MM-DD" as an all-day value with no zone attached.
func ParseEventTime(s string, loc *time.Location) (EventTime, error) {
	if strings.Contains(s, " ") {
		t, err := time.ParseInLocation(layoutDateTime, s, loc)
		if err != nil {
			return EventTime{}, fmt.Errorf("%w: %q", ErrBadDate, s)
		}
		return EventTime{DateTime: t}, nil
	}
	if _, err := time.Parse(layoutDate, s); err != nil {
		return EventTime{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return EventTime{Date: s, AllDay: true}, nil
}

// EventDateTime converts the parsed value to its Calendar API representation.
// All-day values carry the date only, with no time zone.
func (t EventTime) EventDateTime() *calendar.EventDateTime {
	if t.AllDay {
		return &calendar.EventDateTime{Date: t.Date}
	}
	return &calendar.EventDateTime{DateTime: t.DateTime.Format(time.RFC3339)}
}

// ToZone parses an RFC3339 event timestamp and converts it to loc.
func ToZone(value string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}
