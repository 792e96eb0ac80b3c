package main

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/assistkit/assistkit/pkg/assistkit"
)

// eventOutput represents an event for JSON output.
type eventOutput struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	AllDay      bool   `json:"allDay,omitempty"`
	HTMLLink    string `json:"htmlLink,omitempty"`
}

// eventOutputFromEvent converts a calendar.Event to eventOutput.
func eventOutputFromEvent(ev *calendar.Event) eventOutput {
	out := eventOutput{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		HTMLLink:    ev.HtmlLink,
	}

	if ev.Start != nil {
		if ev.Start.DateTime != "" {
			out.Start = ev.Start.DateTime
		} else if ev.Start.Date != "" {
			out.StartDate = ev.Start.Date
			out.AllDay = true
		}
	}
	if ev.End != nil {
		if ev.End.DateTime != "" {
			out.End = ev.End.DateTime
		} else if ev.End.Date != "" {
			out.EndDate = ev.End.Date
		}
	}

	return out
}

func eventOutputs(events []*calendar.Event) []eventOutput {
	output := make([]eventOutput, len(events))
	for i, ev := range events {
		output[i] = eventOutputFromEvent(ev)
	}
	return output
}

// listEvents returns events starting in [timeMin, timeMax) on the primary
// calendar, with recurring events expanded and ordered by start time.
func listEvents(ctx context.Context, conn *assistkit.Conn, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	svc := conn.CalendarService()
	if svc == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	resp, err := svc.Events.List("primary").
		Context(ctx).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return resp.Items, nil
}

// formatEventLine renders an event as "  HH:MM - HH:MM: Summary @ Location",
// with timed values converted to loc and all-day events marked as such.
func formatEventLine(ev *calendar.Event, loc *time.Location) string {
	timeStr := "All day"
	if ev.Start != nil && ev.Start.DateTime != "" && ev.End != nil && ev.End.DateTime != "" {
		start, err1 := assistkit.ToZone(ev.Start.DateTime, loc)
		end, err2 := assistkit.ToZone(ev.End.DateTime, loc)
		if err1 == nil && err2 == nil {
			timeStr = fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04"))
		}
	}

	summary := ev.Summary
	if summary == "" {
		summary = "No title"
	}

	line := fmt.Sprintf("  %s: %s", timeStr, summary)
	if ev.Location != "" {
		line += " @ " + ev.Location
	}
	return line
}

// eventDay returns the local calendar day label an event starts on.
// Date-only starts are already local and are not converted.
func eventDay(ev *calendar.Event, loc *time.Location) string {
	if ev.Start == nil {
		return ""
	}
	if ev.Start.DateTime != "" {
		t, err := assistkit.ToZone(ev.Start.DateTime, loc)
		if err != nil {
			return ""
		}
		return t.Format("Monday, Jan 02")
	}
	t, err := time.Parse("2006-01-02", ev.Start.Date)
	if err != nil {
		return ""
	}
	return t.Format("Monday, Jan 02")
}

// runToday shows events between local midnight and midnight tomorrow.
func runToday(ctx context.Context, conn *assistkit.Conn, loc *time.Location, out *assistkit.OutputWriter) error {
	now := time.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	events, err := listEvents(ctx, conn, start, end)
	if err != nil {
		return err
	}

	if out.JSON {
		return out.WriteJSON(eventOutputs(events))
	}

	out.WriteBanner(50, fmt.Sprintf("Today: %s", now.Format("Monday, January 02, 2006")))
	if len(events) == 0 {
		out.WriteMessage("  No events today.")
		return nil
	}
	for _, ev := range events {
		out.WriteMessage(formatEventLine(ev, loc))
	}
	return nil
}

// runWeek shows the next seven days grouped by day.
func runWeek(ctx context.Context, conn *assistkit.Conn, loc *time.Location, out *assistkit.OutputWriter) error {
	now := time.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 7)

	events, err := listEvents(ctx, conn, start, end)
	if err != nil {
		return err
	}

	if out.JSON {
		return out.WriteJSON(eventOutputs(events))
	}

	out.WriteBanner(50, fmt.Sprintf("This Week: %s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006")))
	if len(events) == 0 {
		out.WriteMessage("  No events this week.")
		return nil
	}

	currentDay := ""
	for _, ev := range events {
		if day := eventDay(ev, loc); day != currentDay {
			currentDay = day
			out.Writef("\n%s:", day)
		}
		out.WriteMessage(formatEventLine(ev, loc))
	}
	return nil
}

// runUpcoming shows events from now until now plus days.
func runUpcoming(ctx context.Context, conn *assistkit.Conn, days int, loc *time.Location, out *assistkit.OutputWriter) error {
	now := time.Now().In(loc)
	end := now.AddDate(0, 0, days)

	events, err := listEvents(ctx, conn, now, end)
	if err != nil {
		return err
	}

	if out.JSON {
		return out.WriteJSON(eventOutputs(events))
	}

	out.WriteBanner(50, fmt.Sprintf("Upcoming %d days", days))
	if len(events) == 0 {
		out.Writef("  No events in the next %d days.", days)
		return nil
	}
	for _, ev := range events {
		out.WriteMessage(formatEventLine(ev, loc))
	}
	return nil
}

// buildEventRequest assembles the insert payload from CLI arguments.
func buildEventRequest(title, start, end, description string, loc *time.Location) (*calendar.Event, error) {
	startTime, err := assistkit.ParseEventTime(start, loc)
	if err != nil {
		return nil, err
	}
	endTime, err := assistkit.ParseEventTime(end, loc)
	if err != nil {
		return nil, err
	}

	ev := &calendar.Event{
		Summary: title,
		Start:   startTime.EventDateTime(),
		End:     endTime.EventDateTime(),
	}
	if description != "" {
		ev.Description = description
	}
	return ev, nil
}

// runEventsCreate inserts a new event on the primary calendar.
func runEventsCreate(ctx context.Context, conn *assistkit.Conn, ev *calendar.Event, out *assistkit.OutputWriter) error {
	svc := conn.CalendarService()
	if svc == nil {
		return fmt.Errorf("calendar service not initialized")
	}

	created, err := svc.Events.Insert("primary", ev).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	if out.JSON {
		return out.WriteJSON(eventOutputFromEvent(created))
	}

	out.Writef("Event created: %s", created.HtmlLink)
	return nil
}
