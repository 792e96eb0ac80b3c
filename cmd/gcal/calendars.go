package main

import (
	"context"
	"fmt"

	"github.com/assistkit/assistkit/pkg/assistkit"
)

// calendarOutput represents a calendar for JSON output.
type calendarOutput struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	TimeZone string `json:"timezone,omitempty"`
	Primary  bool   `json:"primary,omitempty"`
}

// runCalendarsList lists all calendars visible to the authenticated user.
func runCalendarsList(ctx context.Context, conn *assistkit.Conn, out *assistkit.OutputWriter) error {
	svc := conn.CalendarService()
	if svc == nil {
		return fmt.Errorf("calendar service not initialized")
	}

	resp, err := svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to list calendars: %w", err)
	}

	if out.JSON {
		output := make([]calendarOutput, len(resp.Items))
		for i, cal := range resp.Items {
			output[i] = calendarOutput{
				ID:       cal.Id,
				Summary:  cal.Summary,
				TimeZone: cal.TimeZone,
				Primary:  cal.Primary,
			}
		}
		return out.WriteJSON(output)
	}

	out.WriteBanner(50, "Available Calendars")
	for _, cal := range resp.Items {
		summary := cal.Summary
		if cal.Primary {
			summary += " (primary)"
		}
		out.Writef("  %s", summary)
		out.Writef("    ID: %s", cal.Id)
	}
	return nil
}
