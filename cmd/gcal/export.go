package main

import (
	"context"
	"time"

	"github.com/assistkit/assistkit/pkg/assistkit"
)

// runEventsExport writes the next days of events as an iCalendar document.
func runEventsExport(ctx context.Context, conn *assistkit.Conn, days int, loc *time.Location, out *assistkit.OutputWriter) error {
	now := time.Now().In(loc)
	end := now.AddDate(0, 0, days)

	events, err := listEvents(ctx, conn, now, end)
	if err != nil {
		return err
	}

	return assistkit.WriteICS(out.Writer, events)
}
