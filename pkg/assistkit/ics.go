package assistkit

import (
	"io"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/pkg/errors"
	"google.golang.org/api/calendar/v3"
)

// WriteICS encodes calendar events as an iCalendar document.
func WriteICS(w io.Writer, events []*calendar.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//assistkit//EN")

	for _, ev := range events {
		ve, err := toVEvent(ev)
		if err != nil {
			return errors.Wrapf(err, "converting event %s", ev.Id)
		}
		cal.Children = append(cal.Children, ve)
	}

	return errors.Wrap(ical.NewEncoder(w).Encode(cal), "encoding calendar")
}

// toVEvent converts a Calendar API event to an ical VEVENT component.
func toVEvent(ev *calendar.Event) (*ical.Component, error) {
	ve := ical.NewComponent(ical.CompEvent)

	uid := ev.ICalUID
	if uid == "" {
		uid = ev.Id
	}
	ve.Props.SetText(ical.PropUID, uid)
	ve.Props.SetText(ical.PropSummary, ev.Summary)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	if err := setEventTime(ve, ical.PropDateTimeStart, ev.Start); err != nil {
		return nil, err
	}
	if err := setEventTime(ve, ical.PropDateTimeEnd, ev.End); err != nil {
		return nil, err
	}

	if ev.Description != "" {
		ve.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		ve.Props.SetText(ical.PropLocation, ev.Location)
	}

	return ve, nil
}

func setEventTime(ve *ical.Component, name string, edt *calendar.EventDateTime) error {
	if edt == nil {
		return nil
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return errors.Wrapf(err, "parsing %s", name)
		}
		ve.Props.SetDateTime(name, t)
		return nil
	}
	if edt.Date != "" {
		t, err := time.Parse("2006-01-02", edt.Date)
		if err != nil {
			return errors.Wrapf(err, "parsing %s", name)
		}
		p := ical.NewProp(name)
		p.SetValueType(ical.ValueDate)
		p.Value = t.Format("20060102")
		ve.Props.Add(p)
	}
	return nil
}
