// Package ics renders a user's appointments as an iCalendar feed so they
// can be subscribed to from external calendar clients.
package ics

import (
	ical "github.com/arran4/golang-ical"

	"meetme-api/internal/model"
)

// BuildCalendar serializes appointments into a VCALENDAR. Appointment ids
// double as stable VEVENT UIDs, so re-exports update rather than duplicate
// events in subscribing clients.
func BuildCalendar(appointments []model.Appointment) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//MeetMe//Calendar//EN")

	for i := range appointments {
		a := &appointments[i]

		ev := cal.AddEvent(a.ID)
		ev.SetSummary(a.Title)
		ev.SetStartAt(a.Start.UTC())
		ev.SetEndAt(a.End.UTC())
		if a.Location != "" {
			ev.SetLocation(a.Location)
		}
		if a.Notes != "" {
			ev.SetDescription(a.Notes)
		}
		if a.MeetingLink != "" {
			ev.SetURL(a.MeetingLink)
		}
		if !a.CreatedAt.IsZero() {
			ev.SetCreatedTime(a.CreatedAt.UTC())
		}
		if !a.UpdatedAt.IsZero() {
			ev.SetModifiedAt(a.UpdatedAt.UTC())
		}
		ev.SetStatus(objectStatus(a.Status))
	}

	return cal.Serialize()
}

func objectStatus(status string) ical.ObjectStatus {
	switch status {
	case model.StatusConfirmed, model.StatusCompleted:
		return ical.ObjectStatusConfirmed
	case model.StatusCancelled:
		return ical.ObjectStatusCancelled
	default:
		return ical.ObjectStatusTentative
	}
}
