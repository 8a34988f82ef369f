package ics

import (
	"strings"
	"testing"
	"time"

	"meetme-api/internal/model"
)

func TestBuildCalendar(t *testing.T) {
	start := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	appts := []model.Appointment{
		{
			ID:          "11111111-2222-3333-4444-555555555555",
			Title:       "Design review",
			Start:       start,
			End:         start.Add(time.Hour),
			Location:    "Room A",
			Notes:       "bring sketches",
			MeetingLink: "https://meet.example.com/abc",
			Status:      model.StatusConfirmed,
		},
		{
			ID:     "66666666-7777-8888-9999-000000000000",
			Title:  "Cancelled slot",
			Start:  start.Add(24 * time.Hour),
			End:    start.Add(25 * time.Hour),
			Status: model.StatusCancelled,
		},
	}

	out := BuildCalendar(appts)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"END:VCALENDAR",
		"UID:11111111-2222-3333-4444-555555555555",
		"SUMMARY:Design review",
		"DTSTART:20240301T090000Z",
		"DTEND:20240301T100000Z",
		"LOCATION:Room A",
		"DESCRIPTION:bring sketches",
		"STATUS:CONFIRMED",
		"STATUS:CANCELLED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized calendar missing %q", want)
		}
	}

	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
}

func TestBuildCalendarEmpty(t *testing.T) {
	out := BuildCalendar(nil)
	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Error("empty input should still produce a valid calendar envelope")
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Error("empty input should contain no events")
	}
}
