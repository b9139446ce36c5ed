package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Leganyst/florist-missions/internal/model"
)

func mission(id string, st model.EventStatus, novDay int, floristID string, as model.AssignmentStatus) model.Event {
	return model.Event{
		ID:     id,
		Status: st,
		Date:   time.Date(2026, 11, novDay, 0, 0, 0, 0, time.UTC),
		AssignedFlorists: []model.FloristAssignment{
			{FloristID: floristID, Status: as},
		},
	}
}

func TestFloristCalendar(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	f := &model.Florist{ID: "f-1", Name: "Alice"}
	stamp := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	timed := mission("timed", model.EventStatusConfirmed, 14, "f-1", model.AssignmentStatusConfirmed)
	timed.Title = "Mariage"
	timed.Location = "Lyon"
	timed.Time = "14:00"
	timed.EndTime = "18:00"

	allDay := mission("allday", model.EventStatusDraft, 20, "f-1", model.AssignmentStatusPending)
	allDay.Title = "Salon"

	events := []model.Event{
		timed,
		allDay,
		mission("refused", model.EventStatusDraft, 21, "f-1", model.AssignmentStatusRefused),
		mission("cancelled", model.EventStatusCancelled, 22, "f-1", model.AssignmentStatusConfirmed),
		mission("other", model.EventStatusDraft, 23, "f-2", model.AssignmentStatusConfirmed),
	}

	out := FloristCalendar(f, events, paris, stamp)

	cal, err := ical.ParseCalendar(bytes.NewReader([]byte(out)))
	if err != nil {
		t.Fatalf("parse generated calendar: %v", err)
	}
	vevents := cal.Events()
	if len(vevents) != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", len(vevents), out)
	}

	if !strings.Contains(out, "DTSTART:20261114T130000Z") || !strings.Contains(out, "DTEND:20261114T170000Z") {
		t.Fatalf("timed event must be converted from local time:\n%s", out)
	}
	if !strings.Contains(out, "DTSTART;VALUE=DATE:20261120") || !strings.Contains(out, "DTEND;VALUE=DATE:20261121") {
		t.Fatalf("all-day event expected:\n%s", out)
	}
	if !strings.Contains(out, "STATUS:TENTATIVE") || !strings.Contains(out, "STATUS:CONFIRMED") {
		t.Fatalf("statuses missing:\n%s", out)
	}
}
