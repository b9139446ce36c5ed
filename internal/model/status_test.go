package model

import (
	"testing"
	"time"
)

func TestEventStatus_RankFollowsChain(t *testing.T) {
	for i, s := range EventStatuses {
		if s.Rank() != i {
			t.Fatalf("%s: rank %d, want %d", s, s.Rank(), i)
		}
	}
	if EventStatus("archived").Rank() != RankUnknown || EventStatus("").Valid() {
		t.Fatalf("unknown status must have RankUnknown")
	}
}

func TestEventStatus_Groups(t *testing.T) {
	if !EventStatusInvoiced.IsBilling() || !EventStatusPaid.IsBilling() || EventStatusCompleted.IsBilling() {
		t.Fatalf("unexpected billing group")
	}
	if EventStatusCancelled.Progressive() || !EventStatusPaid.Progressive() || EventStatus("x").Progressive() {
		t.Fatalf("unexpected progressive group")
	}
}

func TestAssignmentStatus_Valid(t *testing.T) {
	for _, s := range []AssignmentStatus{
		AssignmentStatusPending,
		AssignmentStatusConfirmed,
		AssignmentStatusRefused,
		AssignmentStatusNotSelected,
	} {
		if !s.Valid() {
			t.Fatalf("%s must be valid", s)
		}
	}
	if AssignmentStatus("maybe").Valid() {
		t.Fatalf("unknown assignment status accepted")
	}
}

func TestEvent_BeforeCreateDefaults(t *testing.T) {
	ev := &Event{}
	if err := ev.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if ev.ID == "" || ev.Status != EventStatusDraft {
		t.Fatalf("defaults not applied: %+v", ev)
	}

	ev = &Event{
		AssignedFlorists: []FloristAssignment{{FloristID: "a"}, {FloristID: "b"}},
	}
	ev.Assignment("b").Status = AssignmentStatusConfirmed
	if ev.AssignedFlorists[1].Status != AssignmentStatusConfirmed || ev.Assignment("c") != nil {
		t.Fatalf("Assignment must return a pointer into the slice")
	}
}

func TestEvent_AfterFindNormalizesDatesToUTC(t *testing.T) {
	local := time.FixedZone("EDT", -4*3600)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	end := day.AddDate(0, 0, 1).In(local)
	ev := &Event{Date: day.In(local), EndDate: &end}

	if err := ev.AfterFind(nil); err != nil {
		t.Fatalf("AfterFind: %v", err)
	}
	if ev.Date.Location() != time.UTC || ev.Date.Day() != 19 {
		t.Fatalf("Date = %v, want 2026-10-19 UTC", ev.Date)
	}
	if ev.EndDate.Location() != time.UTC || ev.EndDate.Day() != 20 {
		t.Fatalf("EndDate = %v, want 2026-10-20 UTC", ev.EndDate)
	}

	zero := &Event{}
	if err := zero.AfterFind(nil); err != nil || !zero.Date.IsZero() || zero.EndDate != nil {
		t.Fatalf("zero event changed: %+v", zero)
	}
}
