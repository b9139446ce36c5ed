package lifecycle

import (
	"testing"
	"time"

	"github.com/Leganyst/florist-missions/internal/model"
)

var now = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func dayOffset(days int) time.Time {
	return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func assignments(statuses ...model.AssignmentStatus) []model.FloristAssignment {
	out := make([]model.FloristAssignment, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, model.FloristAssignment{
			FloristID: string(rune('a' + i)),
			Status:    s,
			Position:  i,
		})
	}
	return out
}

func confirmedN(n int) []model.FloristAssignment {
	st := make([]model.AssignmentStatus, n)
	for i := range st {
		st[i] = model.AssignmentStatusConfirmed
	}
	return assignments(st...)
}

func TestDerive_BillingStatesAreSticky(t *testing.T) {
	for _, persisted := range []model.EventStatus{model.EventStatusInvoiced, model.EventStatusPaid} {
		for _, offset := range []int{-30, -1, 0, 1, 30} {
			for _, n := range []int{0, 1, 5} {
				ev := &model.Event{Date: dayOffset(offset), Status: persisted, FloristsRequired: 2}
				if got := DeriveEffectiveStatus(ev, confirmedN(n), now); got != persisted {
					t.Fatalf("persisted=%s offset=%d confirmed=%d: got %s", persisted, offset, n, got)
				}
			}
		}
	}
}

func TestDerive_ExplicitTerminalStatesKept(t *testing.T) {
	for _, persisted := range []model.EventStatus{model.EventStatusCompleted, model.EventStatusCancelled} {
		ev := &model.Event{Date: dayOffset(5), Status: persisted, FloristsRequired: 1}
		if got := DeriveEffectiveStatus(ev, confirmedN(3), now); got != persisted {
			t.Fatalf("persisted=%s: got %s", persisted, got)
		}
	}
}

func TestDerive_PastEventsAutoComplete(t *testing.T) {
	for _, persisted := range []model.EventStatus{model.EventStatusDraft, model.EventStatusConfirmed, model.EventStatusInProgress} {
		for _, offset := range []int{-1, -10, -400} {
			ev := &model.Event{Date: dayOffset(offset), Status: persisted, FloristsRequired: 3}
			if got := DeriveEffectiveStatus(ev, nil, now); got != model.EventStatusCompleted {
				t.Fatalf("persisted=%s offset=%d: got %s", persisted, offset, got)
			}
		}
	}
}

func TestDerive_TodayFullyStaffedIsInProgress(t *testing.T) {
	ev := &model.Event{Date: dayOffset(0), Status: model.EventStatusDraft, FloristsRequired: 3}

	if got := DeriveEffectiveStatus(ev, confirmedN(3), now); got != model.EventStatusInProgress {
		t.Fatalf("3/3 today: got %s, want in_progress", got)
	}
	if got := DeriveEffectiveStatus(ev, confirmedN(2), now); got != model.EventStatusDraft {
		t.Fatalf("2/3 today: got %s, want draft", got)
	}
}

func TestDerive_TodayIgnoresTimeOfDay(t *testing.T) {
	ev := &model.Event{Date: time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC), FloristsRequired: 1}
	early := time.Date(2026, 10, 19, 0, 5, 0, 0, time.UTC)

	if got := DeriveEffectiveStatus(ev, confirmedN(1), early); got != model.EventStatusInProgress {
		t.Fatalf("got %s, want in_progress", got)
	}
}

func TestDerive_FutureFullyStaffedIsConfirmedNotInProgress(t *testing.T) {
	ev := &model.Event{Date: dayOffset(1), Status: model.EventStatusDraft, FloristsRequired: 2}

	if got := DeriveEffectiveStatus(ev, confirmedN(2), now); got != model.EventStatusConfirmed {
		t.Fatalf("got %s, want confirmed", got)
	}
}

func TestDerive_ZeroRequiredNeverConfirms(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10} {
		ev := &model.Event{Date: dayOffset(10), Status: model.EventStatusDraft, FloristsRequired: 0}
		if got := DeriveEffectiveStatus(ev, confirmedN(n), now); got != model.EventStatusDraft {
			t.Fatalf("required=0 confirmed=%d: got %s, want draft", n, got)
		}
		ev.Date = dayOffset(0)
		if got := DeriveEffectiveStatus(ev, confirmedN(n), now); got != model.EventStatusDraft {
			t.Fatalf("required=0 today confirmed=%d: got %s, want draft", n, got)
		}
	}
}

func TestDerive_OnlyConfirmedAssignmentsCount(t *testing.T) {
	ev := &model.Event{Date: dayOffset(3), FloristsRequired: 2}
	assigned := assignments(
		model.AssignmentStatusConfirmed,
		model.AssignmentStatusPending,
		model.AssignmentStatusRefused,
		model.AssignmentStatusNotSelected,
	)
	if got := DeriveEffectiveStatus(ev, assigned, now); got != model.EventStatusDraft {
		t.Fatalf("got %s, want draft", got)
	}
}

func TestDerive_UnderstaffedPersistedConfirmedFallsBackToDraft(t *testing.T) {
	ev := &model.Event{Date: dayOffset(4), Status: model.EventStatusConfirmed, FloristsRequired: 2}
	if got := DeriveEffectiveStatus(ev, confirmedN(1), now); got != model.EventStatusDraft {
		t.Fatalf("got %s, want draft", got)
	}
}

func TestDerive_ZeroDateSkipsTemporalRules(t *testing.T) {
	ev := &model.Event{Status: model.EventStatusDraft, FloristsRequired: 1}
	if got := DeriveEffectiveStatus(ev, confirmedN(1), now); got != model.EventStatusConfirmed {
		t.Fatalf("got %s, want confirmed", got)
	}
}

func TestDerive_UsesClockLocationForToday(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 19.10 23:00 UTC — уже 20.10 в Токио.
	clock := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC).In(tokyo)
	ev := &model.Event{Date: dayOffset(1), FloristsRequired: 1}

	if got := DeriveEffectiveStatus(ev, confirmedN(1), clock); got != model.EventStatusInProgress {
		t.Fatalf("got %s, want in_progress", got)
	}
}

func TestDerive_StoredDateReadInWesternZone(t *testing.T) {
	newYork := time.FixedZone("EDT", -4*3600)
	paris := time.FixedZone("CEST", 2*3600)
	clock := time.Date(2026, 10, 19, 10, 0, 0, 0, paris)
	// Полночь UTC 19.10, как её вернул бы драйвер в поясе Нью-Йорка: 18.10 20:00.
	ev := &model.Event{Date: dayOffset(0).In(newYork), FloristsRequired: 1, Status: model.EventStatusDraft}

	if got := DeriveEffectiveStatus(ev, confirmedN(1), clock); got != model.EventStatusInProgress {
		t.Fatalf("got %s, want in_progress", got)
	}
	if d, ok := DaysUntil(ev.Date, clock); !ok || d != 0 {
		t.Fatalf("DaysUntil = %d, %v; want 0", d, ok)
	}
	ev.AssignedFlorists = confirmedN(1)
	if u := Rank(ev, clock).Urgency; u.Level != 4 || u.Label != "AUJOURD'HUI - EN COURS" {
		t.Fatalf("unexpected urgency %+v", u)
	}
}

func TestDaysUntil(t *testing.T) {
	if d, ok := DaysUntil(dayOffset(7), now); !ok || d != 7 {
		t.Fatalf("DaysUntil = %d, %v", d, ok)
	}
	if d, ok := DaysUntil(dayOffset(-2), now); !ok || d != -2 {
		t.Fatalf("DaysUntil = %d, %v", d, ok)
	}
	if _, ok := DaysUntil(time.Time{}, now); ok {
		t.Fatalf("zero date must report ok=false")
	}
}
