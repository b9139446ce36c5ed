package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/Leganyst/florist-missions/internal/model"
)

func TestCanTransition_Table(t *testing.T) {
	var (
		draft      = model.EventStatusDraft
		confirmed  = model.EventStatusConfirmed
		inProgress = model.EventStatusInProgress
		completed  = model.EventStatusCompleted
		invoiced   = model.EventStatusInvoiced
		paid       = model.EventStatusPaid
		cancelled  = model.EventStatusCancelled
	)

	allowed := map[[2]model.EventStatus]bool{
		{draft, confirmed}:      true,
		{confirmed, inProgress}: true,
		{inProgress, completed}: true,
		{completed, invoiced}:   true,
		{invoiced, paid}:        true,
		{draft, cancelled}:      true,
		{confirmed, cancelled}:  true,
		{inProgress, cancelled}: true,
		{completed, cancelled}:  true,
		{invoiced, cancelled}:   true,
	}

	for _, from := range model.EventStatuses {
		for _, to := range model.EventStatuses {
			want := allowed[[2]model.EventStatus{from, to}] || from == to
			if got := CanTransition(from, to); got != want {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCanTransition_Examples(t *testing.T) {
	if CanTransition(model.EventStatusPaid, model.EventStatusCancelled) {
		t.Fatalf("paid -> cancelled must be rejected")
	}
	if !CanTransition(model.EventStatusDraft, model.EventStatusCancelled) {
		t.Fatalf("draft -> cancelled must be allowed")
	}
	if CanTransition(model.EventStatusPaid, model.EventStatusInvoiced) {
		t.Fatalf("paid -> invoiced must be rejected")
	}
	if CanTransition(model.EventStatusDraft, model.EventStatusInProgress) {
		t.Fatalf("manual skip draft -> in_progress must be rejected")
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	if CanTransition("archived", model.EventStatusCancelled) {
		t.Fatalf("unknown from must be rejected")
	}
	if CanTransition(model.EventStatusDraft, "") {
		t.Fatalf("empty to must be rejected")
	}
}

func TestAllowedTargets(t *testing.T) {
	got := AllowedTargets(model.EventStatusCompleted)
	if len(got) != 2 || got[0] != model.EventStatusInvoiced || got[1] != model.EventStatusCancelled {
		t.Fatalf("unexpected targets %v", got)
	}
	if len(AllowedTargets(model.EventStatusPaid)) != 0 {
		t.Fatalf("paid must be final")
	}
}

func TestApplyTransition_StampsTimestamps(t *testing.T) {
	at := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	ev := &model.Event{Status: model.EventStatusInProgress}

	changed, err := ApplyTransition(ev, model.EventStatusInProgress, model.EventStatusCompleted, at)
	if err != nil || !changed {
		t.Fatalf("ApplyTransition: changed=%v err=%v", changed, err)
	}
	if ev.Status != model.EventStatusCompleted || ev.CompletedDate == nil || !ev.CompletedDate.Equal(at) {
		t.Fatalf("unexpected event %+v", ev)
	}

	later := at.Add(48 * time.Hour)
	if _, err := ApplyTransition(ev, ev.Status, model.EventStatusInvoiced, later); err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if _, err := ApplyTransition(ev, ev.Status, model.EventStatusPaid, later.Add(time.Hour)); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if ev.Status != model.EventStatusPaid || ev.PaidDate == nil || ev.InvoiceDate == nil {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !BillingOrderValid(ev) {
		t.Fatalf("billing order broken: %+v", ev)
	}
}

func TestApplyTransition_BackfillsCompletedDate(t *testing.T) {
	at := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	// Миссия завершилась по дате, в базе по-прежнему draft.
	ev := &model.Event{Status: model.EventStatusDraft}

	if _, err := ApplyTransition(ev, model.EventStatusCompleted, model.EventStatusInvoiced, at); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if ev.CompletedDate == nil || ev.InvoiceDate == nil {
		t.Fatalf("expected both dates, got %+v", ev)
	}
	if !BillingOrderValid(ev) {
		t.Fatalf("billing order broken")
	}
}

func TestApplyTransition_RejectsAndLeavesEventUntouched(t *testing.T) {
	ev := &model.Event{Status: model.EventStatusPaid}

	changed, err := ApplyTransition(ev, model.EventStatusPaid, model.EventStatusCancelled, time.Now())
	if !errors.Is(err, ErrInvalidTransition) || changed {
		t.Fatalf("expected ErrInvalidTransition, got changed=%v err=%v", changed, err)
	}
	if ev.Status != model.EventStatusPaid || ev.CancelledAt != nil {
		t.Fatalf("event mutated: %+v", ev)
	}
}

func TestApplyTransition_SelfIsNoop(t *testing.T) {
	ev := &model.Event{Status: model.EventStatusConfirmed}

	changed, err := ApplyTransition(ev, model.EventStatusConfirmed, model.EventStatusConfirmed, time.Now())
	if err != nil || changed {
		t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
	}
}

func TestApplyTransition_UnknownTarget(t *testing.T) {
	ev := &model.Event{Status: model.EventStatusDraft}
	if _, err := ApplyTransition(ev, model.EventStatusDraft, "archived", time.Now()); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestBillingOrderValid(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)

	if BillingOrderValid(&model.Event{InvoiceDate: &t1}) {
		t.Fatalf("invoice without completion must be invalid")
	}
	if BillingOrderValid(&model.Event{CompletedDate: &t1, InvoiceDate: &t0}) {
		t.Fatalf("invoice before completion must be invalid")
	}
	if BillingOrderValid(&model.Event{CompletedDate: &t0, InvoiceDate: &t1, PaidDate: &t0}) {
		t.Fatalf("payment before invoice must be invalid")
	}
}
