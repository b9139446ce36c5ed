package lifecycle

import (
	"testing"
	"time"

	"github.com/Leganyst/florist-missions/internal/model"
)

func TestClassifyUrgency_Table(t *testing.T) {
	cases := []struct {
		status model.EventStatus
		days   int
		level  int
		label  string
	}{
		{model.EventStatusCompleted, 3, 0, "TERMINÉ"},
		{model.EventStatusCancelled, -3, 0, "ANNULÉ"},
		{model.EventStatusDraft, -1, 5, "EN RETARD"},
		{model.EventStatusConfirmed, -8, 5, "EN RETARD"},
		{model.EventStatusDraft, 0, 5, "AUJOURD'HUI - ÉQUIPE INCOMPLÈTE"},
		{model.EventStatusInProgress, 0, 4, "AUJOURD'HUI - EN COURS"},
		{model.EventStatusConfirmed, 0, 4, "AUJOURD'HUI - DÉMARRAGE IMMINENT"},
		{model.EventStatusDraft, 1, 4, "DEMAIN - ÉQUIPE INCOMPLÈTE"},
		{model.EventStatusConfirmed, 1, 2, "DEMAIN - EN ATTENTE"},
		{model.EventStatusDraft, 2, 3, "CETTE SEMAINE - À COMPLÉTER"},
		{model.EventStatusDraft, 7, 3, "CETTE SEMAINE - À COMPLÉTER"},
		{model.EventStatusConfirmed, 5, 1, "CETTE SEMAINE - EN ATTENTE"},
		{model.EventStatusDraft, 8, 2, "À PLANIFIER"},
		{model.EventStatusConfirmed, 30, 1, "À VENIR"},
		{model.EventStatusInvoiced, 10, 1, "À VÉRIFIER"},
		{model.EventStatusInProgress, 1, 1, "À VÉRIFIER"},
	}

	for _, c := range cases {
		got := ClassifyUrgency(c.status, c.days)
		if got.Level != c.level || got.Label != c.label {
			t.Fatalf("ClassifyUrgency(%s, %d) = {%d %q}, want {%d %q}",
				c.status, c.days, got.Level, got.Label, c.level, c.label)
		}
		if got.Priority == "" || got.Color == "" || got.Emoji == "" {
			t.Fatalf("ClassifyUrgency(%s, %d): incomplete tuple %+v", c.status, c.days, got)
		}
	}
}

func TestClassifyUrgency_CompletedAlwaysLevelZero(t *testing.T) {
	for _, d := range []int{-1000, -1, 0, 1, 7, 8, 1000} {
		if got := ClassifyUrgency(model.EventStatusCompleted, d); got.Level != 0 {
			t.Fatalf("completed, days=%d: level %d", d, got.Level)
		}
	}
}

func TestSortByUrgency_LevelThenTime(t *testing.T) {
	mk := func(id, clock string, level int) Ranked {
		return Ranked{
			Event:   &model.Event{ID: id, Time: clock},
			Urgency: Urgency{Level: level},
		}
	}
	items := []Ranked{
		mk("a", "14:00", 1),
		mk("b", "09:00", 4),
		mk("c", "16:00", 5),
		mk("d", "09:00", 1),
		mk("e", "08:00", 5),
	}

	SortByUrgency(items)

	want := []string{"e", "c", "b", "d", "a"}
	for i, id := range want {
		if items[i].Event.ID != id {
			got := make([]string, len(items))
			for j := range items {
				got[j] = items[j].Event.ID
			}
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortByUrgency_StableOnFullTie(t *testing.T) {
	items := []Ranked{
		{Event: &model.Event{ID: "first", Time: "10:00"}, Urgency: Urgency{Level: 2}},
		{Event: &model.Event{ID: "second", Time: "10:00"}, Urgency: Urgency{Level: 2}},
	}
	SortByUrgency(items)
	if items[0].Event.ID != "first" {
		t.Fatalf("stable order lost")
	}
}

func TestBoardColumns(t *testing.T) {
	cols := BoardColumns()
	if len(cols) != 6 || cols[0] != model.EventStatusDraft || cols[5] != model.EventStatusPaid {
		t.Fatalf("unexpected columns %v", cols)
	}
	if Meta(model.EventStatusInvoiced).Label != "Facturé" {
		t.Fatalf("unexpected meta")
	}
}

func TestRank_UsesDerivedStatusAndCalendarDays(t *testing.T) {
	now := time.Date(2026, 10, 24, 23, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	ev := &model.Event{
		ID:               "ev",
		Date:             time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC),
		FloristsRequired: 1,
		Status:           model.EventStatusDraft,
		AssignedFlorists: []model.FloristAssignment{{FloristID: "f", Status: model.AssignmentStatusConfirmed}},
	}
	r := Rank(ev, now)
	if r.Status != model.EventStatusConfirmed || r.Urgency.Label != "DEMAIN - EN ATTENTE" {
		t.Fatalf("unexpected rank %+v", r)
	}
}

func TestUrgencyAt_NoDate(t *testing.T) {
	now := time.Date(2026, 10, 24, 9, 0, 0, 0, time.UTC)
	ev := &model.Event{ID: "nodate"}
	if got := UrgencyAt(ev, model.EventStatusDraft, now); got.Label != "À VÉRIFIER" {
		t.Fatalf("draft without date: %+v", got)
	}
	if got := UrgencyAt(ev, model.EventStatusCancelled, now); got.Label != "ANNULÉ" {
		t.Fatalf("cancelled without date: %+v", got)
	}
}
