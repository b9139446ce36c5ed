package analytics

import (
	"sort"
	"time"

	"github.com/Leganyst/florist-missions/internal/lifecycle"
	"github.com/Leganyst/florist-missions/internal/model"
)

// ClientHistory — сводка по миссиям одного клиента.
type ClientHistory struct {
	ClientID       string    `json:"clientId"`
	Events         int       `json:"events"`
	Cancelled      int       `json:"cancelled"`
	TotalBudget    float64   `json:"totalBudget"`    // без отменённых
	PaidTotal      float64   `json:"paidTotal"`
	OutstandingDue float64   `json:"outstandingDue"` // выставлено, не оплачено
	FirstEventDate time.Time `json:"firstEventDate"`
	LastEventDate  time.Time `json:"lastEventDate"`
	// Миссии в обратном хронологическом порядке со статусом на now.
	Timeline []TimelineEntry `json:"timeline"`
}

type TimelineEntry struct {
	EventID string            `json:"eventId"`
	Title   string            `json:"title"`
	Date    time.Time         `json:"date"`
	Status  model.EventStatus `json:"status"`
	Budget  float64           `json:"budget"`
}

// BuildClientHistory ожидает миссии одного клиента в любом порядке.
func BuildClientHistory(clientID string, events []model.Event, now time.Time) ClientHistory {
	h := ClientHistory{ClientID: clientID}

	for i := range events {
		ev := &events[i]
		st := lifecycle.Effective(ev, now)

		h.Events++
		h.Timeline = append(h.Timeline, TimelineEntry{
			EventID: ev.ID,
			Title:   ev.Title,
			Date:    ev.Date,
			Status:  st,
			Budget:  ev.Budget,
		})

		if !ev.Date.IsZero() {
			if h.FirstEventDate.IsZero() || ev.Date.Before(h.FirstEventDate) {
				h.FirstEventDate = ev.Date
			}
			if ev.Date.After(h.LastEventDate) {
				h.LastEventDate = ev.Date
			}
		}

		switch st {
		case model.EventStatusCancelled:
			h.Cancelled++
			continue
		case model.EventStatusPaid:
			h.PaidTotal += ev.Budget
		case model.EventStatusInvoiced:
			h.OutstandingDue += ev.Budget
		}
		h.TotalBudget += ev.Budget
	}

	sortTimeline(h.Timeline)
	return h
}

func sortTimeline(entries []TimelineEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
