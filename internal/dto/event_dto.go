package dto

import (
	"fmt"
	"time"

	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/lifecycle"
	"github.com/Leganyst/florist-missions/internal/model"
)

// EventRecord — миссия в формате дашборда (camelCase, даты ISO-8601).
// Календарные даты пишутся как YYYY-MM-DD, метки времени — как toISOString.
type EventRecord struct {
	ID               string             `json:"id"`
	Title            string             `json:"title,omitempty"`
	Description      string             `json:"description,omitempty"`
	Location         string             `json:"location,omitempty"`
	Date             string             `json:"date"`
	EndDate          string             `json:"endDate,omitempty"`
	Time             string             `json:"time,omitempty"`
	EndTime          string             `json:"endTime,omitempty"`
	Budget           float64            `json:"budget"`
	ClientID         string             `json:"clientId"`
	FloristsRequired int                `json:"floristsRequired"`
	AssignedFlorists []AssignmentRecord `json:"assignedFlorists"`
	Status           string             `json:"status"`
	CompletedDate    string             `json:"completedDate,omitempty"`
	InvoiceDate      string             `json:"invoiceDate,omitempty"`
	PaidDate         string             `json:"paidDate,omitempty"`
	CancelledAt      string             `json:"cancelledAt,omitempty"`
	CancelReason     string             `json:"cancelReason,omitempty"`

	// Только на выдачу: вычисленный статус и подпись даты.
	EffectiveStatus string `json:"effectiveStatus,omitempty"`
	Schedule        string `json:"schedule,omitempty"`
}

type AssignmentRecord struct {
	FloristID   string `json:"floristId"`
	Status      string `json:"status"`
	AssignedAt  string `json:"assignedAt"`
	RespondedAt string `json:"respondedAt,omitempty"`
}

// EventFromModel переводит миссию в запись дашборда.
func EventFromModel(ev *model.Event) EventRecord {
	r := EventRecord{
		ID:               ev.ID,
		Title:            ev.Title,
		Description:      ev.Description,
		Location:         ev.Location,
		Date:             calendar.FormatISODay(ev.Date),
		Time:             ev.Time,
		EndTime:          ev.EndTime,
		Budget:           ev.Budget,
		ClientID:         ev.ClientID,
		FloristsRequired: ev.FloristsRequired,
		AssignedFlorists: make([]AssignmentRecord, 0, len(ev.AssignedFlorists)),
		Status:           string(ev.Status),
		CompletedDate:    calendar.FormatTimestamp(ev.CompletedDate),
		InvoiceDate:      calendar.FormatTimestamp(ev.InvoiceDate),
		PaidDate:         calendar.FormatTimestamp(ev.PaidDate),
		CancelledAt:      calendar.FormatTimestamp(ev.CancelledAt),
		CancelReason:     ev.CancelReason,
	}
	if ev.EndDate != nil {
		r.EndDate = calendar.FormatISODay(*ev.EndDate)
	}
	for _, a := range ev.AssignedFlorists {
		assignedAt := a.AssignedAt
		r.AssignedFlorists = append(r.AssignedFlorists, AssignmentRecord{
			FloristID:   a.FloristID,
			Status:      string(a.Status),
			AssignedAt:  calendar.FormatTimestamp(&assignedAt),
			RespondedAt: calendar.FormatTimestamp(a.RespondedAt),
		})
	}
	return r
}

// EventView — запись с вычисленным статусом на момент now.
func EventView(ev *model.Event, now time.Time) EventRecord {
	r := EventFromModel(ev)
	r.EffectiveStatus = string(lifecycle.Effective(ev, now))
	r.Schedule = calendar.FormatEventSchedule(ev.Date, ev.EndDate, ev.Time, ev.EndTime)
	return r
}

// ToModel собирает миссию из записи. Неразобранные даты становятся нулевыми
// и перечисляются в warnings; запись при этом не отбрасывается.
// Календарные даты с поясом переводятся в loc перед отбрасыванием времени.
func (r EventRecord) ToModel(loc *time.Location) (*model.Event, []string) {
	var warnings []string

	ev := &model.Event{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		Time:             r.Time,
		EndTime:          r.EndTime,
		Budget:           r.Budget,
		ClientID:         r.ClientID,
		FloristsRequired: r.FloristsRequired,
		Status:           model.EventStatus(r.Status),
		CancelReason:     r.CancelReason,
	}
	if !ev.Status.Valid() {
		if r.Status != "" {
			warnings = append(warnings, fmt.Sprintf("event %s: unknown status %q, using draft", r.ID, r.Status))
		}
		ev.Status = model.EventStatusDraft
	}

	if d, ok := calendar.ParseDay(r.Date, loc); ok {
		ev.Date = d
	} else {
		warnings = append(warnings, fmt.Sprintf("event %s: malformed date %q", r.ID, r.Date))
	}
	if r.EndDate != "" {
		if d, ok := calendar.ParseDay(r.EndDate, loc); ok {
			ev.EndDate = &d
		} else {
			warnings = append(warnings, fmt.Sprintf("event %s: malformed endDate %q", r.ID, r.EndDate))
		}
	}

	stamps := []struct {
		name string
		raw  string
		dst  **time.Time
	}{
		{"completedDate", r.CompletedDate, &ev.CompletedDate},
		{"invoiceDate", r.InvoiceDate, &ev.InvoiceDate},
		{"paidDate", r.PaidDate, &ev.PaidDate},
		{"cancelledAt", r.CancelledAt, &ev.CancelledAt},
	}
	for _, s := range stamps {
		if s.raw == "" {
			continue
		}
		t, ok := calendar.ParseDate(s.raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("event %s: malformed %s %q", r.ID, s.name, s.raw))
			continue
		}
		*s.dst = &t
	}

	seen := make(map[string]bool, len(r.AssignedFlorists))
	for i, a := range r.AssignedFlorists {
		if a.FloristID == "" || seen[a.FloristID] {
			warnings = append(warnings, fmt.Sprintf("event %s: skip duplicate or empty florist %q", r.ID, a.FloristID))
			continue
		}
		seen[a.FloristID] = true

		st := model.AssignmentStatus(a.Status)
		if !st.Valid() {
			st = model.AssignmentStatusPending
		}
		assignedAt, _ := calendar.ParseDate(a.AssignedAt)
		as := model.FloristAssignment{
			EventID:    r.ID,
			FloristID:  a.FloristID,
			Status:     st,
			AssignedAt: assignedAt,
			Position:   i,
		}
		if t, ok := calendar.ParseDate(a.RespondedAt); ok {
			as.RespondedAt = &t
		}
		ev.AssignedFlorists = append(ev.AssignedFlorists, as)
	}

	return ev, warnings
}
