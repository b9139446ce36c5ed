// Package ics выгружает миссии флориста в iCalendar, чтобы флорист мог
// подписаться на свой график из любого календаря.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/model"
)

const productID = "-//florist-missions//missions//FR"

// FloristCalendar строит VCALENDAR с одним VEVENT на миссию, где флорист
// подтверждён (CONFIRMED) или ещё не ответил (TENTATIVE).
// Отменённые миссии и миссии без даты пропускаются.
// Часы миссии интерпретируются в loc; без часов событие на весь день.
func FloristCalendar(f *model.Florist, events []model.Event, loc *time.Location, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("Missions %s", f.Name))
	if loc != nil {
		cal.SetXWRTimezone(loc.String())
	}

	for i := range events {
		ev := &events[i]
		if ev.Status == model.EventStatusCancelled || ev.Date.IsZero() {
			continue
		}
		a := ev.Assignment(f.ID)
		if a == nil {
			continue
		}

		var status ical.ObjectStatus
		switch a.Status {
		case model.AssignmentStatusConfirmed:
			status = ical.ObjectStatusConfirmed
		case model.AssignmentStatusPending:
			status = ical.ObjectStatusTentative
		default:
			continue
		}

		vev := cal.AddEvent(fmt.Sprintf("%s@florist-missions", ev.ID))
		vev.SetDtStampTime(stamp)
		vev.SetStatus(status)
		vev.SetSummary(summary(ev))
		if ev.Location != "" {
			vev.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			vev.SetDescription(ev.Description)
		}
		if !ev.UpdatedAt.IsZero() {
			vev.SetLastModifiedAt(ev.UpdatedAt)
		}

		if _, ok := calendar.ParseClock(ev.Time); ok {
			span, _ := calendar.EventSpan(ev.Date, ev.EndDate, ev.Time, ev.EndTime, loc)
			vev.SetStartAt(span.Start)
			vev.SetEndAt(span.End)
			continue
		}

		// DTEND для событий на весь день — следующий день после последнего.
		last := ev.Date
		if ev.EndDate != nil && ev.EndDate.After(last) {
			last = *ev.EndDate
		}
		vev.SetAllDayStartAt(ev.Date)
		vev.SetAllDayEndAt(last.AddDate(0, 0, 1))
	}

	return cal.Serialize()
}

func summary(ev *model.Event) string {
	title := strings.TrimSpace(ev.Title)
	if title == "" {
		title = "Mission"
	}
	return title
}
