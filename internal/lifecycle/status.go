// Package lifecycle содержит правила жизненного цикла миссии:
// вычисление отображаемого статуса, допустимые ручные переходы
// и классификацию срочности. Все функции чистые и не трогают хранилище.
package lifecycle

import (
	"time"

	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/model"
)

// DeriveEffectiveStatus вычисляет статус миссии на момент now.
//
// Порядок проверок (первое совпадение выигрывает):
//   - invoiced/paid не переопределяются никогда;
//   - completed/cancelled тоже остаются как есть;
//   - дата прошла → completed, независимо от состава;
//   - сегодня и набрано floristsRequired подтверждений → in_progress;
//   - набрано подтверждений → confirmed;
//   - иначе draft.
//
// floristsRequired <= 0 считается недостижимым. Нулевая дата (не разобралась
// при импорте) отключает временную ось.
func DeriveEffectiveStatus(ev *model.Event, assigned []model.FloristAssignment, now time.Time) model.EventStatus {
	switch ev.Status {
	case model.EventStatusInvoiced, model.EventStatusPaid:
		return ev.Status
	case model.EventStatusCompleted, model.EventStatusCancelled:
		return ev.Status
	}

	isToday, isPast := false, false
	if !ev.Date.IsZero() {
		diff := calendar.DaysBetween(now, calendar.StoredDay(ev.Date))
		isToday = diff == 0
		isPast = diff < 0
	}

	if isPast {
		return model.EventStatusCompleted
	}

	staffed := Staffed(ev.FloristsRequired, assigned)
	switch {
	case isToday && staffed:
		return model.EventStatusInProgress
	case staffed:
		return model.EventStatusConfirmed
	default:
		return model.EventStatusDraft
	}
}

// Effective — DeriveEffectiveStatus по собственным назначениям миссии.
func Effective(ev *model.Event, now time.Time) model.EventStatus {
	return DeriveEffectiveStatus(ev, ev.AssignedFlorists, now)
}

// ConfirmedCount — число назначений со статусом confirmed.
func ConfirmedCount(assigned []model.FloristAssignment) int {
	n := 0
	for _, a := range assigned {
		if a.Status == model.AssignmentStatusConfirmed {
			n++
		}
	}
	return n
}

// Staffed сообщает, набран ли требуемый состав. required <= 0 не набирается никогда.
func Staffed(required int, assigned []model.FloristAssignment) bool {
	return required > 0 && ConfirmedCount(assigned) >= required
}

// DaysUntil — сколько календарных дней осталось до миссии (отрицательно, если прошла).
// date — сохранённый день (полночь UTC), now берётся в своём поясе.
// ok = false для нулевой даты.
func DaysUntil(date, now time.Time) (days int, ok bool) {
	if date.IsZero() {
		return 0, false
	}
	return calendar.DaysBetween(now, calendar.StoredDay(date)), true
}
