package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/Leganyst/florist-missions/internal/model"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownStatus     = errors.New("unknown status")
)

// CanTransition решает, можно ли вручную (перетаскиванием в канбане)
// перевести миссию из from в to.
//   - from == to — допустимо, ничего не меняет;
//   - в cancelled можно из любого статуса, кроме paid;
//   - вперёд — только на один шаг по рангу;
//   - назад и через шаг — нельзя; из cancelled выхода нет.
func CanTransition(from, to model.EventStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if to == model.EventStatusCancelled {
		return from != model.EventStatusPaid
	}
	if !from.Progressive() {
		return false
	}
	return to.Rank() == from.Rank()+1
}

// AllowedTargets — статусы, в которые можно перетащить миссию из from (без самого from).
func AllowedTargets(from model.EventStatus) []model.EventStatus {
	var out []model.EventStatus
	for _, s := range model.EventStatuses {
		if s != from && CanTransition(from, s) {
			out = append(out, s)
		}
	}
	return out
}

// ApplyTransition переводит миссию из её отображаемого статуса from в to
// и проставляет соответствующие отметки времени.
// Возвращает changed = false для from == to.
//
// Отметки биллинга идут строго по порядку: если миссия уходит в invoiced
// без completedDate (завершилась автоматически по дате), completedDate
// проставляется тем же моментом; аналогично invoiceDate для paid.
func ApplyTransition(ev *model.Event, from, to model.EventStatus, now time.Time) (bool, error) {
	if !to.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !CanTransition(from, to) {
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if from == to {
		return false, nil
	}

	at := now
	switch to {
	case model.EventStatusCompleted:
		ev.CompletedDate = &at
	case model.EventStatusInvoiced:
		if ev.CompletedDate == nil {
			ev.CompletedDate = &at
		}
		ev.InvoiceDate = &at
	case model.EventStatusPaid:
		if ev.CompletedDate == nil {
			ev.CompletedDate = &at
		}
		if ev.InvoiceDate == nil {
			ev.InvoiceDate = &at
		}
		ev.PaidDate = &at
	case model.EventStatusCancelled:
		ev.CancelledAt = &at
	}

	ev.Status = to
	return true, nil
}

// BillingOrderValid проверяет инвариант: invoiceDate ⇒ completedDate, paidDate ⇒ invoiceDate,
// и метки не идут назад во времени.
func BillingOrderValid(ev *model.Event) bool {
	if ev.InvoiceDate != nil {
		if ev.CompletedDate == nil || ev.InvoiceDate.Before(*ev.CompletedDate) {
			return false
		}
	}
	if ev.PaidDate != nil {
		if ev.InvoiceDate == nil || ev.PaidDate.Before(*ev.InvoiceDate) {
			return false
		}
	}
	return true
}
