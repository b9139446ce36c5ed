// Package analytics считает показатели по миссиям: задержки выставления
// и оплаты счетов, просроченные счета, выручку по статусам,
// статистику флористов и историю клиентов.
// Все задержки считаются по реальным отметкам времени миссии.
package analytics

import (
	"sort"
	"time"

	"github.com/Leganyst/florist-missions/internal/lifecycle"
	"github.com/Leganyst/florist-missions/internal/model"
)

// DefaultOverdueDays — через сколько дней неоплаченный счёт считается просроченным.
const DefaultOverdueDays = 30

type Report struct {
	GeneratedAt time.Time `json:"generatedAt"`

	// По отображаемому статусу на момент GeneratedAt.
	CountByStatus   map[model.EventStatus]int     `json:"countByStatus"`
	BudgetByStatus  map[model.EventStatus]float64 `json:"budgetByStatus"`
	PaidRevenue     float64                       `json:"paidRevenue"`
	PendingRevenue  float64                       `json:"pendingRevenue"`  // выставлено, но не оплачено
	ForecastRevenue float64                       `json:"forecastRevenue"` // draft/confirmed/in_progress/completed

	InvoiceDelay Delay `json:"invoiceDelay"` // completed → invoiced
	PaymentDelay Delay `json:"paymentDelay"` // invoiced → paid

	OverdueInvoices []OverdueInvoice `json:"overdueInvoices"`
	Florists        []FloristStats   `json:"florists"`
}

// Delay — средняя задержка в днях по выборке.
type Delay struct {
	AverageDays float64 `json:"averageDays"`
	MaxDays     float64 `json:"maxDays"`
	Samples     int     `json:"samples"`
}

type OverdueInvoice struct {
	EventID         string    `json:"eventId"`
	Title           string    `json:"title"`
	ClientID        string    `json:"clientId"`
	InvoiceDate     time.Time `json:"invoiceDate"`
	DaysOutstanding int       `json:"daysOutstanding"`
	Amount          float64   `json:"amount"`
}

type FloristStats struct {
	FloristID   string `json:"floristId"`
	Name        string `json:"name"`
	Assigned    int    `json:"assigned"`
	Confirmed   int    `json:"confirmed"`
	Refused     int    `json:"refused"`
	Pending     int    `json:"pending"`
	NotSelected int    `json:"notSelected"`
	// Доля отказов среди ответивших (confirmed + refused), 0 без ответов.
	RefusalRate float64 `json:"refusalRate"`
	// Миссии, где флорист подтверждён и которые уже завершились.
	CompletedMissions int `json:"completedMissions"`
	// Оценка заработка: часы завершённых миссий × ставка.
	EstimatedEarnings float64 `json:"estimatedEarnings"`
}

// DelayDays — разница в днях между двумя отметками; ok = false, если
// одной из них нет или порядок нарушен.
func DelayDays(from, to *time.Time) (float64, bool) {
	if from == nil || to == nil || to.Before(*from) {
		return 0, false
	}
	return to.Sub(*from).Hours() / 24, true
}

type delayAcc struct {
	sum, max float64
	n        int
}

func (a *delayAcc) add(days float64) {
	a.sum += days
	a.n++
	if days > a.max {
		a.max = days
	}
}

func (a delayAcc) result() Delay {
	if a.n == 0 {
		return Delay{}
	}
	return Delay{AverageDays: a.sum / float64(a.n), MaxDays: a.max, Samples: a.n}
}

// Build собирает отчёт по всем миссиям на момент now.
// overdueDays <= 0 заменяется на DefaultOverdueDays.
func Build(events []model.Event, florists []model.Florist, now time.Time, overdueDays int) Report {
	if overdueDays <= 0 {
		overdueDays = DefaultOverdueDays
	}

	r := Report{
		GeneratedAt:    now,
		CountByStatus:  make(map[model.EventStatus]int, len(model.EventStatuses)),
		BudgetByStatus: make(map[model.EventStatus]float64, len(model.EventStatuses)),
	}
	for _, s := range model.EventStatuses {
		r.CountByStatus[s] = 0
		r.BudgetByStatus[s] = 0
	}

	var invoiceAcc, paymentAcc delayAcc
	for i := range events {
		ev := &events[i]
		st := lifecycle.Effective(ev, now)

		r.CountByStatus[st]++
		r.BudgetByStatus[st] += ev.Budget

		switch st {
		case model.EventStatusPaid:
			r.PaidRevenue += ev.Budget
		case model.EventStatusInvoiced:
			r.PendingRevenue += ev.Budget
			if inv, ok := overdue(ev, now, overdueDays); ok {
				r.OverdueInvoices = append(r.OverdueInvoices, inv)
			}
		case model.EventStatusCancelled:
		default:
			r.ForecastRevenue += ev.Budget
		}

		if d, ok := DelayDays(ev.CompletedDate, ev.InvoiceDate); ok {
			invoiceAcc.add(d)
		}
		if d, ok := DelayDays(ev.InvoiceDate, ev.PaidDate); ok {
			paymentAcc.add(d)
		}
	}

	r.InvoiceDelay = invoiceAcc.result()
	r.PaymentDelay = paymentAcc.result()

	sort.SliceStable(r.OverdueInvoices, func(i, j int) bool {
		return r.OverdueInvoices[i].DaysOutstanding > r.OverdueInvoices[j].DaysOutstanding
	})

	r.Florists = FloristReport(events, florists, now)
	return r
}

func overdue(ev *model.Event, now time.Time, overdueDays int) (OverdueInvoice, bool) {
	if ev.InvoiceDate == nil || ev.PaidDate != nil {
		return OverdueInvoice{}, false
	}
	days := int(now.Sub(*ev.InvoiceDate).Hours() / 24)
	if days <= overdueDays {
		return OverdueInvoice{}, false
	}
	return OverdueInvoice{
		EventID:         ev.ID,
		Title:           ev.Title,
		ClientID:        ev.ClientID,
		InvoiceDate:     *ev.InvoiceDate,
		DaysOutstanding: days,
		Amount:          ev.Budget,
	}, true
}
