package model

// Статус жизненного цикла миссии.
type EventStatus string

const (
	EventStatusDraft      EventStatus = "draft"
	EventStatusConfirmed  EventStatus = "confirmed"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusInvoiced   EventStatus = "invoiced"
	EventStatusPaid       EventStatus = "paid"
	EventStatusCancelled  EventStatus = "cancelled"
)

// RankUnknown возвращается для значений вне перечисления.
const RankUnknown = -1

// Порядок нормального продвижения. cancelled стоит вне цепочки.
var eventStatusRank = map[EventStatus]int{
	EventStatusDraft:      0,
	EventStatusConfirmed:  1,
	EventStatusInProgress: 2,
	EventStatusCompleted:  3,
	EventStatusInvoiced:   4,
	EventStatusPaid:       5,
	EventStatusCancelled:  6,
}

// EventStatuses — все значения в порядке ранга.
var EventStatuses = []EventStatus{
	EventStatusDraft,
	EventStatusConfirmed,
	EventStatusInProgress,
	EventStatusCompleted,
	EventStatusInvoiced,
	EventStatusPaid,
	EventStatusCancelled,
}

// Rank возвращает позицию статуса в цепочке draft → paid.
func (s EventStatus) Rank() int {
	r, ok := eventStatusRank[s]
	if !ok {
		return RankUnknown
	}
	return r
}

func (s EventStatus) Valid() bool {
	return s.Rank() != RankUnknown
}

// IsBilling — invoiced/paid: их не переопределяет ни дата, ни состав флористов.
func (s EventStatus) IsBilling() bool {
	return s == EventStatusInvoiced || s == EventStatusPaid
}

// Progressive — статус лежит на основной цепочке (всё, кроме cancelled).
func (s EventStatus) Progressive() bool {
	return s.Valid() && s != EventStatusCancelled
}

// Ответ флориста на назначение.
type AssignmentStatus string

const (
	AssignmentStatusPending     AssignmentStatus = "pending"
	AssignmentStatusConfirmed   AssignmentStatus = "confirmed"
	AssignmentStatusRefused     AssignmentStatus = "refused"
	AssignmentStatusNotSelected AssignmentStatus = "not_selected"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusConfirmed, AssignmentStatusRefused, AssignmentStatusNotSelected:
		return true
	default:
		return false
	}
}
