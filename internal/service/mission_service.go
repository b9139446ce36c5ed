package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Leganyst/florist-missions/internal/analytics"
	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/lifecycle"
	appLog "github.com/Leganyst/florist-missions/internal/log"
	"github.com/Leganyst/florist-missions/internal/model"
	"github.com/Leganyst/florist-missions/internal/repository"
)

// Максимальный интервал выборки ListEvents.
const maxListDays = 366

// MissionService — единственная точка изменения миссий: создание,
// назначения флористов, перетаскивание по канбану, ночной пересчёт статусов.
type MissionService struct {
	settings

	store    *repository.Store
	validate *validator.Validate
}

func NewMissionService(store *repository.Store, opts ...Option) *MissionService {
	st := defaultSettings()
	for _, opt := range opts {
		opt(&st)
	}
	return &MissionService{
		settings: st,
		store:    store,
		validate: newValidator(),
	}
}

// EventView — миссия вместе с тем, что вычисляется на момент запроса.
type EventView struct {
	Event           *model.Event
	EffectiveStatus model.EventStatus
	// DaysUntil имеет смысл только при HasDate.
	DaysUntil      int
	HasDate        bool
	Urgency        lifecycle.Urgency
	AllowedTargets []model.EventStatus
}

func newView(ev *model.Event, now time.Time) EventView {
	r := lifecycle.Rank(ev, now)
	v := EventView{
		Event:           ev,
		EffectiveStatus: r.Status,
		Urgency:         r.Urgency,
		AllowedTargets:  lifecycle.AllowedTargets(r.Status),
	}
	v.DaysUntil, v.HasDate = lifecycle.DaysUntil(ev.Date, now)
	return v
}

// Набор флористов можно менять, пока миссия не завершена и не отменена.
func acceptsStaffing(st model.EventStatus) bool {
	switch st {
	case model.EventStatusDraft, model.EventStatusConfirmed, model.EventStatusInProgress:
		return true
	default:
		return false
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (s *MissionService) applyInput(ev *model.Event, in EventInput) error {
	date := calendar.CivilDay(in.Date)
	var end *time.Time
	if in.EndDate != nil && !in.EndDate.IsZero() {
		d := calendar.CivilDay(*in.EndDate)
		if d.Before(date) {
			return fmt.Errorf("%w: endDate is before date", ErrInvalidInput)
		}
		if d.After(date) {
			end = &d
		}
	}

	ev.Title = in.Title
	ev.Description = in.Description
	ev.Location = in.Location
	ev.Date = date
	ev.EndDate = end
	ev.Time = in.Time
	ev.EndTime = in.EndTime
	ev.Budget = in.Budget
	ev.ClientID = in.ClientID
	if in.FloristsRequired != nil {
		ev.FloristsRequired = *in.FloristsRequired
	}
	return nil
}

// CreateEvent создаёт миссию в статусе draft без назначений.
func (s *MissionService) CreateEvent(ctx context.Context, in EventInput) (*EventView, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	ev := &model.Event{
		Status:           model.EventStatusDraft,
		FloristsRequired: s.defaultRequired,
	}
	if err := s.applyInput(ev, in); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Clients.GetByID(ctx, ev.ClientID); err != nil {
			return notFound(err, ErrClientNotFound)
		}
		if err := tx.Events.Create(ctx, ev); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return tx.Audit.Record(ctx, model.AuditTypeEventCreated, ev.ID, nil, map[string]any{
			"date":             calendar.FormatISODay(ev.Date),
			"clientId":         ev.ClientID,
			"floristsRequired": ev.FloristsRequired,
		})
	})
	if err != nil {
		return nil, err
	}

	appLog.Info("event created", "event_id", ev.ID, "date", calendar.FormatISODay(ev.Date), "client_id", ev.ClientID)
	v := newView(ev, s.now())
	return &v, nil
}

// UpdateEvent меняет редактируемые поля. Статус меняется только через MoveStatus.
func (s *MissionService) UpdateEvent(ctx context.Context, id string, in EventInput) (*EventView, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	var ev *model.Event
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		ev, err = tx.Events.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if ev.Status == model.EventStatusCancelled {
			return ErrEventClosed
		}
		if in.ClientID != ev.ClientID {
			if _, err := tx.Clients.GetByID(ctx, in.ClientID); err != nil {
				return notFound(err, ErrClientNotFound)
			}
		}
		if err := s.applyInput(ev, in); err != nil {
			return err
		}
		if err := tx.Events.Update(ctx, ev); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		// floristsRequired мог измениться.
		if err := rebalance(ctx, tx, ev); err != nil {
			return err
		}
		return tx.Audit.Record(ctx, model.AuditTypeEventUpdated, ev.ID, nil, map[string]any{
			"date":             calendar.FormatISODay(ev.Date),
			"floristsRequired": ev.FloristsRequired,
		})
	})
	if err != nil {
		return nil, err
	}

	v := newView(ev, s.now())
	return &v, nil
}

func (s *MissionService) GetEvent(ctx context.Context, id string) (*EventView, error) {
	ev, err := s.store.Events.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}
	v := newView(ev, s.now())
	return &v, nil
}

// ListEvents — миссии с датой в днях [from, to] (в поясе приложения), постранично.
func (s *MissionService) ListEvents(ctx context.Context, from, to time.Time, page, pageSize int) (calendar.Page[EventView], error) {
	tr, err := calendar.DayRange(from, to, s.loc)
	if err != nil {
		return calendar.Page[EventView]{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, end := calendar.CivilDay(tr.Start), calendar.CivilDay(tr.End)
	if calendar.DaysBetween(start, end) > maxListDays {
		return calendar.Page[EventView]{}, fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, maxListDays)
	}

	limit, offset := calendar.Offset(page, pageSize)
	events, total, err := s.store.Events.ListByRange(ctx, start, end, limit, offset)
	if err != nil {
		return calendar.Page[EventView]{}, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	items := make([]EventView, 0, len(events))
	for i := range events {
		items = append(items, newView(&events[i], now))
	}

	return pageOf(items, total, page, limit, offset), nil
}

// EventHistory — журнал изменений миссии.
func (s *MissionService) EventHistory(ctx context.Context, id string) ([]model.AuditEntry, error) {
	if _, err := s.store.Events.GetByID(ctx, id); err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}
	return s.store.Audit.ListByEvent(ctx, id)
}

// AssignFlorist приглашает флориста на миссию (статус pending).
// Флорист должен существовать, быть свободным во все дни миссии
// и не быть подтверждённым на пересекающейся по времени миссии.
func (s *MissionService) AssignFlorist(ctx context.Context, eventID, floristID string) (*EventView, error) {
	now := s.now()

	var ev *model.Event
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		ev, err = tx.Events.GetByID(ctx, eventID)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if !acceptsStaffing(lifecycle.Effective(ev, now)) {
			return ErrEventClosed
		}
		if ev.Assignment(floristID) != nil {
			return ErrAlreadyAssigned
		}
		if lifecycle.Staffed(ev.FloristsRequired, ev.AssignedFlorists) {
			return ErrTeamComplete
		}

		f, err := calendar.ValidateFloristAssignment(ctx, tx.Florists, floristID, ev.Date)
		if err != nil {
			return err
		}
		if !calendar.AvailableOnDays(f.UnavailabilityPeriods, calendar.CivilDays(ev.Date, derefTime(ev.EndDate))) {
			return calendar.ErrFloristUnavailable
		}
		if err := s.checkOverlap(ctx, tx, ev, floristID, now); err != nil {
			return err
		}

		a := &model.FloristAssignment{
			EventID:    ev.ID,
			FloristID:  floristID,
			Status:     model.AssignmentStatusPending,
			AssignedAt: now.UTC(),
		}
		if err := tx.Assignments.Add(ctx, a); err != nil {
			return fmt.Errorf("add assignment: %w", err)
		}
		if err := tx.Audit.Record(ctx, model.AuditTypeFloristAssigned, ev.ID, &floristID, nil); err != nil {
			return err
		}

		ev, err = tx.Events.GetByID(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}

	appLog.Info("florist assigned", "event_id", eventID, "florist_id", floristID)
	v := newView(ev, now)
	return &v, nil
}

// checkOverlap ищет другую неотменённую миссию, где флорист уже подтверждён
// и часы которой пересекаются с ev.
func (s *MissionService) checkOverlap(ctx context.Context, tx *repository.Store, ev *model.Event, floristID string, now time.Time) error {
	span, ok := calendar.EventSpan(ev.Date, ev.EndDate, ev.Time, ev.EndTime, s.loc)
	if !ok {
		return nil
	}

	others, err := tx.Events.ListByFlorist(ctx, floristID)
	if err != nil {
		return fmt.Errorf("list florist events: %w", err)
	}

	var busy []calendar.TimeRange
	for i := range others {
		o := &others[i]
		if o.ID == ev.ID || lifecycle.Effective(o, now) == model.EventStatusCancelled {
			continue
		}
		a := o.Assignment(floristID)
		if a == nil || a.Status != model.AssignmentStatusConfirmed {
			continue
		}
		if other, ok := calendar.EventSpan(o.Date, o.EndDate, o.Time, o.EndTime, s.loc); ok {
			busy = append(busy, other)
		}
	}

	if overlap, _ := calendar.HasOverlap(span, busy, false); overlap {
		return ErrFloristBusy
	}
	return nil
}

// RespondAssignment записывает ответ флориста. Как только подтверждений
// становится floristsRequired, остальные pending получают not_selected;
// если состав снова неполный, not_selected возвращаются в pending.
func (s *MissionService) RespondAssignment(ctx context.Context, eventID, floristID string, accept bool) (*EventView, error) {
	now := s.now()

	var ev *model.Event
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		ev, err = tx.Events.GetByID(ctx, eventID)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if !acceptsStaffing(lifecycle.Effective(ev, now)) {
			return ErrEventClosed
		}
		a := ev.Assignment(floristID)
		if a == nil {
			return ErrAssignmentNotFound
		}

		next := model.AssignmentStatusRefused
		if accept {
			next = model.AssignmentStatusConfirmed
		}
		if a.Status == next {
			return nil
		}
		if accept {
			if lifecycle.Staffed(ev.FloristsRequired, ev.AssignedFlorists) {
				return ErrTeamComplete
			}
			if err := s.checkOverlap(ctx, tx, ev, floristID, now); err != nil {
				return err
			}
		}

		respondedAt := now.UTC()
		a.Status = next
		a.RespondedAt = &respondedAt
		if err := tx.Assignments.UpdateResponse(ctx, a); err != nil {
			return fmt.Errorf("update assignment: %w", err)
		}
		if err := rebalance(ctx, tx, ev); err != nil {
			return err
		}
		return tx.Audit.Record(ctx, model.AuditTypeFloristResponded, ev.ID, &floristID, map[string]any{
			"response": string(next),
		})
	})
	if err != nil {
		return nil, err
	}

	appLog.Info("florist responded", "event_id", eventID, "florist_id", floristID, "accept", accept)
	v := newView(ev, now)
	return &v, nil
}

// RemoveAssignment убирает флориста из миссии.
func (s *MissionService) RemoveAssignment(ctx context.Context, eventID, floristID string) (*EventView, error) {
	now := s.now()

	var ev *model.Event
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		ev, err = tx.Events.GetByID(ctx, eventID)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}
		if !acceptsStaffing(lifecycle.Effective(ev, now)) {
			return ErrEventClosed
		}
		if err := tx.Assignments.Delete(ctx, eventID, floristID); err != nil {
			return notFound(err, ErrAssignmentNotFound)
		}

		kept := ev.AssignedFlorists[:0]
		for _, a := range ev.AssignedFlorists {
			if a.FloristID != floristID {
				kept = append(kept, a)
			}
		}
		ev.AssignedFlorists = kept

		if err := rebalance(ctx, tx, ev); err != nil {
			return err
		}
		return tx.Audit.Record(ctx, model.AuditTypeFloristUnassigned, ev.ID, &floristID, nil)
	})
	if err != nil {
		return nil, err
	}

	v := newView(ev, now)
	return &v, nil
}

// rebalance приводит pending/not_selected в соответствие с тем, набран ли состав.
func rebalance(ctx context.Context, tx *repository.Store, ev *model.Event) error {
	staffed := lifecycle.Staffed(ev.FloristsRequired, ev.AssignedFlorists)
	for i := range ev.AssignedFlorists {
		a := &ev.AssignedFlorists[i]
		switch {
		case staffed && a.Status == model.AssignmentStatusPending:
			a.Status = model.AssignmentStatusNotSelected
		case !staffed && a.Status == model.AssignmentStatusNotSelected:
			a.Status = model.AssignmentStatusPending
		default:
			continue
		}
		if err := tx.Assignments.UpdateResponse(ctx, a); err != nil {
			return fmt.Errorf("rebalance assignment %s: %w", a.FloristID, err)
		}
	}
	return nil
}

// MoveStatus — перетаскивание карточки в колонку to. Исходный статус —
// отображаемый, а не сохранённый. Недопустимый переход возвращает
// lifecycle.ErrInvalidTransition и ничего не сохраняет.
//
// Допустимый переход, который вычисленный статус сразу отменил бы
// (confirmed без набранного состава, in_progress не в день миссии),
// ничего не сохраняет и не пишет в журнал.
func (s *MissionService) MoveStatus(ctx context.Context, eventID string, to model.EventStatus) (*EventView, error) {
	return s.transition(ctx, eventID, to, "")
}

// CancelEvent отменяет миссию с причиной. Оплаченную миссию отменить нельзя.
func (s *MissionService) CancelEvent(ctx context.Context, eventID, reason string) (*EventView, error) {
	return s.transition(ctx, eventID, model.EventStatusCancelled, reason)
}

func (s *MissionService) transition(ctx context.Context, eventID string, to model.EventStatus, reason string) (*EventView, error) {
	now := s.now()

	var (
		ev      *model.Event
		from    model.EventStatus
		changed bool
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		ev, err = tx.Events.GetByID(ctx, eventID)
		if err != nil {
			return notFound(err, ErrEventNotFound)
		}

		from = lifecycle.Effective(ev, now)
		prev := *ev
		changed, err = lifecycle.ApplyTransition(ev, from, to, now.UTC())
		if err != nil || !changed {
			return err
		}
		// Состав или дата всё равно вернут прежний статус: сохранять нечего.
		if lifecycle.Effective(ev, now) == from {
			*ev = prev
			changed = false
			return nil
		}
		if to == model.EventStatusCancelled {
			ev.CancelReason = reason
		}

		if err := tx.Events.SaveStatus(ctx, ev); err != nil {
			return fmt.Errorf("save status: %w", err)
		}
		details := map[string]any{"from": string(from), "to": string(to)}
		if reason != "" {
			details["reason"] = reason
		}
		return tx.Audit.Record(ctx, model.AuditTypeStatusChanged, ev.ID, nil, details)
	})
	if err != nil {
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			appLog.Debug("status move rejected", "event_id", eventID, "from", from, "to", to)
		}
		return nil, err
	}

	if changed {
		appLog.Info("status changed", "event_id", eventID, "from", from, "to", to)
	}
	v := newView(ev, now)
	return &v, nil
}

// BoardColumn — колонка канбана.
type BoardColumn struct {
	Meta   lifecycle.StatusMeta
	Events []EventView
	Budget float64
}

type Board struct {
	GeneratedAt time.Time
	Columns     []BoardColumn
	Cancelled   BoardColumn
}

// Board раскладывает все миссии по колонкам их отображаемого статуса.
func (s *MissionService) Board(ctx context.Context) (*Board, error) {
	events, err := s.store.Events.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	b := &Board{
		GeneratedAt: now,
		Cancelled:   BoardColumn{Meta: lifecycle.Meta(model.EventStatusCancelled)},
	}
	index := make(map[model.EventStatus]int)
	for i, st := range lifecycle.BoardColumns() {
		index[st] = i
		b.Columns = append(b.Columns, BoardColumn{Meta: lifecycle.Meta(st)})
	}

	for i := range events {
		v := newView(&events[i], now)
		col := &b.Cancelled
		if idx, ok := index[v.EffectiveStatus]; ok {
			col = &b.Columns[idx]
		}
		col.Events = append(col.Events, v)
		col.Budget += v.Event.Budget
	}
	return b, nil
}

// DayAgenda — миссии, начинающиеся в день day, по убыванию срочности.
func (s *MissionService) DayAgenda(ctx context.Context, day time.Time) ([]EventView, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	start := calendar.CivilDay(day)
	events, _, err := s.store.Events.ListByRange(ctx, start, start.AddDate(0, 0, 1), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	ranked := make([]lifecycle.Ranked, 0, len(events))
	for i := range events {
		ranked = append(ranked, lifecycle.Rank(&events[i], now))
	}
	lifecycle.SortByUrgency(ranked)

	out := make([]EventView, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, newView(r.Event, now))
	}
	return out, nil
}

type AutoTransition struct {
	EventID string
	From    model.EventStatus
	To      model.EventStatus
}

type SweepResult struct {
	Checked     int
	Transitions []AutoTransition
}

// SweepAutoTransitions сохраняет вычисленный статус открытых миссий
// (draft/confirmed/in_progress). При переходе в completed проставляется completedDate.
func (s *MissionService) SweepAutoTransitions(ctx context.Context) (SweepResult, error) {
	now := s.now()
	open := []model.EventStatus{
		model.EventStatusDraft,
		model.EventStatusConfirmed,
		model.EventStatusInProgress,
	}

	var res SweepResult
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		events, err := tx.Events.ListByStatuses(ctx, open)
		if err != nil {
			return fmt.Errorf("list open events: %w", err)
		}
		res.Checked = len(events)

		for i := range events {
			ev := &events[i]
			derived := lifecycle.Effective(ev, now)
			if derived == ev.Status {
				continue
			}

			from := ev.Status
			ev.Status = derived
			if derived == model.EventStatusCompleted && ev.CompletedDate == nil {
				at := now.UTC()
				ev.CompletedDate = &at
			}
			if err := tx.Events.SaveStatus(ctx, ev); err != nil {
				return fmt.Errorf("save status %s: %w", ev.ID, err)
			}
			if err := tx.Audit.Record(ctx, model.AuditTypeAutoTransition, ev.ID, nil, map[string]any{
				"from": string(from),
				"to":   string(derived),
			}); err != nil {
				return err
			}
			res.Transitions = append(res.Transitions, AutoTransition{EventID: ev.ID, From: from, To: derived})
		}
		return nil
	})
	if err != nil {
		appLog.Error("sweep failed", err)
		return SweepResult{}, err
	}

	appLog.Info("sweep completed", "checked", res.Checked, "changed", len(res.Transitions))
	return res, nil
}

// Analytics — отчёт по всем миссиям и флористам на текущий момент.
func (s *MissionService) Analytics(ctx context.Context) (analytics.Report, error) {
	events, err := s.store.Events.ListAll(ctx)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("list events: %w", err)
	}
	florists, err := s.store.Florists.ListAll(ctx)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("list florists: %w", err)
	}
	return analytics.Build(events, florists, s.now(), s.overdueDays), nil
}
