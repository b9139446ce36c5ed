package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/florist-missions/internal/model"
)

type EventRepository interface {
	// Создать миссию (назначения создаются отдельно).
	Create(ctx context.Context, ev *model.Event) error
	// Получить миссию по ID вместе с назначениями.
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// Обновить редактируемые поля миссии (без статуса и назначений).
	Update(ctx context.Context, ev *model.Event) error
	// Сохранить статус и отметки времени жизненного цикла.
	SaveStatus(ctx context.Context, ev *model.Event) error
	// Вставить или перезаписать миссию целиком, включая назначения (импорт).
	Upsert(ctx context.Context, ev *model.Event) error
	// Миссии с датой в [from, to) с пагинацией.
	ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]model.Event, int64, error)
	// Миссии в перечисленных статусах.
	ListByStatuses(ctx context.Context, statuses []model.EventStatus) ([]model.Event, error)
	ListByClient(ctx context.Context, clientID string) ([]model.Event, error)
	// Миссии, куда флорист назначен (в любом статусе ответа).
	ListByFlorist(ctx context.Context, floristID string) ([]model.Event, error)
	ListAll(ctx context.Context) ([]model.Event, error)
}

// Реализация на GORM.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// назначения всегда в порядке добавления
func preloadAssignments(db *gorm.DB) *gorm.DB {
	return db.Preload("AssignedFlorists", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *GormEventRepository) Create(ctx context.Context, ev *model.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ev).Error
}

func (r *GormEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var ev model.Event
	if err := preloadAssignments(r.db.WithContext(ctx)).First(&ev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *GormEventRepository) Update(ctx context.Context, ev *model.Event) error {
	return r.db.WithContext(ctx).
		Model(ev).
		Select("title", "description", "location", "date", "end_date", "time", "end_time",
			"budget", "client_id", "florists_required").
		Updates(ev).
		Error
}

func (r *GormEventRepository) SaveStatus(ctx context.Context, ev *model.Event) error {
	return r.db.WithContext(ctx).
		Model(ev).
		Select("status", "completed_date", "invoice_date", "paid_date", "cancelled_at", "cancel_reason").
		Updates(ev).
		Error
}

func (r *GormEventRepository) Upsert(ctx context.Context, ev *model.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(ev).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&model.FloristAssignment{}).Error; err != nil {
			return err
		}
		if len(ev.AssignedFlorists) == 0 {
			return nil
		}
		for i := range ev.AssignedFlorists {
			ev.AssignedFlorists[i].EventID = ev.ID
			ev.AssignedFlorists[i].Position = i
		}
		return tx.Omit(clause.Associations).Create(&ev.AssignedFlorists).Error
	})
}

func (r *GormEventRepository) ListByRange(
	ctx context.Context,
	from, to time.Time,
	limit, offset int,
) ([]model.Event, int64, error) {
	var (
		events []model.Event
		total  int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("date >= ? AND date < ?", from.UTC(), to.UTC())

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := preloadAssignments(q).Order("date ASC").Order("time ASC").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *GormEventRepository) ListByStatuses(ctx context.Context, statuses []model.EventStatus) ([]model.Event, error) {
	if len(statuses) == 0 {
		return []model.Event{}, nil
	}
	var events []model.Event
	err := preloadAssignments(r.db.WithContext(ctx)).
		Where("status IN ?", statuses).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) ListByClient(ctx context.Context, clientID string) ([]model.Event, error) {
	var events []model.Event
	err := preloadAssignments(r.db.WithContext(ctx)).
		Where("client_id = ?", clientID).
		Order("date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) ListByFlorist(ctx context.Context, floristID string) ([]model.Event, error) {
	sub := r.db.Model(&model.FloristAssignment{}).
		Select("event_id").
		Where("florist_id = ?", floristID)

	var events []model.Event
	err := preloadAssignments(r.db.WithContext(ctx)).
		Where("id IN (?)", sub).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormEventRepository) ListAll(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := preloadAssignments(r.db.WithContext(ctx)).Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
