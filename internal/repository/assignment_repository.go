package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/florist-missions/internal/model"
)

type AssignmentRepository interface {
	// Добавить флориста в конец списка назначений миссии.
	Add(ctx context.Context, a *model.FloristAssignment) error
	// Обновить статус ответа и время ответа.
	UpdateResponse(ctx context.Context, a *model.FloristAssignment) error
	Delete(ctx context.Context, eventID, floristID string) error
	ListByEvent(ctx context.Context, eventID string) ([]model.FloristAssignment, error)
}

type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) Add(ctx context.Context, a *model.FloristAssignment) error {
	db := r.db.WithContext(ctx)

	var maxPos sql.NullInt64
	if err := db.Model(&model.FloristAssignment{}).
		Where("event_id = ?", a.EventID).
		Select("MAX(position)").
		Row().
		Scan(&maxPos); err != nil {
		return err
	}
	a.Position = 0
	if maxPos.Valid {
		a.Position = int(maxPos.Int64) + 1
	}

	return db.Omit(clause.Associations).Create(a).Error
}

func (r *GormAssignmentRepository) UpdateResponse(ctx context.Context, a *model.FloristAssignment) error {
	res := r.db.WithContext(ctx).
		Model(&model.FloristAssignment{}).
		Where("event_id = ? AND florist_id = ?", a.EventID, a.FloristID).
		Updates(map[string]any{
			"status":       a.Status,
			"responded_at": a.RespondedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAssignmentRepository) Delete(ctx context.Context, eventID, floristID string) error {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND florist_id = ?", eventID, floristID).
		Delete(&model.FloristAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAssignmentRepository) ListByEvent(ctx context.Context, eventID string) ([]model.FloristAssignment, error) {
	var out []model.FloristAssignment
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
