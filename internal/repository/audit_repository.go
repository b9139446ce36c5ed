package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/florist-missions/internal/model"
)

type AuditRepository interface {
	// Record пишет запись журнала; details сериализуется в JSON.
	Record(ctx context.Context, typ model.AuditType, eventID string, floristID *string, details map[string]any) error
	ListByEvent(ctx context.Context, eventID string) ([]model.AuditEntry, error)
}

type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Record(
	ctx context.Context,
	typ model.AuditType,
	eventID string,
	floristID *string,
	details map[string]any,
) error {
	entry := &model.AuditEntry{
		Type:      typ,
		EventID:   eventID,
		FloristID: floristID,
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		entry.Details = datatypes.JSON(raw)
	}
	return r.db.WithContext(ctx).Omit("Event").Create(entry).Error
}

func (r *GormAuditRepository) ListByEvent(ctx context.Context, eventID string) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
