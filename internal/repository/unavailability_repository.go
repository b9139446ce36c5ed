package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/florist-missions/internal/model"
)

type UnavailabilityRepository interface {
	Create(ctx context.Context, p *model.UnavailabilityPeriod) error
	GetByID(ctx context.Context, id int64) (*model.UnavailabilityPeriod, error)
	// SetActive подтверждает или снимает период.
	SetActive(ctx context.Context, id int64, active bool) error
	// ListByFlorist возвращает периоды флориста, в том числе неактивные.
	ListByFlorist(ctx context.Context, floristID string) ([]model.UnavailabilityPeriod, error)
}

type GormUnavailabilityRepository struct {
	db *gorm.DB
}

func NewGormUnavailabilityRepository(db *gorm.DB) *GormUnavailabilityRepository {
	return &GormUnavailabilityRepository{db: db}
}

func (r *GormUnavailabilityRepository) Create(ctx context.Context, p *model.UnavailabilityPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormUnavailabilityRepository) GetByID(ctx context.Context, id int64) (*model.UnavailabilityPeriod, error) {
	var p model.UnavailabilityPeriod
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormUnavailabilityRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.UnavailabilityPeriod{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormUnavailabilityRepository) ListByFlorist(ctx context.Context, floristID string) ([]model.UnavailabilityPeriod, error) {
	var periods []model.UnavailabilityPeriod
	err := r.db.WithContext(ctx).
		Where("florist_id = ?", floristID).
		Order("start_date ASC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}
