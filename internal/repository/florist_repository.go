package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/florist-missions/internal/model"
)

type FloristRepository interface {
	// GetByID возвращает флориста вместе с периодами недоступности.
	GetByID(ctx context.Context, id string) (*model.Florist, error)
	Create(ctx context.Context, f *model.Florist) error
	Update(ctx context.Context, f *model.Florist) error
	// Вставить или перезаписать флориста вместе с периодами (импорт).
	Upsert(ctx context.Context, f *model.Florist) error
	List(ctx context.Context, limit, offset int) ([]model.Florist, int64, error)
	ListAll(ctx context.Context) ([]model.Florist, error)
}

type GormFloristRepository struct {
	db *gorm.DB
}

func NewGormFloristRepository(db *gorm.DB) *GormFloristRepository {
	return &GormFloristRepository{db: db}
}

func preloadPeriods(db *gorm.DB) *gorm.DB {
	return db.Preload("UnavailabilityPeriods", func(db *gorm.DB) *gorm.DB {
		return db.Order("start_date ASC")
	})
}

func (r *GormFloristRepository) GetByID(ctx context.Context, id string) (*model.Florist, error) {
	var f model.Florist
	if err := preloadPeriods(r.db.WithContext(ctx)).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *GormFloristRepository) Create(ctx context.Context, f *model.Florist) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error
}

func (r *GormFloristRepository) Update(ctx context.Context, f *model.Florist) error {
	return r.db.WithContext(ctx).
		Model(f).
		Select("name", "email", "phone", "hourly_rate", "rating", "note").
		Updates(f).
		Error
}

func (r *GormFloristRepository) Upsert(ctx context.Context, f *model.Florist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(f).Error; err != nil {
			return err
		}
		if err := tx.Where("florist_id = ?", f.ID).Delete(&model.UnavailabilityPeriod{}).Error; err != nil {
			return err
		}
		if len(f.UnavailabilityPeriods) == 0 {
			return nil
		}
		for i := range f.UnavailabilityPeriods {
			f.UnavailabilityPeriods[i].FloristID = f.ID
			// id периода из выгрузки не переносим, база выдаст свой
			f.UnavailabilityPeriods[i].ID = 0
		}
		return tx.Create(&f.UnavailabilityPeriods).Error
	})
}

func (r *GormFloristRepository) List(ctx context.Context, limit, offset int) ([]model.Florist, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Florist{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var florists []model.Florist
	if err := preloadPeriods(q).Order("name ASC").Limit(limit).Offset(offset).Find(&florists).Error; err != nil {
		return nil, 0, err
	}
	return florists, total, nil
}

func (r *GormFloristRepository) ListAll(ctx context.Context) ([]model.Florist, error) {
	var florists []model.Florist
	if err := preloadPeriods(r.db.WithContext(ctx)).Order("name ASC").Find(&florists).Error; err != nil {
		return nil, err
	}
	return florists, nil
}
