package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/florist-missions/internal/model"
)

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*model.Client, error)
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	Upsert(ctx context.Context, c *model.Client) error
	List(ctx context.Context, limit, offset int) ([]model.Client, int64, error)
	ListAll(ctx context.Context) ([]model.Client, error)
}

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormClientRepository) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormClientRepository) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).
		Model(c).
		Select("name", "company", "email", "phone", "address", "comment").
		Updates(c).
		Error
}

func (r *GormClientRepository) Upsert(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(c).
		Error
}

func (r *GormClientRepository) List(ctx context.Context, limit, offset int) ([]model.Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Client{})

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

	var clients []model.Client
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *GormClientRepository) ListAll(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
