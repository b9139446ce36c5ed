package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store собирает репозитории поверх одного *gorm.DB,
// чтобы сервисы могли выполнять несколько шагов в одной транзакции.
type Store struct {
	db *gorm.DB

	Events         EventRepository
	Assignments    AssignmentRepository
	Florists       FloristRepository
	Unavailability UnavailabilityRepository
	Clients        ClientRepository
	Audit          AuditRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Events:         NewGormEventRepository(db),
		Assignments:    NewGormAssignmentRepository(db),
		Florists:       NewGormFloristRepository(db),
		Unavailability: NewGormUnavailabilityRepository(db),
		Clients:        NewGormClientRepository(db),
		Audit:          NewGormAuditRepository(db),
	}
}

// Transaction выполняет fn над репозиториями, привязанными к транзакции.
// Ошибка fn откатывает всё.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) DB() *gorm.DB {
	return s.db
}
