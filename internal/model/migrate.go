package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей ядра миссий.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Client{},
		&Florist{},
		&UnavailabilityPeriod{},
		&Event{},
		&FloristAssignment{},
		&AuditEntry{},
	)
}
