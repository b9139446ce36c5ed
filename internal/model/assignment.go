package model

import "time"

// florist_assignments — ответ флориста на приглашение в миссию.
// Составной PK (event_id, florist_id): один флорист — одна запись на миссию.
type FloristAssignment struct {
	EventID   string `gorm:"type:varchar(64);primaryKey"`
	FloristID string `gorm:"type:varchar(64);primaryKey;index"`

	Status      AssignmentStatus `gorm:"type:varchar(32);not null;default:'pending';index"`
	AssignedAt  time.Time        `gorm:"not null"`
	RespondedAt *time.Time

	// Порядок в списке назначений миссии.
	Position int `gorm:"not null;default:0"`

	UpdatedAt time.Time

	Florist *Florist `gorm:"foreignKey:FloristID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
