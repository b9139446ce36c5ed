package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Тип записи аудита.
type AuditType string

const (
	AuditTypeEventCreated      AuditType = "event_created"
	AuditTypeEventUpdated      AuditType = "event_updated"
	AuditTypeStatusChanged     AuditType = "status_changed"
	AuditTypeAutoTransition    AuditType = "auto_transition"
	AuditTypeFloristAssigned   AuditType = "florist_assigned"
	AuditTypeFloristResponded  AuditType = "florist_responded"
	AuditTypeFloristUnassigned AuditType = "florist_unassigned"
)

// audit_entries — журнал изменений миссий.
type AuditEntry struct {
	ID string `gorm:"type:varchar(64);primaryKey"`

	Type AuditType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	EventID   string  `gorm:"type:varchar(64);not null;index"`
	FloristID *string `gorm:"type:varchar(64);index"`

	// Произвольные детали в JSON: from/to статусы, причина и т.п.
	Details datatypes.JSON

	Event *Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (a *AuditEntry) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
