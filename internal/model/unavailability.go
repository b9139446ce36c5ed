package model

import (
	"time"

	"gorm.io/datatypes"
)

// unavailability_periods — периоды, когда флорист не работает.
type UnavailabilityPeriod struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	FloristID string `gorm:"type:varchar(64);not null;index"`

	// Чистые даты без времени — datatypes.Date, обе границы включительно.
	StartDate datatypes.Date `gorm:"not null"`
	EndDate   datatypes.Date `gorm:"not null"`

	Reason string `gorm:"type:text"`

	// false — предложено флористом, но не подтверждено: на доступность не влияет.
	IsActive bool `gorm:"not null;default:false"`

	// Необязательное правило повторения RRULE (например, FREQ=WEEKLY;BYDAY=SU).
	// Каждое вхождение блокирует день целиком.
	Recurrence string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p UnavailabilityPeriod) Start() time.Time { return time.Time(p.StartDate) }
func (p UnavailabilityPeriod) End() time.Time   { return time.Time(p.EndDate) }
