package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Florist — флорист-фрилансер, которого приглашают на миссии.
type Florist struct {
	ID string `gorm:"type:varchar(64);primaryKey"`

	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255)"`
	Phone string `gorm:"type:varchar(32)"`

	// Ставка в евро за час.
	HourlyRate float64 `gorm:"not null;default:0"`
	// Оценка 0..5.
	Rating float64 `gorm:"not null;default:0"`

	Note string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	UnavailabilityPeriods []UnavailabilityPeriod `gorm:"foreignKey:FloristID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (f *Florist) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
