package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// clients — заказчики. Миссии ссылаются на них, но не владеют ими.
type Client struct {
	ID string `gorm:"type:varchar(64);primaryKey"`

	Name    string `gorm:"type:varchar(255);not null"`
	Company string `gorm:"type:varchar(255)"`
	Email   string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(32)"`
	Address string `gorm:"type:text"`

	Comment string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
