package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultFloristsRequired — сколько флористов нужно миссии, если не указано при создании.
const DefaultFloristsRequired = 2

// events — миссии (мероприятия) флористического бизнеса.
type Event struct {
	ID string `gorm:"type:varchar(64);primaryKey"`

	Title       string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
	Location    string `gorm:"type:varchar(255)"`

	// Дата начала; сравнивается только календарная часть.
	Date time.Time `gorm:"not null;index"`
	// Для многодневных миссий.
	EndDate *time.Time
	// Время в формате HH:MM.
	Time    string `gorm:"type:varchar(5)"`
	EndTime string `gorm:"type:varchar(5)"`

	Budget   float64 `gorm:"not null;default:0"`
	ClientID string  `gorm:"type:varchar(64);not null;index"`

	FloristsRequired int `gorm:"not null"`

	// Сохранённый статус. Отображаемый статус вычисляется в lifecycle.
	Status EventStatus `gorm:"type:varchar(32);not null;default:'draft';index"`

	CompletedDate *time.Time
	InvoiceDate   *time.Time
	PaidDate      *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	AssignedFlorists []FloristAssignment `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Client           *Client             `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = EventStatusDraft
	}
	return nil
}

// AfterFind возвращает календарные даты в UTC: pgx отдаёт timestamptz
// в локальном поясе процесса, и полночь UTC превращается в вечер прошлого дня.
func (e *Event) AfterFind(_ *gorm.DB) error {
	if !e.Date.IsZero() {
		e.Date = e.Date.UTC()
	}
	if e.EndDate != nil {
		end := e.EndDate.UTC()
		e.EndDate = &end
	}
	return nil
}

// Assignment возвращает назначение флориста или nil.
func (e *Event) Assignment(floristID string) *FloristAssignment {
	for i := range e.AssignedFlorists {
		if e.AssignedFlorists[i].FloristID == floristID {
			return &e.AssignedFlorists[i]
		}
	}
	return nil
}
