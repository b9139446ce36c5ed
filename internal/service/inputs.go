package service

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// EventInput — поля миссии, которые задаёт пользователь.
// Date — календарный день (время отбрасывается).
type EventInput struct {
	Title       string     `json:"title" validate:"max=255"`
	Description string     `json:"description"`
	Location    string     `json:"location" validate:"max=255"`
	Date        time.Time  `json:"date" validate:"required"`
	EndDate     *time.Time `json:"endDate"`
	Time        string     `json:"time" validate:"omitempty,datetime=15:04"`
	EndTime     string     `json:"endTime" validate:"omitempty,datetime=15:04"`
	Budget      float64    `json:"budget" validate:"gte=0"`
	ClientID    string     `json:"clientId" validate:"required,max=64"`
	// nil — значение по умолчанию при создании, без изменений при обновлении.
	FloristsRequired *int `json:"floristsRequired" validate:"omitempty,gte=1"`
}

type FloristInput struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Phone      string  `json:"phone" validate:"max=32"`
	HourlyRate float64 `json:"hourlyRate" validate:"gte=0"`
	Rating     float64 `json:"rating" validate:"gte=0,lte=5"`
	Note       string  `json:"note"`
}

type UnavailabilityInput struct {
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	Reason     string    `json:"reason"`
	IsActive   bool      `json:"isActive"`
	Recurrence string    `json:"recurrence" validate:"max=255"`
}

type ClientInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Company string `json:"company" validate:"max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=32"`
	Address string `json:"address"`
	Comment string `json:"comment"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
