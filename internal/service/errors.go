package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEventNotFound      = errors.New("event not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrPeriodNotFound     = errors.New("unavailability period not found")
	ErrAssignmentNotFound = errors.New("florist is not assigned to this event")
	ErrAlreadyAssigned    = errors.New("florist is already assigned to this event")
	ErrFloristBusy        = errors.New("florist is confirmed on an overlapping event")
	ErrTeamComplete       = errors.New("event already has the required florists")
	ErrEventClosed        = errors.New("event no longer accepts staffing changes")
)

// notFound переводит gorm.ErrRecordNotFound в доменную ошибку.
func notFound(err, domain error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain
	}
	return err
}

// invalid собирает ошибки validator в одну ErrInvalidInput.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: field %s failed %q", ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
