package calendar

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/florist-missions/internal/model"
)

// Ошибки проверки флориста перед назначением на миссию.
var (
	ErrInvalidFloristID   = errors.New("invalid florist id")
	ErrFloristNotFound    = errors.New("florist not found")
	ErrFloristUnavailable = errors.New("florist is unavailable on this date")
)

// Источник данных о флористах.
// В реале это репозиторий на GORM, в тестах — мок.
type FloristStore interface {
	GetByID(ctx context.Context, id string) (*model.Florist, error)
}

// ValidateFloristAssignment:
//   - проверяет идентификатор;
//   - достаёт флориста вместе с периодами недоступности;
//   - проверяет, что ни один активный период не закрывает день миссии.
//
// Нулевая дата миссии (не разобралась при импорте) доступность не ограничивает.
func ValidateFloristAssignment(
	ctx context.Context,
	store FloristStore,
	floristID string,
	day time.Time,
) (*model.Florist, error) {
	if strings.TrimSpace(floristID) == "" {
		return nil, ErrInvalidFloristID
	}

	f, err := store.GetByID(ctx, floristID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloristNotFound
		}
		return nil, err
	}
	if f == nil {
		return nil, ErrFloristNotFound
	}

	if !FloristAvailable(f.UnavailabilityPeriods, day) {
		return f, ErrFloristUnavailable
	}

	return f, nil
}
