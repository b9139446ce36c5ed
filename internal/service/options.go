package service

import (
	"time"

	"github.com/Leganyst/florist-missions/internal/analytics"
	"github.com/Leganyst/florist-missions/internal/model"
)

type settings struct {
	clock           func() time.Time
	loc             *time.Location
	defaultRequired int
	overdueDays     int
}

func defaultSettings() settings {
	return settings{
		clock:           time.Now,
		loc:             time.UTC,
		defaultRequired: model.DefaultFloristsRequired,
		overdueDays:     analytics.DefaultOverdueDays,
	}
}

// now — текущий момент в поясе приложения: по нему определяется «сегодня».
func (s settings) now() time.Time {
	return s.clock().In(s.loc)
}

type Option func(*settings)

// WithClock подменяет часы (в тестах и для пересчёта «на дату»).
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithDefaultFloristsRequired(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.defaultRequired = n
		}
	}
}

func WithInvoiceOverdueDays(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.overdueDays = n
		}
	}
}
