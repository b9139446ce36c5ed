package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	appLog "github.com/Leganyst/florist-missions/internal/log"
	"github.com/Leganyst/florist-missions/internal/model"
)

// FloristAvailable сообщает, свободен ли флорист в календарный день day.
// Неактивные (предложенные) периоды не учитываются.
func FloristAvailable(periods []model.UnavailabilityPeriod, day time.Time) bool {
	return len(BlockingPeriods(periods, day)) == 0
}

// BlockingPeriods возвращает активные периоды, которые закрывают день day.
func BlockingPeriods(periods []model.UnavailabilityPeriod, day time.Time) []model.UnavailabilityPeriod {
	var out []model.UnavailabilityPeriod
	for _, p := range periods {
		if periodCovers(p, day) {
			out = append(out, p)
		}
	}
	return out
}

func periodCovers(p model.UnavailabilityPeriod, day time.Time) bool {
	if !p.IsActive || day.IsZero() {
		return false
	}

	d := CivilDay(day)
	start := CivilDay(p.Start())
	end := CivilDay(p.End())
	if end.Before(start) {
		start, end = end, start
	}

	if p.Recurrence == "" {
		return !d.Before(start) && !d.After(end)
	}
	return recurrenceCovers(p, start, end, d)
}

// Для повторяющегося периода StartDate — DTSTART правила,
// EndDate — последний день действия, если в RRULE нет своего UNTIL/COUNT.
func recurrenceCovers(p model.UnavailabilityPeriod, start, end, day time.Time) bool {
	if day.Before(start) {
		return false
	}

	opt, err := rrule.StrToROption(p.Recurrence)
	if err != nil {
		appLog.Warn("skip unavailability with bad rrule",
			"florist_id", p.FloristID,
			"period_id", p.ID,
			"rrule", p.Recurrence,
			"error", err,
		)
		return false
	}
	opt.Dtstart = start
	if opt.Until.IsZero() && opt.Count == 0 && end.After(start) {
		opt.Until = end
	}

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		appLog.Warn("skip unavailability with invalid rrule",
			"florist_id", p.FloristID,
			"period_id", p.ID,
			"error", err,
		)
		return false
	}

	return len(rule.Between(day, day.Add(24*time.Hour-time.Nanosecond), true)) > 0
}

// ValidateRecurrence проверяет правило RRULE до сохранения периода.
// Пустая строка допустима.
func ValidateRecurrence(rule string) error {
	if rule == "" {
		return nil
	}
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return fmt.Errorf("invalid recurrence %q: %w", rule, err)
	}
	opt.Dtstart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := rrule.NewRRule(*opt); err != nil {
		return fmt.Errorf("invalid recurrence %q: %w", rule, err)
	}
	return nil
}

// AvailableOnDays — флорист свободен в каждый из дней.
func AvailableOnDays(periods []model.UnavailabilityPeriod, days []time.Time) bool {
	for _, d := range days {
		if !FloristAvailable(periods, d) {
			return false
		}
	}
	return true
}
