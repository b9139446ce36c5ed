package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DateNotSet выводится вместо даты, которую не удалось разобрать.
const DateNotSet = "Date non définie"

var frWeekdays = map[time.Weekday]string{
	time.Monday:    "Lundi",
	time.Tuesday:   "Mardi",
	time.Wednesday: "Mercredi",
	time.Thursday:  "Jeudi",
	time.Friday:    "Vendredi",
	time.Saturday:  "Samedi",
	time.Sunday:    "Dimanche",
}

// Форматы, в которых даты приходят из дашборда и старых выгрузок.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"02/01/2006",
}

// ParseDate разбирает дату в одном из известных форматов.
// ok = false для пустой или нераспознанной строки.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock проверяет строку HH:MM и возвращает минуты от полуночи.
func ParseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// FormatDay: "Samedi 24.10.2026" или DateNotSet для нулевой даты.
func FormatDay(d time.Time) string {
	if d.IsZero() {
		return DateNotSet
	}
	return fmt.Sprintf("%s %s", frWeekdays[d.Weekday()], d.Format("02.01.2006"))
}

// FormatEventSchedule форматирует дату и часы миссии для человека.
//
//	"Samedi 24.10.2026, 14:00–18:00"
//	"Samedi 24.10.2026 → Dimanche 25.10.2026, 09:00"
//
// Нулевая дата даёт DateNotSet, пустые часы опускаются.
func FormatEventSchedule(date time.Time, endDate *time.Time, startClock, endClock string) string {
	if date.IsZero() {
		return DateNotSet
	}

	base := FormatDay(date)
	if endDate != nil && !endDate.IsZero() && !SameDay(date, *endDate) {
		base = fmt.Sprintf("%s → %s", base, FormatDay(*endDate))
	}

	startClock = strings.TrimSpace(startClock)
	endClock = strings.TrimSpace(endClock)
	switch {
	case startClock != "" && endClock != "":
		return fmt.Sprintf("%s, %s–%s", base, startClock, endClock)
	case startClock != "":
		return fmt.Sprintf("%s, %s", base, startClock)
	default:
		return base
	}
}

// ParseDay разбирает календарный день. Метка времени с поясом
// (например, toISOString из браузера) сначала переводится в loc,
// строка без пояса берётся как есть.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return time.Time{}, false
	}
	if loc != nil && hasZone(s) {
		t = t.In(loc)
	}
	return CivilDay(t), true
}

func hasZone(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	return err == nil
}

// FormatISODay — "2006-01-02", пустая строка для нулевой даты.
func FormatISODay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// FormatTimestamp — метка в формате toISOString (UTC, миллисекунды).
func FormatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
