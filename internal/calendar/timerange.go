package calendar

import (
	"errors"
	"time"
)

var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRange представляет временной интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// DayRange возвращает интервал [from 00:00, to+1 00:00) по календарным дням в loc.
func DayRange(from, to time.Time, loc *time.Location) (TimeRange, error) {
	if from.IsZero() || to.IsZero() {
		return TimeRange{}, ErrInvalidTimeRange
	}
	if loc == nil {
		loc = time.UTC
	}
	if to.Before(from) {
		from, to = to, from
	}
	start := DateOnly(from.In(loc))
	end := DateOnly(to.In(loc)).AddDate(0, 0, 1)
	return TimeRange{Start: start, End: end}, nil
}

// HasOverlap проверяет, пересекается ли newRange с existing.
// inclusive = true — касание концами считается пересечением.
func HasOverlap(
	newRange TimeRange,
	existing []TimeRange,
	inclusive bool,
) (bool, []TimeRange) {
	var conflicts []TimeRange

	for _, tr := range existing {
		if rangesOverlap(newRange, tr, inclusive) {
			conflicts = append(conflicts, tr)
		}
	}

	return len(conflicts) > 0, conflicts
}

func rangesOverlap(a, b TimeRange, inclusive bool) bool {
	if inclusive {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}
	// Полуоткрытые интервалы [Start, End).
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// DateOnly отбрасывает время, оставаясь в часовом поясе t.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// CivilDay — календарная дата t (в её собственном поясе) как полночь UTC.
// Позволяет сравнивать даты, пришедшие из разных часовых поясов.
func CivilDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StoredDay — день, сохранённый как полночь UTC, в каком бы поясе
// драйвер БД ни вернул эту метку.
func StoredDay(t time.Time) time.Time {
	return CivilDay(t.UTC())
}

// SameDay сравнивает календарные даты без учёта времени.
func SameDay(a, b time.Time) bool {
	return CivilDay(a).Equal(CivilDay(b))
}

// DaysBetween — разница в календарных днях to - from, без влияния перехода на летнее время.
func DaysBetween(from, to time.Time) int {
	return int(CivilDay(to).Sub(CivilDay(from)).Hours() / 24)
}

// CivilDays перечисляет календарные дни от from до to включительно.
// Нулевые границы или to < from дают только from (или ничего для нулевого from).
func CivilDays(from, to time.Time) []time.Time {
	if from.IsZero() {
		return nil
	}
	start := CivilDay(from)
	if to.IsZero() || to.Before(from) {
		return []time.Time{start}
	}
	end := CivilDay(to)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// EventSpan переводит дату и часы миссии в интервал в поясе loc.
// Без часов миссия занимает дни целиком; без endTime — до конца последнего дня.
// ok = false для нулевой даты.
func EventSpan(date time.Time, endDate *time.Time, startClock, endClock string, loc *time.Location) (TimeRange, bool) {
	if date.IsZero() {
		return TimeRange{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	lastDay := date
	if endDate != nil && !endDate.IsZero() && endDate.After(date) {
		lastDay = *endDate
	}

	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if mins, ok := ParseClock(startClock); ok {
		start = start.Add(time.Duration(mins) * time.Minute)
	}

	y, m, d = lastDay.UTC().Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	if mins, ok := ParseClock(endClock); ok {
		end = time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(mins) * time.Minute)
	}

	if !end.After(start) {
		end = start.Add(time.Minute)
	}
	return TimeRange{Start: start, End: end}, true
}
