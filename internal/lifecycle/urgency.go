package lifecycle

import (
	"sort"
	"time"

	"github.com/Leganyst/florist-missions/internal/model"
)

// Urgency — приоритет отображения миссии в дневном списке. Не сохраняется.
type Urgency struct {
	Level    int    `json:"level"` // 0..5, 5 — самое срочное
	Label    string `json:"label"`
	Color    string `json:"color"`
	Priority string `json:"priority"`
	Emoji    string `json:"emoji"`
}

// Уровни срочности.
const (
	LevelNone     = 0
	LevelLow      = 1
	LevelMedium   = 2
	LevelElevated = 3
	LevelHigh     = 4
	LevelCritical = 5
)

var priorityByLevel = map[int]string{
	LevelNone:     "none",
	LevelLow:      "low",
	LevelMedium:   "medium",
	LevelElevated: "elevated",
	LevelHigh:     "high",
	LevelCritical: "critical",
}

func urgency(level int, label, color, emoji string) Urgency {
	return Urgency{
		Level:    level,
		Label:    label,
		Color:    color,
		Priority: priorityByLevel[level],
		Emoji:    emoji,
	}
}

// ClassifyUrgency вычисляет срочность по отображаемому статусу
// и числу дней до миссии. Правила проверяются сверху вниз.
func ClassifyUrgency(status model.EventStatus, daysUntil int) Urgency {
	switch {
	case status == model.EventStatusCompleted:
		return urgency(LevelNone, "TERMINÉ", "#10b981", "✅")
	case status == model.EventStatusCancelled:
		return urgency(LevelNone, "ANNULÉ", "#6b7280", "❌")
	case daysUntil < 0:
		return urgency(LevelCritical, "EN RETARD", "#dc2626", "🚨")
	}

	switch daysUntil {
	case 0:
		switch status {
		case model.EventStatusDraft:
			return urgency(LevelCritical, "AUJOURD'HUI - ÉQUIPE INCOMPLÈTE", "#dc2626", "🔥")
		case model.EventStatusInProgress:
			return urgency(LevelHigh, "AUJOURD'HUI - EN COURS", "#f97316", "🌸")
		case model.EventStatusConfirmed:
			return urgency(LevelHigh, "AUJOURD'HUI - DÉMARRAGE IMMINENT", "#f97316", "⏰")
		}
	case 1:
		switch status {
		case model.EventStatusDraft:
			return urgency(LevelHigh, "DEMAIN - ÉQUIPE INCOMPLÈTE", "#f97316", "⚠️")
		case model.EventStatusConfirmed:
			return urgency(LevelMedium, "DEMAIN - EN ATTENTE", "#eab308", "⏳")
		}
	}

	if daysUntil >= 2 && daysUntil <= 7 {
		switch status {
		case model.EventStatusDraft:
			return urgency(LevelElevated, "CETTE SEMAINE - À COMPLÉTER", "#f59e0b", "📋")
		case model.EventStatusConfirmed:
			return urgency(LevelLow, "CETTE SEMAINE - EN ATTENTE", "#3b82f6", "📅")
		}
	}

	if daysUntil > 7 {
		switch status {
		case model.EventStatusDraft:
			return urgency(LevelMedium, "À PLANIFIER", "#8b5cf6", "🗓️")
		case model.EventStatusConfirmed:
			return urgency(LevelLow, "À VENIR", "#3b82f6", "✔️")
		}
	}

	return fallbackUrgency()
}

func fallbackUrgency() Urgency {
	return urgency(LevelLow, "À VÉRIFIER", "#9ca3af", "❓")
}

// UrgencyAt — срочность миссии с отображаемым статусом status на момент now.
// Миссия без даты получает только статусные правила, иначе «À VÉRIFIER».
func UrgencyAt(ev *model.Event, status model.EventStatus, now time.Time) Urgency {
	days, ok := DaysUntil(ev.Date, now)
	if ok {
		return ClassifyUrgency(status, days)
	}
	if status == model.EventStatusCompleted || status == model.EventStatusCancelled {
		return ClassifyUrgency(status, 0)
	}
	return fallbackUrgency()
}

// Ranked — миссия вместе с вычисленной срочностью, для сортировки дневного списка.
type Ranked struct {
	Event   *model.Event
	Status  model.EventStatus
	Urgency Urgency
}

// Rank вычисляет статус и срочность миссии на момент now.
func Rank(ev *model.Event, now time.Time) Ranked {
	st := Effective(ev, now)
	return Ranked{Event: ev, Status: st, Urgency: UrgencyAt(ev, st, now)}
}

// SortByUrgency упорядочивает миссии одного дня: уровень по убыванию,
// затем время начала (строка HH:MM) по возрастанию. Сортировка стабильная.
func SortByUrgency(items []Ranked) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Urgency.Level != items[j].Urgency.Level {
			return items[i].Urgency.Level > items[j].Urgency.Level
		}
		return items[i].Event.Time < items[j].Event.Time
	})
}
