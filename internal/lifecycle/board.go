package lifecycle

import "github.com/Leganyst/florist-missions/internal/model"

// StatusMeta — подпись и цвет статуса для канбана и календаря.
type StatusMeta struct {
	Status model.EventStatus `json:"status"`
	Label  string            `json:"label"`
	Color  string            `json:"color"`
}

var statusMeta = map[model.EventStatus]StatusMeta{
	model.EventStatusDraft:      {model.EventStatusDraft, "Brouillon", "#9ca3af"},
	model.EventStatusConfirmed:  {model.EventStatusConfirmed, "Confirmé", "#3b82f6"},
	model.EventStatusInProgress: {model.EventStatusInProgress, "En cours", "#f97316"},
	model.EventStatusCompleted:  {model.EventStatusCompleted, "Terminé", "#10b981"},
	model.EventStatusInvoiced:   {model.EventStatusInvoiced, "Facturé", "#8b5cf6"},
	model.EventStatusPaid:       {model.EventStatusPaid, "Payé", "#059669"},
	model.EventStatusCancelled:  {model.EventStatusCancelled, "Annulé", "#6b7280"},
}

func Meta(s model.EventStatus) StatusMeta {
	if m, ok := statusMeta[s]; ok {
		return m
	}
	return StatusMeta{Status: s, Label: string(s), Color: "#9ca3af"}
}

// BoardColumns — колонки канбана по порядку; cancelled показывается отдельно.
func BoardColumns() []model.EventStatus {
	out := make([]model.EventStatus, 0, len(model.EventStatuses)-1)
	for _, s := range model.EventStatuses {
		if s.Progressive() {
			out = append(out, s)
		}
	}
	return out
}
