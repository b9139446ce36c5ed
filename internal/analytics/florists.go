package analytics

import (
	"sort"
	"time"

	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/lifecycle"
	"github.com/Leganyst/florist-missions/internal/model"
)

// FloristReport считает ответы и завершённые миссии по каждому флористу.
// Флористы без назначений тоже попадают в отчёт. Отменённые миссии не считаются.
func FloristReport(events []model.Event, florists []model.Florist, now time.Time) []FloristStats {
	byID := make(map[string]*FloristStats, len(florists))
	rates := make(map[string]float64, len(florists))
	order := make([]string, 0, len(florists))

	get := func(id string) *FloristStats {
		if st, ok := byID[id]; ok {
			return st
		}
		st := &FloristStats{FloristID: id}
		byID[id] = st
		order = append(order, id)
		return st
	}

	for _, f := range florists {
		st := get(f.ID)
		st.Name = f.Name
		rates[f.ID] = f.HourlyRate
	}

	for i := range events {
		ev := &events[i]
		status := lifecycle.Effective(ev, now)
		if status == model.EventStatusCancelled {
			continue
		}
		finished := status.Rank() >= model.EventStatusCompleted.Rank()

		for _, a := range ev.AssignedFlorists {
			st := get(a.FloristID)
			st.Assigned++
			switch a.Status {
			case model.AssignmentStatusConfirmed:
				st.Confirmed++
				if finished {
					st.CompletedMissions++
					st.EstimatedEarnings += missionHours(ev) * rates[a.FloristID]
				}
			case model.AssignmentStatusRefused:
				st.Refused++
			case model.AssignmentStatusPending:
				st.Pending++
			case model.AssignmentStatusNotSelected:
				st.NotSelected++
			}
		}
	}

	out := make([]FloristStats, 0, len(order))
	for _, id := range order {
		st := byID[id]
		if answered := st.Confirmed + st.Refused; answered > 0 {
			st.RefusalRate = float64(st.Refused) / float64(answered)
		}
		out = append(out, *st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedMissions > out[j].CompletedMissions
	})
	return out
}

// missionHours — часы Time–EndTime за каждый день миссии; без часов 0.
func missionHours(ev *model.Event) float64 {
	start, ok := calendar.ParseClock(ev.Time)
	if !ok {
		return 0
	}
	end, ok := calendar.ParseClock(ev.EndTime)
	if !ok || end <= start {
		return 0
	}
	days := len(calendar.CivilDays(ev.Date, derefTime(ev.EndDate)))
	return float64(days) * float64(end-start) / 60
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
