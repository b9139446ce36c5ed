package service

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	missionsv1 "github.com/Leganyst/florist-missions/internal/api/missions/v1"
	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/dto"
	"github.com/Leganyst/florist-missions/internal/lifecycle"
	"github.com/Leganyst/florist-missions/internal/model"
)

// MissionServer — gRPC-обёртка над MissionService.
type MissionServer struct {
	missionsv1.UnimplementedMissionServiceServer

	svc *MissionService
}

func NewMissionServer(svc *MissionService) *MissionServer {
	return &MissionServer{svc: svc}
}

type eventRequest struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Location         string  `json:"location"`
	Date             string  `json:"date"`
	EndDate          string  `json:"endDate"`
	Time             string  `json:"time"`
	EndTime          string  `json:"endTime"`
	Budget           float64 `json:"budget"`
	ClientID         string  `json:"clientId"`
	FloristsRequired *int    `json:"floristsRequired"`
}

func (s *MissionServer) input(r eventRequest) (EventInput, error) {
	date, err := s.svc.parseDay("date", r.Date)
	if err != nil {
		return EventInput{}, err
	}
	in := EventInput{
		Title:            r.Title,
		Description:      r.Description,
		Location:         r.Location,
		Date:             date,
		Time:             r.Time,
		EndTime:          r.EndTime,
		Budget:           r.Budget,
		ClientID:         r.ClientID,
		FloristsRequired: r.FloristsRequired,
	}
	if r.EndDate != "" {
		end, err := s.svc.parseDay("endDate", r.EndDate)
		if err != nil {
			return EventInput{}, err
		}
		in.EndDate = &end
	}
	return in, nil
}

type idRequest struct {
	ID string `json:"id"`
}

type assignmentRequest struct {
	EventID   string `json:"eventId"`
	FloristID string `json:"floristId"`
	Accept    bool   `json:"accept"`
}

type moveRequest struct {
	EventID string `json:"eventId"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
}

type rangeRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Day      string `json:"day"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// eventReply — запись дашборда плюс то, что вычисляется на момент запроса.
type eventReply struct {
	dto.EventRecord
	DaysUntil      *int                `json:"daysUntil,omitempty"`
	Urgency        lifecycle.Urgency   `json:"urgency"`
	AllowedTargets []model.EventStatus `json:"allowedTargets"`
}

func (s *MissionServer) reply(v EventView) eventReply {
	r := eventReply{
		EventRecord:    dto.EventView(v.Event, s.svc.now()),
		Urgency:        v.Urgency,
		AllowedTargets: v.AllowedTargets,
	}
	if v.HasDate {
		days := v.DaysUntil
		r.DaysUntil = &days
	}
	return r
}

func (s *MissionServer) viewReply(v *EventView, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return s.reply(*v), nil
}

func (s *MissionServer) CreateEvent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r eventRequest) (any, error) {
		in, err := s.input(r)
		if err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.CreateEvent(ctx, in))
	})
}

func (s *MissionServer) UpdateEvent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r eventRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		in, err := s.input(r)
		if err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.UpdateEvent(ctx, r.ID, in))
	})
}

func (s *MissionServer) GetEvent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r idRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.GetEvent(ctx, r.ID))
	})
}

func (s *MissionServer) ListEvents(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r rangeRequest) (any, error) {
		from, err := s.svc.parseDay("from", r.From)
		if err != nil {
			return nil, err
		}
		to, err := s.svc.parseDay("to", r.To)
		if err != nil {
			return nil, err
		}
		page, err := s.svc.ListEvents(ctx, from, to, r.Page, r.PageSize)
		if err != nil {
			return nil, err
		}
		return pageReplyOf(page, s.reply), nil
	})
}

type auditReply struct {
	ID        string          `json:"id"`
	Type      model.AuditType `json:"type"`
	CreatedAt string          `json:"createdAt"`
	FloristID *string         `json:"floristId,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

func (s *MissionServer) EventHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r idRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		entries, err := s.svc.EventHistory(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out := make([]auditReply, 0, len(entries))
		for _, e := range entries {
			createdAt := e.CreatedAt
			a := auditReply{
				ID:        e.ID,
				Type:      e.Type,
				CreatedAt: calendar.FormatTimestamp(&createdAt),
				FloristID: e.FloristID,
			}
			if len(e.Details) > 0 {
				a.Details = json.RawMessage(e.Details)
			}
			out = append(out, a)
		}
		return map[string]any{"eventId": r.ID, "entries": out}, nil
	})
}

func (s *MissionServer) AssignFlorist(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r assignmentRequest) (any, error) {
		if err := required("eventId", r.EventID); err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.AssignFlorist(ctx, r.EventID, r.FloristID))
	})
}

func (s *MissionServer) RespondAssignment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r assignmentRequest) (any, error) {
		if err := required("eventId", r.EventID); err != nil {
			return nil, err
		}
		if err := required("floristId", r.FloristID); err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.RespondAssignment(ctx, r.EventID, r.FloristID, r.Accept))
	})
}

func (s *MissionServer) RemoveAssignment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r assignmentRequest) (any, error) {
		if err := required("eventId", r.EventID); err != nil {
			return nil, err
		}
		if err := required("floristId", r.FloristID); err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.RemoveAssignment(ctx, r.EventID, r.FloristID))
	})
}

func (s *MissionServer) MoveStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r moveRequest) (any, error) {
		if err := required("eventId", r.EventID); err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.MoveStatus(ctx, r.EventID, model.EventStatus(r.Status)))
	})
}

func (s *MissionServer) CancelEvent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r moveRequest) (any, error) {
		if err := required("eventId", r.EventID); err != nil {
			return nil, err
		}
		return s.viewReply(s.svc.CancelEvent(ctx, r.EventID, r.Reason))
	})
}

type columnReply struct {
	lifecycle.StatusMeta
	Budget float64      `json:"budget"`
	Events []eventReply `json:"events"`
}

func (s *MissionServer) column(c BoardColumn) columnReply {
	out := columnReply{
		StatusMeta: c.Meta,
		Budget:     c.Budget,
		Events:     make([]eventReply, 0, len(c.Events)),
	}
	for _, v := range c.Events {
		out.Events = append(out.Events, s.reply(v))
	}
	return out
}

func (s *MissionServer) Board(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(struct{}) (any, error) {
		b, err := s.svc.Board(ctx)
		if err != nil {
			return nil, err
		}
		cols := make([]columnReply, 0, len(b.Columns))
		for _, c := range b.Columns {
			cols = append(cols, s.column(c))
		}
		return map[string]any{
			"generatedAt": b.GeneratedAt.UTC().Format(time.RFC3339),
			"columns":     cols,
			"cancelled":   s.column(b.Cancelled),
		}, nil
	})
}

func (s *MissionServer) DayAgenda(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r rangeRequest) (any, error) {
		if err := required("day", r.Day); err != nil {
			return nil, err
		}
		day, err := s.svc.parseDay("day", r.Day)
		if err != nil {
			return nil, err
		}
		views, err := s.svc.DayAgenda(ctx, day)
		if err != nil {
			return nil, err
		}
		out := make([]eventReply, 0, len(views))
		for _, v := range views {
			out = append(out, s.reply(v))
		}
		return map[string]any{
			"day":    calendar.FormatISODay(day),
			"label":  calendar.FormatDay(day),
			"events": out,
		}, nil
	})
}

func (s *MissionServer) SweepAutoTransitions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(struct{}) (any, error) {
		res, err := s.svc.SweepAutoTransitions(ctx)
		if err != nil {
			return nil, err
		}
		type transition struct {
			EventID string            `json:"eventId"`
			From    model.EventStatus `json:"from"`
			To      model.EventStatus `json:"to"`
		}
		out := make([]transition, 0, len(res.Transitions))
		for _, t := range res.Transitions {
			out = append(out, transition{EventID: t.EventID, From: t.From, To: t.To})
		}
		return map[string]any{"checked": res.Checked, "transitions": out}, nil
	})
}

func (s *MissionServer) Analytics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(struct{}) (any, error) {
		return s.svc.Analytics(ctx)
	})
}
