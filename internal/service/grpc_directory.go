package service

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	missionsv1 "github.com/Leganyst/florist-missions/internal/api/missions/v1"
	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/dto"
	"github.com/Leganyst/florist-missions/internal/model"
)

// DirectoryServer — gRPC-обёртка над DirectoryService.
type DirectoryServer struct {
	missionsv1.UnimplementedDirectoryServiceServer

	svc *DirectoryService
}

func NewDirectoryServer(svc *DirectoryService) *DirectoryServer {
	return &DirectoryServer{svc: svc}
}

type floristRequest struct {
	ID string `json:"id"`
	FloristInput
}

type clientRequest struct {
	ID string `json:"id"`
	ClientInput
}

type periodRequest struct {
	FloristID  string `json:"floristId"`
	PeriodID   int64  `json:"periodId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
	IsActive   bool   `json:"isActive"`
	Recurrence string `json:"recurrence"`
}

type pageRequest struct {
	ID       string `json:"id"`
	Day      string `json:"day"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

func floristReply(f *model.Florist, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return dto.FloristFromModel(f), nil
}

func clientReply(c *model.Client, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return dto.ClientFromModel(c), nil
}

func periodReply(p *model.UnavailabilityPeriod, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return dto.UnavailabilityFromModel(*p), nil
}

func floristRecord(f model.Florist) dto.FloristRecord {
	return dto.FloristFromModel(&f)
}

func clientRecord(c model.Client) dto.ClientRecord {
	return dto.ClientFromModel(&c)
}

func (s *DirectoryServer) CreateFlorist(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r floristRequest) (any, error) {
		return floristReply(s.svc.CreateFlorist(ctx, r.FloristInput))
	})
}

func (s *DirectoryServer) UpdateFlorist(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r floristRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		return floristReply(s.svc.UpdateFlorist(ctx, r.ID, r.FloristInput))
	})
}

func (s *DirectoryServer) GetFlorist(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r pageRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		return floristReply(s.svc.GetFlorist(ctx, r.ID))
	})
}

func (s *DirectoryServer) ListFlorists(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r pageRequest) (any, error) {
		page, err := s.svc.ListFlorists(ctx, r.Page, r.PageSize)
		if err != nil {
			return nil, err
		}
		return pageReplyOf(page, floristRecord), nil
	})
}

func (s *DirectoryServer) AddUnavailability(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r periodRequest) (any, error) {
		if err := required("floristId", r.FloristID); err != nil {
			return nil, err
		}
		start, err := s.svc.parseDay("startDate", r.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := s.svc.parseDay("endDate", r.EndDate)
		if err != nil {
			return nil, err
		}
		return periodReply(s.svc.AddUnavailability(ctx, r.FloristID, UnavailabilityInput{
			StartDate:  start,
			EndDate:    end,
			Reason:     r.Reason,
			IsActive:   r.IsActive,
			Recurrence: r.Recurrence,
		}))
	})
}

func (s *DirectoryServer) SetUnavailabilityActive(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r periodRequest) (any, error) {
		return periodReply(s.svc.SetUnavailabilityActive(ctx, r.PeriodID, r.IsActive))
	})
}

// AvailableFlorists отдаёт свободных в день флористов постранично.
func (s *DirectoryServer) AvailableFlorists(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r pageRequest) (any, error) {
		if err := required("day", r.Day); err != nil {
			return nil, err
		}
		day, err := s.svc.parseDay("day", r.Day)
		if err != nil {
			return nil, err
		}
		florists, err := s.svc.AvailableFlorists(ctx, day)
		if err != nil {
			return nil, err
		}
		return pageReplyOf(calendar.Paginate(florists, r.Page, r.PageSize), floristRecord), nil
	})
}

func (s *DirectoryServer) FloristCalendar(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r pageRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		out, err := s.svc.FloristCalendar(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"floristId": r.ID, "ics": out}, nil
	})
}

func (s *DirectoryServer) CreateClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r clientRequest) (any, error) {
		return clientReply(s.svc.CreateClient(ctx, r.ClientInput))
	})
}

func (s *DirectoryServer) UpdateClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r clientRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		return clientReply(s.svc.UpdateClient(ctx, r.ID, r.ClientInput))
	})
}

func (s *DirectoryServer) GetClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r pageRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		return clientReply(s.svc.GetClient(ctx, r.ID))
	})
}

func (s *DirectoryServer) ListClients(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r pageRequest) (any, error) {
		page, err := s.svc.ListClients(ctx, r.Page, r.PageSize)
		if err != nil {
			return nil, err
		}
		return pageReplyOf(page, clientRecord), nil
	})
}

func (s *DirectoryServer) ClientHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(req, func(r pageRequest) (any, error) {
		if err := required("id", r.ID); err != nil {
			return nil, err
		}
		return s.svc.ClientHistory(ctx, r.ID)
	})
}
