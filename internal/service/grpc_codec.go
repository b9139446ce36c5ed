package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/lifecycle"
	appLog "github.com/Leganyst/florist-missions/internal/log"
)

// serve разбирает Struct в R, вызывает fn и упаковывает результат обратно.
func serve[R any](req *structpb.Struct, fn func(R) (any, error)) (*structpb.Struct, error) {
	var r R
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	out, err := fn(r)
	if err != nil {
		return nil, grpcError(err)
	}
	return encode(out)
}

func decode(req *structpb.Struct, dst any) error {
	if req == nil {
		req = &structpb.Struct{}
	}
	b, err := protojson.Marshal(req)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// grpcError переводит доменные ошибки в коды gRPC.
func grpcError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, calendar.ErrInvalidFloristID),
		errors.Is(err, calendar.ErrInvalidTimeRange),
		errors.Is(err, lifecycle.ErrUnknownStatus):
		code = codes.InvalidArgument
	case errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrClientNotFound),
		errors.Is(err, ErrPeriodNotFound),
		errors.Is(err, ErrAssignmentNotFound),
		errors.Is(err, calendar.ErrFloristNotFound):
		code = codes.NotFound
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, ErrEventClosed),
		errors.Is(err, ErrTeamComplete),
		errors.Is(err, ErrFloristBusy),
		errors.Is(err, calendar.ErrFloristUnavailable):
		code = codes.FailedPrecondition
	case errors.Is(err, ErrAlreadyAssigned):
		code = codes.AlreadyExists
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		appLog.Error("grpc call failed", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}

// parseDay: пустая строка — нулевая дата (её отсечёт валидация),
// иначе полночь дня в поясе приложения.
func (s settings) parseDay(field, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	d, ok := calendar.ParseDay(raw, s.loc)
	if !ok {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "malformed %s %q", field, raw)
	}
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, s.loc), nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	return nil
}

type pageReply[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	Total    int  `json:"total"`
	HasNext  bool `json:"hasNext"`
	HasPrev  bool `json:"hasPrev"`
}

func pageReplyOf[S, T any](p calendar.Page[S], conv func(S) T) pageReply[T] {
	items := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	return pageReply[T]{
		Items:    items,
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    p.Total,
		HasNext:  p.HasNext,
		HasPrev:  p.HasPrev,
	}
}
