package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/Leganyst/florist-missions/internal/analytics"
	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/ics"
	appLog "github.com/Leganyst/florist-missions/internal/log"
	"github.com/Leganyst/florist-missions/internal/model"
	"github.com/Leganyst/florist-missions/internal/repository"
)

// DirectoryService ведёт справочники флористов и клиентов.
type DirectoryService struct {
	settings

	store    *repository.Store
	validate *validator.Validate
}

func NewDirectoryService(store *repository.Store, opts ...Option) *DirectoryService {
	st := defaultSettings()
	for _, opt := range opts {
		opt(&st)
	}
	return &DirectoryService{
		settings: st,
		store:    store,
		validate: newValidator(),
	}
}

func (s *DirectoryService) CreateFlorist(ctx context.Context, in FloristInput) (*model.Florist, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	f := &model.Florist{}
	applyFloristInput(f, in)
	if err := s.store.Florists.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create florist: %w", err)
	}
	appLog.Info("florist created", "florist_id", f.ID)
	return f, nil
}

func (s *DirectoryService) UpdateFlorist(ctx context.Context, id string, in FloristInput) (*model.Florist, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	f, err := s.store.Florists.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, calendar.ErrFloristNotFound)
	}
	applyFloristInput(f, in)
	if err := s.store.Florists.Update(ctx, f); err != nil {
		return nil, fmt.Errorf("update florist: %w", err)
	}
	return f, nil
}

func applyFloristInput(f *model.Florist, in FloristInput) {
	f.Name = in.Name
	f.Email = in.Email
	f.Phone = in.Phone
	f.HourlyRate = in.HourlyRate
	f.Rating = in.Rating
	f.Note = in.Note
}

func (s *DirectoryService) GetFlorist(ctx context.Context, id string) (*model.Florist, error) {
	f, err := s.store.Florists.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, calendar.ErrFloristNotFound)
	}
	return f, nil
}

func (s *DirectoryService) ListFlorists(ctx context.Context, page, pageSize int) (calendar.Page[model.Florist], error) {
	limit, offset := calendar.Offset(page, pageSize)
	florists, total, err := s.store.Florists.List(ctx, limit, offset)
	if err != nil {
		return calendar.Page[model.Florist]{}, fmt.Errorf("list florists: %w", err)
	}
	return pageOf(florists, total, page, limit, offset), nil
}

// AddUnavailability добавляет период недоступности. Неактивный период —
// предложение флориста, на назначения не влияет до подтверждения.
func (s *DirectoryService) AddUnavailability(ctx context.Context, floristID string, in UnavailabilityInput) (*model.UnavailabilityPeriod, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	start, end := calendar.CivilDay(in.StartDate), calendar.CivilDay(in.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if err := calendar.ValidateRecurrence(in.Recurrence); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.store.Florists.GetByID(ctx, floristID); err != nil {
		return nil, notFound(err, calendar.ErrFloristNotFound)
	}

	p := &model.UnavailabilityPeriod{
		FloristID:  floristID,
		StartDate:  datatypes.Date(start),
		EndDate:    datatypes.Date(end),
		Reason:     in.Reason,
		IsActive:   in.IsActive,
		Recurrence: in.Recurrence,
	}
	if err := s.store.Unavailability.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create unavailability: %w", err)
	}
	return p, nil
}

// SetUnavailabilityActive подтверждает (active = true) или снимает период.
func (s *DirectoryService) SetUnavailabilityActive(ctx context.Context, periodID int64, active bool) (*model.UnavailabilityPeriod, error) {
	if err := s.store.Unavailability.SetActive(ctx, periodID, active); err != nil {
		return nil, notFound(err, ErrPeriodNotFound)
	}
	p, err := s.store.Unavailability.GetByID(ctx, periodID)
	if err != nil {
		return nil, notFound(err, ErrPeriodNotFound)
	}
	return p, nil
}

// AvailableFlorists — флористы, которых не закрывает ни один активный период в день day.
func (s *DirectoryService) AvailableFlorists(ctx context.Context, day time.Time) ([]model.Florist, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	florists, err := s.store.Florists.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list florists: %w", err)
	}
	out := make([]model.Florist, 0, len(florists))
	for _, f := range florists {
		if calendar.FloristAvailable(f.UnavailabilityPeriods, day) {
			out = append(out, f)
		}
	}
	return out, nil
}

// FloristCalendar — миссии флориста в формате iCalendar.
func (s *DirectoryService) FloristCalendar(ctx context.Context, floristID string) (string, error) {
	f, err := s.store.Florists.GetByID(ctx, floristID)
	if err != nil {
		return "", notFound(err, calendar.ErrFloristNotFound)
	}
	events, err := s.store.Events.ListByFlorist(ctx, floristID)
	if err != nil {
		return "", fmt.Errorf("list florist events: %w", err)
	}
	return ics.FloristCalendar(f, events, s.loc, s.now()), nil
}

func (s *DirectoryService) CreateClient(ctx context.Context, in ClientInput) (*model.Client, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	c := &model.Client{}
	applyClientInput(c, in)
	if err := s.store.Clients.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	appLog.Info("client created", "client_id", c.ID)
	return c, nil
}

func (s *DirectoryService) UpdateClient(ctx context.Context, id string, in ClientInput) (*model.Client, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}
	c, err := s.store.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	applyClientInput(c, in)
	if err := s.store.Clients.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

func applyClientInput(c *model.Client, in ClientInput) {
	c.Name = in.Name
	c.Company = in.Company
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.Comment = in.Comment
}

func (s *DirectoryService) GetClient(ctx context.Context, id string) (*model.Client, error) {
	c, err := s.store.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	return c, nil
}

func (s *DirectoryService) ListClients(ctx context.Context, page, pageSize int) (calendar.Page[model.Client], error) {
	limit, offset := calendar.Offset(page, pageSize)
	clients, total, err := s.store.Clients.List(ctx, limit, offset)
	if err != nil {
		return calendar.Page[model.Client]{}, fmt.Errorf("list clients: %w", err)
	}
	return pageOf(clients, total, page, limit, offset), nil
}

// ClientHistory — сводка и хронология миссий клиента.
func (s *DirectoryService) ClientHistory(ctx context.Context, clientID string) (analytics.ClientHistory, error) {
	if _, err := s.store.Clients.GetByID(ctx, clientID); err != nil {
		return analytics.ClientHistory{}, notFound(err, ErrClientNotFound)
	}
	events, err := s.store.Events.ListByClient(ctx, clientID)
	if err != nil {
		return analytics.ClientHistory{}, fmt.Errorf("list client events: %w", err)
	}
	return analytics.BuildClientHistory(clientID, events, s.now()), nil
}

// pageOf собирает страницу из результата репозитория с limit/offset.
func pageOf[T any](items []T, total int64, page, limit, offset int) calendar.Page[T] {
	if page <= 0 {
		page = 1
	}
	return calendar.Page[T]{
		Items:    items,
		Page:     page,
		PageSize: limit,
		HasNext:  int64(offset+len(items)) < total,
		HasPrev:  page > 1,
		Total:    int(total),
	}
}
