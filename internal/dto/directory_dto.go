package dto

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/Leganyst/florist-missions/internal/calendar"
	"github.com/Leganyst/florist-missions/internal/model"
)

type FloristRecord struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Email                 string                 `json:"email,omitempty"`
	Phone                 string                 `json:"phone,omitempty"`
	HourlyRate            float64                `json:"hourlyRate"`
	Rating                float64                `json:"rating"`
	Note                  string                 `json:"note,omitempty"`
	UnavailabilityPeriods []UnavailabilityRecord `json:"unavailabilityPeriods"`
}

type UnavailabilityRecord struct {
	ID         int64  `json:"id,omitempty"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason,omitempty"`
	IsActive   bool   `json:"isActive"`
	Recurrence string `json:"recurrence,omitempty"`
}

type ClientRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func FloristFromModel(f *model.Florist) FloristRecord {
	r := FloristRecord{
		ID:                    f.ID,
		Name:                  f.Name,
		Email:                 f.Email,
		Phone:                 f.Phone,
		HourlyRate:            f.HourlyRate,
		Rating:                f.Rating,
		Note:                  f.Note,
		UnavailabilityPeriods: make([]UnavailabilityRecord, 0, len(f.UnavailabilityPeriods)),
	}
	for _, p := range f.UnavailabilityPeriods {
		r.UnavailabilityPeriods = append(r.UnavailabilityPeriods, UnavailabilityFromModel(p))
	}
	return r
}

func UnavailabilityFromModel(p model.UnavailabilityPeriod) UnavailabilityRecord {
	return UnavailabilityRecord{
		ID:         p.ID,
		StartDate:  calendar.FormatISODay(p.Start()),
		EndDate:    calendar.FormatISODay(p.End()),
		Reason:     p.Reason,
		IsActive:   p.IsActive,
		Recurrence: p.Recurrence,
	}
}

// ToModel: период с неразобранной датой пропускается (и попадает в warnings),
// чтобы не закрыть флориста на неизвестный срок.
func (r FloristRecord) ToModel() (*model.Florist, []string) {
	var warnings []string
	f := &model.Florist{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		HourlyRate: r.HourlyRate,
		Rating:     r.Rating,
		Note:       r.Note,
	}
	for _, pr := range r.UnavailabilityPeriods {
		p, err := pr.ToModel(r.ID)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("florist %s: %v", r.ID, err))
			continue
		}
		f.UnavailabilityPeriods = append(f.UnavailabilityPeriods, *p)
	}
	return f, warnings
}

func (r UnavailabilityRecord) ToModel(floristID string) (*model.UnavailabilityPeriod, error) {
	start, ok := calendar.ParseDay(r.StartDate, nil)
	if !ok {
		return nil, fmt.Errorf("malformed unavailability startDate %q", r.StartDate)
	}
	end, ok := calendar.ParseDay(r.EndDate, nil)
	if !ok {
		return nil, fmt.Errorf("malformed unavailability endDate %q", r.EndDate)
	}
	if end.Before(start) {
		start, end = end, start
	}
	return &model.UnavailabilityPeriod{
		ID:         r.ID,
		FloristID:  floristID,
		StartDate:  datatypes.Date(start),
		EndDate:    datatypes.Date(end),
		Reason:     r.Reason,
		IsActive:   r.IsActive,
		Recurrence: r.Recurrence,
	}, nil
}

func ClientFromModel(c *model.Client) ClientRecord {
	return ClientRecord{
		ID:      c.ID,
		Name:    c.Name,
		Company: c.Company,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		Comment: c.Comment,
	}
}

func (r ClientRecord) ToModel() *model.Client {
	return &model.Client{
		ID:      r.ID,
		Name:    r.Name,
		Company: r.Company,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Comment: r.Comment,
	}
}
