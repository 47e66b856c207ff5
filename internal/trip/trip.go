package trip

import (
	"github.com/mmwale/expense-tracker/internal"
	"github.com/mmwale/expense-tracker/internal/core/money"
)

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrTripNotFound      = internal.ErrTripNotFound
	ErrInvalidTripStatus = internal.ErrInvalidTripStatus
)

// Trip is the persisted travel record.
type Trip struct {
	ID            string       `json:"id"`
	Destination   string       `json:"destination"`
	Purpose       string       `json:"purpose"`
	Traveler      string       `json:"traveler"`
	Team          string       `json:"team"`
	StartDate     string       `json:"startDate"`
	EndDate       string       `json:"endDate"`
	Status        Status       `json:"status"`
	TransportMode string       `json:"transportMode,omitempty"`
	Accommodation string       `json:"accommodation,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Budget        money.Amount `json:"budget,omitzero"`
}

func (t *Trip) IsCancelled() bool {
	return t.Status == StatusCancelled
}

// CreateTripDTO is the input to Store.AddTrip.
type CreateTripDTO struct {
	Destination   string
	Purpose       string
	Traveler      string
	Team          string
	StartDate     string
	EndDate       string
	Status        *Status
	TransportMode string
	Accommodation string
	Notes         string
	Budget        money.Amount
}

func (dto CreateTripDTO) Validate() error {
	if dto.Status != nil && !dto.Status.Valid() {
		return ErrInvalidTripStatus
	}
	return nil
}

// NewTrip fills in the creation defaults: start today, status planned.
func NewTrip(id, today string, dto CreateTripDTO) Trip {
	t := Trip{
		ID:            id,
		Destination:   dto.Destination,
		Purpose:       dto.Purpose,
		Traveler:      dto.Traveler,
		Team:          dto.Team,
		StartDate:     dto.StartDate,
		EndDate:       dto.EndDate,
		Status:        StatusPlanned,
		TransportMode: dto.TransportMode,
		Accommodation: dto.Accommodation,
		Notes:         dto.Notes,
		Budget:        dto.Budget,
	}
	if t.StartDate == "" {
		t.StartDate = today
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	return t
}
