package dto

import (
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
)

// CreatePeriodRequest defines the payload for creating a fiscal period.
// Dates use the YYYY-MM-DD layout.
type CreatePeriodRequest struct {
	FiscalYear int    `json:"fiscalYear" binding:"required,min=1900,max=9999"`
	StartDate  string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID   string     `json:"periodID"`
	FiscalYear int        `json:"fiscalYear"`
	StartDate  string     `json:"startDate"`
	EndDate    string     `json:"endDate"`
	Status     string     `json:"status"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
	ClosedBy   *string    `json:"closedBy,omitempty"`
}

// ListPeriodsResponse wraps a listing of fiscal periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to a PeriodResponse DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:   p.PeriodID,
		FiscalYear: p.FiscalYear,
		StartDate:  p.StartDate.Format("2006-01-02"),
		EndDate:    p.EndDate.Format("2006-01-02"),
		Status:     string(p.Status),
		ClosedAt:   p.ClosedAt,
		ClosedBy:   p.ClosedBy,
	}
}

// ToPeriodResponses converts a slice of domain.FiscalPeriod to DTOs.
func ToPeriodResponses(periods []domain.FiscalPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
