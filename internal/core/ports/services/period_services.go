package services

import (
	"context"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/openledgerhq/gl_backend/internal/dto"
)

// PeriodSvcFacade defines operations on the fiscal period calendar.
type PeriodSvcFacade interface {
	// CreatePeriod registers a new open period. The range must not overlap
	// any existing period of any year.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorID string) (*domain.FiscalPeriod, error)

	// ClosePeriod transitions a period OPEN->CLOSED, irreversibly.
	ClosePeriod(ctx context.Context, periodID string, actorID string) error

	// GetPeriodByID retrieves a period by ID.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// GetCurrentPeriod retrieves the open period containing today.
	GetCurrentPeriod(ctx context.Context) (*domain.FiscalPeriod, error)

	// GetPeriodsByYear lists the periods of a fiscal year ordered by start date.
	GetPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.FiscalPeriod, error)
}
