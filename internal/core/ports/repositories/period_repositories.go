package repositories

import (
	"context"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
)

// PeriodReader defines read operations for fiscal period data.
type PeriodReader interface {
	// FindPeriodByID retrieves a period by ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindOpenPeriodContaining retrieves the open period whose date range
	// contains the given date. Returns ErrNotFound on a calendar gap.
	FindOpenPeriodContaining(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	// HasOverlappingPeriod reports whether any existing period (of any year)
	// overlaps [startDate, endDate].
	HasOverlappingPeriod(ctx context.Context, startDate, endDate time.Time) (bool, error)

	// ListPeriodsByYear retrieves all periods of a fiscal year ordered by start date.
	ListPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal period data.
type PeriodWriter interface {
	// SavePeriod inserts a new open period. Returns ErrValidation when the
	// range overlaps an existing period (backstopped by a DB exclusion constraint).
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// ClosePeriod transitions a period OPEN->CLOSED inside a transaction that
	// locks the period row, serializing the close against in-flight posts.
	// Returns ErrConflict when already closed, ErrNotFound when absent.
	ClosePeriod(ctx context.Context, periodID string, actorID string, closedAt time.Time) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
