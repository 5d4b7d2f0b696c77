package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openledgerhq/gl_backend/internal/apperrors"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/dto"
	"github.com/openledgerhq/gl_backend/internal/middleware"
)

const dateLayout = "2006-01-02"

// periodService owns the fiscal period calendar and its one-way
// open -> closed lifecycle. Reopening a closed period is intentionally not
// exposed; that escape hatch stays outside this core.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	publisher  portssvc.EventPublisher
}

// NewPeriodService creates a new fiscal period service. The publisher may be
// nil when no notification sink is configured.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, publisher portssvc.EventPublisher) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo, publisher: publisher}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod registers a new open period. The range must be well formed and
// must not overlap any existing period, of any fiscal year.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	startDate, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, req.StartDate)
	}
	endDate, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, req.EndDate)
	}
	if !startDate.Before(endDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidation)
	}

	overlaps, err := s.periodRepo.HasOverlappingPeriod(ctx, startDate, endDate)
	if err != nil {
		logger.Error("Failed to check period overlap", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlaps {
		return nil, fmt.Errorf("%w: period %s to %s overlaps an existing period", apperrors.ErrValidation, req.StartDate, req.EndDate)
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:   uuid.NewString(),
		FiscalYear: req.FiscalYear,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.Int("fiscal_year", req.FiscalYear))
		return nil, err
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID), slog.Int("fiscal_year", period.FiscalYear))
	return &period, nil
}

// ClosePeriod transitions a period OPEN->CLOSED. The repository serializes
// the transition against in-flight posts via a row lock, so either a
// concurrent post commits first or it fails with "period closed".
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	closedAt := time.Now().UTC()

	if err := s.periodRepo.ClosePeriod(ctx, periodID, actorID, closedAt); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		}
		return err
	}

	logger.Info("Fiscal period closed", slog.String("period_id", periodID), slog.String("closed_by", actorID))
	s.notifyClosed(ctx, periodID, actorID, closedAt)
	return nil
}

// notifyClosed emits FiscalPeriodClosed best effort, after the commit.
func (s *periodService) notifyClosed(ctx context.Context, periodID, actorID string, closedAt time.Time) {
	if s.publisher == nil {
		return
	}
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	fiscalYear := 0
	if err == nil {
		fiscalYear = period.FiscalYear
	}
	event := domain.FiscalPeriodClosedEvent{
		PeriodID:   periodID,
		FiscalYear: fiscalYear,
		ClosedBy:   actorID,
		ClosedAt:   closedAt,
	}
	if err := s.publisher.Publish(ctx, domain.EventFiscalPeriodClosed, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish FiscalPeriodClosed", slog.String("error", err.Error()), slog.String("period_id", periodID))
	}
}

// GetPeriodByID retrieves a period by ID.
func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, periodID)
}

// GetCurrentPeriod retrieves the open period containing today. The lookup is
// date-granular, so the period still resolves on its final day regardless of
// the time of day. A gap in the calendar surfaces as ErrNotFound.
func (s *periodService) GetCurrentPeriod(ctx context.Context) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindOpenPeriodContaining(ctx, truncateDate(time.Now().UTC()))
}

// GetPeriodsByYear lists the periods of a fiscal year ordered by start date.
func (s *periodService) GetPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriodsByYear(ctx, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods for year %d: %w", fiscalYear, err)
	}
	if periods == nil {
		return []domain.FiscalPeriod{}, nil
	}
	return periods, nil
}
