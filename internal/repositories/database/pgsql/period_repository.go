package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openledgerhq/gl_backend/internal/apperrors"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	"github.com/openledgerhq/gl_backend/internal/models"
	"github.com/openledgerhq/gl_backend/internal/utils/mapping"
)

const periodColumns = `period_id, fiscal_year, start_date, end_date, status, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.FiscalYear,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new open period. The daterange exclusion constraint on
// fiscal_periods backstops the overlap check done at the service layer.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.FiscalYear,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.ClosedAt,
		m.ClosedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation
				return fmt.Errorf("%w: period with ID %s already exists", apperrors.ErrDuplicate, m.PeriodID)
			case "23P01": // Exclusion violation on the date range
				return fmt.Errorf("%w: period overlaps an existing fiscal period", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by ID %s: %w", periodID, err)
	}

	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

// FindOpenPeriodContaining retrieves the open period whose inclusive date
// range contains the given date. Returns ErrNotFound on a calendar gap.
// The time of day is dropped before comparing: end_date is a DATE, and a
// same-day timestamp after midnight would otherwise fall outside it.
func (r *PgxPeriodRepository) FindOpenPeriodContaining(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	day := truncateToUTCDate(date)
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE status = 'OPEN' AND start_date <= $1 AND end_date >= $1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open period containing %s: %w", date.Format("2006-01-02"), err)
	}

	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

// HasOverlappingPeriod reports whether any existing period overlaps the
// inclusive range [startDate, endDate].
func (r *PgxPeriodRepository) HasOverlappingPeriod(ctx context.Context, startDate, endDate time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM fiscal_periods
			WHERE start_date <= $2 AND end_date >= $1
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for overlapping periods: %w", err)
	}
	return exists, nil
}

// ListPeriodsByYear retrieves all periods of a fiscal year ordered by start date.
func (r *PgxPeriodRepository) ListPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM fiscal_periods
		WHERE fiscal_year = $1
		ORDER BY start_date;
	`
	rows, err := r.Pool.Query(ctx, query, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for fiscal year %d: %w", fiscalYear, err)
	}
	defer rows.Close()

	ms := []models.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}

	return mapping.ToDomainPeriodSlice(ms), nil
}

// ClosePeriod transitions a period OPEN -> CLOSED. The period row is locked
// FOR UPDATE so in-flight posts holding the same lock serialize against the
// close: whichever commits first wins, and the loser sees the new state.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, actorID string, closedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT status FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`
	var status models.PeriodStatus
	if err := tx.QueryRow(ctx, lockQuery, periodID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock period %s for close: %w", periodID, err)
	}

	if status != models.PeriodOpen {
		return fmt.Errorf("%w: period %s is already closed", apperrors.ErrConflict, periodID)
	}

	updateQuery := `
		UPDATE fiscal_periods
		SET status = 'CLOSED', closed_at = $2, closed_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE period_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, periodID, closedAt, actorID); err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}

	return r.Commit(ctx, tx)
}

func truncateToUTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
