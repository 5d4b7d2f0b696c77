package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	pool *pgxpool.Pool
}

// newReportingRepository creates a new repository for report aggregation queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// activityQuery aggregates debits and credits per account over journal lines.
// Both POSTED and REVERSED entries count: a reversed original stays in the
// books and its reversing entry nets the figures out. Accounts with no
// activity in the window are excluded by the INNER JOIN.
const activityQuery = `
	SELECT a.account_id, a.code, a.name, a.account_type,
	       COALESCE(SUM(l.debit), 0)  AS total_debit,
	       COALESCE(SUM(l.credit), 0) AS total_credit
	FROM journal_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id
	JOIN accounts a        ON a.account_id = l.account_id
	WHERE e.status IN ('POSTED', 'REVERSED')
	  AND e.entry_date >= $1 AND e.entry_date <= $2
	  AND ($3::text[] IS NULL OR a.account_type = ANY($3))
	GROUP BY a.account_id, a.code, a.name, a.account_type
	ORDER BY a.code;
`

// earliestDate is a floor well below any plausible entry date, used when the
// caller wants cumulative activity from the beginning of the books.
var earliestDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

func (r *ReportingRepository) queryActivity(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]portsrepo.AccountActivity, error) {
	var typeFilter []string
	if len(types) > 0 {
		typeFilter = make([]string, len(types))
		for i, t := range types {
			typeFilter[i] = string(t)
		}
	}

	rows, err := r.pool.Query(ctx, activityQuery, from, to, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	return collectActivity(rows)
}

func collectActivity(rows pgx.Rows) ([]portsrepo.AccountActivity, error) {
	activities := []portsrepo.AccountActivity{}
	for rows.Next() {
		var a portsrepo.AccountActivity
		var accountType string
		if err := rows.Scan(&a.AccountID, &a.AccountCode, &a.AccountName, &accountType, &a.TotalDebit, &a.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		a.AccountType = domain.AccountType(accountType)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return activities, nil
}

// GetAccountActivityAsOf aggregates activity with entry dates on or before asOf.
func (r *ReportingRepository) GetAccountActivityAsOf(ctx context.Context, asOf time.Time, types []domain.AccountType) ([]portsrepo.AccountActivity, error) {
	return r.queryActivity(ctx, earliestDate, asOf, types)
}

// GetAccountActivityBetween aggregates activity with entry dates in [from, to].
func (r *ReportingRepository) GetAccountActivityBetween(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]portsrepo.AccountActivity, error) {
	return r.queryActivity(ctx, from, to, types)
}
