package repositories

import (
	"context"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountActivity is the per-account debit/credit aggregation the report
// queries return. Only lines of POSTED and REVERSED entries are counted:
// reversed originals remain historical fact and their reversing entries net
// them out.
type AccountActivity struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType domain.AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ReportingRepository defines the read-only aggregation queries behind the
// report engine.
type ReportingRepository interface {
	// GetAccountActivityAsOf aggregates posted activity per account with
	// entry dates on or before asOf, optionally filtered to account types.
	GetAccountActivityAsOf(ctx context.Context, asOf time.Time, types []domain.AccountType) ([]AccountActivity, error)

	// GetAccountActivityBetween aggregates posted activity per account with
	// entry dates strictly within [from, to], filtered to account types.
	GetAccountActivityBetween(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]AccountActivity, error)
}
