package services

import (
	"context"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
)

// ReportingSvcFacade derives financial reports from posted activity.
type ReportingSvcFacade interface {
	// TrialBalance lists every account with posted activity on or before asOf.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// IncomeStatement sums revenue and expense activity within [from, to].
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)

	// BalanceSheet sums asset, liability, and equity balances as of asOf.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
}
