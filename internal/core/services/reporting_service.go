package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/middleware"
	"github.com/openledgerhq/gl_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService derives trial balance, income statement, and balance sheet
// from posted activity. It is purely read-only: it never adjusts figures to
// force a balance — an unbalanced result indicates a recording defect upstream.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists every account with posted activity on or before asOf.
// Each account's net balance is presented in its normal column, negative
// there when the running sign is opposite the normal side. The debit column
// total equals the credit column total for any asOf by construction from the
// entry-level balance invariant.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activities, err := s.reportingRepo.GetAccountActivityAsOf(ctx, asOf, nil)
	if err != nil {
		logger.Error("Failed to retrieve trial balance data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(activities))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, a := range activities {
		debitCol, creditCol := accounting.PresentBalance(a.AccountType, a.TotalDebit, a.TotalCredit)
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			AccountType: a.AccountType,
			Debit:       debitCol,
			Credit:      creditCol,
		})
		totalDebit = totalDebit.Add(debitCol)
		totalCredit = totalCredit.Add(creditCol)
	}

	logger.Debug("Trial balance generated", slog.Int("row_count", len(rows)), slog.String("as_of", asOf.Format(time.RFC3339)))
	return &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// IncomeStatement sums revenue and expense activity strictly within
// [from, to]. Net income is total revenue minus total expense.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activities, err := s.reportingRepo.GetAccountActivityBetween(ctx, from, to, []domain.AccountType{domain.Revenue, domain.Expense})
	if err != nil {
		logger.Error("Failed to retrieve income statement data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	var revenue, expenses []domain.AccountAmount
	totalRevenue := decimal.Zero
	totalExpense := decimal.Zero
	for _, a := range activities {
		net := accounting.NetForSide(a.AccountType, a.TotalDebit, a.TotalCredit)
		amount := domain.AccountAmount{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.AccountName,
			NetAmount:   net,
		}
		switch a.AccountType {
		case domain.Revenue:
			revenue = append(revenue, amount)
			totalRevenue = totalRevenue.Add(net)
		case domain.Expense:
			expenses = append(expenses, amount)
			totalExpense = totalExpense.Add(net)
		}
	}

	if revenue == nil {
		revenue = []domain.AccountAmount{}
	}
	if expenses == nil {
		expenses = []domain.AccountAmount{}
	}

	return &domain.IncomeStatementReport{
		StartDate:    from,
		EndDate:      to,
		Revenue:      revenue,
		Expenses:     expenses,
		TotalRevenue: totalRevenue,
		TotalExpense: totalExpense,
		NetIncome:    totalRevenue.Sub(totalExpense),
	}, nil
}

// BalanceSheet sums asset, liability, and equity balances inception to date.
// The ledger has no closing entries, so net income to date (revenue minus
// expense) is reported inside the equity section as a computed current
// earnings line. With that line, Assets == Liabilities + Equity holds
// whenever account classification and line recording are correct.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activities, err := s.reportingRepo.GetAccountActivityAsOf(ctx, asOf, nil)
	if err != nil {
		logger.Error("Failed to retrieve balance sheet data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	var assets, liabilities, equity []domain.AccountAmount
	totalAssets := decimal.Zero
	totalLiabilities := decimal.Zero
	totalEquity := decimal.Zero
	currentEarnings := decimal.Zero
	hasEarningsActivity := false
	for _, a := range activities {
		net := accounting.NetForSide(a.AccountType, a.TotalDebit, a.TotalCredit)
		amount := domain.AccountAmount{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.AccountName,
			NetAmount:   net,
		}
		switch a.AccountType {
		case domain.Asset:
			assets = append(assets, amount)
			totalAssets = totalAssets.Add(net)
		case domain.Liability:
			liabilities = append(liabilities, amount)
			totalLiabilities = totalLiabilities.Add(net)
		case domain.Equity:
			equity = append(equity, amount)
			totalEquity = totalEquity.Add(net)
		case domain.Revenue:
			currentEarnings = currentEarnings.Add(net)
			hasEarningsActivity = true
		case domain.Expense:
			currentEarnings = currentEarnings.Sub(net)
			hasEarningsActivity = true
		}
	}

	if hasEarningsActivity {
		equity = append(equity, domain.AccountAmount{
			Name:      "Current Earnings",
			NetAmount: currentEarnings,
		})
		totalEquity = totalEquity.Add(currentEarnings)
	}

	if assets == nil {
		assets = []domain.AccountAmount{}
	}
	if liabilities == nil {
		liabilities = []domain.AccountAmount{}
	}
	if equity == nil {
		equity = []domain.AccountAmount{}
	}

	return &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}, nil
}
