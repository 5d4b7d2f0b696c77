package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
	asOf              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
	suite.asOf = time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
}

func activity(code, name string, accountType domain.AccountType, debit, credit string) portsrepo.AccountActivity {
	return portsrepo.AccountActivity{
		AccountID:   "acc-" + code,
		AccountCode: code,
		AccountName: name,
		AccountType: accountType,
		TotalDebit:  decimal.RequireFromString(debit),
		TotalCredit: decimal.RequireFromString(credit),
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_TotalsAgree() {
	ctx := context.Background()
	activities := []portsrepo.AccountActivity{
		activity("1000", "Cash", domain.Asset, "500.00", "200.00"),
		activity("2000", "Accounts Payable", domain.Liability, "50.00", "150.00"),
		activity("4000", "Sales Revenue", domain.Revenue, "0", "300.00"),
		activity("5000", "Rent Expense", domain.Expense, "100.00", "0"),
	}
	suite.mockReportingRepo.On("GetAccountActivityAsOf", ctx, suite.asOf, []domain.AccountType(nil)).
		Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 4)
	suite.True(report.TotalDebit.Equal(report.TotalCredit),
		"debit total %s must equal credit total %s", report.TotalDebit, report.TotalCredit)
	suite.True(report.TotalDebit.Equal(decimal.RequireFromString("400")))

	cash := report.Rows[0]
	suite.Equal("1000", cash.AccountCode)
	suite.True(cash.Debit.Equal(decimal.RequireFromString("300")))
	suite.True(cash.Credit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ContraInNormalColumn() {
	ctx := context.Background()
	// Asset driven below zero shows negative in the debit column, and the
	// matching credit-side surplus keeps the totals in agreement.
	activities := []portsrepo.AccountActivity{
		activity("1000", "Cash", domain.Asset, "100.00", "250.00"),
		activity("4000", "Sales Revenue", domain.Revenue, "0", "50.00"),
		activity("2000", "Accounts Payable", domain.Liability, "200.00", "0"),
	}
	suite.mockReportingRepo.On("GetAccountActivityAsOf", ctx, suite.asOf, []domain.AccountType(nil)).
		Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	cash := report.Rows[0]
	suite.True(cash.Debit.Equal(decimal.RequireFromString("-150")), "contra asset stays in the debit column, got %s", cash.Debit)
	suite.True(cash.Credit.IsZero())

	payable := report.Rows[2]
	suite.True(payable.Credit.Equal(decimal.RequireFromString("-200")), "contra liability stays in the credit column, got %s", payable.Credit)
	suite.True(payable.Debit.IsZero())

	suite.True(report.TotalDebit.Equal(report.TotalCredit))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Empty() {
	ctx := context.Background()
	suite.mockReportingRepo.On("GetAccountActivityAsOf", ctx, suite.asOf, []domain.AccountType(nil)).
		Return([]portsrepo.AccountActivity{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.NotNil(report.Rows)
	suite.Empty(report.Rows)
	suite.True(report.TotalDebit.IsZero())
	suite.True(report.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_NetIncome() {
	ctx := context.Background()
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	activities := []portsrepo.AccountActivity{
		activity("4000", "Sales Revenue", domain.Revenue, "20.00", "520.00"),
		activity("5000", "Rent Expense", domain.Expense, "200.00", "0"),
		activity("5100", "Utilities Expense", domain.Expense, "100.00", "25.00"),
	}
	suite.mockReportingRepo.On("GetAccountActivityBetween", ctx, from, to, []domain.AccountType{domain.Revenue, domain.Expense}).
		Return(activities, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Revenue, 1)
	suite.Require().Len(report.Expenses, 2)
	suite.True(report.TotalRevenue.Equal(decimal.RequireFromString("500")))
	suite.True(report.TotalExpense.Equal(decimal.RequireFromString("275")))
	suite.True(report.NetIncome.Equal(decimal.RequireFromString("225")))
	suite.Equal(from, report.StartDate)
	suite.Equal(to, report.EndDate)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_NetLoss() {
	ctx := context.Background()
	from := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
	activities := []portsrepo.AccountActivity{
		activity("4000", "Sales Revenue", domain.Revenue, "0", "100.00"),
		activity("5000", "Rent Expense", domain.Expense, "300.00", "0"),
	}
	suite.mockReportingRepo.On("GetAccountActivityBetween", ctx, from, to, []domain.AccountType{domain.Revenue, domain.Expense}).
		Return(activities, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, from, to)

	suite.Require().NoError(err)
	suite.True(report.NetIncome.Equal(decimal.RequireFromString("-200")), "net loss is negative, got %s", report.NetIncome)
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement_EmptySectionsNotNil() {
	ctx := context.Background()
	from := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	suite.mockReportingRepo.On("GetAccountActivityBetween", ctx, from, to, []domain.AccountType{domain.Revenue, domain.Expense}).
		Return([]portsrepo.AccountActivity{}, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, from, to)

	suite.Require().NoError(err)
	suite.NotNil(report.Revenue)
	suite.NotNil(report.Expenses)
	suite.True(report.NetIncome.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_EquationHolds() {
	ctx := context.Background()
	activities := []portsrepo.AccountActivity{
		activity("1000", "Cash", domain.Asset, "900.00", "100.00"),
		activity("2000", "Accounts Payable", domain.Liability, "0", "300.00"),
		activity("3000", "Owner Equity", domain.Equity, "0", "500.00"),
	}
	suite.mockReportingRepo.On("GetAccountActivityAsOf", ctx, suite.asOf, []domain.AccountType(nil)).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("800")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("300")))
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("500")))
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)),
		"assets %s must equal liabilities %s plus equity %s",
		report.TotalAssets, report.TotalLiabilities, report.TotalEquity)
	suite.Require().Len(report.Assets, 1)
	suite.Equal("Cash", report.Assets[0].Name)
	// No revenue or expense activity, so no current earnings line.
	suite.Require().Len(report.Equity, 1)
	suite.Equal("Owner Equity", report.Equity[0].Name)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_CurrentEarningsFoldedIntoEquity() {
	ctx := context.Background()
	// A single cash sale (debit Cash 100.00, credit Sales Revenue 100.00) with
	// no equity accounts at all: the revenue must surface in equity as current
	// earnings or the equation cannot hold.
	activities := []portsrepo.AccountActivity{
		activity("1000", "Cash", domain.Asset, "100.00", "0"),
		activity("4000", "Sales Revenue", domain.Revenue, "0", "100.00"),
	}
	suite.mockReportingRepo.On("GetAccountActivityAsOf", ctx, suite.asOf, []domain.AccountType(nil)).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("100")))
	suite.True(report.TotalLiabilities.IsZero())
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("100")))
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)),
		"assets %s must equal liabilities %s plus equity %s",
		report.TotalAssets, report.TotalLiabilities, report.TotalEquity)

	suite.Require().Len(report.Equity, 1)
	suite.Equal("Current Earnings", report.Equity[0].Name)
	suite.True(report.Equity[0].NetAmount.Equal(decimal.RequireFromString("100")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_EarningsNetOfExpenses() {
	ctx := context.Background()
	activities := []portsrepo.AccountActivity{
		activity("1000", "Cash", domain.Asset, "500.00", "200.00"),
		activity("2000", "Accounts Payable", domain.Liability, "0", "100.00"),
		activity("3000", "Owner Equity", domain.Equity, "0", "100.00"),
		activity("4000", "Sales Revenue", domain.Revenue, "0", "300.00"),
		activity("5000", "Rent Expense", domain.Expense, "200.00", "0"),
	}
	suite.mockReportingRepo.On("GetAccountActivityAsOf", ctx, suite.asOf, []domain.AccountType(nil)).
		Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("300")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("100")))
	// 100 contributed + (300 revenue - 200 expense) earned.
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("200")))
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))

	suite.Require().Len(report.Equity, 2)
	suite.Equal("Current Earnings", report.Equity[1].Name)
	suite.True(report.Equity[1].NetAmount.Equal(decimal.RequireFromString("100")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_EmptySectionsNotNil() {
	ctx := context.Background()
	suite.mockReportingRepo.On("GetAccountActivityAsOf", ctx, suite.asOf, []domain.AccountType(nil)).
		Return([]portsrepo.AccountActivity{}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.NotNil(report.Assets)
	suite.NotNil(report.Liabilities)
	suite.NotNil(report.Equity)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
