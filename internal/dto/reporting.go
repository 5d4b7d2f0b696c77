package dto

import (
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account row of a trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the full trial balance as of a date. TotalDebit and
// TotalCredit are always equal for a consistent ledger.
type TrialBalanceResponse struct {
	AsOf        string                    `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// AccountAmountResponse is one account figure on an income statement or
// balance sheet.
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse reports revenue and expense totals over a window.
type IncomeStatementResponse struct {
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	Revenue      []AccountAmountResponse `json:"revenue"`
	Expenses     []AccountAmountResponse `json:"expenses"`
	TotalRevenue decimal.Decimal         `json:"totalRevenue"`
	TotalExpense decimal.Decimal         `json:"totalExpense"`
	NetIncome    decimal.Decimal         `json:"netIncome"`
}

// BalanceSheetResponse reports the financial position as of a date.
type BalanceSheetResponse struct {
	AsOf             string                  `json:"asOf"`
	Assets           []AccountAmountResponse `json:"assets"`
	Liabilities      []AccountAmountResponse `json:"liabilities"`
	Equity           []AccountAmountResponse `json:"equity"`
	TotalAssets      decimal.Decimal         `json:"totalAssets"`
	TotalLiabilities decimal.Decimal         `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal         `json:"totalEquity"`
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	responses := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		responses[i] = AccountAmountResponse{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.Name,
			Amount:      a.NetAmount,
		}
	}
	return responses
}

// ToTrialBalanceResponse converts a domain trial balance to its DTO.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	return TrialBalanceResponse{
		AsOf:        r.AsOf.Format("2006-01-02"),
		Rows:        rows,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
	}
}

// ToIncomeStatementResponse converts a domain income statement to its DTO.
func ToIncomeStatementResponse(r *domain.IncomeStatementReport) IncomeStatementResponse {
	return IncomeStatementResponse{
		From:         r.StartDate.Format("2006-01-02"),
		To:           r.EndDate.Format("2006-01-02"),
		Revenue:      toAccountAmountResponses(r.Revenue),
		Expenses:     toAccountAmountResponses(r.Expenses),
		TotalRevenue: r.TotalRevenue,
		TotalExpense: r.TotalExpense,
		NetIncome:    r.NetIncome,
	}
}

// ToBalanceSheetResponse converts a domain balance sheet to its DTO.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             r.AsOf.Format("2006-01-02"),
		Assets:           toAccountAmountResponses(r.Assets),
		Liabilities:      toAccountAmountResponses(r.Liabilities),
		Equity:           toAccountAmountResponses(r.Equity),
		TotalAssets:      r.TotalAssets,
		TotalLiabilities: r.TotalLiabilities,
		TotalEquity:      r.TotalEquity,
	}
}
