package accounting_test

import (
	"testing"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/openledgerhq/gl_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debitLine(amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: "acc-d", Debit: decimal.RequireFromString(amount), Credit: decimal.Zero}
}

func creditLine(amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: "acc-c", Debit: decimal.Zero, Credit: decimal.RequireFromString(amount)}
}

func TestValidateLine(t *testing.T) {
	testCases := []struct {
		name    string
		line    domain.JournalLine
		wantErr string
	}{
		{
			name: "valid debit line",
			line: debitLine("100.00"),
		},
		{
			name: "valid credit line",
			line: creditLine("0.01"),
		},
		{
			name:    "both sides zero",
			line:    domain.JournalLine{AccountID: "a", Debit: decimal.Zero, Credit: decimal.Zero},
			wantErr: "exactly one of debit or credit",
		},
		{
			name: "both sides positive",
			line: domain.JournalLine{
				AccountID: "a",
				Debit:     decimal.RequireFromString("5"),
				Credit:    decimal.RequireFromString("5"),
			},
			wantErr: "exactly one of debit or credit",
		},
		{
			name: "negative debit",
			line: domain.JournalLine{
				AccountID: "a",
				Debit:     decimal.RequireFromString("-1"),
				Credit:    decimal.Zero,
			},
			wantErr: "must be non-negative",
		},
		{
			name:    "sub-cent precision rejected",
			line:    debitLine("10.005"),
			wantErr: "minor unit precision",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := accounting.ValidateLine(tc.line)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidateEntryBalance(t *testing.T) {
	t.Run("balanced two-line entry", func(t *testing.T) {
		lines := []domain.JournalLine{debitLine("100.00"), creditLine("100.00")}
		assert.NoError(t, accounting.ValidateEntryBalance(lines))
	})

	t.Run("balanced multi-line split", func(t *testing.T) {
		lines := []domain.JournalLine{
			debitLine("70.25"),
			debitLine("29.75"),
			creditLine("100.00"),
		}
		assert.NoError(t, accounting.ValidateEntryBalance(lines))
	})

	t.Run("single line rejected", func(t *testing.T) {
		err := accounting.ValidateEntryBalance([]domain.JournalLine{debitLine("10")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least two lines")
	})

	t.Run("off by a cent rejected", func(t *testing.T) {
		lines := []domain.JournalLine{debitLine("100.00"), creditLine("99.99")}
		err := accounting.ValidateEntryBalance(lines)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not balance")
	})

	t.Run("exact decimal comparison no epsilon", func(t *testing.T) {
		// 0.10 + 0.20 == 0.30 must hold exactly with decimals.
		lines := []domain.JournalLine{
			debitLine("0.10"),
			debitLine("0.20"),
			creditLine("0.30"),
		}
		assert.NoError(t, accounting.ValidateEntryBalance(lines))
	})
}

func TestPresentBalance(t *testing.T) {
	testCases := []struct {
		name        string
		accountType domain.AccountType
		debit       string
		credit      string
		wantDebit   string
		wantCredit  string
	}{
		{"asset with debit balance", domain.Asset, "150.00", "50.00", "100", "0"},
		{"revenue with credit balance", domain.Revenue, "0", "200.00", "0", "200"},
		{"contra asset shows negative in debit column", domain.Asset, "50.00", "150.00", "-100", "0"},
		{"contra liability shows negative in credit column", domain.Liability, "80.00", "30.00", "0", "-50"},
		{"expense normal debit", domain.Expense, "40.00", "0", "40", "0"},
		{"equity normal credit", domain.Equity, "0", "500.00", "0", "500"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			debitCol, creditCol := accounting.PresentBalance(
				tc.accountType,
				decimal.RequireFromString(tc.debit),
				decimal.RequireFromString(tc.credit),
			)
			assert.True(t, debitCol.Equal(decimal.RequireFromString(tc.wantDebit)), "debit column: got %s", debitCol)
			assert.True(t, creditCol.Equal(decimal.RequireFromString(tc.wantCredit)), "credit column: got %s", creditCol)
		})
	}
}

func TestPresentBalanceColumnTotalsAgree(t *testing.T) {
	// Post 100 Cash (asset, debit) against 100 Sales (revenue, credit) and
	// present both: column totals must match.
	assetDebit, assetCredit := accounting.PresentBalance(domain.Asset, decimal.RequireFromString("100.00"), decimal.Zero)
	revDebit, revCredit := accounting.PresentBalance(domain.Revenue, decimal.Zero, decimal.RequireFromString("100.00"))

	totalDebit := assetDebit.Add(revDebit)
	totalCredit := assetCredit.Add(revCredit)
	assert.True(t, totalDebit.Equal(totalCredit), "debit total %s != credit total %s", totalDebit, totalCredit)
}

func TestNetForSide(t *testing.T) {
	net := accounting.NetForSide(domain.Expense, decimal.RequireFromString("70.00"), decimal.RequireFromString("10.00"))
	assert.True(t, net.Equal(decimal.RequireFromString("60")))

	net = accounting.NetForSide(domain.Revenue, decimal.RequireFromString("10.00"), decimal.RequireFromString("70.00"))
	assert.True(t, net.Equal(decimal.RequireFromString("60")))
}
