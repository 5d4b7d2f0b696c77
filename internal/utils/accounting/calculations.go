package accounting

import (
	"fmt"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// maxScale bounds line amounts to the ledger's minor currency unit.
const maxScale = 2

// SumDebits returns the total debit amount across lines.
func SumDebits(lines []domain.JournalLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// SumCredits returns the total credit amount across lines.
func SumCredits(lines []domain.JournalLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// ValidateLine checks a single line: exactly one of debit/credit is non-zero,
// both are non-negative, and the amount does not exceed minor-unit precision.
func ValidateLine(l domain.JournalLine) error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("line amounts must be non-negative for account %s", l.AccountID)
	}
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("exactly one of debit or credit must be non-zero for account %s", l.AccountID)
	}
	if l.Debit.Exponent() < -maxScale || l.Credit.Exponent() < -maxScale {
		return fmt.Errorf("amount exceeds minor unit precision for account %s", l.AccountID)
	}
	return nil
}

// ValidateEntryBalance checks the entry-scope invariant: at least two lines,
// every line well formed, and sum(debit) == sum(credit) exactly. Comparison is
// exact decimal equality, no epsilon.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}
	for _, l := range lines {
		if err := ValidateLine(l); err != nil {
			return err
		}
	}
	debits := SumDebits(lines)
	credits := SumCredits(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("entry does not balance: debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}

// PresentBalance maps an account's raw signed balance (sum of debits minus
// sum of credits) to trial balance columns. The figure always lands in the
// account's normal column; when the running sign is opposite the normal side
// the figure is negative there (contra presentation). With this convention
// the debit column total equals the credit column total for any as-of date.
func PresentBalance(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) (debitCol, creditCol decimal.Decimal) {
	net := totalDebit.Sub(totalCredit)
	side, _ := domain.NormalSideFor(accountType)
	if side == domain.DebitSide {
		return net, decimal.Zero
	}
	return decimal.Zero, net.Neg()
}

// NetForSide returns the account's balance measured on its normal side:
// debit-normal accounts report debits minus credits, credit-normal accounts
// the opposite. Used by the income statement and balance sheet, where each
// section reports increases as positive figures.
func NetForSide(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	side, _ := domain.NormalSideFor(accountType)
	if side == domain.DebitSide {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}
