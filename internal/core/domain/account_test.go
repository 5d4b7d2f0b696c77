package domain_test

import (
	"testing"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalSideFor(t *testing.T) {
	testCases := []struct {
		accountType domain.AccountType
		want        domain.NormalSide
	}{
		{domain.Asset, domain.DebitSide},
		{domain.Expense, domain.DebitSide},
		{domain.Liability, domain.CreditSide},
		{domain.Equity, domain.CreditSide},
		{domain.Revenue, domain.CreditSide},
	}

	for _, tc := range testCases {
		t.Run(string(tc.accountType), func(t *testing.T) {
			side, ok := domain.NormalSideFor(tc.accountType)
			assert.True(t, ok)
			assert.Equal(t, tc.want, side)
		})
	}

	_, ok := domain.NormalSideFor(domain.AccountType("GOODWILL"))
	assert.False(t, ok)
}

func TestAccountNormalSideDerived(t *testing.T) {
	acc := domain.Account{AccountType: domain.Liability}
	assert.Equal(t, domain.CreditSide, acc.NormalSide())
}

func TestIsValidAccountCode(t *testing.T) {
	valid := []string{"1000", "CASH", "acc_recv-01", "A", "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456"}
	for _, code := range valid {
		assert.True(t, domain.IsValidAccountCode(code), "expected %q to be valid", code)
	}

	invalid := []string{"", "has space", "too.dotty", "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567", "pct%"}
	for _, code := range invalid {
		assert.False(t, domain.IsValidAccountCode(code), "expected %q to be invalid", code)
	}
}
