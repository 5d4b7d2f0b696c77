package domain

import "regexp"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which increases to an account are recorded.
type NormalSide string

const (
	DebitSide  NormalSide = "DEBIT"
	CreditSide NormalSide = "CREDIT"
)

// normalSides maps each account type to its normal balance side. The side is
// always derived from the type, never stored, so the two can't drift apart.
var normalSides = map[AccountType]NormalSide{
	Asset:     DebitSide,
	Expense:   DebitSide,
	Liability: CreditSide,
	Equity:    CreditSide,
	Revenue:   CreditSide,
}

// NormalSideFor returns the normal balance side for an account type.
// The second return is false for an unrecognized type.
func NormalSideFor(t AccountType) (NormalSide, bool) {
	side, ok := normalSides[t]
	return side, ok
}

// IsValidAccountType reports whether t is one of the five recognized types.
func IsValidAccountType(t AccountType) bool {
	_, ok := normalSides[t]
	return ok
}

// accountCodeRe bounds codes to alphanumerics plus hyphen/underscore.
var accountCodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// IsValidAccountCode reports whether code satisfies the account code format rule.
func IsValidAccountCode(code string) bool {
	return accountCodeRe.MatchString(code)
}

// Account represents a single account in the chart of accounts.
// Code and AccountType are immutable once created; deactivation is soft and
// never cascades to posted history.
type Account struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// NormalSide returns the account's derived normal balance side.
func (a Account) NormalSide() NormalSide {
	side := normalSides[a.AccountType]
	return side
}
