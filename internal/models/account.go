package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the database row shape for an account. The normal balance side
// is not persisted; it is derived from account_type at the domain layer.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}
