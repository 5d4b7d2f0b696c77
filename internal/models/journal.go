package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is the database row shape for a journal entry header.
type JournalEntry struct {
	EntryID          string      `db:"entry_id"`
	EntryNumber      *int64      `db:"entry_number"`
	EntryDate        time.Time   `db:"entry_date"`
	Description      string      `db:"description"`
	Status           EntryStatus `db:"status"`
	PostedAt         *time.Time  `db:"posted_at"`
	PostedBy         *string     `db:"posted_by"`
	ReversedEntryID  *string     `db:"reversed_entry_id"`
	ReversingEntryID *string     `db:"reversing_entry_id"`
	AuditFields
}

// JournalLine is the database row shape for a journal line.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Memo      string          `db:"memo"`
	LineOrder int             `db:"line_order"`
}
