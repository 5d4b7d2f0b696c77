package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
// Draft entries are mutable and invisible to reports; posting is irrevocable;
// a reversed entry stays in history unchanged, tagged with its reversing entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// journal lines. EntryNumber is assigned from a database sequence at posting
// time so abandoned drafts never leave gaps in the posted stream.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`
	EntryNumber *int64      `json:"entryNumber,omitempty"` // nil until posted
	EntryDate   time.Time   `json:"entryDate"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`
	PostedAt    *time.Time  `json:"postedAt,omitempty"`
	PostedBy    *string     `json:"postedBy,omitempty"`

	// Reversal linkage. ReversedEntryID is set on the reversing entry and
	// points back at the original; ReversingEntryID is set on the original
	// and points forward. An entry with ReversedEntryID set can never itself
	// be reversed.
	ReversedEntryID  *string `json:"reversedEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// IsReversal reports whether the entry was created to reverse another entry.
func (e JournalEntry) IsReversal() bool {
	return e.ReversedEntryID != nil
}

// JournalLine is one side-entry of a journal entry, affecting one account.
// Exactly one of Debit/Credit is non-zero, both are non-negative, and amounts
// are exact decimals (never floats). Lines have no identity outside their
// entry and become immutable once the entry is posted.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
	LineOrder int             `json:"lineOrder"`
}

// Mirrored returns a copy of the line with debit and credit swapped,
// preserving account, amount, memo, and order.
func (l JournalLine) Mirrored() JournalLine {
	return JournalLine{
		AccountID: l.AccountID,
		Debit:     l.Credit,
		Credit:    l.Debit,
		Memo:      l.Memo,
		LineOrder: l.LineOrder,
	}
}
