package domain

import "time"

// Domain notification names, emitted best-effort after a successful commit.
const (
	EventJournalEntryPosted   = "JournalEntryPosted"
	EventFiscalPeriodClosed   = "FiscalPeriodClosed"
	EventJournalEntryReversed = "JournalEntryReversed"
)

// JournalEntryPostedEvent is emitted after an entry transitions to POSTED.
type JournalEntryPostedEvent struct {
	EntryID     string    `json:"entryID"`
	EntryNumber int64     `json:"entryNumber"`
	EntryDate   time.Time `json:"entryDate"`
	PostedBy    string    `json:"postedBy"`
	PostedAt    time.Time `json:"postedAt"`
}

// JournalEntryReversedEvent is emitted after a reversal pair is committed.
type JournalEntryReversedEvent struct {
	OriginalEntryID  string    `json:"originalEntryID"`
	ReversingEntryID string    `json:"reversingEntryID"`
	Reason           string    `json:"reason,omitempty"`
	ReversedBy       string    `json:"reversedBy"`
	ReversedAt       time.Time `json:"reversedAt"`
}

// FiscalPeriodClosedEvent is emitted after a period transitions to CLOSED.
type FiscalPeriodClosedEvent struct {
	PeriodID   string    `json:"periodID"`
	FiscalYear int       `json:"fiscalYear"`
	ClosedBy   string    `json:"closedBy"`
	ClosedAt   time.Time `json:"closedAt"`
}
