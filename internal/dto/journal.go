package dto

import (
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLine defines one line of a journal entry creation request.
// Exactly one of Debit/Credit must be positive; the service enforces this
// beyond what binding can express.
type CreateEntryLine struct {
	AccountID string          `json:"accountID" binding:"required,uuid"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo" binding:"max=500"`
}

// CreateEntryRequest defines the payload for creating a draft journal entry.
type CreateEntryRequest struct {
	EntryDate   string            `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Description string            `json:"description" binding:"required,min=1,max=500"`
	Lines       []CreateEntryLine `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest defines the payload for reversing a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
	LineOrder int             `json:"lineOrder"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string         `json:"entryID"`
	EntryNumber      *int64         `json:"entryNumber,omitempty"`
	EntryDate        string         `json:"entryDate"`
	Description      string         `json:"description"`
	Status           string         `json:"status"`
	PostedAt         *time.Time     `json:"postedAt,omitempty"`
	PostedBy         *string        `json:"postedBy,omitempty"`
	ReversedEntryID  *string        `json:"reversedEntryID,omitempty"`
	ReversingEntryID *string        `json:"reversingEntryID,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	CreatedBy        string         `json:"createdBy"`
	Lines            []LineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse wraps a listing of journal entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// ToLineResponse converts a domain.JournalLine to a LineResponse DTO.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:    l.LineID,
		AccountID: l.AccountID,
		Debit:     l.Debit,
		Credit:    l.Credit,
		Memo:      l.Memo,
		LineOrder: l.LineOrder,
	}
}

// ToEntryResponse converts a domain.JournalEntry to an EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i := range e.Lines {
		lines[i] = ToLineResponse(&e.Lines[i])
	}
	return EntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		EntryDate:        e.EntryDate.Format("2006-01-02"),
		Description:      e.Description,
		Status:           string(e.Status),
		PostedAt:         e.PostedAt,
		PostedBy:         e.PostedBy,
		ReversedEntryID:  e.ReversedEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
		Lines:            lines,
	}
}

// ToEntryResponses converts a slice of domain.JournalEntry to DTOs.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
