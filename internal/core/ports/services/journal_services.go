package services

import (
	"context"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/openledgerhq/gl_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries.
type EntryReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByDateRange lists entries dated within [from, to], ordered
	// by entry date then entry number.
	ListEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}

// EntryWriterSvc defines the mutating journal entry operations.
type EntryWriterSvc interface {
	// CreateJournalEntry validates and persists a new draft entry.
	CreateJournalEntry(ctx context.Context, req dto.CreateEntryRequest, creatorID string) (*domain.JournalEntry, error)

	// PostJournalEntry transitions a draft to posted, assigning its entry
	// number. The entry date must fall inside an open fiscal period.
	PostJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)

	// ReverseJournalEntry creates and posts a mirrored entry dated at the
	// reversal time and marks the original REVERSED. Returns the reversing entry.
	ReverseJournalEntry(ctx context.Context, entryID string, reason string, actorID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry discards a draft entry. Posted entries are immutable.
	DeleteJournalEntry(ctx context.Context, entryID string, actorID string) error
}

// JournalSvcFacade combines all journal entry service interfaces.
type JournalSvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
