package repositories

import (
	"context"
	"time"

	"github.com/openledgerhq/gl_backend/internal/core/domain"
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves an entry with its lines in line order.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByDateRange retrieves entries whose entry date falls within
	// [from, to], ordered by entry date then entry number (drafts, which have
	// no number yet, sort after posted entries of the same date).
	ListEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entry data. Each method is
// a single database transaction: the full effect applies or none of it does.
type EntryWriter interface {
	// SaveDraftEntry inserts a draft entry and all of its lines atomically.
	SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// PostEntry transitions a draft to posted. It locks the entry row,
	// rechecks DRAFT status, locks the covering open period row and rechecks
	// OPEN status, assigns the next entry number from the posted sequence,
	// and stamps posted-by/posted-at. Returns the assigned entry number.
	// ErrConflict when the entry is not a draft or the period is closed;
	// ErrNotFound when entry or covering period is absent.
	PostEntry(ctx context.Context, entryID string, periodID string, postedBy string, postedAt time.Time) (int64, error)

	// SaveReversal atomically inserts the reversing entry (already posted,
	// number assigned inside the transaction) and marks the original entry
	// REVERSED with cross-links. The original is locked and rechecked to be
	// POSTED and not itself a reversal. Returns the assigned entry number.
	SaveReversal(ctx context.Context, original domain.JournalEntry, reversing domain.JournalEntry, lines []domain.JournalLine) (int64, error)

	// DeleteDraftEntry removes a draft entry and its lines. ErrConflict when
	// the entry is no longer a draft.
	DeleteDraftEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all journal entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
