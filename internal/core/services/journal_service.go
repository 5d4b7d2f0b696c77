package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openledgerhq/gl_backend/internal/apperrors"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/dto"
	"github.com/openledgerhq/gl_backend/internal/middleware"
	"github.com/openledgerhq/gl_backend/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = errors.New("journal entry lines do not balance")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrPeriodClosed       = errors.New("period closed")
	ErrEntryNotDraft      = errors.New("journal entry is not a draft")
	ErrEntryNotPosted     = errors.New("journal entry is not posted")
	ErrReversalOfReversal = errors.New("cannot reverse a reversing entry")
)

// journalService is the control-critical component of the ledger: draft
// creation, balance validation, posting, reversal, and draft discard.
type journalService struct {
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountReader
	periodRepo  portsrepo.PeriodReader
	publisher   portssvc.EventPublisher
}

// NewJournalService creates a new journal entry service. The publisher may be
// nil when no notification sink is configured.
func NewJournalService(entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountReader, periodRepo portsrepo.PeriodReader, publisher portssvc.EventPublisher) portssvc.JournalSvcFacade {
	return &journalService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
		publisher:   publisher,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts request lines into domain lines, preserving order.
func buildLines(entryID string, reqLines []dto.CreateEntryLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, rl := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: rl.AccountID,
			Debit:     rl.Debit,
			Credit:    rl.Credit,
			Memo:      rl.Memo,
			LineOrder: i,
		}
	}
	return lines
}

// validateAccounts checks that every referenced account exists and is active.
func (s *journalService) validateAccounts(ctx context.Context, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrAccountInactive, id)
		}
	}
	return nil
}

// CreateJournalEntry validates and persists a new draft entry. Validation is
// all-or-nothing: an invalid entry is rejected before any persistence.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateEntryRequest, creatorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryDate, err := time.ParseInLocation(dateLayout, req.EntryDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.EntryDate)
	}

	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines)

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		Description: req.Description,
		Status:      domain.Draft,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.entryRepo.SaveDraftEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save draft entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}

	logger.Info("Draft journal entry created", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	return &entry, nil
}

// PostJournalEntry transitions a draft to posted. The balance invariant is
// re-validated here, and the entry date must fall inside an open fiscal
// period. The repository rechecks both the entry status and the period status
// at commit time under row locks, so a concurrent close or double post loses
// the race cleanly.
func (s *journalService) PostJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: %s: status is %s", apperrors.ErrConflict, ErrEntryNotDraft, entry.Status)
	}

	// Defense against any mutation between create and post.
	if err := accounting.ValidateEntryBalance(entry.Lines); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrEntryUnbalanced, err.Error())
	}

	period, err := s.periodRepo.FindOpenPeriodContaining(ctx, entry.EntryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: no open period covers %s", apperrors.ErrConflict, ErrPeriodClosed, entry.EntryDate.Format(dateLayout))
		}
		return nil, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}

	postedAt := time.Now().UTC()
	entryNumber, err := s.entryRepo.PostEntry(ctx, entryID, period.PeriodID, actorID, postedAt)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Status = domain.Posted
	entry.EntryNumber = &entryNumber
	entry.PostedAt = &postedAt
	entry.PostedBy = &actorID
	entry.LastUpdatedAt = postedAt
	entry.LastUpdatedBy = actorID

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.Int64("entry_number", entryNumber))
	s.notifyPosted(ctx, entry, actorID, postedAt)
	return entry, nil
}

// notifyPosted emits JournalEntryPosted best effort, after the commit.
func (s *journalService) notifyPosted(ctx context.Context, entry *domain.JournalEntry, actorID string, postedAt time.Time) {
	if s.publisher == nil || entry.EntryNumber == nil {
		return
	}
	event := domain.JournalEntryPostedEvent{
		EntryID:     entry.EntryID,
		EntryNumber: *entry.EntryNumber,
		EntryDate:   entry.EntryDate,
		PostedBy:    actorID,
		PostedAt:    postedAt,
	}
	if err := s.publisher.Publish(ctx, domain.EventJournalEntryPosted, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish JournalEntryPosted", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
	}
}

// ReverseJournalEntry creates a new posted entry with every line's debit and
// credit swapped and marks the original REVERSED, atomically. The reversing
// entry is dated at the reversal time, so it posts into the currently open
// period; this is what allows correcting an entry whose own period has since
// been closed. Reversals never mutate history and can never themselves be
// reversed.
func (s *journalService) ReverseJournalEntry(ctx context.Context, entryID string, reason string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrReversalOfReversal)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: %s: status is %s", apperrors.ErrConflict, ErrEntryNotPosted, original.Status)
	}

	now := time.Now().UTC()
	reversalDate := truncateDate(now)

	// The reversal must itself land inside an open period.
	if _, err := s.periodRepo.FindOpenPeriodContaining(ctx, reversalDate); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: no open period covers %s", apperrors.ErrConflict, ErrPeriodClosed, reversalDate.Format(dateLayout))
		}
		return nil, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}

	description := fmt.Sprintf("Reversal of entry %s", original.EntryID)
	if reason != "" {
		description = fmt.Sprintf("%s: %s", description, reason)
	}

	reversingID := uuid.NewString()
	reversingLines := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		mirrored := line.Mirrored()
		mirrored.LineID = uuid.NewString()
		mirrored.EntryID = reversingID
		reversingLines[i] = mirrored
	}

	reversing := domain.JournalEntry{
		EntryID:         reversingID,
		EntryDate:       reversalDate,
		Description:     description,
		Status:          domain.Posted,
		PostedAt:        &now,
		PostedBy:        &actorID,
		ReversedEntryID: &original.EntryID,
		Lines:           reversingLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	entryNumber, err := s.entryRepo.SaveReversal(ctx, *original, reversing, reversingLines)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	reversing.EntryNumber = &entryNumber

	logger.Info("Journal entry reversed", slog.String("original_entry_id", entryID), slog.String("reversing_entry_id", reversingID))
	s.notifyReversed(ctx, original.EntryID, reversingID, reason, actorID, now)
	return &reversing, nil
}

// notifyReversed emits JournalEntryReversed best effort, after the commit.
func (s *journalService) notifyReversed(ctx context.Context, originalID, reversingID, reason, actorID string, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := domain.JournalEntryReversedEvent{
		OriginalEntryID:  originalID,
		ReversingEntryID: reversingID,
		Reason:           reason,
		ReversedBy:       actorID,
		ReversedAt:       at,
	}
	if err := s.publisher.Publish(ctx, domain.EventJournalEntryReversed, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish JournalEntryReversed", slog.String("error", err.Error()), slog.String("entry_id", originalID))
	}
}

// DeleteJournalEntry discards a draft entry and its lines. Posted and
// reversed entries are immutable history and cannot be deleted.
func (s *journalService) DeleteJournalEntry(ctx context.Context, entryID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.entryRepo.DeleteDraftEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete draft entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return err
	}

	logger.Info("Draft journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", actorID))
	return nil
}

// GetEntryByID retrieves an entry with its lines in line order.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.entryRepo.FindEntryByID(ctx, entryID)
}

// ListEntriesByDateRange lists entries dated within [from, to], ordered by
// entry date then entry number.
func (s *journalService) ListEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes range start", apperrors.ErrValidation)
	}
	entries, err := s.entryRepo.ListEntriesByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
