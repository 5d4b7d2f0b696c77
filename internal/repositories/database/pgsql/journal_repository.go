package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openledgerhq/gl_backend/internal/apperrors"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portsrepo "github.com/openledgerhq/gl_backend/internal/core/ports/repositories"
	"github.com/openledgerhq/gl_backend/internal/models"
	"github.com/openledgerhq/gl_backend/internal/utils/mapping"
)

const entryColumns = `entry_id, entry_number, entry_date, description, status, posted_at, posted_by, reversed_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit, credit, memo, line_order`

const insertLineQuery = `
	INSERT INTO journal_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// A reversing entry is born POSTED, and journal_entries enforces
// (status = 'DRAFT') = (entry_number IS NULL) per row, so the number must be
// assigned by the INSERT itself rather than a follow-up update.
const insertReversalEntryQuery = `
	INSERT INTO journal_entries (` + entryColumns + `)
	VALUES ($1, nextval('journal_entry_number_seq'), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING entry_number;
`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.PostedAt,
		&m.PostedBy,
		&m.ReversedEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, m models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Status,
		m.PostedAt,
		m.PostedBy,
		m.ReversedEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.Memo,
			m.LineOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line insert batch: %w", err)
	}
	return nil
}

// SaveDraftEntry inserts a draft entry header and all of its lines atomically.
func (r *PgxEntryRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, mapping.ToModelEntry(entry)); err != nil {
		return fmt.Errorf("failed to insert draft entry %s: %w", entry.EntryID, err)
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// PostEntry transitions a draft entry to POSTED. Both the entry row and the
// covering period row are locked FOR UPDATE and their states rechecked, so a
// concurrent close or double-post loses cleanly instead of corrupting state.
// The entry number comes from a sequence consumed only here, which keeps the
// posted numbering gap-free with respect to abandoned drafts.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entryID string, periodID string, postedBy string, postedAt time.Time) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var status models.EntryStatus
	lockEntry := `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockEntry, entryID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock entry %s for post: %w", entryID, err)
	}
	if status != models.Draft {
		return 0, fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entryID)
	}

	var periodStatus models.PeriodStatus
	lockPeriod := `SELECT status FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockPeriod, periodID).Scan(&periodStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock period %s for post: %w", periodID, err)
	}
	if periodStatus != models.PeriodOpen {
		return 0, fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrConflict, periodID)
	}

	var entryNumber int64
	updateQuery := `
		UPDATE journal_entries
		SET status = 'POSTED',
		    entry_number = nextval('journal_entry_number_seq'),
		    posted_at = $2,
		    posted_by = $3,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE entry_id = $1
		RETURNING entry_number;
	`
	if err := tx.QueryRow(ctx, updateQuery, entryID, postedAt, postedBy).Scan(&entryNumber); err != nil {
		return 0, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

// SaveReversal inserts the posted reversing entry (entry number assigned in
// the insert) with its mirrored lines and marks the original entry REVERSED,
// all in one transaction. The original row is locked and rechecked so two
// concurrent reversals cannot both succeed, and the open period covering the
// reversal date is locked against a concurrent close.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, original domain.JournalEntry, reversing domain.JournalEntry, lines []domain.JournalLine) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var status models.EntryStatus
	var reversedEntryID *string
	lockOriginal := `SELECT status, reversed_entry_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockOriginal, original.EntryID).Scan(&status, &reversedEntryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock entry %s for reversal: %w", original.EntryID, err)
	}
	if reversedEntryID != nil {
		return 0, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrConflict, original.EntryID)
	}
	if status != models.Posted {
		return 0, fmt.Errorf("%w: entry %s is not posted", apperrors.ErrConflict, original.EntryID)
	}

	var periodID string
	lockPeriod := `
		SELECT period_id FROM fiscal_periods
		WHERE status = 'OPEN' AND start_date <= $1 AND end_date >= $1
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockPeriod, reversing.EntryDate).Scan(&periodID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: no open fiscal period covers the reversal date", apperrors.ErrConflict)
		}
		return 0, fmt.Errorf("failed to lock period for reversal of entry %s: %w", original.EntryID, err)
	}

	m := mapping.ToModelEntry(reversing)
	var entryNumber int64
	if err := tx.QueryRow(ctx, insertReversalEntryQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Status,
		m.PostedAt,
		m.PostedBy,
		m.ReversedEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&entryNumber); err != nil {
		return 0, fmt.Errorf("failed to insert reversing entry %s: %w", reversing.EntryID, err)
	}

	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return 0, fmt.Errorf("failed to insert lines for reversing entry %s: %w", reversing.EntryID, err)
	}

	markQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED',
		    reversing_entry_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, markQuery, original.EntryID, reversing.EntryID, reversing.CreatedAt, reversing.CreatedBy); err != nil {
		return 0, fmt.Errorf("failed to mark entry %s as reversed: %w", original.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

// DeleteDraftEntry removes a draft entry and its lines. Lines go first to
// satisfy the foreign key.
func (r *PgxEntryRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.EntryStatus
	lockQuery := `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, entryID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock entry %s for delete: %w", entryID, err)
	}
	if status != models.Draft {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry with its lines in line order.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	lines, err := r.findLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainEntry(m)
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxEntryRepository) findLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_order;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	ms := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Memo, &m.LineOrder); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainLineSlice(ms), nil
}

// ListEntriesByDateRange retrieves entries with entry dates in [from, to],
// ordered by entry date then entry number. Drafts have no number yet and
// sort after posted entries of the same date. Lines are loaded in one query
// and grouped in memory to avoid per-entry round trips.
func (r *PgxEntryRepository) ListEntriesByDateRange(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_date >= $1 AND entry_date <= $2
		ORDER BY entry_date, entry_number NULLS LAST, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by date range: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []string{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
		entryIDs = append(entryIDs, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	lineQuery := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_order;`
	lineRows, err := r.Pool.Query(ctx, lineQuery, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry batch: %w", err)
	}
	defer lineRows.Close()

	linesByEntry := make(map[string][]domain.JournalLine)
	for lineRows.Next() {
		var m models.JournalLine
		if err := lineRows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Memo, &m.LineOrder); err != nil {
			return nil, fmt.Errorf("failed to scan line row during batch fetch: %w", err)
		}
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], mapping.ToDomainLine(m))
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows during batch fetch: %w", err)
	}

	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}
