package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks/internal/models"
	"github.com/quillbooks/quillbooks/internal/utils/mapping"
	"github.com/quillbooks/quillbooks/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_no, entry_date, description, currency_code, status, source_type, source_id, original_entry_id, reversing_entry_id, posted_at, posted_by, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_no, account_code, description, debit, credit, tax_code, tax_rate, tax_amount, currency_code, exchange_rate, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNo,
		&m.EntryDate,
		&m.Description,
		&m.CurrencyCode,
		&m.Status,
		&m.SourceType,
		&m.SourceID,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.PostedAt,
		&m.PostedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNo,
		&m.AccountCode,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.TaxCode,
		&m.TaxRate,
		&m.TaxAmount,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := fmt.Sprintf(`INSERT INTO journal_entries (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`, entryColumns)
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.EntryNo,
		m.EntryDate,
		m.Description,
		m.CurrencyCode,
		m.Status,
		m.SourceType,
		m.SourceID,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.PostedAt,
		m.PostedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}
	return nil
}

func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	query := fmt.Sprintf(`INSERT INTO journal_lines (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`, lineColumns)
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.LineNo,
			m.AccountCode,
			m.Description,
			m.Debit,
			m.Credit,
			m.TaxCode,
			m.TaxRate,
			m.TaxAmount,
			m.CurrencyCode,
			m.ExchangeRate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert journal line: %w", err)
		}
	}
	return nil
}

// lockEntryTx reads an entry header under FOR UPDATE so concurrent postings
// of the same entry serialize.
func lockEntryTx(ctx context.Context, tx pgx.Tx, entryID string) (models.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryColumns)
	m, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return m, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	return m, nil
}

// SaveDraftEntry persists a new draft entry and its lines in one transaction.
func (r *PgxJournalRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceDraftEntry rewrites a draft's header and lines. Lines are replaced
// wholesale; line identity does not survive an edit.
func (r *PgxJournalRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	existing, err := lockEntryTx(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if domain.EntryStatus(existing.Status) != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, entry.EntryID, existing.Status)
	}

	m := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, source_type = $4, source_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.SourceType,
		m.SourceID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entry.EntryID, err)
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a draft entry and its lines.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	existing, err := lockEntryTx(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if domain.EntryStatus(existing.Status) != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, entryID, existing.Status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	return r.Commit(ctx, tx)
}

// postEntryTx transitions a draft to POSTED within the caller's transaction.
// The balance re-check runs against the persisted lines inside the same
// transaction that consumes the entry number, so a concurrent edit can never
// slip an unbalanced entry through and a failed posting never burns a number.
func postEntryTx(ctx context.Context, tx pgx.Tx, entryID string, sequenceName string, postingDate time.Time, postedBy string, postedAt time.Time) (models.JournalEntry, error) {
	m, err := lockEntryTx(ctx, tx, entryID)
	if err != nil {
		return m, err
	}
	if domain.EntryStatus(m.Status) != domain.Draft {
		return m, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, entryID, m.Status)
	}

	var debits, credits decimal.Decimal
	sumQuery := `SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0) FROM journal_lines WHERE entry_id = $1;`
	if err := tx.QueryRow(ctx, sumQuery, entryID).Scan(&debits, &credits); err != nil {
		return m, fmt.Errorf("failed to sum lines of entry %s: %w", entryID, err)
	}
	if !debits.Equal(credits) {
		return m, apperrors.NewUnbalancedError(debits, credits)
	}

	entryNo, err := consumeSequence(ctx, tx, sequenceName)
	if err != nil {
		return m, err
	}

	postQuery := `
		UPDATE journal_entries
		SET entry_no = $2, entry_date = $3, status = $4, posted_at = $5, posted_by = $6, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, postQuery, entryID, entryNo, postingDate, string(domain.Posted), postedAt, postedBy); err != nil {
		return m, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	m.EntryNo = &entryNo
	m.EntryDate = postingDate
	m.Status = models.EntryStatus(domain.Posted)
	m.PostedAt = &postedAt
	m.PostedBy = &postedBy
	m.LastUpdatedAt = postedAt
	m.LastUpdatedBy = postedBy
	return m, nil
}

// PostEntry transitions a draft to POSTED in its own transaction.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, sequenceName string, postingDate time.Time, postedBy string, postedAt time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := postEntryTx(ctx, tx, entryID, sequenceName, postingDate, postedBy, postedAt)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	posted := mapping.ToDomainJournalEntry(m)
	return &posted, nil
}

// SaveReversalEntry inserts a reversal as POSTED and flips the original to
// REVERSED, all in one transaction. The reversal's number comes from the
// same sequence as ordinary postings.
func (r *PgxJournalRepository) SaveReversalEntry(ctx context.Context, originalEntryID string, reversal domain.JournalEntry, lines []domain.JournalLine, sequenceName string) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	original, err := lockEntryTx(ctx, tx, originalEntryID)
	if err != nil {
		return nil, err
	}
	if domain.EntryStatus(original.Status) != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrAlreadyReversed, originalEntryID, original.Status)
	}

	entryNo, err := consumeSequence(ctx, tx, sequenceName)
	if err != nil {
		return nil, err
	}
	reversal.EntryNo = &entryNo

	if err := insertEntryTx(ctx, tx, reversal); err != nil {
		return nil, err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return nil, err
	}

	linkQuery := `
		UPDATE journal_entries
		SET reversing_entry_id = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery,
		originalEntryID,
		reversal.EntryID,
		string(domain.Reversed),
		reversal.LastUpdatedAt,
		reversal.LastUpdatedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to mark entry %s reversed: %w", originalEntryID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &reversal, nil
}

// FindEntryByID retrieves an entry header by identifier.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE entry_id = $1;`, entryColumns)
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_lines WHERE entry_id = $1 ORDER BY line_no;`, lineColumns)
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading journal line rows: %w", err)
	}
	return lines, nil
}

// ListEntries retrieves a page of entry headers, newest first, using
// keyset pagination on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 25
	}
	fetchLimit := limit + 1

	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE 1=1`, entryColumns)
	args := []any{}

	if params.Status != nil {
		args = append(args, string(*params.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if params.FromDate != nil {
		args = append(args, *params.FromDate)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if params.ToDate != nil {
		args = append(args, *params.ToDate)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	if params.NextToken != nil && *params.NextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (entry_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading journal entry rows: %w", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextToken = &token
	}
	return entries, nextToken, nil
}
