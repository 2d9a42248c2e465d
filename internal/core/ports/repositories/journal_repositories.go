package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
)

// ListEntriesParams narrows ListEntries results.
type ListEntriesParams struct {
	Status    *domain.EntryStatus
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	NextToken *string
}

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a page of entries ordered by entry date then
	// creation time, with token-based pagination.
	ListEntries(ctx context.Context, params ListEntriesParams) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data.
// Posting and reversal each execute inside one database transaction so the
// balance re-check, the entry-number assignment and the status transition are
// atomic; partial postings are never observable.
type JournalWriter interface {
	// SaveDraftEntry persists a new draft entry together with its lines.
	SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// ReplaceDraftEntry rewrites a draft's header fields and lines. Fails
	// with apperrors.ErrEntryNotEditable when the entry is no longer a draft.
	ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteDraftEntry removes a draft entry and its lines without trace.
	// Fails with apperrors.ErrEntryNotEditable for non-draft entries.
	DeleteDraftEntry(ctx context.Context, entryID string) error

	// PostEntry transitions a draft to POSTED: inside one transaction it
	// locks the entry row, re-validates the debit/credit balance from the
	// persisted lines, consumes the next number of sequenceName, stamps the
	// posting date and returns the posted entry. Fails with
	// apperrors.ErrEntryNotEditable when the entry is not a draft.
	PostEntry(ctx context.Context, entryID string, sequenceName string, postingDate time.Time, postedBy string, postedAt time.Time) (*domain.JournalEntry, error)

	// SaveReversalEntry inserts the already-numbered-to-be reversal entry and
	// its lines as POSTED (number consumed from sequenceName inside the same
	// transaction), links it to the original, and marks the original
	// REVERSED. Fails with apperrors.ErrAlreadyReversed when the original is
	// no longer POSTED.
	SaveReversalEntry(ctx context.Context, originalEntryID string, reversal domain.JournalEntry, lines []domain.JournalLine, sequenceName string) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
