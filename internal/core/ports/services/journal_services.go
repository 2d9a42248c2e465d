package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// JournalSvcFacade is the journal engine's external surface: the
// draft -> posted -> reversed lifecycle plus queries.
type JournalSvcFacade interface {
	// CreateDraftEntry validates and persists a new draft entry with its lines.
	CreateDraftEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry replaces a draft's header fields and lines.
	UpdateDraftEntry(ctx context.Context, entryID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraftEntry discards a draft entry without trace.
	DeleteDraftEntry(ctx context.Context, entryID string, userID string) error

	// PostEntry makes a draft permanent and balance-affecting, assigning its
	// document number.
	PostEntry(ctx context.Context, entryID string, userID string, postingDate time.Time) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a counter-entry for a posted entry and
	// marks the original reversed.
	ReverseEntry(ctx context.Context, entryID string, userID string, reversalDate time.Time, description string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
