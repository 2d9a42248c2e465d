package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// PeriodSvcFacade owns fiscal period boundaries and the posting-date guard.
type PeriodSvcFacade interface {
	// CreatePeriod registers a new period; overlapping periods are rejected.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)

	// ListPeriods returns all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)

	// ClosePeriod stops further postings dated within the period.
	ClosePeriod(ctx context.Context, periodID string, userID string) error

	// ReopenPeriod re-admits postings dated within the period.
	ReopenPeriod(ctx context.Context, periodID string, userID string) error

	// EnsureDateOpen fails with apperrors.ErrPeriodClosed when the date falls
	// in a closed period. Dates outside every registered period stay open.
	EnsureDateOpen(ctx context.Context, date time.Time) error
}

// SequenceSvcFacade issues formatted document numbers.
type SequenceSvcFacade interface {
	// NextDocumentNumber consumes and returns the next formatted value.
	// Consumed values are never reissued, even when the caller's work fails.
	NextDocumentNumber(ctx context.Context, name string) (string, error)

	// PeekSequence returns the sequence definition without consuming a value.
	PeekSequence(ctx context.Context, name string) (*domain.DocumentSequence, error)
}
