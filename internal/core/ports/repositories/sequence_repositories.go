package repositories

import (
	"context"

	"github.com/quillbooks/quillbooks/internal/core/domain"
)

// SequenceRepository issues document numbers. NextDocumentNumber must be
// atomic under concurrent callers (row-level lock or equivalent): no two
// callers ever receive the same numeric value, and the increment persists
// even if the caller's subsequent work fails.
type SequenceRepository interface {
	// NextDocumentNumber consumes and returns the next formatted value of
	// the named sequence. Fails with apperrors.ErrUnknownSequence for names
	// that were never registered.
	NextDocumentNumber(ctx context.Context, name string) (string, error)

	// FindSequence returns the sequence definition without consuming a value.
	FindSequence(ctx context.Context, name string) (*domain.DocumentSequence, error)
}
