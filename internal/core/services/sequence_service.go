package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
)

// sequenceService issues gap-tolerant formatted document numbers. Once a
// value is consumed it is never reissued, even when the caller's work fails
// afterwards.
type sequenceService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
}

// NewSequenceService creates a new sequence service.
func NewSequenceService(sequenceRepo portsrepo.SequenceRepository) portssvc.SequenceSvcFacade {
	return &sequenceService{
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// NextDocumentNumber consumes and returns the next formatted value.
func (s *sequenceService) NextDocumentNumber(ctx context.Context, name string) (string, error) {
	value, err := s.sequenceRepo.NextDocumentNumber(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnknownSequence) {
			s.LogError(ctx, err, "Failed to consume document number", slog.String("sequence", name))
		}
		return "", fmt.Errorf("failed to consume document number for %s: %w", name, err)
	}
	s.LogDebug(ctx, "Document number issued", slog.String("sequence", name), slog.String("value", value))
	return value, nil
}

// PeekSequence returns the sequence definition without consuming a value.
func (s *sequenceService) PeekSequence(ctx context.Context, name string) (*domain.DocumentSequence, error) {
	seq, err := s.sequenceRepo.FindSequence(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnknownSequence) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find sequence", slog.String("sequence", name))
		}
		return nil, fmt.Errorf("failed to find sequence %s: %w", name, err)
	}
	return seq, nil
}
