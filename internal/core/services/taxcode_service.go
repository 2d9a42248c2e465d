package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// taxCodeService owns tax code masterdata. Posted lines snapshot rates, so
// edits here never rewrite history.
type taxCodeService struct {
	BaseService
	taxCodeRepo portsrepo.TaxCodeRepositoryFacade
}

// NewTaxCodeService creates a new tax code service.
func NewTaxCodeService(taxCodeRepo portsrepo.TaxCodeRepositoryFacade) portssvc.TaxCodeSvcFacade {
	return &taxCodeService{
		taxCodeRepo: taxCodeRepo,
	}
}

var _ portssvc.TaxCodeSvcFacade = (*taxCodeService)(nil)

// CreateTaxCode registers a new tax code.
func (s *taxCodeService) CreateTaxCode(ctx context.Context, req dto.CreateTaxCodeRequest, creatorUserID string) (*domain.TaxCode, error) {
	if !req.TaxType.IsValid() {
		return nil, fmt.Errorf("%w: unknown tax type %q", apperrors.ErrValidation, req.TaxType)
	}
	if req.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	taxCode := domain.TaxCode{
		Code:            req.Code,
		Description:     req.Description,
		TaxType:         req.TaxType,
		Rate:            req.Rate,
		AffectedAccount: req.AffectedAccount,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.taxCodeRepo.SaveTaxCode(ctx, taxCode); err != nil {
		s.LogError(ctx, err, "Failed to save tax code", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save tax code: %w", err)
	}

	s.LogInfo(ctx, "Tax code created", slog.String("code", taxCode.Code), slog.String("rate", taxCode.Rate.String()))
	return &taxCode, nil
}

// GetTaxCode retrieves a tax code definition.
func (s *taxCodeService) GetTaxCode(ctx context.Context, code string) (*domain.TaxCode, error) {
	taxCode, err := s.taxCodeRepo.FindTaxCodeByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tax code", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to find tax code %s: %w", code, err)
	}
	return taxCode, nil
}

// ListTaxCodes returns tax codes ordered by code.
func (s *taxCodeService) ListTaxCodes(ctx context.Context, activeOnly bool) ([]domain.TaxCode, error) {
	taxCodes, err := s.taxCodeRepo.ListTaxCodes(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tax codes")
		return nil, fmt.Errorf("failed to list tax codes: %w", err)
	}
	return taxCodes, nil
}

// DeactivateTaxCode hides the code from selection. Lines that already
// snapshotted its rate are unaffected.
func (s *taxCodeService) DeactivateTaxCode(ctx context.Context, code string, userID string) error {
	if _, err := s.taxCodeRepo.FindTaxCodeByCode(ctx, code); err != nil {
		return fmt.Errorf("failed to find tax code %s: %w", code, err)
	}

	if err := s.taxCodeRepo.SetTaxCodeActive(ctx, code, false, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate tax code", slog.String("code", code))
		return fmt.Errorf("failed to deactivate tax code %s: %w", code, err)
	}

	s.LogInfo(ctx, "Tax code deactivated", slog.String("code", code))
	return nil
}
