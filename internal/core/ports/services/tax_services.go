package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// TaxCodeSvcFacade owns tax code masterdata.
type TaxCodeSvcFacade interface {
	// CreateTaxCode registers a new tax code.
	CreateTaxCode(ctx context.Context, req dto.CreateTaxCodeRequest, creatorUserID string) (*domain.TaxCode, error)

	// GetTaxCode retrieves a tax code definition.
	GetTaxCode(ctx context.Context, code string) (*domain.TaxCode, error)

	// ListTaxCodes returns tax codes ordered by code.
	ListTaxCodes(ctx context.Context, activeOnly bool) ([]domain.TaxCode, error)

	// DeactivateTaxCode hides the code from selection. Posted lines keep
	// their snapshotted rates.
	DeactivateTaxCode(ctx context.Context, code string, userID string) error
}

// GSTSvcFacade prepares and files GST returns from posted, tax-tagged lines.
type GSTSvcFacade interface {
	// PrepareReturn computes an unsaved return draft over a filing period.
	PrepareReturn(ctx context.Context, start, end time.Time, userID string) (*domain.GSTReturn, error)

	// SaveDraftReturn persists (or re-persists) a draft return.
	SaveDraftReturn(ctx context.Context, ret domain.GSTReturn, userID string) (*domain.GSTReturn, error)

	// GetReturn retrieves a persisted return.
	GetReturn(ctx context.Context, returnID string) (*domain.GSTReturn, error)

	// FinalizeReturn marks a draft return filed and, when the net payable is
	// non-zero, posts a settlement journal entry against the configured GST
	// control accounts.
	FinalizeReturn(ctx context.Context, returnID string, req dto.FinalizeGSTReturnRequest, userID string) (*domain.GSTReturn, error)
}
