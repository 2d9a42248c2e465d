package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
)

// TaxCodeReader defines read operations for tax code masterdata.
type TaxCodeReader interface {
	// FindTaxCodeByCode retrieves a tax code definition.
	FindTaxCodeByCode(ctx context.Context, code string) (*domain.TaxCode, error)

	// ListTaxCodes returns tax codes ordered by code; activeOnly omits
	// deactivated ones.
	ListTaxCodes(ctx context.Context, activeOnly bool) ([]domain.TaxCode, error)
}

// TaxCodeWriter defines write operations for tax code masterdata.
type TaxCodeWriter interface {
	// SaveTaxCode inserts a new tax code definition.
	SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error

	// UpdateTaxCode updates a tax code's mutable fields. Posted lines are
	// never rewritten; they snapshot the rate at entry time.
	UpdateTaxCode(ctx context.Context, taxCode domain.TaxCode) error

	// SetTaxCodeActive flips the active flag.
	SetTaxCodeActive(ctx context.Context, code string, active bool, updatedBy string, at time.Time) error
}

// TaxCodeRepositoryFacade combines all tax code repository interfaces.
type TaxCodeRepositoryFacade interface {
	TaxCodeReader
	TaxCodeWriter
}

// GSTReturnRepositoryFacade persists GST returns.
type GSTReturnRepositoryFacade interface {
	// SaveGSTReturn inserts a new draft return.
	SaveGSTReturn(ctx context.Context, ret domain.GSTReturn) error

	// UpdateGSTReturn rewrites a draft return's totals. Fails with
	// apperrors.ErrAlreadyFinalized when the return is no longer a draft.
	UpdateGSTReturn(ctx context.Context, ret domain.GSTReturn) error

	// FindGSTReturnByID retrieves a return by its identifier.
	FindGSTReturnByID(ctx context.Context, returnID string) (*domain.GSTReturn, error)

	// FinalizeGSTReturn transitions a draft return to FINALIZED inside one
	// transaction: posts the settlement draft (when one is named), consumes
	// the next return number, and stamps the submission reference/date and
	// the settlement entry link. A failure anywhere rolls everything back,
	// so a posted settlement can never outlive an unfinalized return. Fails
	// with apperrors.ErrAlreadyFinalized when the return is not a draft.
	FinalizeGSTReturn(ctx context.Context, returnID string, fin GSTFinalization) (*domain.GSTReturn, error)
}

// GSTFinalization carries the inputs of the atomic finalization step. The
// settlement entry, when set, must reference a pre-validated draft; it is
// posted with a number from EntrySequenceName in the same transaction that
// flips the return.
type GSTFinalization struct {
	SequenceName   string
	SubmissionRef  string
	SubmissionDate time.Time
	UpdatedBy      string
	At             time.Time

	SettlementEntryID *string
	EntrySequenceName string
	PostingDate       time.Time
}
