package services

import (
	"context"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// AccountSvcFacade owns the chart of accounts.
type AccountSvcFacade interface {
	// CreateAccount adds an account to the chart. Parent links are validated
	// for cycles at write time.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByCode retrieves a single account.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByCodes retrieves multiple accounts keyed by code.
	GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns the chart ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)

	// UpdateAccount changes mutable fields; parent changes re-run cycle checks.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount hides the account from selection lists. History
	// referencing the account remains visible.
	DeactivateAccount(ctx context.Context, code string, userID string) error

	// BuildChildrenIndex builds the parent -> children index used for
	// rollups. Callers rebuild it per report run; it is never cached across
	// calls.
	BuildChildrenIndex(ctx context.Context) (domain.ChildrenIndex, error)
}
