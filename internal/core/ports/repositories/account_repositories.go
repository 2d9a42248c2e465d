package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByCode retrieves a single account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	// Codes that do not exist are absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns the chart of accounts ordered by code.
	// When activeOnly is true, deactivated accounts are omitted.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account. Fails with apperrors.ErrDuplicate
	// when the code is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable account fields (name, parent, category,
	// description, control flag).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the active flag. Deactivation hides the account
	// from selection lists; posted history keeps referencing it.
	SetAccountActive(ctx context.Context, code string, active bool, updatedBy string, at time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
