package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade computes account balances from posted journal lines,
// signed by each account's normal balance. Draft and never-posted lines do
// not contribute.
type BalanceSvcFacade interface {
	// Balance returns the account's signed balance as of a date (inclusive).
	Balance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)

	// BalanceRange returns opening (day before start), movements within the
	// range, and closing (opening + movements).
	BalanceRange(ctx context.Context, accountCode string, start, end time.Time) (domain.BalanceRange, error)

	// RollupBalance returns the account's own balance plus the rollup
	// balances of all descendant accounts.
	RollupBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)
}
