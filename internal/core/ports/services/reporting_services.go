package services

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
)

// ReportingSvcFacade composes financial statements from the chart of
// accounts and the balance calculator. Reports are renderer-agnostic data
// structures; PDF/Excel/UI renderers consume them without re-deriving totals.
type ReportingSvcFacade interface {
	// BalanceSheet generates the balance sheet as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// ProfitAndLoss generates the P&L over a date range.
	ProfitAndLoss(ctx context.Context, start, end time.Time) (*domain.ProfitLossReport, error)

	// TrialBalance generates the trial balance as of a date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// GeneralLedger generates a single account's ledger over a date range,
	// rows carrying a running balance from the range's opening balance.
	GeneralLedger(ctx context.Context, accountCode string, start, end time.Time) (*domain.GeneralLedgerReport, error)
}
