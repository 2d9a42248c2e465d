package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ColumnSums carries raw debit/credit column totals for one account.
type ColumnSums struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// BalanceReader exposes the posted-line aggregations the balance calculator
// and report generators are built on. Drafts never contribute. Entries that
// were posted and later reversed still contribute; their posted reversal
// entries cancel them arithmetically.
type BalanceReader interface {
	// SumAccountColumns sums the debit and credit columns of all posted
	// lines for one account dated on or before asOf.
	SumAccountColumns(ctx context.Context, accountCode string, asOf time.Time) (ColumnSums, error)

	// SumAccountColumnsRange sums posted lines for one account dated within
	// [start, end] inclusive.
	SumAccountColumnsRange(ctx context.Context, accountCode string, start, end time.Time) (ColumnSums, error)

	// SumAllAccountColumns sums posted lines per account code, dated on or
	// before asOf. Accounts without postings are absent from the map.
	SumAllAccountColumns(ctx context.Context, asOf time.Time) (map[string]ColumnSums, error)

	// SumAllAccountColumnsRange is the ranged variant of SumAllAccountColumns.
	SumAllAccountColumnsRange(ctx context.Context, start, end time.Time) (map[string]ColumnSums, error)

	// ListPostedLinesForAccount returns the posted lines affecting one
	// account within [start, end], ordered by entry date, then entry number,
	// then line number, regardless of storage order. Running balances are
	// not populated.
	ListPostedLinesForAccount(ctx context.Context, accountCode string, start, end time.Time) ([]domain.GeneralLedgerRow, error)

	// SumTaxTotalsByCode sums base and tax amounts of posted, tax-tagged
	// lines dated within [start, end], grouped by tax code. Sums are
	// credit-signed so reversal lines net against their originals.
	SumTaxTotalsByCode(ctx context.Context, start, end time.Time) ([]domain.TaxCodeTotal, error)
}
