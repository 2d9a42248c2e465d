package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
)

// balanceStatusFilter keeps drafts out of every aggregation. Reversed
// originals stay in; their posted reversal entries cancel them.
const balanceStatusFilter = `e.status IN ('POSTED', 'REVERSED')`

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a read-only repository over posted journal lines.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceReader {
	return &PgxBalanceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceReader = (*PgxBalanceRepository)(nil)

// SumAccountColumns sums the debit and credit columns of one account's
// posted lines dated on or before asOf.
func (r *PgxBalanceRepository) SumAccountColumns(ctx context.Context, accountCode string, asOf time.Time) (portsrepo.ColumnSums, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.entry_date <= $2 AND %s;
	`, balanceStatusFilter)

	var sums portsrepo.ColumnSums
	if err := r.Pool.QueryRow(ctx, query, accountCode, asOf).Scan(&sums.Debits, &sums.Credits); err != nil {
		return sums, fmt.Errorf("failed to sum columns of account %s: %w", accountCode, err)
	}
	return sums, nil
}

// SumAccountColumnsRange sums one account's posted lines dated within [start, end].
func (r *PgxBalanceRepository) SumAccountColumnsRange(ctx context.Context, accountCode string, start, end time.Time) (portsrepo.ColumnSums, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.entry_date >= $2 AND e.entry_date <= $3 AND %s;
	`, balanceStatusFilter)

	var sums portsrepo.ColumnSums
	if err := r.Pool.QueryRow(ctx, query, accountCode, start, end).Scan(&sums.Debits, &sums.Credits); err != nil {
		return sums, fmt.Errorf("failed to sum columns of account %s in range: %w", accountCode, err)
	}
	return sums, nil
}

func (r *PgxBalanceRepository) sumGrouped(ctx context.Context, query string, args ...any) (map[string]portsrepo.ColumnSums, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum columns per account: %w", err)
	}
	defer rows.Close()

	result := make(map[string]portsrepo.ColumnSums)
	for rows.Next() {
		var code string
		var sums portsrepo.ColumnSums
		if err := rows.Scan(&code, &sums.Debits, &sums.Credits); err != nil {
			return nil, fmt.Errorf("failed to scan per-account sums: %w", err)
		}
		result[code] = sums
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading per-account sum rows: %w", err)
	}
	return result, nil
}

// SumAllAccountColumns sums posted lines per account, dated on or before asOf.
func (r *PgxBalanceRepository) SumAllAccountColumns(ctx context.Context, asOf time.Time) (map[string]portsrepo.ColumnSums, error) {
	query := fmt.Sprintf(`
		SELECT l.account_code, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date <= $1 AND %s
		GROUP BY l.account_code;
	`, balanceStatusFilter)
	return r.sumGrouped(ctx, query, asOf)
}

// SumAllAccountColumnsRange sums posted lines per account, dated within [start, end].
func (r *PgxBalanceRepository) SumAllAccountColumnsRange(ctx context.Context, start, end time.Time) (map[string]portsrepo.ColumnSums, error) {
	query := fmt.Sprintf(`
		SELECT l.account_code, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date >= $1 AND e.entry_date <= $2 AND %s
		GROUP BY l.account_code;
	`, balanceStatusFilter)
	return r.sumGrouped(ctx, query, start, end)
}

// ListPostedLinesForAccount returns one account's posted lines in ledger
// order. Running balances are the caller's concern.
func (r *PgxBalanceRepository) ListPostedLinesForAccount(ctx context.Context, accountCode string, start, end time.Time) ([]domain.GeneralLedgerRow, error) {
	query := fmt.Sprintf(`
		SELECT e.entry_date, COALESCE(e.entry_no, ''), l.line_no, l.description, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.entry_date >= $2 AND e.entry_date <= $3 AND %s
		ORDER BY e.entry_date, e.entry_no, l.line_no;
	`, balanceStatusFilter)

	rows, err := r.Pool.Query(ctx, query, accountCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines of account %s: %w", accountCode, err)
	}
	defer rows.Close()

	var ledgerRows []domain.GeneralLedgerRow
	for rows.Next() {
		var row domain.GeneralLedgerRow
		if err := rows.Scan(&row.EntryDate, &row.EntryNo, &row.LineNo, &row.Description, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledgerRows = append(ledgerRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading ledger rows: %w", err)
	}
	return ledgerRows, nil
}

// SumTaxTotalsByCode sums base and tax amounts of posted, tax-tagged lines
// dated within [start, end], grouped by tax code. Both sums are signed
// toward the credit side, so a reversal line (same tax code, sides swapped)
// cancels its original and a reversed sale nets to zero. Supply codes come
// out positive, purchase codes negative.
func (r *PgxBalanceRepository) SumTaxTotalsByCode(ctx context.Context, start, end time.Time) ([]domain.TaxCodeTotal, error) {
	query := fmt.Sprintf(`
		SELECT l.tax_code,
		       COALESCE(SUM(l.credit - l.debit), 0),
		       COALESCE(SUM(CASE WHEN l.credit > 0 THEN l.tax_amount ELSE -l.tax_amount END), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.tax_code IS NOT NULL AND e.entry_date >= $1 AND e.entry_date <= $2 AND %s
		GROUP BY l.tax_code
		ORDER BY l.tax_code;
	`, balanceStatusFilter)

	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum tax totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.TaxCodeTotal
	for rows.Next() {
		var t domain.TaxCodeTotal
		if err := rows.Scan(&t.TaxCode, &t.BaseAmount, &t.TaxAmount); err != nil {
			return nil, fmt.Errorf("failed to scan tax total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading tax total rows: %w", err)
	}
	return totals, nil
}
