package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks/internal/models"
	"github.com/quillbooks/quillbooks/internal/utils/mapping"
)

const gstReturnColumns = `return_id, return_no, period_start, period_end, standard_rated_supplies, zero_rated_supplies, exempt_supplies, total_supplies, taxable_purchases, output_tax, input_tax, adjustments, net_payable, status, submission_ref, submission_date, settlement_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxGSTReturnRepository struct {
	BaseRepository
}

// newPgxGSTReturnRepository creates a new repository for GST returns.
func newPgxGSTReturnRepository(pool *pgxpool.Pool) portsrepo.GSTReturnRepositoryFacade {
	return &PgxGSTReturnRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.GSTReturnRepositoryFacade = (*PgxGSTReturnRepository)(nil)

func scanGSTReturn(row pgx.Row) (models.GSTReturn, error) {
	var m models.GSTReturn
	err := row.Scan(
		&m.ReturnID,
		&m.ReturnNo,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.StandardRatedSupplies,
		&m.ZeroRatedSupplies,
		&m.ExemptSupplies,
		&m.TotalSupplies,
		&m.TaxablePurchases,
		&m.OutputTax,
		&m.InputTax,
		&m.Adjustments,
		&m.NetPayable,
		&m.Status,
		&m.SubmissionRef,
		&m.SubmissionDate,
		&m.SettlementEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveGSTReturn inserts a new draft return.
func (r *PgxGSTReturnRepository) SaveGSTReturn(ctx context.Context, ret domain.GSTReturn) error {
	m := mapping.ToModelGSTReturn(ret)
	query := fmt.Sprintf(`INSERT INTO gst_returns (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);`, gstReturnColumns)
	_, err := r.Pool.Exec(ctx, query,
		m.ReturnID,
		m.ReturnNo,
		m.PeriodStart,
		m.PeriodEnd,
		m.StandardRatedSupplies,
		m.ZeroRatedSupplies,
		m.ExemptSupplies,
		m.TotalSupplies,
		m.TaxablePurchases,
		m.OutputTax,
		m.InputTax,
		m.Adjustments,
		m.NetPayable,
		m.Status,
		m.SubmissionRef,
		m.SubmissionDate,
		m.SettlementEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: GST return %s", apperrors.ErrDuplicate, m.ReturnID)
		}
		return fmt.Errorf("failed to save GST return %s: %w", m.ReturnID, err)
	}
	return nil
}

// UpdateGSTReturn rewrites a draft return's computed totals and adjustments.
func (r *PgxGSTReturnRepository) UpdateGSTReturn(ctx context.Context, ret domain.GSTReturn) error {
	m := mapping.ToModelGSTReturn(ret)
	query := `
		UPDATE gst_returns
		SET period_start = $2, period_end = $3, standard_rated_supplies = $4, zero_rated_supplies = $5,
		    exempt_supplies = $6, total_supplies = $7, taxable_purchases = $8, output_tax = $9,
		    input_tax = $10, adjustments = $11, net_payable = $12, last_updated_at = $13, last_updated_by = $14
		WHERE return_id = $1 AND status = $15;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ReturnID,
		m.PeriodStart,
		m.PeriodEnd,
		m.StandardRatedSupplies,
		m.ZeroRatedSupplies,
		m.ExemptSupplies,
		m.TotalSupplies,
		m.TaxablePurchases,
		m.OutputTax,
		m.InputTax,
		m.Adjustments,
		m.NetPayable,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(domain.GSTReturnDraft),
	)
	if err != nil {
		return fmt.Errorf("failed to update GST return %s: %w", m.ReturnID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the return does not exist or it is no longer a draft.
		if _, findErr := r.FindGSTReturnByID(ctx, m.ReturnID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: GST return %s", apperrors.ErrAlreadyFinalized, m.ReturnID)
	}
	return nil
}

// FindGSTReturnByID retrieves a return by identifier.
func (r *PgxGSTReturnRepository) FindGSTReturnByID(ctx context.Context, returnID string) (*domain.GSTReturn, error) {
	query := fmt.Sprintf(`SELECT %s FROM gst_returns WHERE return_id = $1;`, gstReturnColumns)
	m, err := scanGSTReturn(r.Pool.QueryRow(ctx, query, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: GST return %s", apperrors.ErrNotFound, returnID)
		}
		return nil, fmt.Errorf("failed to find GST return %s: %w", returnID, err)
	}
	ret := mapping.ToDomainGSTReturn(m)
	return &ret, nil
}

// FinalizeGSTReturn transitions a draft return to FINALIZED. The settlement
// draft, when named, is posted inside the same transaction that consumes the
// return number and flips the status, so a crash or retry can never leave a
// posted settlement next to a still-draft return, nor finalize a return
// whose settlement failed to post.
func (r *PgxGSTReturnRepository) FinalizeGSTReturn(ctx context.Context, returnID string, fin portsrepo.GSTFinalization) (*domain.GSTReturn, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := fmt.Sprintf(`SELECT %s FROM gst_returns WHERE return_id = $1 FOR UPDATE;`, gstReturnColumns)
	m, err := scanGSTReturn(tx.QueryRow(ctx, lockQuery, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: GST return %s", apperrors.ErrNotFound, returnID)
		}
		return nil, fmt.Errorf("failed to lock GST return %s: %w", returnID, err)
	}
	if domain.GSTReturnStatus(m.Status) != domain.GSTReturnDraft {
		return nil, fmt.Errorf("%w: GST return %s", apperrors.ErrAlreadyFinalized, returnID)
	}

	if fin.SettlementEntryID != nil {
		if _, err := postEntryTx(ctx, tx, *fin.SettlementEntryID, fin.EntrySequenceName, fin.PostingDate, fin.UpdatedBy, fin.At); err != nil {
			return nil, err
		}
	}

	returnNo, err := consumeSequence(ctx, tx, fin.SequenceName)
	if err != nil {
		return nil, err
	}

	finalizeQuery := `
		UPDATE gst_returns
		SET return_no = $2, status = $3, submission_ref = $4, submission_date = $5,
		    settlement_entry_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE return_id = $1;
	`
	if _, err := tx.Exec(ctx, finalizeQuery,
		returnID,
		returnNo,
		string(domain.GSTReturnFinalized),
		fin.SubmissionRef,
		fin.SubmissionDate,
		fin.SettlementEntryID,
		fin.At,
		fin.UpdatedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to finalize GST return %s: %w", returnID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.ReturnNo = &returnNo
	m.Status = string(domain.GSTReturnFinalized)
	m.SubmissionRef = &fin.SubmissionRef
	m.SubmissionDate = &fin.SubmissionDate
	m.SettlementEntryID = fin.SettlementEntryID
	m.LastUpdatedAt = fin.At
	m.LastUpdatedBy = fin.UpdatedBy
	finalized := mapping.ToDomainGSTReturn(m)
	return &finalized, nil
}
