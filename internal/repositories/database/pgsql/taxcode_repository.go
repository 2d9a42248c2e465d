package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks/internal/models"
	"github.com/quillbooks/quillbooks/internal/utils/mapping"
)

const taxCodeColumns = `code, description, tax_type, rate, affected_account, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTaxCodeRepository struct {
	BaseRepository
}

// newPgxTaxCodeRepository creates a new repository for tax code masterdata.
func newPgxTaxCodeRepository(pool *pgxpool.Pool) portsrepo.TaxCodeRepositoryFacade {
	return &PgxTaxCodeRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxCodeRepositoryFacade = (*PgxTaxCodeRepository)(nil)

func scanTaxCode(row pgx.Row) (models.TaxCode, error) {
	var m models.TaxCode
	err := row.Scan(
		&m.Code,
		&m.Description,
		&m.TaxType,
		&m.Rate,
		&m.AffectedAccount,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTaxCode inserts a new tax code definition.
func (r *PgxTaxCodeRepository) SaveTaxCode(ctx context.Context, taxCode domain.TaxCode) error {
	m := mapping.ToModelTaxCode(taxCode)
	query := fmt.Sprintf(`INSERT INTO tax_codes (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`, taxCodeColumns)
	_, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Description,
		m.TaxType,
		m.Rate,
		m.AffectedAccount,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tax code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save tax code %s: %w", m.Code, err)
	}
	return nil
}

// FindTaxCodeByCode retrieves a tax code definition.
func (r *PgxTaxCodeRepository) FindTaxCodeByCode(ctx context.Context, code string) (*domain.TaxCode, error) {
	query := fmt.Sprintf(`SELECT %s FROM tax_codes WHERE code = $1;`, taxCodeColumns)
	m, err := scanTaxCode(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tax code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find tax code %s: %w", code, err)
	}
	taxCode := mapping.ToDomainTaxCode(m)
	return &taxCode, nil
}

// ListTaxCodes returns tax codes ordered by code.
func (r *PgxTaxCodeRepository) ListTaxCodes(ctx context.Context, activeOnly bool) ([]domain.TaxCode, error) {
	query := fmt.Sprintf(`SELECT %s FROM tax_codes`, taxCodeColumns)
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax codes: %w", err)
	}
	defer rows.Close()

	var taxCodes []domain.TaxCode
	for rows.Next() {
		m, err := scanTaxCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax code row: %w", err)
		}
		taxCodes = append(taxCodes, mapping.ToDomainTaxCode(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading tax code rows: %w", err)
	}
	return taxCodes, nil
}

// UpdateTaxCode updates a tax code's mutable fields. Posted lines keep their
// snapshotted rates; nothing here touches journal data.
func (r *PgxTaxCodeRepository) UpdateTaxCode(ctx context.Context, taxCode domain.TaxCode) error {
	m := mapping.ToModelTaxCode(taxCode)
	query := `
		UPDATE tax_codes
		SET description = $2, tax_type = $3, rate = $4, affected_account = $5, last_updated_at = $6, last_updated_by = $7
		WHERE code = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Description,
		m.TaxType,
		m.Rate,
		m.AffectedAccount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update tax code %s: %w", m.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tax code %s", apperrors.ErrNotFound, m.Code)
	}
	return nil
}

// SetTaxCodeActive flips the active flag.
func (r *PgxTaxCodeRepository) SetTaxCodeActive(ctx context.Context, code string, active bool, updatedBy string, at time.Time) error {
	query := `
		UPDATE tax_codes
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, code, active, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to change active flag of tax code %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tax code %s", apperrors.ErrNotFound, code)
	}
	return nil
}
