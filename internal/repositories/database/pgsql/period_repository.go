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

const periodColumns = `period_id, name, start_date, end_date, is_closed, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new fiscal period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := fmt.Sprintf(`INSERT INTO fiscal_periods (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`, periodColumns)
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.IsClosed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: fiscal period %s", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save fiscal period %s: %w", m.Name, err)
	}
	return nil
}

// FindPeriodByID retrieves a fiscal period by identifier.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_periods WHERE period_id = $1;`, periodColumns)
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, periodID)
		}
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", periodID, err)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// FindPeriodForDate retrieves the period containing the given date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_periods WHERE start_date <= $1 AND end_date >= $1 LIMIT 1;`, periodColumns)
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no fiscal period covers %s", apperrors.ErrNotFound, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find fiscal period for date: %w", err)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// FindOverlappingPeriod returns a registered period sharing at least one day
// with [start, end].
func (r *PgxPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_periods WHERE start_date <= $2 AND end_date >= $1 LIMIT 1;`, periodColumns)
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no overlapping fiscal period", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find overlapping fiscal period: %w", err)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}

// ListPeriods returns all fiscal periods ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_periods ORDER BY start_date;`, periodColumns)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading fiscal period rows: %w", err)
	}
	return periods, nil
}

// SetPeriodClosed closes or reopens a period.
func (r *PgxPeriodRepository) SetPeriodClosed(ctx context.Context, periodID string, closed bool, updatedBy string, at time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET is_closed = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, closed, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to change closed flag of period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s", apperrors.ErrNotFound, periodID)
	}
	return nil
}
