package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	"github.com/quillbooks/quillbooks/internal/models"
	"github.com/quillbooks/quillbooks/internal/utils/mapping"
)

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so sequence
// consumption can run standalone or inside a caller's transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// consumeSequence atomically increments the named sequence and returns the
// formatted value that was consumed. The single UPDATE takes a row lock, so
// concurrent callers serialize on it and never see the same value.
func consumeSequence(ctx context.Context, q rowQuerier, name string) (string, error) {
	query := `
		UPDATE document_sequences
		SET next_value = next_value + 1, last_updated_at = now()
		WHERE name = $1
		RETURNING next_value - 1, prefix, pad_width, format;
	`
	var seq domain.DocumentSequence
	var consumed int64
	err := q.QueryRow(ctx, query, name).Scan(&consumed, &seq.Prefix, &seq.PadWidth, &seq.Format)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownSequence, name)
		}
		return "", fmt.Errorf("failed to consume sequence %s: %w", name, err)
	}
	return seq.FormatValue(consumed), nil
}

// NextDocumentNumber consumes and returns the next formatted document number.
func (r *PgxSequenceRepository) NextDocumentNumber(ctx context.Context, name string) (string, error) {
	return consumeSequence(ctx, r.Pool, name)
}

// FindSequence returns the sequence definition without consuming a value.
func (r *PgxSequenceRepository) FindSequence(ctx context.Context, name string) (*domain.DocumentSequence, error) {
	query := `
		SELECT name, prefix, next_value, pad_width, format, created_at, created_by, last_updated_at, last_updated_by
		FROM document_sequences
		WHERE name = $1;
	`
	var m models.DocumentSequence
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&m.Name,
		&m.Prefix,
		&m.NextValue,
		&m.PadWidth,
		&m.Format,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSequence, name)
		}
		return nil, fmt.Errorf("failed to find sequence %s: %w", name, err)
	}
	seq := mapping.ToDomainSequence(m)
	return &seq, nil
}
