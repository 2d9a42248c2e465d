package repositories

import (
	"context"
	"time"

	"github.com/quillbooks/quillbooks/internal/core/domain"
)

// PeriodReader defines read operations for fiscal period data.
type PeriodReader interface {
	// FindPeriodByID retrieves a fiscal period by its identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period containing the given date, or
	// apperrors.ErrNotFound when no period covers it.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods returns all fiscal periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error)

	// FindOverlappingPeriod returns a period overlapping [start, end], or
	// apperrors.ErrNotFound when none does.
	FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal period data.
type PeriodWriter interface {
	// SavePeriod inserts a new fiscal period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// SetPeriodClosed closes or reopens a period.
	SetPeriodClosed(ctx context.Context, periodID string, closed bool, updatedBy string, at time.Time) error
}

// PeriodRepositoryFacade combines all fiscal period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
