package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// periodService owns fiscal period boundaries and the posting-date guard.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new fiscal period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo: periodRepo,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod registers a new fiscal period. Periods must not overlap.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date must be after start date", apperrors.ErrValidation)
	}

	existing, err := s.periodRepo.FindOverlappingPeriod(ctx, req.StartDate, req.EndDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for overlapping periods")
		return nil, fmt.Errorf("failed to check for overlapping periods: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: period overlaps with %s", apperrors.ErrConflict, existing.Name)
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsClosed:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal period", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save fiscal period: %w", err)
	}

	s.LogInfo(ctx, "Fiscal period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// ListPeriods returns all fiscal periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal periods")
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	return periods, nil
}

// ClosePeriod stops further postings dated within the period.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, userID string) error {
	return s.setClosed(ctx, periodID, true, userID)
}

// ReopenPeriod re-admits postings dated within the period.
func (s *periodService) ReopenPeriod(ctx context.Context, periodID string, userID string) error {
	return s.setClosed(ctx, periodID, false, userID)
}

func (s *periodService) setClosed(ctx context.Context, periodID string, closed bool, userID string) error {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to find fiscal period %s: %w", periodID, err)
	}
	if period.IsClosed == closed {
		// Idempotent; closing a closed period is not an error.
		return nil
	}

	if err := s.periodRepo.SetPeriodClosed(ctx, periodID, closed, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to change period close state", slog.String("period_id", periodID), slog.Bool("closed", closed))
		return fmt.Errorf("failed to change close state of period %s: %w", periodID, err)
	}

	s.LogInfo(ctx, "Fiscal period close state changed", slog.String("period_id", periodID), slog.Bool("closed", closed))
	return nil
}

// EnsureDateOpen fails when the date falls within a closed period. Dates
// covered by no registered period are accepted; small books often start
// posting before they set up period controls.
func (s *periodService) EnsureDateOpen(ctx context.Context, date time.Time) error {
	period, err := s.periodRepo.FindPeriodForDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to resolve fiscal period for date", slog.Time("date", date))
		return fmt.Errorf("failed to resolve fiscal period for %s: %w", date.Format("2006-01-02"), err)
	}
	if period.IsClosed {
		return fmt.Errorf("%w: %s falls in closed period %s", apperrors.ErrPeriodClosed, date.Format("2006-01-02"), period.Name)
	}
	return nil
}
