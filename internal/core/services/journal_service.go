package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/dto"
	"github.com/quillbooks/quillbooks/internal/utils/accounting"
)

// All four wrap apperrors.ErrValidation so the HTTP layer maps them without
// knowing each one.
var (
	ErrEntryMinLines    = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrEntryMinAccounts = fmt.Errorf("%w: journal entry must affect at least two different accounts", apperrors.ErrValidation)
	ErrOneSidedLine     = fmt.Errorf("%w: each line must carry exactly one of debit or credit, positive", apperrors.ErrValidation)
	ErrNotPosted        = fmt.Errorf("%w: only posted entries can be reversed", apperrors.ErrValidation)
)

// journalService implements the draft -> posted -> reversed entry lifecycle.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
	periodSvc    portssvc.PeriodSvcFacade
	taxCodeSvc   portssvc.TaxCodeSvcFacade
	baseCurrency string
	baseDecimals int32
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	periodSvc portssvc.PeriodSvcFacade,
	taxCodeSvc portssvc.TaxCodeSvcFacade,
	baseCurrency string,
	baseDecimals int32,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountSvc:   accountSvc,
		periodSvc:    periodSvc,
		taxCodeSvc:   taxCodeSvc,
		baseCurrency: baseCurrency,
		baseDecimals: baseDecimals,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines validates line requests and converts them into domain lines,
// snapshotting tax rates from the active tax codes.
func (s *journalService) buildLines(ctx context.Context, entryID string, reqLines []dto.CreateEntryLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	if len(reqLines) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrEntryMinLines, len(reqLines))
	}

	accountSet := make(map[string]bool, len(reqLines))
	codes := make([]string, 0, len(reqLines))
	for _, l := range reqLines {
		if !accountSet[l.AccountCode] {
			accountSet[l.AccountCode] = true
			codes = append(codes, l.AccountCode)
		}
	}
	if len(accountSet) < 2 {
		return nil, ErrEntryMinAccounts
	}

	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	lines := make([]domain.JournalLine, len(reqLines))
	for i, l := range reqLines {
		acc, found := accounts[l.AccountCode]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, l.AccountCode)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrInactiveAccount, l.AccountCode)
		}

		debitSet := l.Debit.IsPositive()
		creditSet := l.Credit.IsPositive()
		if l.Debit.IsNegative() || l.Credit.IsNegative() || debitSet == creditSet {
			return nil, fmt.Errorf("%w: line %d on account %s", ErrOneSidedLine, i+1, l.AccountCode)
		}

		amount := l.Debit
		if creditSet {
			amount = l.Credit
		}
		if !accounting.CheckPrecision(amount, s.baseDecimals) {
			return nil, fmt.Errorf("%w: amount %s on line %d exceeds %d decimal places", apperrors.ErrPrecisionMismatch, amount.String(), i+1, s.baseDecimals)
		}

		currencyCode := s.baseCurrency
		exchangeRate := decimal.NewFromInt(1)
		if l.CurrencyCode != nil && *l.CurrencyCode != "" && *l.CurrencyCode != s.baseCurrency {
			if l.ExchangeRate == nil || !l.ExchangeRate.IsPositive() {
				return nil, fmt.Errorf("%w: line %d in %s requires a positive exchange rate", apperrors.ErrValidation, i+1, *l.CurrencyCode)
			}
			currencyCode = *l.CurrencyCode
			exchangeRate = *l.ExchangeRate
		}

		taxRate := decimal.Zero
		taxAmount := decimal.Zero
		if l.TaxCode != nil && *l.TaxCode != "" {
			tc, err := s.taxCodeSvc.GetTaxCode(ctx, *l.TaxCode)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch tax code %s: %w", *l.TaxCode, err)
			}
			if !tc.IsActive {
				return nil, fmt.Errorf("%w: tax code %s is inactive", apperrors.ErrValidation, tc.Code)
			}
			// Rate and derived amount are frozen on the line; later rate
			// changes never rewrite posted history.
			taxRate = tc.Rate
			taxAmount = amount.Mul(tc.Rate).Div(decimal.NewFromInt(100)).Round(s.baseDecimals)
		}

		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNo:       i + 1,
			AccountCode:  l.AccountCode,
			Description:  l.Description,
			Debit:        l.Debit,
			Credit:       l.Credit,
			TaxCode:      l.TaxCode,
			TaxRate:      taxRate,
			TaxAmount:    taxAmount,
			CurrencyCode: currencyCode,
			ExchangeRate: exchangeRate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	debits, credits := accounting.ColumnTotals(lines)
	if !debits.Equal(credits) {
		return nil, apperrors.NewUnbalancedError(debits, credits)
	}

	return lines, nil
}

// CreateDraftEntry validates and persists a new draft entry with its lines.
// Drafts never affect balances and consume no document number.
func (s *journalService) CreateDraftEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, entryID, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryDate:    req.EntryDate,
		Description:  req.Description,
		CurrencyCode: s.baseCurrency,
		Status:       domain.Draft,
		SourceType:   req.SourceType,
		SourceID:     req.SourceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveDraftEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}

	s.LogInfo(ctx, "Draft entry created", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	entry.Lines = lines
	return &entry, nil
}

// UpdateDraftEntry replaces a draft's header fields and lines. Posted and
// reversed entries are immutable.
func (s *journalService) UpdateDraftEntry(ctx context.Context, entryID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if existing.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, entryID, existing.Status)
	}

	now := time.Now().UTC()
	lines, err := s.buildLines(ctx, entryID, req.Lines, userID, now)
	if err != nil {
		return nil, err
	}

	entry := *existing
	entry.EntryDate = req.EntryDate
	entry.Description = req.Description
	entry.SourceType = req.SourceType
	entry.SourceID = req.SourceID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.ReplaceDraftEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to replace draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to replace draft entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Draft entry updated", slog.String("entry_id", entryID))
	entry.Lines = lines
	return &entry, nil
}

// DeleteDraftEntry discards a draft entry without trace.
func (s *journalService) DeleteDraftEntry(ctx context.Context, entryID string, userID string) error {
	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if existing.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, entryID, existing.Status)
	}

	if err := s.journalRepo.DeleteDraftEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete draft entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Draft entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", userID))
	return nil
}

// PostEntry makes a draft permanent and balance-affecting. The period guard
// runs before posting so a closed period never consumes a document number.
// Balance re-validation and number assignment happen atomically inside the
// repository transaction.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string, postingDate time.Time) (*domain.JournalEntry, error) {
	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if existing.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotEditable, entryID, existing.Status)
	}

	if err := s.periodSvc.EnsureDateOpen(ctx, postingDate); err != nil {
		return nil, err
	}

	posted, err := s.journalRepo.PostEntry(ctx, entryID, domain.SequenceJournalEntry, postingDate, userID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrEntryNotEditable) && !apperrors.IsUnbalanced(err) {
			s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	entryNo := ""
	if posted.EntryNo != nil {
		entryNo = *posted.EntryNo
	}
	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entryID), slog.String("entry_no", entryNo))
	return posted, nil
}

// ReverseEntry creates and posts a counter-entry with debits and credits
// swapped, then marks the original reversed. The pair nets to zero on every
// affected account from the reversal date onward.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, userID string, reversalDate time.Time, description string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	switch original.Status {
	case domain.Posted:
		// reversible
	case domain.Reversed:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entryID)
	default:
		return nil, fmt.Errorf("%w: entry %s is %s", ErrNotPosted, entryID, original.Status)
	}

	if reversalDate.Before(original.EntryDate) {
		return nil, fmt.Errorf("%w: reversal date %s precedes entry date %s", apperrors.ErrValidation,
			reversalDate.Format("2006-01-02"), original.EntryDate.Format("2006-01-02"))
	}
	if err := s.periodSvc.EnsureDateOpen(ctx, reversalDate); err != nil {
		return nil, err
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines of entry %s: %w", entryID, err)
	}

	if description == "" {
		ref := entryID
		if original.EntryNo != nil {
			ref = *original.EntryNo
		}
		description = fmt.Sprintf("Reversal of %s", ref)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		EntryDate:       reversalDate,
		Description:     description,
		CurrencyCode:    original.CurrencyCode,
		Status:          domain.Posted,
		SourceType:      original.SourceType,
		SourceID:        original.SourceID,
		OriginalEntryID: &entryID,
		PostedAt:        &now,
		PostedBy:        &userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	lines := make([]domain.JournalLine, len(originalLines))
	for i, l := range originalLines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			LineNo:       l.LineNo,
			AccountCode:  l.AccountCode,
			Description:  l.Description,
			Debit:        l.Credit, // sides swap, magnitudes stay
			Credit:       l.Debit,
			TaxCode:      l.TaxCode,
			TaxRate:      l.TaxRate,
			TaxAmount:    l.TaxAmount,
			CurrencyCode: l.CurrencyCode,
			ExchangeRate: l.ExchangeRate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	saved, err := s.journalRepo.SaveReversalEntry(ctx, entryID, reversal, lines, domain.SequenceJournalEntry)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyReversed) {
			s.LogError(ctx, err, "Failed to save reversal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to reverse entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", saved.EntryID))
	return saved, nil
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entry lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines of entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of entries without lines.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	repoParams := portsrepo.ListEntriesParams{
		Status:    params.Status,
		FromDate:  params.FromDate,
		ToDate:    params.ToDate,
		Limit:     limit,
		NextToken: params.NextToken,
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, repoParams)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}
