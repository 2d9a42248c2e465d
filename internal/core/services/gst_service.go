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
	"github.com/quillbooks/quillbooks/internal/platform/config"
)

// gstService aggregates posted, tax-tagged lines into GST return figures and
// files them. Classification follows the IRAS code conventions: SR and ZR and
// ES for supplies, TX for claimable purchases, BL for blocked purchases whose
// input tax cannot be claimed.
type gstService struct {
	BaseService
	gstRepo     portsrepo.GSTReturnRepositoryFacade
	balanceRepo portsrepo.BalanceReader
	journalSvc  portssvc.JournalSvcFacade
	periodSvc   portssvc.PeriodSvcFacade
	accounts    config.GSTAccounts
}

// NewGSTService creates a new GST service.
func NewGSTService(
	gstRepo portsrepo.GSTReturnRepositoryFacade,
	balanceRepo portsrepo.BalanceReader,
	journalSvc portssvc.JournalSvcFacade,
	periodSvc portssvc.PeriodSvcFacade,
	accounts config.GSTAccounts,
) portssvc.GSTSvcFacade {
	return &gstService{
		gstRepo:     gstRepo,
		balanceRepo: balanceRepo,
		journalSvc:  journalSvc,
		periodSvc:   periodSvc,
		accounts:    accounts,
	}
}

var _ portssvc.GSTSvcFacade = (*gstService)(nil)

// PrepareReturn computes an unsaved return draft over a filing period.
func (s *gstService) PrepareReturn(ctx context.Context, start, end time.Time, userID string) (*domain.GSTReturn, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period end precedes start", apperrors.ErrValidation)
	}

	totals, err := s.balanceRepo.SumTaxTotalsByCode(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum tax totals for GST return")
		return nil, fmt.Errorf("failed to aggregate tax totals: %w", err)
	}

	now := time.Now().UTC()
	ret := &domain.GSTReturn{
		ReturnID:              uuid.NewString(),
		PeriodStart:           start,
		PeriodEnd:             end,
		StandardRatedSupplies: decimal.Zero,
		ZeroRatedSupplies:     decimal.Zero,
		ExemptSupplies:        decimal.Zero,
		TotalSupplies:         decimal.Zero,
		TaxablePurchases:      decimal.Zero,
		OutputTax:             decimal.Zero,
		InputTax:              decimal.Zero,
		Adjustments:           decimal.Zero,
		NetPayable:            decimal.Zero,
		Status:                domain.GSTReturnDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Totals arrive credit-signed: supply lines (sales credits) positive,
	// purchase lines (expense debits) negative, reversals already netted.
	// Purchase figures flip to the debit-positive convention returns use.
	for _, t := range totals {
		switch t.TaxCode {
		case domain.GSTCodeStandardRated:
			ret.StandardRatedSupplies = ret.StandardRatedSupplies.Add(t.BaseAmount)
			ret.OutputTax = ret.OutputTax.Add(t.TaxAmount)
		case domain.GSTCodeZeroRated:
			ret.ZeroRatedSupplies = ret.ZeroRatedSupplies.Add(t.BaseAmount)
		case domain.GSTCodeExempt:
			ret.ExemptSupplies = ret.ExemptSupplies.Add(t.BaseAmount)
		case domain.GSTCodeTaxablePurchase:
			ret.TaxablePurchases = ret.TaxablePurchases.Add(t.BaseAmount.Neg())
			ret.InputTax = ret.InputTax.Add(t.TaxAmount.Neg())
		case domain.GSTCodeBlockedPurchase:
			// Base counts toward taxable purchases; the tax is not claimable.
			ret.TaxablePurchases = ret.TaxablePurchases.Add(t.BaseAmount.Neg())
		}
	}

	ret.TotalSupplies = ret.StandardRatedSupplies.Add(ret.ZeroRatedSupplies).Add(ret.ExemptSupplies)
	ret.NetPayable = ret.OutputTax.Sub(ret.InputTax).Add(ret.Adjustments)

	s.LogInfo(ctx, "GST return prepared",
		slog.String("period_start", start.Format("2006-01-02")),
		slog.String("period_end", end.Format("2006-01-02")),
		slog.String("net_payable", ret.NetPayable.String()))
	return ret, nil
}

// SaveDraftReturn persists (or re-persists) a draft return. Derived totals
// are recomputed from the component figures so the stored document is always
// internally consistent.
func (s *gstService) SaveDraftReturn(ctx context.Context, ret domain.GSTReturn, userID string) (*domain.GSTReturn, error) {
	ret.TotalSupplies = ret.StandardRatedSupplies.Add(ret.ZeroRatedSupplies).Add(ret.ExemptSupplies)
	ret.NetPayable = ret.OutputTax.Sub(ret.InputTax).Add(ret.Adjustments)
	ret.Status = domain.GSTReturnDraft

	now := time.Now().UTC()
	ret.LastUpdatedAt = now
	ret.LastUpdatedBy = userID

	if ret.ReturnID == "" {
		ret.ReturnID = uuid.NewString()
		ret.CreatedAt = now
		ret.CreatedBy = userID
		if err := s.gstRepo.SaveGSTReturn(ctx, ret); err != nil {
			s.LogError(ctx, err, "Failed to save GST return")
			return nil, fmt.Errorf("failed to save GST return: %w", err)
		}
		s.LogInfo(ctx, "GST return draft saved", slog.String("return_id", ret.ReturnID))
		return &ret, nil
	}

	existing, err := s.gstRepo.FindGSTReturnByID(ctx, ret.ReturnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find GST return %s: %w", ret.ReturnID, err)
	}
	if existing.Status != domain.GSTReturnDraft {
		return nil, fmt.Errorf("%w: return %s", apperrors.ErrAlreadyFinalized, ret.ReturnID)
	}
	ret.CreatedAt = existing.CreatedAt
	ret.CreatedBy = existing.CreatedBy

	if err := s.gstRepo.UpdateGSTReturn(ctx, ret); err != nil {
		s.LogError(ctx, err, "Failed to update GST return", slog.String("return_id", ret.ReturnID))
		return nil, fmt.Errorf("failed to update GST return %s: %w", ret.ReturnID, err)
	}
	s.LogInfo(ctx, "GST return draft updated", slog.String("return_id", ret.ReturnID))
	return &ret, nil
}

// GetReturn retrieves a persisted return.
func (s *gstService) GetReturn(ctx context.Context, returnID string) (*domain.GSTReturn, error) {
	ret, err := s.gstRepo.FindGSTReturnByID(ctx, returnID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find GST return", slog.String("return_id", returnID))
		}
		return nil, fmt.Errorf("failed to find GST return %s: %w", returnID, err)
	}
	return ret, nil
}

// settlementLines builds the journal lines that sweep the period's output
// and input tax from the control accounts, and the adjustments figure from
// the adjustment account, into the clearing account. The clearing line
// carries the full net payable so the entry settles exactly what the return
// reports.
func (s *gstService) settlementLines(ret *domain.GSTReturn) []dto.CreateEntryLineRequest {
	var lines []dto.CreateEntryLineRequest
	if ret.OutputTax.IsPositive() {
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountCode: s.accounts.OutputTaxAccount,
			Description: "GST output tax settlement",
			Debit:       ret.OutputTax,
		})
	}
	if ret.InputTax.IsPositive() {
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountCode: s.accounts.InputTaxAccount,
			Description: "GST input tax settlement",
			Credit:      ret.InputTax,
		})
	}
	switch {
	case ret.Adjustments.IsPositive():
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountCode: s.accounts.AdjustmentAccount,
			Description: "GST adjustments",
			Debit:       ret.Adjustments,
		})
	case ret.Adjustments.IsNegative():
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountCode: s.accounts.AdjustmentAccount,
			Description: "GST adjustments",
			Credit:      ret.Adjustments.Neg(),
		})
	}

	net := ret.OutputTax.Sub(ret.InputTax).Add(ret.Adjustments)
	switch {
	case net.IsPositive():
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountCode: s.accounts.ClearingAccount,
			Description: "GST payable to authority",
			Credit:      net,
		})
	case net.IsNegative():
		lines = append(lines, dto.CreateEntryLineRequest{
			AccountCode: s.accounts.ClearingAccount,
			Description: "GST refundable from authority",
			Debit:       net.Neg(),
		})
	}
	return lines
}

// FinalizeReturn marks a draft return filed. When the return carries any tax
// or adjustment figures, a settlement entry is drafted first and then posted
// by the repository inside the same transaction that flips the return, so a
// failed or retried finalization can never leave a posted settlement behind.
func (s *gstService) FinalizeReturn(ctx context.Context, returnID string, req dto.FinalizeGSTReturnRequest, userID string) (*domain.GSTReturn, error) {
	ret, err := s.gstRepo.FindGSTReturnByID(ctx, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to find GST return %s: %w", returnID, err)
	}
	if ret.Status != domain.GSTReturnDraft {
		return nil, fmt.Errorf("%w: return %s", apperrors.ErrAlreadyFinalized, returnID)
	}
	if !ret.Adjustments.IsZero() && s.accounts.AdjustmentAccount == "" {
		return nil, fmt.Errorf("%w: return %s has adjustments but no GST adjustment account is configured", apperrors.ErrValidation, returnID)
	}

	var settlementEntryID *string
	if lines := s.settlementLines(ret); len(lines) >= 2 {
		if err := s.periodSvc.EnsureDateOpen(ctx, ret.PeriodEnd); err != nil {
			return nil, fmt.Errorf("cannot post GST settlement: %w", err)
		}
		sourceID := ret.ReturnID
		draft, err := s.journalSvc.CreateDraftEntry(ctx, dto.CreateEntryRequest{
			EntryDate:   ret.PeriodEnd,
			Description: fmt.Sprintf("GST settlement %s to %s", ret.PeriodStart.Format("2006-01-02"), ret.PeriodEnd.Format("2006-01-02")),
			SourceType:  "GST_SETTLEMENT",
			SourceID:    &sourceID,
			Lines:       lines,
		}, userID)
		if err != nil {
			s.LogError(ctx, err, "Failed to create GST settlement entry", slog.String("return_id", returnID))
			return nil, fmt.Errorf("failed to create GST settlement entry: %w", err)
		}
		settlementEntryID = &draft.EntryID
	}

	finalized, err := s.gstRepo.FinalizeGSTReturn(ctx, returnID, portsrepo.GSTFinalization{
		SequenceName:      domain.SequenceGSTReturn,
		SubmissionRef:     req.SubmissionRef,
		SubmissionDate:    req.SubmissionDate,
		UpdatedBy:         userID,
		At:                time.Now().UTC(),
		SettlementEntryID: settlementEntryID,
		EntrySequenceName: domain.SequenceJournalEntry,
		PostingDate:       ret.PeriodEnd,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyFinalized) {
			s.LogError(ctx, err, "Failed to finalize GST return", slog.String("return_id", returnID))
		}
		if settlementEntryID != nil {
			// Nothing posted; discard the orphaned settlement draft.
			if delErr := s.journalSvc.DeleteDraftEntry(ctx, *settlementEntryID, userID); delErr != nil {
				s.LogError(ctx, delErr, "Failed to discard GST settlement draft", slog.String("entry_id", *settlementEntryID))
			}
		}
		return nil, fmt.Errorf("failed to finalize GST return %s: %w", returnID, err)
	}

	returnNo := ""
	if finalized.ReturnNo != nil {
		returnNo = *finalized.ReturnNo
	}
	s.LogInfo(ctx, "GST return finalized", slog.String("return_id", returnID), slog.String("return_no", returnNo))
	return finalized, nil
}
