package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portsrepo "github.com/quillbooks/quillbooks/internal/core/ports/repositories"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/core/services"
	"github.com/quillbooks/quillbooks/internal/dto"
	"github.com/quillbooks/quillbooks/internal/platform/config"
)

type GSTServiceTestSuite struct {
	suite.Suite
	mockGSTRepo     *MockGSTReturnRepository
	mockBalanceRepo *MockBalanceReader
	mockJournalSvc  *MockJournalService
	mockPeriodSvc   *MockPeriodService
	service         portssvc.GSTSvcFacade

	userID      string
	periodStart time.Time
	periodEnd   time.Time
}

func (s *GSTServiceTestSuite) SetupTest() {
	s.mockGSTRepo = new(MockGSTReturnRepository)
	s.mockBalanceRepo = new(MockBalanceReader)
	s.mockJournalSvc = new(MockJournalService)
	s.mockPeriodSvc = new(MockPeriodService)
	s.service = services.NewGSTService(s.mockGSTRepo, s.mockBalanceRepo, s.mockJournalSvc, s.mockPeriodSvc, config.GSTAccounts{
		OutputTaxAccount:  "2201",
		InputTaxAccount:   "1301",
		ClearingAccount:   "2202",
		AdjustmentAccount: "2203",
	})

	s.userID = uuid.NewString()
	s.periodStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.periodEnd = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func (s *GSTServiceTestSuite) TestPrepareReturn_ClassifiesByCode() {
	ctx := context.Background()
	// Aggregated totals are credit-signed: supplies arrive positive,
	// purchases negative.
	s.mockBalanceRepo.On("SumTaxTotalsByCode", ctx, s.periodStart, s.periodEnd).Return([]domain.TaxCodeTotal{
		{TaxCode: domain.GSTCodeStandardRated, BaseAmount: dec("1000"), TaxAmount: dec("90")},
		{TaxCode: domain.GSTCodeZeroRated, BaseAmount: dec("500"), TaxAmount: decimal.Zero},
		{TaxCode: domain.GSTCodeExempt, BaseAmount: dec("200"), TaxAmount: decimal.Zero},
		{TaxCode: domain.GSTCodeTaxablePurchase, BaseAmount: dec("-400"), TaxAmount: dec("-36")},
		{TaxCode: domain.GSTCodeBlockedPurchase, BaseAmount: dec("-100"), TaxAmount: dec("-9")},
	}, nil).Once()

	ret, err := s.service.PrepareReturn(ctx, s.periodStart, s.periodEnd, s.userID)

	s.Require().NoError(err)
	s.True(ret.StandardRatedSupplies.Equal(dec("1000")))
	s.True(ret.ZeroRatedSupplies.Equal(dec("500")))
	s.True(ret.ExemptSupplies.Equal(dec("200")))
	s.True(ret.TotalSupplies.Equal(dec("1700")))
	s.True(ret.TaxablePurchases.Equal(dec("500")), "blocked purchases count toward the base")
	s.True(ret.OutputTax.Equal(dec("90")), "9%% output tax on 1000 of standard-rated supplies")
	s.True(ret.InputTax.Equal(dec("36")), "blocked input tax is not claimable")
	s.True(ret.NetPayable.Equal(dec("54")))
	s.Equal(domain.GSTReturnDraft, ret.Status)
}

func (s *GSTServiceTestSuite) TestPrepareReturn_ReversedSaleNetsToZero() {
	ctx := context.Background()
	// A sale posted and reversed in the same period nets out in the
	// credit-signed sums, so the filing reports nothing for its code.
	s.mockBalanceRepo.On("SumTaxTotalsByCode", ctx, s.periodStart, s.periodEnd).Return([]domain.TaxCodeTotal{
		{TaxCode: domain.GSTCodeStandardRated, BaseAmount: decimal.Zero, TaxAmount: decimal.Zero},
	}, nil).Once()

	ret, err := s.service.PrepareReturn(ctx, s.periodStart, s.periodEnd, s.userID)

	s.Require().NoError(err)
	s.True(ret.StandardRatedSupplies.IsZero())
	s.True(ret.OutputTax.IsZero())
	s.True(ret.NetPayable.IsZero())
}

func (s *GSTServiceTestSuite) TestPrepareReturn_ReversalOfPriorPeriodSale() {
	ctx := context.Background()
	// Reversing a prior-period sale leaves a debit-heavy standard-rated
	// total this period. The negative figures flow through rather than
	// being counted as fresh supplies.
	s.mockBalanceRepo.On("SumTaxTotalsByCode", ctx, s.periodStart, s.periodEnd).Return([]domain.TaxCodeTotal{
		{TaxCode: domain.GSTCodeStandardRated, BaseAmount: dec("-1000"), TaxAmount: dec("-90")},
	}, nil).Once()

	ret, err := s.service.PrepareReturn(ctx, s.periodStart, s.periodEnd, s.userID)

	s.Require().NoError(err)
	s.True(ret.StandardRatedSupplies.Equal(dec("-1000")))
	s.True(ret.OutputTax.Equal(dec("-90")))
	s.True(ret.NetPayable.Equal(dec("-90")))
}

func (s *GSTServiceTestSuite) TestPrepareReturn_EmptyPeriod() {
	ctx := context.Background()
	s.mockBalanceRepo.On("SumTaxTotalsByCode", ctx, s.periodStart, s.periodEnd).Return([]domain.TaxCodeTotal{}, nil).Once()

	ret, err := s.service.PrepareReturn(ctx, s.periodStart, s.periodEnd, s.userID)

	s.Require().NoError(err)
	s.True(ret.TotalSupplies.IsZero())
	s.True(ret.NetPayable.IsZero())
}

func (s *GSTServiceTestSuite) TestSaveDraftReturn_RecomputesDerivedTotals() {
	ctx := context.Background()
	ret := domain.GSTReturn{
		PeriodStart:           s.periodStart,
		PeriodEnd:             s.periodEnd,
		StandardRatedSupplies: dec("1000"),
		ZeroRatedSupplies:     dec("500"),
		OutputTax:             dec("90"),
		InputTax:              dec("30"),
		Adjustments:           dec("-10"),
	}
	s.mockGSTRepo.On("SaveGSTReturn", ctx, mock.AnythingOfType("domain.GSTReturn")).Return(nil).Once()

	saved, err := s.service.SaveDraftReturn(ctx, ret, s.userID)

	s.Require().NoError(err)
	s.NotEmpty(saved.ReturnID)
	s.True(saved.TotalSupplies.Equal(dec("1500")))
	s.True(saved.NetPayable.Equal(dec("50")), "net payable is output minus input plus adjustments")
}

func (s *GSTServiceTestSuite) TestFinalizeReturn_PostsSettlement() {
	ctx := context.Background()
	returnID := uuid.NewString()
	draft := &domain.GSTReturn{
		ReturnID:    returnID,
		PeriodStart: s.periodStart,
		PeriodEnd:   s.periodEnd,
		OutputTax:   dec("90"),
		InputTax:    dec("36"),
		NetPayable:  dec("54"),
		Status:      domain.GSTReturnDraft,
	}
	req := dto.FinalizeGSTReturnRequest{
		SubmissionRef:  "F5-2024-Q1",
		SubmissionDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
	}
	settlementID := uuid.NewString()

	s.mockGSTRepo.On("FindGSTReturnByID", ctx, returnID).Return(draft, nil).Once()
	s.mockPeriodSvc.On("EnsureDateOpen", ctx, draft.PeriodEnd).Return(nil).Once()

	var capturedReq dto.CreateEntryRequest
	s.mockJournalSvc.On("CreateDraftEntry", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), s.userID).
		Run(func(args mock.Arguments) {
			capturedReq = args.Get(1).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: settlementID, Status: domain.Draft}, nil).Once()

	returnNo := "GST-000003"
	s.mockGSTRepo.On("FinalizeGSTReturn", ctx, returnID, mock.MatchedBy(func(fin portsrepo.GSTFinalization) bool {
		return fin.SequenceName == domain.SequenceGSTReturn &&
			fin.SubmissionRef == req.SubmissionRef &&
			fin.SubmissionDate.Equal(req.SubmissionDate) &&
			fin.SettlementEntryID != nil && *fin.SettlementEntryID == settlementID &&
			fin.EntrySequenceName == domain.SequenceJournalEntry &&
			fin.PostingDate.Equal(draft.PeriodEnd) &&
			fin.UpdatedBy == s.userID
	})).Return(&domain.GSTReturn{
		ReturnID:          returnID,
		ReturnNo:          &returnNo,
		Status:            domain.GSTReturnFinalized,
		SettlementEntryID: &settlementID,
	}, nil).Once()

	finalized, err := s.service.FinalizeReturn(ctx, returnID, req, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.GSTReturnFinalized, finalized.Status)
	s.Require().NotNil(finalized.SettlementEntryID)
	// Posting happens inside the repository's finalize transaction, never
	// as a separate call that could commit ahead of the status flip.
	s.mockJournalSvc.AssertNotCalled(s.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	s.Equal("GST_SETTLEMENT", capturedReq.SourceType)
	s.Require().Len(capturedReq.Lines, 3)
	s.Equal("2201", capturedReq.Lines[0].AccountCode)
	s.True(capturedReq.Lines[0].Debit.Equal(dec("90")), "output tax is cleared with a debit")
	s.Equal("1301", capturedReq.Lines[1].AccountCode)
	s.True(capturedReq.Lines[1].Credit.Equal(dec("36")), "input tax is cleared with a credit")
	s.Equal("2202", capturedReq.Lines[2].AccountCode)
	s.True(capturedReq.Lines[2].Credit.Equal(dec("54")), "the net lands in the clearing account")
}

func (s *GSTServiceTestSuite) TestFinalizeReturn_SettlesAdjustments() {
	ctx := context.Background()
	returnID := uuid.NewString()
	draft := &domain.GSTReturn{
		ReturnID:    returnID,
		PeriodStart: s.periodStart,
		PeriodEnd:   s.periodEnd,
		OutputTax:   dec("90"),
		InputTax:    dec("45"),
		Adjustments: dec("5"),
		NetPayable:  dec("50"),
		Status:      domain.GSTReturnDraft,
	}
	req := dto.FinalizeGSTReturnRequest{SubmissionRef: "F5-ADJ", SubmissionDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)}
	settlementID := uuid.NewString()

	s.mockGSTRepo.On("FindGSTReturnByID", ctx, returnID).Return(draft, nil).Once()
	s.mockPeriodSvc.On("EnsureDateOpen", ctx, draft.PeriodEnd).Return(nil).Once()

	var capturedReq dto.CreateEntryRequest
	s.mockJournalSvc.On("CreateDraftEntry", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), s.userID).
		Run(func(args mock.Arguments) {
			capturedReq = args.Get(1).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: settlementID, Status: domain.Draft}, nil).Once()
	s.mockGSTRepo.On("FinalizeGSTReturn", ctx, returnID, mock.AnythingOfType("repositories.GSTFinalization")).
		Return(&domain.GSTReturn{ReturnID: returnID, Status: domain.GSTReturnFinalized, SettlementEntryID: &settlementID}, nil).Once()

	_, err := s.service.FinalizeReturn(ctx, returnID, req, s.userID)

	s.Require().NoError(err)
	s.Require().Len(capturedReq.Lines, 4)
	s.Equal("2203", capturedReq.Lines[2].AccountCode)
	s.True(capturedReq.Lines[2].Debit.Equal(dec("5")), "positive adjustments add to the amount owed")
	s.Equal("2202", capturedReq.Lines[3].AccountCode)
	s.True(capturedReq.Lines[3].Credit.Equal(dec("50")), "clearing carries the full net payable")

	var debits, credits decimal.Decimal
	for _, line := range capturedReq.Lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	s.True(debits.Equal(credits), "settlement entry must balance")
}

func (s *GSTServiceTestSuite) TestFinalizeReturn_NegativeAdjustments() {
	ctx := context.Background()
	returnID := uuid.NewString()
	draft := &domain.GSTReturn{
		ReturnID:    returnID,
		PeriodStart: s.periodStart,
		PeriodEnd:   s.periodEnd,
		OutputTax:   dec("90"),
		InputTax:    dec("45"),
		Adjustments: dec("-5"),
		NetPayable:  dec("40"),
		Status:      domain.GSTReturnDraft,
	}
	req := dto.FinalizeGSTReturnRequest{SubmissionRef: "F5-ADJ-NEG", SubmissionDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)}
	settlementID := uuid.NewString()

	s.mockGSTRepo.On("FindGSTReturnByID", ctx, returnID).Return(draft, nil).Once()
	s.mockPeriodSvc.On("EnsureDateOpen", ctx, draft.PeriodEnd).Return(nil).Once()

	var capturedReq dto.CreateEntryRequest
	s.mockJournalSvc.On("CreateDraftEntry", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), s.userID).
		Run(func(args mock.Arguments) {
			capturedReq = args.Get(1).(dto.CreateEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: settlementID, Status: domain.Draft}, nil).Once()
	s.mockGSTRepo.On("FinalizeGSTReturn", ctx, returnID, mock.AnythingOfType("repositories.GSTFinalization")).
		Return(&domain.GSTReturn{ReturnID: returnID, Status: domain.GSTReturnFinalized, SettlementEntryID: &settlementID}, nil).Once()

	_, err := s.service.FinalizeReturn(ctx, returnID, req, s.userID)

	s.Require().NoError(err)
	s.Require().Len(capturedReq.Lines, 4)
	s.Equal("2203", capturedReq.Lines[2].AccountCode)
	s.True(capturedReq.Lines[2].Credit.Equal(dec("5")), "negative adjustments reduce the amount owed")
	s.True(capturedReq.Lines[3].Credit.Equal(dec("40")))
}

func (s *GSTServiceTestSuite) TestFinalizeReturn_AdjustmentsWithoutAccount() {
	ctx := context.Background()
	service := services.NewGSTService(s.mockGSTRepo, s.mockBalanceRepo, s.mockJournalSvc, s.mockPeriodSvc, config.GSTAccounts{
		OutputTaxAccount: "2201",
		InputTaxAccount:  "1301",
		ClearingAccount:  "2202",
	})
	returnID := uuid.NewString()
	s.mockGSTRepo.On("FindGSTReturnByID", ctx, returnID).Return(&domain.GSTReturn{
		ReturnID:    returnID,
		PeriodEnd:   s.periodEnd,
		OutputTax:   dec("90"),
		Adjustments: dec("5"),
		Status:      domain.GSTReturnDraft,
	}, nil).Once()

	_, err := service.FinalizeReturn(ctx, returnID, dto.FinalizeGSTReturnRequest{SubmissionRef: "X", SubmissionDate: time.Now()}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GSTServiceTestSuite) TestFinalizeReturn_NoTaxSkipsSettlement() {
	ctx := context.Background()
	returnID := uuid.NewString()
	draft := &domain.GSTReturn{
		ReturnID:    returnID,
		PeriodStart: s.periodStart,
		PeriodEnd:   s.periodEnd,
		OutputTax:   decimal.Zero,
		InputTax:    decimal.Zero,
		NetPayable:  decimal.Zero,
		Status:      domain.GSTReturnDraft,
	}
	req := dto.FinalizeGSTReturnRequest{SubmissionRef: "F5-NIL", SubmissionDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)}

	s.mockGSTRepo.On("FindGSTReturnByID", ctx, returnID).Return(draft, nil).Once()
	s.mockGSTRepo.On("FinalizeGSTReturn", ctx, returnID, mock.MatchedBy(func(fin portsrepo.GSTFinalization) bool {
		return fin.SettlementEntryID == nil && fin.SubmissionRef == req.SubmissionRef
	})).Return(&domain.GSTReturn{ReturnID: returnID, Status: domain.GSTReturnFinalized}, nil).Once()

	_, err := s.service.FinalizeReturn(ctx, returnID, req, s.userID)

	s.Require().NoError(err)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateDraftEntry", mock.Anything, mock.Anything, mock.Anything)
	s.mockPeriodSvc.AssertNotCalled(s.T(), "EnsureDateOpen", mock.Anything, mock.Anything)
}

func (s *GSTServiceTestSuite) TestFinalizeReturn_RepoFailureDiscardsSettlementDraft() {
	ctx := context.Background()
	returnID := uuid.NewString()
	draft := &domain.GSTReturn{
		ReturnID:    returnID,
		PeriodStart: s.periodStart,
		PeriodEnd:   s.periodEnd,
		OutputTax:   dec("90"),
		InputTax:    dec("36"),
		NetPayable:  dec("54"),
		Status:      domain.GSTReturnDraft,
	}
	req := dto.FinalizeGSTReturnRequest{SubmissionRef: "F5-FAIL", SubmissionDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)}
	settlementID := uuid.NewString()

	s.mockGSTRepo.On("FindGSTReturnByID", ctx, returnID).Return(draft, nil).Once()
	s.mockPeriodSvc.On("EnsureDateOpen", ctx, draft.PeriodEnd).Return(nil).Once()
	s.mockJournalSvc.On("CreateDraftEntry", ctx, mock.AnythingOfType("dto.CreateEntryRequest"), s.userID).
		Return(&domain.JournalEntry{EntryID: settlementID, Status: domain.Draft}, nil).Once()
	s.mockGSTRepo.On("FinalizeGSTReturn", ctx, returnID, mock.AnythingOfType("repositories.GSTFinalization")).
		Return(nil, apperrors.ErrAlreadyFinalized).Once()
	s.mockJournalSvc.On("DeleteDraftEntry", ctx, settlementID, s.userID).Return(nil).Once()

	_, err := s.service.FinalizeReturn(ctx, returnID, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyFinalized)
	// The finalize transaction rolled back without posting anything; the
	// orphaned settlement draft is discarded.
	s.mockJournalSvc.AssertNotCalled(s.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockJournalSvc.AssertCalled(s.T(), "DeleteDraftEntry", ctx, settlementID, s.userID)
}

func (s *GSTServiceTestSuite) TestFinalizeReturn_AlreadyFinalized() {
	ctx := context.Background()
	returnID := uuid.NewString()

	s.mockGSTRepo.On("FindGSTReturnByID", ctx, returnID).Return(&domain.GSTReturn{
		ReturnID: returnID,
		Status:   domain.GSTReturnFinalized,
	}, nil).Once()

	_, err := s.service.FinalizeReturn(ctx, returnID, dto.FinalizeGSTReturnRequest{SubmissionRef: "X", SubmissionDate: time.Now()}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyFinalized)
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func TestGSTServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GSTServiceTestSuite))
}
