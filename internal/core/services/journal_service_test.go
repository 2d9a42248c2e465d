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
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/core/services"
	"github.com/quillbooks/quillbooks/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockTaxRepo     *MockTaxCodeRepository
	mockPeriodSvc   *MockPeriodService
	service         portssvc.JournalSvcFacade

	userID       string
	cashAccount  domain.Account
	salesAccount domain.Account
	gstAccount   domain.Account
	entryDate    time.Time
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockTaxRepo = new(MockTaxCodeRepository)
	s.mockPeriodSvc = new(MockPeriodService)

	accountSvc := services.NewAccountService(s.mockAccountRepo)
	taxCodeSvc := services.NewTaxCodeService(s.mockTaxRepo)
	s.service = services.NewJournalService(s.mockJournalRepo, accountSvc, s.mockPeriodSvc, taxCodeSvc, "SGD", 2)

	s.userID = uuid.NewString()
	s.entryDate = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	s.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1110",
		Name:        "Cash at Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	s.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4100",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	s.gstAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "2201",
		Name:        "GST Output Tax",
		AccountType: domain.Liability,
		IsActive:    true,
	}
}

func (s *JournalServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.Code] = acc
	}
	s.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()
}

func (s *JournalServiceTestSuite) TestCreateDraftEntry_Success() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   s.entryDate,
		Description: "Cash sale",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: s.cashAccount.Code, Debit: decimal.NewFromInt(1000)},
			{AccountCode: s.salesAccount.Code, Credit: decimal.NewFromInt(1000)},
		},
	}

	s.expectAccounts(s.cashAccount, s.salesAccount)
	s.mockJournalRepo.On("SaveDraftEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := s.service.CreateDraftEntry(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(domain.Draft, entry.Status)
	s.Nil(entry.EntryNo) // numbers are consumed at posting time only
	s.Equal("SGD", entry.CurrencyCode)
	s.Len(entry.Lines, 2)
	s.Equal(1, entry.Lines[0].LineNo)
	s.Equal(2, entry.Lines[1].LineNo)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateDraftEntry_SnapshotsTaxRate() {
	ctx := context.Background()
	taxCode := domain.GSTCodeStandardRated
	req := dto.CreateEntryRequest{
		EntryDate:   s.entryDate,
		Description: "Cash sale with GST",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: s.cashAccount.Code, Debit: decimal.NewFromInt(1090)},
			{AccountCode: s.salesAccount.Code, Credit: decimal.NewFromInt(1000), TaxCode: &taxCode},
			{AccountCode: s.gstAccount.Code, Credit: decimal.NewFromInt(90)},
		},
	}

	s.expectAccounts(s.cashAccount, s.salesAccount, s.gstAccount)
	s.mockTaxRepo.On("FindTaxCodeByCode", ctx, taxCode).Return(&domain.TaxCode{
		Code:     taxCode,
		TaxType:  domain.TaxTypeGST,
		Rate:     decimal.NewFromInt(9),
		IsActive: true,
	}, nil).Once()
	s.mockJournalRepo.On("SaveDraftEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := s.service.CreateDraftEntry(ctx, req, s.userID)

	s.Require().NoError(err)
	taxedLine := entry.Lines[1]
	s.True(taxedLine.TaxRate.Equal(decimal.NewFromInt(9)), "rate should be snapshotted, got %s", taxedLine.TaxRate)
	s.True(taxedLine.TaxAmount.Equal(decimal.NewFromInt(90)), "9%% of 1000 should be 90, got %s", taxedLine.TaxAmount)
}

func (s *JournalServiceTestSuite) TestCreateDraftEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   s.entryDate,
		Description: "Does not balance",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: s.cashAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: s.salesAccount.Code, Credit: decimal.NewFromInt(90)},
		},
	}

	s.expectAccounts(s.cashAccount, s.salesAccount)

	_, err := s.service.CreateDraftEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.True(apperrors.IsUnbalanced(err))
	var ub *apperrors.UnbalancedError
	s.Require().ErrorAs(err, &ub)
	s.True(ub.TotalDebits.Equal(decimal.NewFromInt(100)))
	s.True(ub.TotalCredits.Equal(decimal.NewFromInt(90)))
	s.True(ub.Delta().Equal(decimal.NewFromInt(10)))
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateDraftEntry_BothSidesSet() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   s.entryDate,
		Description: "Two-sided line",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: s.cashAccount.Code, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
			{AccountCode: s.salesAccount.Code, Credit: decimal.NewFromInt(50)},
		},
	}

	s.expectAccounts(s.cashAccount, s.salesAccount)

	_, err := s.service.CreateDraftEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrOneSidedLine)
}

func (s *JournalServiceTestSuite) TestCreateDraftEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := s.salesAccount
	inactive.IsActive = false
	req := dto.CreateEntryRequest{
		EntryDate:   s.entryDate,
		Description: "Inactive account",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: s.cashAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: inactive.Code, Credit: decimal.NewFromInt(100)},
		},
	}

	s.expectAccounts(s.cashAccount, inactive)

	_, err := s.service.CreateDraftEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInactiveAccount)
}

func (s *JournalServiceTestSuite) TestCreateDraftEntry_PrecisionViolation() {
	ctx := context.Background()
	amount := decimal.RequireFromString("100.005")
	req := dto.CreateEntryRequest{
		EntryDate:   s.entryDate,
		Description: "Too many decimals",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: s.cashAccount.Code, Debit: amount},
			{AccountCode: s.salesAccount.Code, Credit: amount},
		},
	}

	s.expectAccounts(s.cashAccount, s.salesAccount)

	_, err := s.service.CreateDraftEntry(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPrecisionMismatch)
}

func (s *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postingDate := s.entryDate
	entryNo := "JE-000042"

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Draft,
	}, nil).Once()
	s.mockPeriodSvc.On("EnsureDateOpen", ctx, postingDate).Return(nil).Once()
	s.mockJournalRepo.On("PostEntry", ctx, entryID, domain.SequenceJournalEntry, postingDate, s.userID, mock.AnythingOfType("time.Time")).Return(&domain.JournalEntry{
		EntryID: entryID,
		EntryNo: &entryNo,
		Status:  domain.Posted,
	}, nil).Once()

	posted, err := s.service.PostEntry(ctx, entryID, s.userID, postingDate)

	s.Require().NoError(err)
	s.Equal(domain.Posted, posted.Status)
	s.Require().NotNil(posted.EntryNo)
	s.Equal(entryNo, *posted.EntryNo)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostEntry_ClosedPeriodConsumesNoNumber() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postingDate := s.entryDate

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Draft,
	}, nil).Once()
	s.mockPeriodSvc.On("EnsureDateOpen", ctx, postingDate).Return(apperrors.ErrPeriodClosed).Once()

	_, err := s.service.PostEntry(ctx, entryID, s.userID, postingDate)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPeriodClosed)
	// The period check runs first, so the posting transaction (and with it
	// the sequence) is never touched.
	s.mockJournalRepo.AssertNotCalled(s.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Posted,
	}, nil).Once()

	_, err := s.service.PostEntry(ctx, entryID, s.userID, s.entryDate)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrEntryNotEditable)
	s.mockPeriodSvc.AssertNotCalled(s.T(), "EnsureDateOpen", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseEntry_SwapsSides() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entryNo := "JE-000007"
	reversalDate := s.entryDate.AddDate(0, 0, 10)

	taxCode := "SR"
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 1, AccountCode: s.cashAccount.Code, Debit: decimal.NewFromInt(250), Credit: decimal.Zero},
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 2, AccountCode: s.salesAccount.Code, Debit: decimal.Zero, Credit: decimal.NewFromInt(250), TaxCode: &taxCode, TaxRate: decimal.NewFromInt(9), TaxAmount: decimal.RequireFromString("22.50")},
	}

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		EntryNo: &entryNo,
		Status:  domain.Posted,
	}, nil).Once()
	s.mockPeriodSvc.On("EnsureDateOpen", ctx, reversalDate).Return(nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()

	var capturedLines []domain.JournalLine
	s.mockJournalRepo.On("SaveReversalEntry", ctx, entryID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), domain.SequenceJournalEntry).
		Run(func(args mock.Arguments) {
			capturedLines = args.Get(3).([]domain.JournalLine)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted, OriginalEntryID: &entryID}, nil).Once()

	reversal, err := s.service.ReverseEntry(ctx, entryID, s.userID, reversalDate, "")

	s.Require().NoError(err)
	s.Require().NotNil(reversal)
	s.Require().Len(capturedLines, 2)

	// Sides swap line for line so the pair nets to zero per account.
	s.True(capturedLines[0].Credit.Equal(originalLines[0].Debit))
	s.True(capturedLines[0].Debit.Equal(originalLines[0].Credit))
	s.True(capturedLines[1].Debit.Equal(originalLines[1].Credit))
	s.True(capturedLines[1].Credit.Equal(originalLines[1].Debit))
	for i := range capturedLines {
		net := originalLines[i].Debit.Sub(originalLines[i].Credit).Add(capturedLines[i].Debit.Sub(capturedLines[i].Credit))
		s.True(net.IsZero(), "account %s should net to zero, got %s", originalLines[i].AccountCode, net)
	}

	// Tax metadata carries over unchanged; with the sides swapped the pair
	// also nets to zero in side-aware tax aggregations.
	s.Require().NotNil(capturedLines[1].TaxCode)
	s.Equal(taxCode, *capturedLines[1].TaxCode)
	s.True(capturedLines[1].TaxRate.Equal(originalLines[1].TaxRate))
	s.True(capturedLines[1].TaxAmount.Equal(originalLines[1].TaxAmount))
}

func (s *JournalServiceTestSuite) TestReverseEntry_DateBeforeOriginal() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID:   entryID,
		EntryDate: s.entryDate,
		Status:    domain.Posted,
	}, nil).Once()

	_, err := s.service.ReverseEntry(ctx, entryID, s.userID, s.entryDate.AddDate(0, 0, -1), "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockPeriodSvc.AssertNotCalled(s.T(), "EnsureDateOpen", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Reversed,
	}, nil).Once()

	_, err := s.service.ReverseEntry(ctx, entryID, s.userID, s.entryDate, "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyReversed)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseEntry_DraftNotReversible() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Draft,
	}, nil).Once()

	_, err := s.service.ReverseEntry(ctx, entryID, s.userID, s.entryDate, "")

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrNotPosted)
}

func (s *JournalServiceTestSuite) TestUpdateDraftEntry_PostedIsImmutable() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Posted,
	}, nil).Once()

	_, err := s.service.UpdateDraftEntry(ctx, entryID, dto.CreateEntryRequest{}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrEntryNotEditable)
	s.mockJournalRepo.AssertNotCalled(s.T(), "ReplaceDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestDeleteDraftEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Draft,
	}, nil).Once()
	s.mockJournalRepo.On("DeleteDraftEntry", ctx, entryID).Return(nil).Once()

	err := s.service.DeleteDraftEntry(ctx, entryID, s.userID)

	s.Require().NoError(err)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestDeleteDraftEntry_PostedNotDeletable() {
	ctx := context.Background()
	entryID := uuid.NewString()

	s.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(&domain.JournalEntry{
		EntryID: entryID,
		Status:  domain.Posted,
	}, nil).Once()

	err := s.service.DeleteDraftEntry(ctx, entryID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrEntryNotEditable)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
