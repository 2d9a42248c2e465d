package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/core/services"
	"github.com/quillbooks/quillbooks/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)
	s.userID = uuid.NewString()
}

func strPtr(v string) *string { return &v }

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1110",
		Name:        "Cash at Bank",
		AccountType: domain.Asset,
		Category:    "Current Asset",
	}
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal("1110", account.Code)
	s.True(account.IsActive)
	s.Equal(domain.DebitBalance, account.AccountType.NormalBalance())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_SelfParentRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1110",
		Name:        "Cash at Bank",
		AccountType: domain.Asset,
		ParentCode:  strPtr("1110"),
	}

	_, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAccountCycle)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "4100").Return(&domain.Account{
		Code:        "4100",
		AccountType: domain.Revenue,
		IsActive:    true,
	}, nil).Once()

	_, err := s.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code:        "1110",
		Name:        "Cash at Bank",
		AccountType: domain.Asset,
		ParentCode:  strPtr("4100"),
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_CycleRejected() {
	ctx := context.Background()
	// 1000 is currently the parent of 1100; re-parenting 1000 under 1100
	// would close the loop.
	s.mockAccountRepo.On("FindAccountByCode", ctx, "1000").Return(&domain.Account{
		Code:        "1000",
		AccountType: domain.Asset,
		IsActive:    true,
	}, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "1100").Return(&domain.Account{
		Code:        "1100",
		AccountType: domain.Asset,
		ParentCode:  strPtr("1000"),
		IsActive:    true,
	}, nil).Once()

	_, err := s.service.UpdateAccount(ctx, "1000", dto.UpdateAccountRequest{ParentCode: strPtr("1100")}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAccountCycle)
	s.mockAccountRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_ReparentOK() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "1110").Return(&domain.Account{
		Code:        "1110",
		AccountType: domain.Asset,
		IsActive:    true,
	}, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "1100").Return(&domain.Account{
		Code:        "1100",
		AccountType: domain.Asset,
		IsActive:    true,
	}, nil).Once()
	s.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := s.service.UpdateAccount(ctx, "1110", dto.UpdateAccountRequest{ParentCode: strPtr("1100")}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(updated.ParentCode)
	s.Equal("1100", *updated.ParentCode)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "1110").Return(&domain.Account{
		Code:     "1110",
		IsActive: true,
	}, nil).Once()
	s.mockAccountRepo.On("SetAccountActive", ctx, "1110", false, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, "1110", s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestBuildChildrenIndex() {
	ctx := context.Background()
	s.mockAccountRepo.On("ListAccounts", mock.Anything, false).Return([]domain.Account{
		{Code: "1000", AccountType: domain.Asset},
		{Code: "1100", AccountType: domain.Asset, ParentCode: strPtr("1000")},
		{Code: "1200", AccountType: domain.Asset, ParentCode: strPtr("1000")},
		{Code: "1110", AccountType: domain.Asset, ParentCode: strPtr("1100")},
		{Code: "4100", AccountType: domain.Revenue},
	}, nil).Once()

	index, err := s.service.BuildChildrenIndex(ctx)

	s.Require().NoError(err)
	s.ElementsMatch([]string{"1100", "1200"}, index["1000"])
	s.ElementsMatch([]string{"1110"}, index["1100"])
	s.Empty(index["4100"])
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
