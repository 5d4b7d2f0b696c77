package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/openledgerhq/gl_backend/internal/apperrors"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/core/services"
	"github.com/openledgerhq/gl_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1000", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.Equal(domain.DebitSide, account.NormalSide())
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "has space", Name: "Cash", AccountType: "ASSET"}

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "GOODWILL"}

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.ErrorContains(err, "already exists")
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "9999").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByCode(ctx, "9999")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestListAccountsByType_InvalidType() {
	ctx := context.Background()

	_, err := suite.service.ListAccountsByType(ctx, domain.AccountType("GOODWILL"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccountsByType")
}

func (suite *AccountServiceTestSuite) TestListActiveAccounts_EmptyNotNil() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListActiveAccounts", ctx).Return([]domain.Account{}, nil).Once()

	accounts, err := suite.service.ListActiveAccounts(ctx)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
