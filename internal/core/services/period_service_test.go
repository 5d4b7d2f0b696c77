package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openledgerhq/gl_backend/internal/apperrors"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/core/services"
	"github.com/openledgerhq/gl_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockPublisher  *MockEventPublisher
	service        portssvc.PeriodSvcFacade
	userID         string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockPublisher)
	suite.userID = uuid.NewString()
}

func (suite *PeriodServiceTestSuite) validRequest() dto.CreatePeriodRequest {
	return dto.CreatePeriodRequest{
		FiscalYear: 2025,
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-31",
	}
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Success() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockPeriodRepo.On("HasOverlappingPeriod", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(nil).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(period)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Equal(2025, period.FiscalYear)
	suite.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), period.StartDate)
	suite.Equal(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), period.EndDate)
	suite.Nil(period.ClosedAt)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_StartNotBeforeEnd() {
	ctx := context.Background()
	req := suite.validRequest()
	req.StartDate = "2025-01-31"
	req.EndDate = "2025-01-31"

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(period)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod")
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_InvalidDate() {
	ctx := context.Background()
	req := suite.validRequest()
	req.StartDate = "01/01/2025"

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(period)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriod_Overlap() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockPeriodRepo.On("HasOverlappingPeriod", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	period, err := suite.service.CreatePeriod(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "overlaps")
	suite.Nil(period)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod")
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := &domain.FiscalPeriod{PeriodID: periodID, FiscalYear: 2025, Status: domain.PeriodClosed}

	suite.mockPeriodRepo.On("ClosePeriod", ctx, periodID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, periodID).Return(period, nil).Once()
	suite.mockPublisher.On("Publish", ctx, domain.EventFiscalPeriodClosed, mock.AnythingOfType("domain.FiscalPeriodClosedEvent")).
		Return(nil).Once()

	err := suite.service.ClosePeriod(ctx, periodID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockPeriodRepo.On("ClosePeriod", ctx, periodID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	err := suite.service.ClosePeriod(ctx, periodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish")
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_NotFound() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockPeriodRepo.On("ClosePeriod", ctx, periodID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.ClosePeriod(ctx, periodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish")
}

func (suite *PeriodServiceTestSuite) TestGetCurrentPeriod_QueriesByCalendarDate() {
	ctx := context.Background()
	expected := &domain.FiscalPeriod{PeriodID: uuid.NewString(), FiscalYear: 2025, Status: domain.PeriodOpen}

	// The repository compares against DATE columns, so the lookup must carry
	// a midnight UTC date. A wall-clock timestamp would miss the period on
	// its final day, where end_date >= now fails for any time after midnight.
	suite.mockPeriodRepo.On("FindOpenPeriodContaining", ctx, mock.MatchedBy(func(d time.Time) bool {
		h, m, s := d.Clock()
		return h == 0 && m == 0 && s == 0 && d.Nanosecond() == 0 && d.Location() == time.UTC
	})).Return(expected, nil).Once()

	period, err := suite.service.GetCurrentPeriod(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, period)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestGetCurrentPeriod_Gap() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindOpenPeriodContaining", ctx, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	period, err := suite.service.GetCurrentPeriod(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(period)
}

func (suite *PeriodServiceTestSuite) TestGetPeriodsByYear_EmptyNotNil() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("ListPeriodsByYear", ctx, 2024).Return([]domain.FiscalPeriod{}, nil).Once()

	periods, err := suite.service.GetPeriodsByYear(ctx, 2024)

	suite.Require().NoError(err)
	suite.NotNil(periods)
	suite.Empty(periods)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
