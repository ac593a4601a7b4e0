package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/core/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CharityServiceTestSuite struct {
	suite.Suite
	userRepo        *MockUserRepository
	charityRepo     *MockCharityRepository
	storyRepo       *MockStoryRepository
	beneficiaryRepo *MockBeneficiaryRepository
	notifier        *MockNotifier
	service         portssvc.CharitySvcFacade

	ctx     context.Context
	charity *domain.CharityProfile
}

func (suite *CharityServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.charityRepo = new(MockCharityRepository)
	suite.storyRepo = new(MockStoryRepository)
	suite.beneficiaryRepo = new(MockBeneficiaryRepository)
	suite.notifier = new(MockNotifier)
	suite.ctx = context.Background()
	suite.charity = &domain.CharityProfile{
		CharityID: testCharityID,
		UserID:    "user-2",
		Name:      "Hope Kids",
		Status:    domain.CharityPending,
	}

	repos := portsrepo.RepositoryProvider{
		UserRepo:        suite.userRepo,
		CharityRepo:     suite.charityRepo,
		StoryRepo:       suite.storyRepo,
		BeneficiaryRepo: suite.beneficiaryRepo,
	}
	suite.service = services.NewCharityService(repos, suite.notifier)
}

func statusIs(want *domain.CharityStatus) interface{} {
	return mock.MatchedBy(func(f portsrepo.CharityFilter) bool {
		if want == nil || f.Status == nil {
			return want == nil && f.Status == nil
		}
		return *want == *f.Status
	})
}

func (suite *CharityServiceTestSuite) TestListCharities_NonAdminOnlySeesApproved() {
	approved := domain.CharityApproved
	summaries := []domain.CharitySummary{{
		CharityProfile: domain.CharityProfile{CharityID: testCharityID, Name: "Hope Kids", Status: approved},
		TotalDonations: decimal.RequireFromString("1500.50"),
		DonorCount:     3,
	}}
	suite.charityRepo.On("ListCharities", suite.ctx, statusIs(&approved)).Return(summaries, 21, nil).Twice()

	for _, viewer := range []domain.UserType{"", domain.UserTypeDonor} {
		resp, err := suite.service.ListCharities(suite.ctx, dto.ListCharitiesParams{Page: 2, PerPage: 10, Status: "pending"}, viewer)

		suite.Require().NoError(err)
		suite.Len(resp.Charities, 1)
		suite.Equal(3, resp.Charities[0].DonorCount)
		suite.Equal(2, resp.Pagination.Page)
		suite.Equal(21, resp.Pagination.Total)
		suite.Equal(3, resp.Pagination.Pages)
	}
	suite.charityRepo.AssertExpectations(suite.T())
}

func (suite *CharityServiceTestSuite) TestListCharities_AdminStatusFilter() {
	pending := domain.CharityPending
	suite.charityRepo.On("ListCharities", suite.ctx, statusIs(&pending)).Return([]domain.CharitySummary{}, 0, nil).Once()
	suite.charityRepo.On("ListCharities", suite.ctx, statusIs(nil)).Return([]domain.CharitySummary{}, 0, nil).Once()

	_, err := suite.service.ListCharities(suite.ctx, dto.ListCharitiesParams{Status: "pending"}, domain.UserTypeAdmin)
	suite.Require().NoError(err)
	_, err = suite.service.ListCharities(suite.ctx, dto.ListCharitiesParams{}, domain.UserTypeAdmin)
	suite.Require().NoError(err)

	_, err = suite.service.ListCharities(suite.ctx, dto.ListCharitiesParams{Status: "archived"}, domain.UserTypeAdmin)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.charityRepo.AssertExpectations(suite.T())
}

func (suite *CharityServiceTestSuite) TestGetCharityDetails() {
	suite.charityRepo.On("FindCharityByID", suite.ctx, testCharityID).Return(suite.charity, nil).Once()
	suite.storyRepo.On("ListStoriesByCharity", suite.ctx, testCharityID).Return([]domain.Story{{StoryID: "s-1", Title: "New classroom"}}, nil).Once()
	suite.beneficiaryRepo.On("ListBeneficiariesByCharity", suite.ctx, testCharityID).Return([]domain.Beneficiary{}, nil).Once()

	resp, err := suite.service.GetCharityDetails(suite.ctx, testCharityID)

	suite.Require().NoError(err)
	suite.Equal("Hope Kids", resp.Name)
	suite.Len(resp.Stories, 1)
	suite.Empty(resp.Beneficiaries)
}

func (suite *CharityServiceTestSuite) TestGetCharityDetails_NotFound() {
	suite.charityRepo.On("FindCharityByID", suite.ctx, testMissingCharityID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCharityDetails(suite.ctx, testMissingCharityID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.EqualError(err, "Charity not found")
}

func (suite *CharityServiceTestSuite) TestGetCharityDetails_MalformedIDIsNotFound() {
	_, err := suite.service.GetCharityDetails(suite.ctx, "42")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.EqualError(err, "Charity not found")
	suite.charityRepo.AssertNotCalled(suite.T(), "FindCharityByID", mock.Anything, mock.Anything)
}

func (suite *CharityServiceTestSuite) TestReviewApplication_ApproveNotifiesOwner() {
	suite.charityRepo.On("FindCharityByID", suite.ctx, testCharityID).Return(suite.charity, nil).Once()
	suite.userRepo.On("FindUserByID", suite.ctx, "user-2").Return(&domain.User{UserID: "user-2", Email: "hope@example.com"}, nil).Once()
	suite.charityRepo.On("UpdateCharityStatus", suite.ctx, testCharityID, domain.CharityApproved).Return(nil).Once()
	suite.notifier.On("Send", suite.ctx, mock.MatchedBy(func(n clients.Notification) bool {
		return n.To == "hope@example.com" && strings.Contains(n.Body, "approved")
	})).Return(nil).Once()

	charity, err := suite.service.ReviewApplication(suite.ctx, testCharityID, domain.ReviewApprove)

	suite.Require().NoError(err)
	suite.Equal(domain.CharityApproved, charity.Status)
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *CharityServiceTestSuite) TestReviewApplication_NotificationFailureFails() {
	suite.charityRepo.On("FindCharityByID", suite.ctx, testCharityID).Return(suite.charity, nil).Once()
	suite.userRepo.On("FindUserByID", suite.ctx, "user-2").Return(&domain.User{UserID: "user-2", Email: "hope@example.com"}, nil).Once()
	suite.charityRepo.On("UpdateCharityStatus", suite.ctx, testCharityID, domain.CharityRejected).Return(nil).Once()
	suite.notifier.On("Send", suite.ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := suite.service.ReviewApplication(suite.ctx, testCharityID, domain.ReviewReject)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *CharityServiceTestSuite) TestReviewApplication_InvalidAction() {
	_, err := suite.service.ReviewApplication(suite.ctx, testCharityID, domain.ReviewAction("maybe"))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.charityRepo.AssertNotCalled(suite.T(), "FindCharityByID", mock.Anything, mock.Anything)
}

func (suite *CharityServiceTestSuite) TestDeleteCharity() {
	conflict := apperrors.Newf(apperrors.ErrConflict, "Cannot delete a charity that has received donations")
	suite.charityRepo.On("FindCharityByID", suite.ctx, testCharityID).Return(suite.charity, nil).Twice()
	suite.charityRepo.On("DeleteCharity", suite.ctx, testCharityID).Return(conflict).Once()
	suite.charityRepo.On("DeleteCharity", suite.ctx, testCharityID).Return(nil).Once()

	err := suite.service.DeleteCharity(suite.ctx, testCharityID)
	suite.True(errors.Is(err, apperrors.ErrConflict))

	suite.NoError(suite.service.DeleteCharity(suite.ctx, testCharityID))
}

func TestCharityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CharityServiceTestSuite))
}
