package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// bearerFor returns an Authorization header value for a user of the given role.
func bearerFor(t *testing.T, userID string, userType domain.UserType) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, string(userType), testJWTSecret, time.Now(), time.Hour, "msaada-test")
	require.NoError(t, err)
	return "Bearer " + token
}

// --- Mock DonationService ---

type MockDonationService struct {
	mock.Mock
}

func (m *MockDonationService) CreateDonation(ctx context.Context, userID string, req dto.CreateDonationRequest) (*domain.DonationReceipt, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DonationReceipt), args.Error(1)
}

func (m *MockDonationService) CreateRecurringDonation(ctx context.Context, userID string, req dto.CreateRecurringDonationRequest) (*domain.RecurringDonationReceipt, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringDonationReceipt), args.Error(1)
}

func (m *MockDonationService) GetDonation(ctx context.Context, userID, donationID string) (*domain.DonationView, error) {
	args := m.Called(ctx, userID, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DonationView), args.Error(1)
}

func (m *MockDonationService) ListRecurringDonations(ctx context.Context, userID string) ([]domain.RecurringDonationView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDonationView), args.Error(1)
}

// --- Mock AuthService / TokenService ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Mock CharityService ---

type MockCharityService struct {
	mock.Mock
}

func (m *MockCharityService) ListCharities(ctx context.Context, params dto.ListCharitiesParams, viewer domain.UserType) (*dto.ListCharitiesResponse, error) {
	args := m.Called(ctx, params, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCharitiesResponse), args.Error(1)
}

func (m *MockCharityService) GetCharityDetails(ctx context.Context, charityID string) (*dto.CharityDetailResponse, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CharityDetailResponse), args.Error(1)
}

func (m *MockCharityService) ListApplications(ctx context.Context, status domain.CharityStatus) ([]domain.CharityProfile, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CharityProfile), args.Error(1)
}

func (m *MockCharityService) ReviewApplication(ctx context.Context, charityID string, action domain.ReviewAction) (*domain.CharityProfile, error) {
	args := m.Called(ctx, charityID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharityProfile), args.Error(1)
}

func (m *MockCharityService) DeleteCharity(ctx context.Context, charityID string) error {
	return m.Called(ctx, charityID).Error(0)
}

var (
	_ portssvc.DonationSvcFacade = (*MockDonationService)(nil)
	_ portssvc.AuthSvcFacade     = (*MockAuthService)(nil)
	_ portssvc.TokenSvcFacade    = (*MockTokenService)(nil)
	_ portssvc.CharitySvcFacade  = (*MockCharityService)(nil)
)
