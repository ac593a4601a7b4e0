package services_test

import (
	"context"
	"io"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Repositories ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// CreateAccount runs beforeCommit like the real repository, so notifier failures surface.
func (m *MockUserRepository) CreateAccount(ctx context.Context, account portsrepo.NewAccount, beforeCommit portsrepo.BeforeCommitFunc) error {
	args := m.Called(ctx, account)
	if err := args.Error(0); err != nil {
		return err
	}
	if beforeCommit != nil {
		return beforeCommit(ctx)
	}
	return nil
}

func (m *MockUserRepository) UpdateVerificationCode(ctx context.Context, userID string, code *string, updatedAt time.Time, beforeCommit portsrepo.BeforeCommitFunc) error {
	args := m.Called(ctx, userID, code, updatedAt)
	if err := args.Error(0); err != nil {
		return err
	}
	if beforeCommit != nil {
		return beforeCommit(ctx)
	}
	return nil
}

func (m *MockUserRepository) UpdateResetToken(ctx context.Context, userID string, token string, expiry time.Time, beforeCommit portsrepo.BeforeCommitFunc) error {
	args := m.Called(ctx, userID, token, expiry)
	if err := args.Error(0); err != nil {
		return err
	}
	if beforeCommit != nil {
		return beforeCommit(ctx)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, passwordHash, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) FindDonorByUserID(ctx context.Context, userID string) (*domain.DonorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DonorProfile), args.Error(1)
}

func (m *MockUserRepository) UpdateDonorProfile(ctx context.Context, profile domain.DonorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockCharityRepository struct {
	mock.Mock
}

func (m *MockCharityRepository) FindCharityByID(ctx context.Context, charityID string) (*domain.CharityProfile, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharityProfile), args.Error(1)
}

func (m *MockCharityRepository) FindCharityByUserID(ctx context.Context, userID string) (*domain.CharityProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharityProfile), args.Error(1)
}

func (m *MockCharityRepository) ListCharities(ctx context.Context, filter portsrepo.CharityFilter) ([]domain.CharitySummary, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CharitySummary), args.Int(1), args.Error(2)
}

func (m *MockCharityRepository) ListCharitiesByStatus(ctx context.Context, status domain.CharityStatus) ([]domain.CharityProfile, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CharityProfile), args.Error(1)
}

func (m *MockCharityRepository) UpdateCharityStatus(ctx context.Context, charityID string, status domain.CharityStatus, beforeCommit portsrepo.BeforeCommitFunc) error {
	args := m.Called(ctx, charityID, status)
	if err := args.Error(0); err != nil {
		return err
	}
	if beforeCommit != nil {
		return beforeCommit(ctx)
	}
	return nil
}

func (m *MockCharityRepository) UpdateCharityProfile(ctx context.Context, profile domain.CharityProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCharityRepository) DeleteCharity(ctx context.Context, charityID string) error {
	args := m.Called(ctx, charityID)
	return args.Error(0)
}

type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) SaveRecurringDonation(ctx context.Context, recurring domain.RecurringDonation) error {
	args := m.Called(ctx, recurring)
	return args.Error(0)
}

func (m *MockDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.DonationView, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DonationView), args.Error(1)
}

func (m *MockDonationRepository) ListDonationsByDonor(ctx context.Context, donorID string) ([]domain.DonationView, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DonationView), args.Error(1)
}

func (m *MockDonationRepository) ListDonationsByCharity(ctx context.Context, charityID string) ([]domain.DonationView, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DonationView), args.Error(1)
}

func (m *MockDonationRepository) ListRecurringDonationsByDonor(ctx context.Context, donorID string) ([]domain.RecurringDonationView, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDonationView), args.Error(1)
}

type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) SaveStory(ctx context.Context, story domain.Story) error {
	return m.Called(ctx, story).Error(0)
}

func (m *MockStoryRepository) ListStoriesByCharity(ctx context.Context, charityID string) ([]domain.Story, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Story), args.Error(1)
}

func (m *MockStoryRepository) DeleteStory(ctx context.Context, charityID, storyID string) error {
	return m.Called(ctx, charityID, storyID).Error(0)
}

type MockBeneficiaryRepository struct {
	mock.Mock
}

func (m *MockBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	return m.Called(ctx, beneficiary).Error(0)
}

func (m *MockBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ListBeneficiariesByCharity(ctx context.Context, charityID string) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	return m.Called(ctx, beneficiary).Error(0)
}

func (m *MockBeneficiaryRepository) DeleteBeneficiary(ctx context.Context, charityID, beneficiaryID string) error {
	return m.Called(ctx, charityID, beneficiaryID).Error(0)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) SaveInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) FindInventoryItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListInventoryByCharity(ctx context.Context, charityID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, charityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) MarkDistributed(ctx context.Context, itemID, beneficiaryID string, distributedAt time.Time) error {
	return m.Called(ctx, itemID, beneficiaryID, distributedAt).Error(0)
}

// --- Outbound clients ---

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) InitiatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentAck, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAck), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, n clients.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

type MockEventTracker struct {
	mock.Mock
}

func (m *MockEventTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

var (
	_ portsrepo.UserRepositoryFacade     = (*MockUserRepository)(nil)
	_ portsrepo.CharityRepositoryFacade  = (*MockCharityRepository)(nil)
	_ portsrepo.DonationRepositoryFacade = (*MockDonationRepository)(nil)
	_ portsrepo.StoryRepository          = (*MockStoryRepository)(nil)
	_ portsrepo.BeneficiaryRepository    = (*MockBeneficiaryRepository)(nil)
	_ portsrepo.InventoryRepository      = (*MockInventoryRepository)(nil)
	_ clients.PaymentGateway             = (*MockPaymentGateway)(nil)
	_ clients.Notifier                   = (*MockNotifier)(nil)
	_ clients.ImageStore                 = (*MockImageStore)(nil)
	_ clients.EventTracker               = (*MockEventTracker)(nil)
)

// Row ids are UUIDs; lookups reject anything else before reaching a repository.
const (
	testCharityID            = "0b6c1f8e-3d2a-4c5b-9e7f-1a2b3c4d5e6f"
	testMissingCharityID     = "9f8e7d6c-5b4a-4321-8fed-cba987654321"
	testDonationID           = "5a1d2c3b-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	testOtherDonationID      = "6b2e3d4c-5f6a-4b7c-9d8e-0f1a2b3c4d5e"
	testBeneficiaryID        = "1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"
	testForeignBeneficiaryID = "2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f6a"
	testOtherBeneficiaryID   = "3e4f5a6b-7c8d-4e9f-8a1b-2c3d4e5f6a7b"
	testItemID               = "4f5a6b7c-8d9e-4f0a-9b2c-3d4e5f6a7b8c"
	testSecondItemID         = "7a8b9c0d-1e2f-4a3b-8c5d-6e7f8a9b0c1d"
	testDistributedItemID    = "8b9c0d1e-2f3a-4b4c-9d6e-7f8a9b0c1d2e"
	testForeignItemID        = "9c0d1e2f-3a4b-4c5d-8e7f-8a9b0c1d2e3f"
)
