package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// donationService records donations and pushes the payment prompt to the donor's phone.
//
// A donation is persisted as pending before the gateway is called and is kept whatever the
// gateway answers. Payment confirmation is out of scope, so records stay pending.
type donationService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryFacade
	charityRepo  portsrepo.CharityReader
	donationRepo portsrepo.DonationRepositoryFacade
	gateway      clients.PaymentGateway
}

// NewDonationService creates a new donation service.
func NewDonationService(
	userRepo portsrepo.UserRepositoryFacade,
	charityRepo portsrepo.CharityReader,
	donationRepo portsrepo.DonationRepositoryFacade,
	gateway clients.PaymentGateway,
	options ...ServiceOption,
) portssvc.DonationSvcFacade {
	return &donationService{
		BaseService:  newBaseService(options...),
		userRepo:     userRepo,
		charityRepo:  charityRepo,
		donationRepo: donationRepo,
		gateway:      gateway,
	}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

// donationIntake is the validated part of a donation request shared by both kinds.
type donationIntake struct {
	donor   *domain.DonorProfile
	charity *domain.CharityProfile
	amount  decimal.Decimal
	phone   string
}

func (s *donationService) resolveDonor(ctx context.Context, userID string) (*domain.DonorProfile, error) {
	donor, err := s.userRepo.FindDonorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrForbidden, "Only donors can donate")
		}
		return nil, fmt.Errorf("failed to find donor: %w", err)
	}
	return donor, nil
}

// prepare resolves the donor and charity and validates the amount and phone number.
// Nothing is persisted if it fails.
func (s *donationService) prepare(ctx context.Context, userID, charityID string, amount *decimal.Decimal) (*donationIntake, error) {
	donor, err := s.resolveDonor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !validID(charityID) {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Charity not found")
	}
	charity, err := s.charityRepo.FindCharityByID(ctx, charityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "Charity not found")
		}
		return nil, fmt.Errorf("failed to find charity: %w", err)
	}

	if amount == nil {
		return nil, apperrors.Newf(apperrors.ErrValidation, "amount required")
	}
	normalized, err := domain.NormalizeAmount(*amount)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrValidation, "%s", err.Error())
	}

	phone, err := utils.NormalizeMSISDN(donor.Phone)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Donor phone number is missing or invalid")
	}

	return &donationIntake{donor: donor, charity: charity, amount: normalized, phone: phone}, nil
}

// initiatePayment sends the STK push for a saved record. now is the instant the record was
// created with, so the push timestamp and the stored dates agree.
func (s *donationService) initiatePayment(ctx context.Context, in *donationIntake, recordID, description string, now time.Time) (*domain.PaymentAck, error) {
	ack, err := s.gateway.InitiatePayment(ctx, domain.PaymentRequest{
		Amount:           in.amount,
		PhoneNumber:      in.phone,
		AccountReference: fmt.Sprintf("Donation %s", recordID),
		Description:      description,
		Timestamp:        now,
	})
	if err != nil {
		s.LogError(ctx, err, "Payment initiation failed", "record_id", recordID, "charity_id", in.charity.CharityID)
		s.Track(in.donor.UserID, "donation_payment_failed", map[string]any{
			"record_id":  recordID,
			"charity_id": in.charity.CharityID,
		})
		return nil, err
	}

	s.LogInfo(ctx, "Payment prompt sent", "record_id", recordID, "checkout_request_id", ack.CheckoutRequestID)
	s.Track(in.donor.UserID, "donation_payment_initiated", map[string]any{
		"record_id":  recordID,
		"charity_id": in.charity.CharityID,
		"amount":     in.amount.StringFixed(2),
	})
	return ack, nil
}

// CreateDonation saves a pending donation and requests an STK push for it.
func (s *donationService) CreateDonation(ctx context.Context, userID string, req dto.CreateDonationRequest) (*domain.DonationReceipt, error) {
	in, err := s.prepare(ctx, userID, req.CharityID, req.Amount)
	if err != nil {
		return nil, err
	}
	donationType, ok := domain.ParseDonationType(req.DonationType)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Invalid donation type")
	}

	now := s.Now()
	donation := domain.Donation{
		DonationID:    uuid.NewString(),
		DonorID:       in.donor.DonorID,
		CharityID:     in.charity.CharityID,
		Amount:        in.amount,
		DonationType:  donationType,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
	}
	if err := s.donationRepo.SaveDonation(ctx, donation); err != nil {
		s.LogError(ctx, err, "Failed to save donation", "donor_id", in.donor.DonorID)
		return nil, fmt.Errorf("failed to save donation: %w", err)
	}

	receipt := &domain.DonationReceipt{Donation: donation}
	ack, err := s.initiatePayment(ctx, in, donation.DonationID, fmt.Sprintf("Donation to %s", in.charity.Name), now)
	if err != nil {
		return receipt, err
	}
	receipt.Ack = ack
	return receipt, nil
}

// CreateRecurringDonation saves an active recurring donation and requests an STK push for
// its first installment.
func (s *donationService) CreateRecurringDonation(ctx context.Context, userID string, req dto.CreateRecurringDonationRequest) (*domain.RecurringDonationReceipt, error) {
	in, err := s.prepare(ctx, userID, req.CharityID, req.Amount)
	if err != nil {
		return nil, err
	}
	frequency, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrValidation, "%s", err.Error())
	}

	now := s.Now()
	next, err := frequency.NextDate(now)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrValidation, "%s", err.Error())
	}

	recurring := domain.RecurringDonation{
		RecurringDonationID: uuid.NewString(),
		DonorID:             in.donor.DonorID,
		CharityID:           in.charity.CharityID,
		Amount:              in.amount,
		Frequency:           frequency,
		NextDonationDate:    next,
		IsActive:            true,
		CreatedAt:           now,
	}
	if err := s.donationRepo.SaveRecurringDonation(ctx, recurring); err != nil {
		s.LogError(ctx, err, "Failed to save recurring donation", "donor_id", in.donor.DonorID)
		return nil, fmt.Errorf("failed to save recurring donation: %w", err)
	}

	receipt := &domain.RecurringDonationReceipt{RecurringDonation: recurring}
	ack, err := s.initiatePayment(ctx, in, recurring.RecurringDonationID,
		fmt.Sprintf("%s donation to %s", frequency, in.charity.Name), now)
	if err != nil {
		return receipt, err
	}
	receipt.Ack = ack
	return receipt, nil
}

// GetDonation returns one of the caller's donations. Donations of other donors are
// reported as not found.
func (s *donationService) GetDonation(ctx context.Context, userID, donationID string) (*domain.DonationView, error) {
	donor, err := s.resolveDonor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !validID(donationID) {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Donation not found")
	}
	view, err := s.donationRepo.FindDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "Donation not found")
		}
		return nil, fmt.Errorf("failed to find donation: %w", err)
	}
	if view.DonorID != donor.DonorID {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "Donation not found")
	}
	return view, nil
}

// ListRecurringDonations lists the caller's recurring donations.
func (s *donationService) ListRecurringDonations(ctx context.Context, userID string) ([]domain.RecurringDonationView, error) {
	donor, err := s.resolveDonor(ctx, userID)
	if err != nil {
		return nil, err
	}
	views, err := s.donationRepo.ListRecurringDonationsByDonor(ctx, donor.DonorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring donations: %w", err)
	}
	return views, nil
}
