package services

import (
	"context"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/dto"
)

// DonationIntakeSvc records donations and initiates their first payment.
//
// On a nil error the receipt holds the persisted record and the gateway acknowledgment.
// When the record was persisted but the gateway failed, both a receipt (without Ack) and
// the gateway error are returned; the record is never rolled back.
type DonationIntakeSvc interface {
	CreateDonation(ctx context.Context, userID string, req dto.CreateDonationRequest) (*domain.DonationReceipt, error)
	CreateRecurringDonation(ctx context.Context, userID string, req dto.CreateRecurringDonationRequest) (*domain.RecurringDonationReceipt, error)
}

// DonationReaderSvc serves a donor's own donations.
type DonationReaderSvc interface {
	GetDonation(ctx context.Context, userID, donationID string) (*domain.DonationView, error)
	ListRecurringDonations(ctx context.Context, userID string) ([]domain.RecurringDonationView, error)
}

// DonationSvcFacade combines donation intake and reads
type DonationSvcFacade interface {
	DonationIntakeSvc
	DonationReaderSvc
}
