package repositories

import (
	"context"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
)

// DonationWriter persists donations. Records are never deleted.
type DonationWriter interface {
	// SaveDonation inserts a new donation.
	SaveDonation(ctx context.Context, donation domain.Donation) error

	// SaveRecurringDonation inserts a new recurring donation.
	SaveRecurringDonation(ctx context.Context, recurring domain.RecurringDonation) error
}

// DonationReader defines read operations for donations
type DonationReader interface {
	// FindDonationByID retrieves a donation by its ID.
	FindDonationByID(ctx context.Context, donationID string) (*domain.DonationView, error)

	// ListDonationsByDonor lists a donor's donations, newest first.
	ListDonationsByDonor(ctx context.Context, donorID string) ([]domain.DonationView, error)

	// ListDonationsByCharity lists donations received by a charity, newest first.
	ListDonationsByCharity(ctx context.Context, charityID string) ([]domain.DonationView, error)

	// ListRecurringDonationsByDonor lists a donor's recurring donations.
	ListRecurringDonationsByDonor(ctx context.Context, donorID string) ([]domain.RecurringDonationView, error)
}

// DonationRepositoryFacade combines donation reads and writes
type DonationRepositoryFacade interface {
	DonationReader
	DonationWriter
}
