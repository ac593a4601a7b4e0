package mapping

import (
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/models"
)

// ToModelDonation converts a domain Donation to a model Donation
func ToModelDonation(d domain.Donation) models.Donation {
	return models.Donation{
		DonationID:    d.DonationID,
		DonorID:       d.DonorID,
		CharityID:     d.CharityID,
		Amount:        d.Amount,
		DonationType:  string(d.DonationType),
		PaymentStatus: string(d.PaymentStatus),
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainDonation converts a model Donation to a domain Donation
func ToDomainDonation(m models.Donation) domain.Donation {
	return domain.Donation{
		DonationID:    m.DonationID,
		DonorID:       m.DonorID,
		CharityID:     m.CharityID,
		Amount:        m.Amount,
		DonationType:  domain.DonationType(m.DonationType),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelRecurringDonation converts a domain RecurringDonation to a model RecurringDonation
func ToModelRecurringDonation(d domain.RecurringDonation) models.RecurringDonation {
	return models.RecurringDonation{
		RecurringDonationID: d.RecurringDonationID,
		DonorID:             d.DonorID,
		CharityID:           d.CharityID,
		Amount:              d.Amount,
		Frequency:           string(d.Frequency),
		NextDonationDate:    d.NextDonationDate,
		IsActive:            d.IsActive,
		CreatedAt:           d.CreatedAt,
	}
}

// ToDomainRecurringDonation converts a model RecurringDonation to a domain RecurringDonation
func ToDomainRecurringDonation(m models.RecurringDonation) domain.RecurringDonation {
	return domain.RecurringDonation{
		RecurringDonationID: m.RecurringDonationID,
		DonorID:             m.DonorID,
		CharityID:           m.CharityID,
		Amount:              m.Amount,
		Frequency:           domain.Frequency(m.Frequency),
		NextDonationDate:    m.NextDonationDate,
		IsActive:            m.IsActive,
		CreatedAt:           m.CreatedAt,
	}
}
