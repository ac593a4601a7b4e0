package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationType tags a one-time donation with a category. It shares its labels with Frequency
// but, unlike Frequency, admits one_time.
type DonationType string

const (
	DonationOneTime   DonationType = "one_time"
	DonationMonthly   DonationType = "monthly"
	DonationQuarterly DonationType = "quarterly"
	DonationAnnually  DonationType = "annually"
)

// ParseDonationType validates a donation type; an empty string defaults to one_time.
func ParseDonationType(s string) (DonationType, bool) {
	if s == "" {
		return DonationOneTime, true
	}
	switch DonationType(s) {
	case DonationOneTime, DonationMonthly, DonationQuarterly, DonationAnnually:
		return DonationType(s), true
	}
	return "", false
}

// PaymentStatus is the free-text payment state of a donation.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Donation is a one-time contribution from a donor to a charity.
type Donation struct {
	DonationID    string          `json:"donationID"`
	DonorID       string          `json:"donorID"`
	CharityID     string          `json:"charityID"`
	Amount        decimal.Decimal `json:"amount"`
	DonationType  DonationType    `json:"donationType"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DonationView is a donation joined with the display names of both parties.
type DonationView struct {
	Donation
	CharityName string `json:"charityName"`
	DonorName   string `json:"donorName"`
}

// NormalizeAmount validates a requested amount and rounds it to two decimal places.
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, errAmountRequired
	}
	if amount.IsNegative() {
		return decimal.Zero, errAmountNegative
	}
	rounded := amount.Round(2)
	if rounded.IsZero() {
		return decimal.Zero, errAmountRequired
	}
	return rounded, nil
}
