package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a row of the donations table.
type Donation struct {
	DonationID    string          `db:"donation_id"`
	DonorID       string          `db:"donor_id"`
	CharityID     string          `db:"charity_id"`
	Amount        decimal.Decimal `db:"amount"`
	DonationType  string          `db:"donation_type"`
	PaymentStatus string          `db:"payment_status"`
	CreatedAt     time.Time       `db:"created_at"`
}

// RecurringDonation is a row of the recurring_donations table.
type RecurringDonation struct {
	RecurringDonationID string          `db:"recurring_donation_id"`
	DonorID             string          `db:"donor_id"`
	CharityID           string          `db:"charity_id"`
	Amount              decimal.Decimal `db:"amount"`
	Frequency           string          `db:"frequency"`
	NextDonationDate    time.Time       `db:"next_donation_date"`
	IsActive            bool            `db:"is_active"`
	CreatedAt           time.Time       `db:"created_at"`
}
