package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest is a push-payment prompt to be sent to a payer's phone.
type PaymentRequest struct {
	Amount           decimal.Decimal
	PhoneNumber      string
	AccountReference string
	Description      string
	// Timestamp is the instant the request is made; it also salts the gateway password.
	Timestamp time.Time
}

// PaymentAck is the gateway's acceptance of a push-payment request. The prompt was sent;
// it says nothing about whether the payer authorised the charge.
type PaymentAck struct {
	MerchantRequestID string
	CheckoutRequestID string
	// Payload is the raw gateway response body.
	Payload map[string]any
}

// DonationReceipt is the outcome of a donation request whose record was persisted.
type DonationReceipt struct {
	Donation Donation
	Ack      *PaymentAck
}

// RecurringDonationReceipt is the outcome of a recurring donation request whose record was persisted.
type RecurringDonationReceipt struct {
	RecurringDonation RecurringDonation
	Ack               *PaymentAck
}
