package dto

import (
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDonationRequest is the body of a one-time donation.
type CreateDonationRequest struct {
	CharityID    string           `json:"charity_id" binding:"required"`
	Amount       *decimal.Decimal `json:"amount"`
	DonationType string           `json:"donation_type"`
}

// CreateRecurringDonationRequest is the body of a recurring donation.
type CreateRecurringDonationRequest struct {
	CharityID string           `json:"charity_id" binding:"required"`
	Amount    *decimal.Decimal `json:"amount"`
	Frequency string           `json:"frequency"`
}

// DonationCreatedResponse is returned when the payment prompt was accepted.
type DonationCreatedResponse struct {
	Message       string         `json:"message"`
	DonationID    string         `json:"donation_id"`
	Amount        Money          `json:"amount"`
	MpesaResponse map[string]any `json:"mpesa_response"`
}

// RecurringDonationCreatedResponse is returned when the first installment prompt was accepted.
type RecurringDonationCreatedResponse struct {
	Message             string         `json:"message"`
	RecurringDonationID string         `json:"recurring_donation_id"`
	Amount              Money          `json:"amount"`
	Frequency           string         `json:"frequency"`
	NextDonationDate    Date           `json:"next_donation_date"`
	MpesaResponse       map[string]any `json:"mpesa_response"`
}

// DonationResponse is a donation as seen by donors and charities.
type DonationResponse struct {
	ID            string `json:"id"`
	CharityID     string `json:"charity_id"`
	CharityName   string `json:"charity_name,omitempty"`
	DonorName     string `json:"donor_name,omitempty"`
	Amount        Money  `json:"amount"`
	DonationType  string `json:"donation_type"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     Date   `json:"created_at"`
}

// RecurringDonationResponse is a recurring donation as seen by its donor.
type RecurringDonationResponse struct {
	ID               string `json:"id"`
	CharityID        string `json:"charity_id"`
	CharityName      string `json:"charity_name"`
	Amount           Money  `json:"amount"`
	Frequency        string `json:"frequency"`
	NextDonationDate Date   `json:"next_donation_date"`
	IsActive         bool   `json:"is_active"`
	CreatedAt        Date   `json:"created_at"`
}

// ToDonationCreatedResponse builds the success body from a receipt.
func ToDonationCreatedResponse(r *domain.DonationReceipt) DonationCreatedResponse {
	resp := DonationCreatedResponse{
		Message:    "Donation initiated. Check your phone to complete the payment.",
		DonationID: r.Donation.DonationID,
		Amount:     NewMoney(r.Donation.Amount),
	}
	if r.Ack != nil {
		resp.MpesaResponse = r.Ack.Payload
	}
	return resp
}

// ToRecurringDonationCreatedResponse builds the success body from a receipt.
func ToRecurringDonationCreatedResponse(r *domain.RecurringDonationReceipt) RecurringDonationCreatedResponse {
	rd := r.RecurringDonation
	resp := RecurringDonationCreatedResponse{
		Message:             "Recurring donation set up. Check your phone to complete the first payment.",
		RecurringDonationID: rd.RecurringDonationID,
		Amount:              NewMoney(rd.Amount),
		Frequency:           string(rd.Frequency),
		NextDonationDate:    Date(rd.NextDonationDate),
	}
	if r.Ack != nil {
		resp.MpesaResponse = r.Ack.Payload
	}
	return resp
}

// ToDonationResponse converts a donation view.
func ToDonationResponse(v domain.DonationView) DonationResponse {
	return DonationResponse{
		ID:            v.DonationID,
		CharityID:     v.CharityID,
		CharityName:   v.CharityName,
		DonorName:     v.DonorName,
		Amount:        NewMoney(v.Amount),
		DonationType:  string(v.DonationType),
		PaymentStatus: string(v.PaymentStatus),
		CreatedAt:     Date(v.CreatedAt),
	}
}

// ToDonationResponses converts a slice of donation views.
func ToDonationResponses(vs []domain.DonationView) []DonationResponse {
	out := make([]DonationResponse, len(vs))
	for i, v := range vs {
		out[i] = ToDonationResponse(v)
	}
	return out
}

// ToRecurringDonationResponses converts a slice of recurring donation views.
func ToRecurringDonationResponses(vs []domain.RecurringDonationView) []RecurringDonationResponse {
	out := make([]RecurringDonationResponse, len(vs))
	for i, v := range vs {
		out[i] = RecurringDonationResponse{
			ID:               v.RecurringDonationID,
			CharityID:        v.CharityID,
			CharityName:      v.CharityName,
			Amount:           NewMoney(v.Amount),
			Frequency:        string(v.Frequency),
			NextDonationDate: Date(v.NextDonationDate),
			IsActive:         v.IsActive,
			CreatedAt:        Date(v.CreatedAt),
		}
	}
	return out
}
