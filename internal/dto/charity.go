package dto

import (
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/utils/pagination"
)

// ListCharitiesParams defines query parameters for listing charities.
type ListCharitiesParams struct {
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=10"`
	Search  string `form:"search"`
	Status  string `form:"status"`
}

// CharityResponse is a charity as shown in listings and applications.
type CharityResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	RegistrationNumber string `json:"registration_number"`
	Status             string `json:"status"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
}

// CharitySummaryResponse adds donation aggregates to a charity.
type CharitySummaryResponse struct {
	CharityResponse
	TotalDonations   Money `json:"total_donations"`
	DonorCount       int   `json:"donor_count"`
	BeneficiaryCount int   `json:"beneficiary_count"`
}

// ListCharitiesResponse is one page of charities.
type ListCharitiesResponse struct {
	Charities  []CharitySummaryResponse `json:"charities"`
	Pagination pagination.Meta          `json:"pagination"`
}

// CharityDetailResponse is a charity with its published content.
type CharityDetailResponse struct {
	CharityResponse
	Stories       []StoryResponse       `json:"stories"`
	Beneficiaries []BeneficiaryResponse `json:"beneficiaries"`
}

// ListApplicationsResponse wraps charity applications.
type ListApplicationsResponse struct {
	Applications []CharityResponse `json:"applications"`
}

// ReviewApplicationRequest carries an admin decision.
type ReviewApplicationRequest struct {
	Action string `json:"action" binding:"required"`
}

// ToCharityResponse converts a charity profile.
func ToCharityResponse(c domain.CharityProfile) CharityResponse {
	return CharityResponse{
		ID:                 c.CharityID,
		Name:               c.Name,
		Description:        c.Description,
		RegistrationNumber: c.RegistrationNumber,
		Status:             string(c.Status),
		ContactEmail:       c.ContactEmail,
		ContactPhone:       c.ContactPhone,
	}
}

// ToCharityResponses converts a slice of charity profiles.
func ToCharityResponses(cs []domain.CharityProfile) []CharityResponse {
	out := make([]CharityResponse, len(cs))
	for i, c := range cs {
		out[i] = ToCharityResponse(c)
	}
	return out
}

// ToCharitySummaryResponse converts a charity summary.
func ToCharitySummaryResponse(s domain.CharitySummary) CharitySummaryResponse {
	return CharitySummaryResponse{
		CharityResponse:  ToCharityResponse(s.CharityProfile),
		TotalDonations:   NewMoney(s.TotalDonations),
		DonorCount:       s.DonorCount,
		BeneficiaryCount: s.BeneficiaryCount,
	}
}
