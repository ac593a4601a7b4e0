package domain

import "github.com/shopspring/decimal"

// DonorProfile is the donor-specific extension of a User.
type DonorProfile struct {
	DonorID                string `json:"donorID"`
	UserID                 string `json:"userID"`
	FullName               string `json:"fullName"`
	Phone                  string `json:"phone"`
	IsAnonymous            bool   `json:"isAnonymous"`
	NotificationPreference bool   `json:"notificationPreference"`
}

// DisplayName returns the name to show to charities for this donor.
func (d *DonorProfile) DisplayName() string {
	if d.IsAnonymous {
		return "Anonymous"
	}
	return d.FullName
}

// CharityStatus is the state of a charity's application.
type CharityStatus string

const (
	CharityPending  CharityStatus = "pending"
	CharityApproved CharityStatus = "approved"
	CharityRejected CharityStatus = "rejected"
)

// ParseCharityStatus validates a raw status string.
func ParseCharityStatus(s string) (CharityStatus, bool) {
	switch CharityStatus(s) {
	case CharityPending, CharityApproved, CharityRejected:
		return CharityStatus(s), true
	}
	return "", false
}

// ReviewAction is an admin decision on a pending charity application.
type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
)

// ResultingStatus maps the action to the charity status it produces.
func (a ReviewAction) ResultingStatus() (CharityStatus, bool) {
	switch a {
	case ReviewApprove:
		return CharityApproved, true
	case ReviewReject:
		return CharityRejected, true
	}
	return "", false
}

// CharityProfile is the charity-specific extension of a User.
type CharityProfile struct {
	CharityID          string        `json:"charityID"`
	UserID             string        `json:"userID"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	RegistrationNumber string        `json:"registrationNumber"`
	Status             CharityStatus `json:"status"`
	ContactEmail       string        `json:"contactEmail"`
	ContactPhone       string        `json:"contactPhone"`
	BankAccount        string        `json:"bankAccount"`
}

// CharitySummary is a charity with its aggregated donation figures, used for listings.
type CharitySummary struct {
	CharityProfile
	TotalDonations   decimal.Decimal `json:"totalDonations"`
	DonorCount       int             `json:"donorCount"`
	BeneficiaryCount int             `json:"beneficiaryCount"`
}
