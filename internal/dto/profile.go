package dto

// ProfileDetailsResponse is the signed-in user's profile page. Lists not relevant to the
// user's role are omitted.
type ProfileDetailsResponse struct {
	UserType           string                      `json:"user_type"`
	Profile            ProfileResponse             `json:"profile"`
	Donations          []DonationResponse          `json:"donations,omitempty"`
	RecurringDonations []RecurringDonationResponse `json:"recurring_donations,omitempty"`
	Beneficiaries      []BeneficiaryResponse       `json:"beneficiaries,omitempty"`
	Stories            []StoryResponse             `json:"stories,omitempty"`
	Inventory          []InventoryItemResponse     `json:"inventory,omitempty"`
}

// ProfileResponse merges account and role profile fields; unused ones are omitted.
type ProfileResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`

	FullName               string `json:"full_name,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	IsAnonymous            *bool  `json:"is_anonymous,omitempty"`
	NotificationPreference *bool  `json:"notification_preference,omitempty"`

	CharityID          string `json:"charity_id,omitempty"`
	Name               string `json:"name,omitempty"`
	Description        string `json:"description,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Status             string `json:"status,omitempty"`
	ContactEmail       string `json:"contact_email,omitempty"`
	ContactPhone       string `json:"contact_phone,omitempty"`
	BankAccount        string `json:"bank_account,omitempty"`
}

// UpdateProfileRequest defines the profile fields a user may change.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	// donor
	FullName               *string `json:"full_name"`
	Phone                  *string `json:"phone" binding:"omitempty,msisdn"`
	IsAnonymous            *bool   `json:"is_anonymous"`
	NotificationPreference *bool   `json:"notification_preference"`

	// charity
	Description  *string `json:"description"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone"`
	BankAccount  *string `json:"bank_account"`
}
