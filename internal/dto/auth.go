package dto

// RegisterRequest is the sign-up body. Donor and charity accounts require
// different profile fields, checked by the service.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
	UserType string `json:"user_type" binding:"required"`

	// donor
	FullName               string `json:"full_name"`
	Phone                  string `json:"phone"`
	IsAnonymous            *bool  `json:"is_anonymous"`
	NotificationPreference *bool  `json:"notification_preference"`

	// charity
	Name               string `json:"name"`
	Description        string `json:"description"`
	RegistrationNumber string `json:"registration_number"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	BankAccount        string `json:"bank_account"`
}

// RegisterResponse is returned after a successful sign-up.
type RegisterResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
}

// VerifyEmailRequest confirms an email address.
type VerifyEmailRequest struct {
	Email            string `json:"email" binding:"required"`
	VerificationCode string `json:"verification_code" binding:"required"`
}

// EmailRequest carries a single email address (resend verification, forgot password).
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// LoginRequest represents the login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	UserType    string `json:"user_type"`
}

// ResetPasswordRequest sets a new password using a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}
