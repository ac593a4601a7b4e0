package domain

import "time"

// UserType is the role an account was registered with.
type UserType string

const (
	UserTypeDonor   UserType = "donor"
	UserTypeCharity UserType = "charity"
	UserTypeAdmin   UserType = "admin"
)

// ParseUserType validates a raw user type string.
func ParseUserType(s string) (UserType, bool) {
	switch UserType(s) {
	case UserTypeDonor, UserTypeCharity, UserTypeAdmin:
		return UserType(s), true
	}
	return "", false
}

// User represents an account of the platform in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	UserType     UserType `json:"userType"`
	// VerificationCode is set until the email address is verified.
	VerificationCode *string `json:"-"`

	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	Timestamps
}

// IsVerified reports whether the user confirmed their email address.
func (u *User) IsVerified() bool {
	return u.VerificationCode == nil || *u.VerificationCode == ""
}

// ResetTokenValid reports whether token matches the stored reset token and has not expired at now.
func (u *User) ResetTokenValid(token string, now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpiry == nil || token == "" {
		return false
	}
	return *u.ResetToken == token && now.Before(*u.ResetTokenExpiry)
}
