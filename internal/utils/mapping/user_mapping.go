package mapping

import (
	"database/sql"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:           d.UserID,
		Email:            d.Email,
		Username:         d.Username,
		PasswordHash:     d.PasswordHash,
		UserType:         string(d.UserType),
		VerificationCode: toNullString(d.VerificationCode),
		ResetTokenHash:   toNullString(d.ResetToken),
		ResetTokenExpiry: toNullTime(d.ResetTokenExpiry),
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:           m.UserID,
		Email:            m.Email,
		Username:         m.Username,
		PasswordHash:     m.PasswordHash,
		UserType:         domain.UserType(m.UserType),
		VerificationCode: fromNullString(m.VerificationCode),
		ResetToken:       fromNullString(m.ResetTokenHash),
		ResetTokenExpiry: fromNullTime(m.ResetTokenExpiry),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelDonorProfile converts a domain DonorProfile to a model DonorProfile
func ToModelDonorProfile(d domain.DonorProfile) models.DonorProfile {
	return models.DonorProfile{
		DonorID:                d.DonorID,
		UserID:                 d.UserID,
		FullName:               d.FullName,
		Phone:                  sql.NullString{String: d.Phone, Valid: d.Phone != ""},
		IsAnonymous:            d.IsAnonymous,
		NotificationPreference: d.NotificationPreference,
	}
}

// ToDomainDonorProfile converts a model DonorProfile to a domain DonorProfile
func ToDomainDonorProfile(m models.DonorProfile) domain.DonorProfile {
	return domain.DonorProfile{
		DonorID:                m.DonorID,
		UserID:                 m.UserID,
		FullName:               m.FullName,
		Phone:                  m.Phone.String,
		IsAnonymous:            m.IsAnonymous,
		NotificationPreference: m.NotificationPreference,
	}
}

// ToModelCharityProfile converts a domain CharityProfile to a model CharityProfile
func ToModelCharityProfile(d domain.CharityProfile) models.CharityProfile {
	return models.CharityProfile{
		CharityID:          d.CharityID,
		UserID:             d.UserID,
		Name:               d.Name,
		Description:        d.Description,
		RegistrationNumber: d.RegistrationNumber,
		Status:             string(d.Status),
		ContactEmail:       d.ContactEmail,
		ContactPhone:       d.ContactPhone,
		BankAccount:        sql.NullString{String: d.BankAccount, Valid: d.BankAccount != ""},
	}
}

// ToDomainCharityProfile converts a model CharityProfile to a domain CharityProfile
func ToDomainCharityProfile(m models.CharityProfile) domain.CharityProfile {
	return domain.CharityProfile{
		CharityID:          m.CharityID,
		UserID:             m.UserID,
		Name:               m.Name,
		Description:        m.Description,
		RegistrationNumber: m.RegistrationNumber,
		Status:             domain.CharityStatus(m.Status),
		ContactEmail:       m.ContactEmail,
		ContactPhone:       m.ContactPhone,
		BankAccount:        m.BankAccount.String,
	}
}

// ToDomainCharityProfileSlice converts a slice of model CharityProfiles
func ToDomainCharityProfileSlice(ms []models.CharityProfile) []domain.CharityProfile {
	ds := make([]domain.CharityProfile, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCharityProfile(m)
	}
	return ds
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
