package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	portsrepo "github.com/msaadaplus/msaada_backend/internal/core/ports/repositories"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/platform/config"
	"github.com/msaadaplus/msaada_backend/internal/utils"
)

const resetTokenBytes = 32

// authService handles the account lifecycle: sign-up, email verification, login and
// password recovery.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	notifier clients.Notifier
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, notifier clients.Notifier, options ...ServiceOption) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(options...),
		cfg:         cfg,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and its profile. The verification email is sent before the
// transaction commits, so a failed send leaves no account behind.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	userType, ok := domain.ParseUserType(req.UserType)
	if !ok || userType == domain.UserTypeAdmin {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Invalid user type")
	}
	if !utils.IsStrongPassword(req.Password) {
		return nil, apperrors.Newf(apperrors.ErrValidation,
			"Password must be at least %d characters and include upper and lower case letters and a digit",
			utils.MinPasswordLength)
	}

	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Username is required")
	}

	now := s.Now()
	userID := uuid.NewString()
	account := portsrepo.NewAccount{}

	switch userType {
	case domain.UserTypeDonor:
		donor, err := buildDonorProfile(userID, req)
		if err != nil {
			return nil, err
		}
		account.Donor = donor
	case domain.UserTypeCharity:
		charity, err := buildCharityProfile(userID, req)
		if err != nil {
			return nil, err
		}
		account.Charity = charity
	}

	if err := s.ensureUnique(ctx, email, username); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := utils.GenerateSecureRandomString(utils.VerificationCodeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	account.User = domain.User{
		UserID:           userID,
		Email:            email,
		Username:         username,
		PasswordHash:     passwordHash,
		UserType:         userType,
		VerificationCode: &code,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	err = s.userRepo.CreateAccount(ctx, account, notifyBeforeCommit(s.notifier, verificationEmail(email, code)))
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.Newf(apperrors.ErrDuplicate, "Email, username or registration number already registered")
		}
		if errors.Is(err, errNotificationFailed) {
			s.LogError(ctx, err, "Failed to send verification email", "email", email)
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "Failed to send verification email", err)
		}
		s.LogError(ctx, err, "Failed to create account", "email", email)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account registered", "user_id", userID, "user_type", string(userType))
	return &account.User, nil
}

func (s *authService) ensureUnique(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return apperrors.Newf(apperrors.ErrDuplicate, "Email already registered")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return apperrors.Newf(apperrors.ErrDuplicate, "Username already taken")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

func buildDonorProfile(userID string, req dto.RegisterRequest) (*domain.DonorProfile, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Full name and phone are required for donors")
	}
	phone, err := utils.NormalizeMSISDN(req.Phone)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrValidation, "Invalid phone number")
	}

	donor := &domain.DonorProfile{
		DonorID:                uuid.NewString(),
		UserID:                 userID,
		FullName:               fullName,
		Phone:                  phone,
		NotificationPreference: true,
	}
	if req.IsAnonymous != nil {
		donor.IsAnonymous = *req.IsAnonymous
	}
	if req.NotificationPreference != nil {
		donor.NotificationPreference = *req.NotificationPreference
	}
	return donor, nil
}

func buildCharityProfile(userID string, req dto.RegisterRequest) (*domain.CharityProfile, error) {
	name := strings.TrimSpace(req.Name)
	regNo := strings.TrimSpace(req.RegistrationNumber)
	contactEmail := normalizeEmail(req.ContactEmail)
	contactPhone := strings.TrimSpace(req.ContactPhone)
	if name == "" || strings.TrimSpace(req.Description) == "" || regNo == "" || contactEmail == "" || contactPhone == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation,
			"Name, description, registration number, contact email and contact phone are required for charities")
	}

	return &domain.CharityProfile{
		CharityID:          uuid.NewString(),
		UserID:             userID,
		Name:               name,
		Description:        strings.TrimSpace(req.Description),
		RegistrationNumber: regNo,
		Status:             domain.CharityPending,
		ContactEmail:       contactEmail,
		ContactPhone:       contactPhone,
		BankAccount:        strings.TrimSpace(req.BankAccount),
	}, nil
}

// VerifyEmail clears the verification code when it matches.
func (s *authService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.IsVerified() || !strings.EqualFold(strings.TrimSpace(code), *user.VerificationCode) {
		return apperrors.Newf(apperrors.ErrValidation, "Invalid verification code")
	}

	if err := s.userRepo.UpdateVerificationCode(ctx, user.UserID, nil, s.Now(), nil); err != nil {
		s.LogError(ctx, err, "Failed to clear verification code", "user_id", user.UserID)
		return fmt.Errorf("failed to verify email: %w", err)
	}
	s.LogInfo(ctx, "Email verified", "user_id", user.UserID)
	return nil
}

// ResendVerification issues and emails a fresh verification code.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsVerified() {
		return apperrors.Newf(apperrors.ErrValidation, "Email already verified")
	}

	code, err := utils.GenerateSecureRandomString(utils.VerificationCodeBytes)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	err = s.userRepo.UpdateVerificationCode(ctx, user.UserID, &code, s.Now(), notifyBeforeCommit(s.notifier, verificationEmail(user.Email, code)))
	if err != nil {
		if errors.Is(err, errNotificationFailed) {
			s.LogError(ctx, err, "Failed to send verification email", "user_id", user.UserID)
			return apperrors.NewAppError(http.StatusInternalServerError, "Failed to send verification email", err)
		}
		return fmt.Errorf("failed to update verification code: %w", err)
	}
	return nil
}

// Authenticate checks credentials. Unknown emails and wrong passwords are indistinguishable.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrUnauthorized, "Invalid credentials")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", "user_id", user.UserID)
		return nil, apperrors.Newf(apperrors.ErrUnauthorized, "Invalid credentials")
	}
	if !user.IsVerified() {
		return nil, apperrors.Newf(apperrors.ErrUnverified, "Please verify your email before logging in")
	}
	return user, nil
}

// RequestPasswordReset stores the hash of a fresh reset token and emails the raw token.
// Unknown emails and delivery failures are only logged.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := utils.GenerateURLSafeToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := s.Now().Add(s.cfg.PasswordResetTTL)

	err = s.userRepo.UpdateResetToken(ctx, user.UserID, utils.HashResetToken(token), expiry, notifyBeforeCommit(s.notifier, passwordResetEmail(user.Email, s.cfg.FrontendBaseURL, token)))
	if err != nil {
		if errors.Is(err, errNotificationFailed) {
			s.LogError(ctx, err, "Failed to send password reset email", "user_id", user.UserID)
			return nil
		}
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	s.LogInfo(ctx, "Password reset requested", "user_id", user.UserID)
	return nil
}

// ResetPassword sets a new password if the token is valid and unexpired.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !utils.IsStrongPassword(newPassword) {
		return apperrors.Newf(apperrors.ErrValidation,
			"Password must be at least %d characters and include upper and lower case letters and a digit",
			utils.MinPasswordLength)
	}

	hash := utils.HashResetToken(token)
	user, err := s.userRepo.FindUserByResetToken(ctx, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrValidation, "Invalid or expired reset token")
		}
		return fmt.Errorf("failed to find reset token: %w", err)
	}

	now := s.Now()
	if !user.ResetTokenValid(hash, now) {
		return apperrors.Newf(apperrors.ErrTokenExpired, "Invalid or expired reset token")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.UserID, passwordHash, now); err != nil {
		s.LogError(ctx, err, "Failed to update password", "user_id", user.UserID)
		return fmt.Errorf("failed to reset password: %w", err)
	}
	s.LogInfo(ctx, "Password reset", "user_id", user.UserID)
	return nil
}
