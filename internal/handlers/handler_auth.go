package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/msaadaplus/msaada_backend/internal/core/ports/services"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
)

// authHandler handles sign-up, verification, login and password recovery.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// RegisterAuthRoutes sets up the public account routes. limit, if not nil, guards the
// endpoints that send email or check passwords.
func RegisterAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade, tokenService portssvc.TokenSvcFacade, limit gin.HandlerFunc) {
	registerValidators()
	h := &authHandler{authService: authService, tokenService: tokenService}

	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	rg.POST("/register", limit, h.register)
	rg.POST("/verify-email", h.verifyEmail)
	rg.POST("/resend-verification", limit, h.resendVerification)
	rg.POST("/login", limit, h.login)
	rg.POST("/forgot-password", limit, h.forgotPassword)
	rg.POST("/reset-password", h.resetPassword)
}

// register godoc
// @Summary Register a donor or charity
// @Description Creates the account and its profile and emails a verification code.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or duplicate account"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to send verification email"
// @Router /register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message:  "Registration successful. Check your email for the verification code.",
		UserID:   user.UserID,
		UserType: string(user.UserType),
	})
}

// verifyEmail godoc
// @Summary Verify an email address
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerifyEmailRequest true "Email and code"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid verification code"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /verify-email [post]
func (h *authHandler) verifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.VerificationCode); err != nil {
		respondError(c, err, "Failed to verify email")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified successfully"})
}

// resendVerification godoc
// @Summary Resend the verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.EmailRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Email already verified"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /resend-verification [post]
func (h *authHandler) resendVerification(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to resend verification code")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Verification code sent"})
}

// login godoc
// @Summary User login
// @Description Authenticates a verified user and returns a JWT access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Email not verified"
// @Failure 429 {object} dto.ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		UserID:      user.UserID,
		UserType:    string(user.UserType),
	})
}

// forgotPassword godoc
// @Summary Request a password reset link
// @Description Always succeeds so that registered emails cannot be discovered.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.EmailRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Router /forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to process password reset")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "If the email is registered, a password reset link has been sent",
	})
}

// resetPassword godoc
// @Summary Reset a password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token, or weak password"
// @Router /reset-password [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}
