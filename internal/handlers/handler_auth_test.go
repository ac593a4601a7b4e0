package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	authService  *MockAuthService
	tokenService *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.authService = new(MockAuthService)
	suite.tokenService = new(MockTokenService)

	handlers.RegisterAuthRoutes(suite.router.Group("/api"), suite.authService, suite.tokenService, nil)
}

func (suite *AuthHandlerTestSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

const donorSignup = `{
	"username": "wanjiku",
	"email": "wanjiku@example.com",
	"password": "Secret123",
	"user_type": "donor",
	"full_name": "Wanjiku Kamau",
	"phone": "0712345678"
}`

func (suite *AuthHandlerTestSuite) TestRegister_Created() {
	suite.authService.On("Register", mock.Anything, mock.MatchedBy(func(req dto.RegisterRequest) bool {
		return req.Email == "wanjiku@example.com" && req.UserType == "donor" && req.FullName == "Wanjiku Kamau"
	})).Return(&domain.User{UserID: "u-1", UserType: domain.UserTypeDonor}, nil).Once()

	w := suite.post("/api/register", donorSignup)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RegisterResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("u-1", resp.UserID)
	suite.Equal("donor", resp.UserType)
	suite.authService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_Duplicate() {
	suite.authService.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.Newf(apperrors.ErrDuplicate, "Email already registered")).Once()

	w := suite.post("/api/register", donorSignup)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Email already registered"}`, w.Body.String())
}

func (suite *AuthHandlerTestSuite) TestRegister_EmailFailure() {
	suite.authService.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusInternalServerError, "Failed to send verification email", assert.AnError)).Once()

	w := suite.post("/api/register", donorSignup)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to send verification email"}`, w.Body.String())
}

func (suite *AuthHandlerTestSuite) TestRegister_BindingErrors() {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "weak password",
			body:    `{"username":"a","email":"a@example.com","password":"password","user_type":"donor"}`,
			message: "Password must be at least 8 characters",
		},
		{
			name:    "bad email",
			body:    `{"username":"a","email":"not-an-email","password":"Secret123","user_type":"donor"}`,
			message: "email must be a valid email address",
		},
		{
			name:    "missing user type",
			body:    `{"username":"a","email":"a@example.com","password":"Secret123"}`,
			message: "user_type is required",
		},
		{
			name:    "malformed json",
			body:    `{"username":`,
			message: "Invalid request format",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.post("/api/register", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Contains(w.Body.String(), tt.message)
		})
	}
	suite.authService.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestVerifyEmail() {
	suite.authService.On("VerifyEmail", mock.Anything, "wanjiku@example.com", "a1b2c3").Return(nil).Once()
	suite.authService.On("VerifyEmail", mock.Anything, "wanjiku@example.com", "ffffff").
		Return(apperrors.Newf(apperrors.ErrValidation, "Invalid verification code")).Once()

	w := suite.post("/api/verify-email", `{"email":"wanjiku@example.com","verification_code":"a1b2c3"}`)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.post("/api/verify-email", `{"email":"wanjiku@example.com","verification_code":"ffffff"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Invalid verification code"}`, w.Body.String())
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: "u-1", UserType: domain.UserTypeCharity}
	suite.authService.On("Authenticate", mock.Anything, "hope@example.com", "Secret123").Return(user, nil).Once()
	suite.tokenService.On("GenerateAccessToken", mock.Anything, user).Return("signed.jwt.token", time.Now().Add(time.Hour), nil).Once()

	w := suite.post("/api/login", `{"email":"hope@example.com","password":"Secret123"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed.jwt.token", resp.AccessToken)
	suite.Equal("charity", resp.UserType)
	suite.tokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_Failures() {
	suite.authService.On("Authenticate", mock.Anything, "new@example.com", "Secret123").
		Return(nil, apperrors.Newf(apperrors.ErrUnverified, "Please verify your email before logging in")).Once()
	suite.authService.On("Authenticate", mock.Anything, "new@example.com", "wrong").
		Return(nil, apperrors.Newf(apperrors.ErrUnauthorized, "Invalid credentials")).Once()

	w := suite.post("/api/login", `{"email":"new@example.com","password":"Secret123"}`)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.JSONEq(`{"error":"Please verify your email before logging in"}`, w.Body.String())

	w = suite.post("/api/login", `{"email":"new@example.com","password":"wrong"}`)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"error":"Invalid credentials"}`, w.Body.String())

	suite.tokenService.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestForgotPassword_AlwaysOK() {
	suite.authService.On("RequestPasswordReset", mock.Anything, "nobody@example.com").Return(nil).Once()

	w := suite.post("/api/forgot-password", `{"email":"nobody@example.com"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"If the email is registered, a password reset link has been sent"}`, w.Body.String())
}

func (suite *AuthHandlerTestSuite) TestResetPassword_Expired() {
	suite.authService.On("ResetPassword", mock.Anything, "tok", "NewSecret1").
		Return(apperrors.Newf(apperrors.ErrTokenExpired, "Invalid or expired reset token")).Once()

	w := suite.post("/api/reset-password", `{"token":"tok","password":"NewSecret1"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Invalid or expired reset token"}`, w.Body.String())
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
