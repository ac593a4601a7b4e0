package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/dto"
	"github.com/msaadaplus/msaada_backend/internal/handlers"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DonationHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	donationService *MockDonationService
	donorToken      string
}

func (suite *DonationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.donationService = new(MockDonationService)
	suite.donorToken = bearerFor(suite.T(), "user-1", domain.UserTypeDonor)

	api := suite.router.Group("/api", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterDonationRoutes(api, suite.donationService)
}

func (suite *DonationHandlerTestSuite) post(path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func forCharity(id string) interface{} {
	return mock.MatchedBy(func(req dto.CreateDonationRequest) bool { return req.CharityID == id })
}

func pendingReceipt() *domain.DonationReceipt {
	return &domain.DonationReceipt{Donation: domain.Donation{
		DonationID:    "d-123",
		DonorID:       "donor-1",
		CharityID:     "charity-1",
		Amount:        decimal.RequireFromString("100.00"),
		DonationType:  domain.DonationOneTime,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     time.Now(),
	}}
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_Accepted() {
	receipt := pendingReceipt()
	receipt.Ack = &domain.PaymentAck{
		CheckoutRequestID: "ws_CO_1",
		Payload: map[string]any{
			"MerchantRequestID":   "29115-34620561-1",
			"CheckoutRequestID":   "ws_CO_1",
			"ResponseCode":        "0",
			"ResponseDescription": "Success. Request accepted for processing",
		},
	}
	suite.donationService.On("CreateDonation", mock.Anything, "user-1", forCharity("charity-1")).Return(receipt, nil).Once()

	w := suite.post("/api/donation", suite.donorToken, `{"charity_id":"charity-1","amount":100}`)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"amount":100.00`)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("d-123", body["donation_id"])
	suite.Equal(receipt.Ack.Payload, body["mpesa_response"])
	suite.donationService.AssertExpectations(suite.T())
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_RejectionPassesPayloadThrough() {
	payload := map[string]any{
		"requestId":    "11728-2929992-1",
		"errorCode":    "400.002.02",
		"errorMessage": "Bad Request - Invalid PhoneNumber",
	}
	suite.donationService.On("CreateDonation", mock.Anything, "user-1", mock.Anything).
		Return(pendingReceipt(), &apperrors.GatewayRejection{Payload: payload}).Once()

	w := suite.post("/api/donation", suite.donorToken, `{"charity_id":"charity-1","amount":100}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	expected, _ := json.Marshal(payload)
	suite.JSONEq(string(expected), w.Body.String())
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_CharityNotFound() {
	suite.donationService.On("CreateDonation", mock.Anything, "user-1", mock.Anything).
		Return(nil, apperrors.Newf(apperrors.ErrNotFound, "Charity not found")).Once()

	w := suite.post("/api/donation", suite.donorToken, `{"charity_id":"missing","amount":100}`)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Charity not found"}`, w.Body.String())
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_AmountRequired() {
	suite.donationService.On("CreateDonation", mock.Anything, "user-1", mock.MatchedBy(func(req dto.CreateDonationRequest) bool {
		return req.Amount == nil
	})).Return(nil, apperrors.Newf(apperrors.ErrValidation, "amount required")).Once()

	w := suite.post("/api/donation", suite.donorToken, `{"charity_id":"charity-1"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"amount required"}`, w.Body.String())
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_TransportFailureIsGeneric() {
	suite.donationService.On("CreateDonation", mock.Anything, "user-1", mock.Anything).
		Return(pendingReceipt(), fmt.Errorf("%w: dial tcp: i/o timeout", apperrors.ErrGatewayTransport)).Once()

	w := suite.post("/api/donation", suite.donorToken, `{"charity_id":"charity-1","amount":100}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Failed to initiate payment"}`, w.Body.String())
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_GatewayAuthFailureIsGeneric() {
	suite.donationService.On("CreateDonation", mock.Anything, "user-1", mock.Anything).
		Return(pendingReceipt(), fmt.Errorf("%w: 400 Bad Request", apperrors.ErrGatewayAuth)).Once()

	w := suite.post("/api/donation", suite.donorToken, `{"charity_id":"charity-1","amount":100}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_MissingCharityID() {
	w := suite.post("/api/donation", suite.donorToken, `{"amount":100}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "charity_id is required")
	suite.donationService.AssertNotCalled(suite.T(), "CreateDonation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DonationHandlerTestSuite) TestCreateDonation_RequiresDonorRole() {
	w := suite.post("/api/donation", bearerFor(suite.T(), "user-2", domain.UserTypeCharity), `{"charity_id":"charity-1","amount":100}`)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.post("/api/donation", "", `{"charity_id":"charity-1","amount":100}`)
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.donationService.AssertNotCalled(suite.T(), "CreateDonation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DonationHandlerTestSuite) TestCreateRecurringDonation_Accepted() {
	receipt := &domain.RecurringDonationReceipt{
		RecurringDonation: domain.RecurringDonation{
			RecurringDonationID: "rd-1",
			Amount:              decimal.RequireFromString("500"),
			Frequency:           domain.FrequencyQuarterly,
			NextDonationDate:    time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			IsActive:            true,
		},
		Ack: &domain.PaymentAck{Payload: map[string]any{"ResponseCode": "0"}},
	}
	suite.donationService.On("CreateRecurringDonation", mock.Anything, "user-1", mock.Anything).Return(receipt, nil).Once()

	w := suite.post("/api/recurring-donation", suite.donorToken, `{"charity_id":"charity-1","amount":500,"frequency":"quarterly"}`)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"next_donation_date":"2025-02-28"`)
	suite.Contains(w.Body.String(), `"amount":500.00`)
	suite.Contains(w.Body.String(), `"recurring_donation_id":"rd-1"`)
}

func (suite *DonationHandlerTestSuite) TestCreateRecurringDonation_InvalidFrequency() {
	suite.donationService.On("CreateRecurringDonation", mock.Anything, "user-1", mock.Anything).
		Return(nil, apperrors.Newf(apperrors.ErrValidation, "invalid donation frequency")).Once()

	w := suite.post("/api/recurring-donation", suite.donorToken, `{"charity_id":"charity-1","amount":500,"frequency":"weekly"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"invalid donation frequency"}`, w.Body.String())
}

func (suite *DonationHandlerTestSuite) TestGetDonation() {
	view := &domain.DonationView{
		Donation:    pendingReceipt().Donation,
		CharityName: "Hope Kids",
	}
	suite.donationService.On("GetDonation", mock.Anything, "user-1", "d-123").Return(view, nil).Once()
	suite.donationService.On("GetDonation", mock.Anything, "user-1", "d-999").
		Return(nil, apperrors.Newf(apperrors.ErrNotFound, "Donation not found")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/donations/d-123", nil)
	req.Header.Set("Authorization", suite.donorToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"payment_status":"pending"`)

	req = httptest.NewRequest(http.MethodGet, "/api/donations/d-999", nil)
	req.Header.Set("Authorization", suite.donorToken)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestDonationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DonationHandlerTestSuite))
}
