package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDaraja struct {
	tokenStatus  int
	stkStatus    int
	stkBody      string
	tokenCalls   atomic.Int32
	lastPush     STKPushRequest
	lastAuthz    string
	lastBasicKey string
}

func (f *fakeDaraja) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		f.lastBasicKey = user
		if f.tokenStatus != 0 && f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_in":"3599"}`))
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuthz = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastPush))
		if f.stkStatus != 0 {
			w.WriteHeader(f.stkStatus)
		}
		_, _ = w.Write([]byte(f.stkBody))
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeDaraja) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	cfg := config.MpesaConfig{
		BaseURL:        srv.URL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		PassKey:        "passkey",
		CallbackURL:    "https://msaada.example/callback",
		Timeout:        5 * time.Second,
	}
	return newClient(cfg, http.DefaultTransport, time.Now)
}

func paymentRequest() domain.PaymentRequest {
	return domain.PaymentRequest{
		Amount:           decimal.RequireFromString("100.40"),
		PhoneNumber:      "0712345678",
		AccountReference: "Donation d-1",
		Description:      "Donation to Hope",
		Timestamp:        time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
	}
}

func TestPassword(t *testing.T) {
	got := Password("174379", "passkey", "20240305140709")
	decoded, err := base64.StdEncoding.DecodeString(got)
	require.NoError(t, err)
	assert.Equal(t, "174379passkey20240305140709", string(decoded))
}

func TestInitiatePayment_Accepted(t *testing.T) {
	f := &fakeDaraja{stkBody: `{"MerchantRequestID":"m-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing","CustomerMessage":"Success"}`}
	c := newTestClient(t, f)

	ack, err := c.InitiatePayment(context.Background(), paymentRequest())
	require.NoError(t, err)

	assert.Equal(t, "m-1", ack.MerchantRequestID)
	assert.Equal(t, "ws_CO_1", ack.CheckoutRequestID)
	assert.Equal(t, "0", ack.Payload["ResponseCode"])

	assert.Equal(t, "key", f.lastBasicKey)
	assert.Equal(t, "Bearer tok-123", f.lastAuthz)
	assert.Equal(t, STKPushRequest{
		BusinessShortCode: "174379",
		Password:          Password("174379", "passkey", "20240305140709"),
		Timestamp:         "20240305140709",
		TransactionType:   "CustomerPayBillOnline",
		Amount:            101,
		PartyA:            "254712345678",
		PartyB:            "174379",
		PhoneNumber:       "254712345678",
		CallBackURL:       "https://msaada.example/callback",
		AccountReference:  "Donation d-1",
		TransactionDesc:   "Donation to Hope",
	}, f.lastPush)
}

func TestInitiatePayment_ReusesToken(t *testing.T) {
	f := &fakeDaraja{stkBody: `{"ResponseCode":"0"}`}
	c := newTestClient(t, f)

	for i := 0; i < 3; i++ {
		_, err := c.InitiatePayment(context.Background(), paymentRequest())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.tokenCalls.Load())
}

func TestInitiatePayment_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non zero response code", http.StatusOK, `{"ResponseCode":"1","ResponseDescription":"Insufficient balance"}`},
		{"http error with gateway body", http.StatusBadRequest, `{"requestId":"r-1","errorCode":"400.002.02","errorMessage":"Bad Request - Invalid PhoneNumber"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeDaraja{stkStatus: tt.status, stkBody: tt.body}
			c := newTestClient(t, f)

			ack, err := c.InitiatePayment(context.Background(), paymentRequest())
			assert.Nil(t, ack)
			rej, ok := apperrors.AsGatewayRejection(err)
			require.True(t, ok, "expected a gateway rejection, got %v", err)

			var want map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.body), &want))
			assert.Equal(t, want, rej.Payload)
		})
	}
}

func TestInitiatePayment_TransportFailure(t *testing.T) {
	f := &fakeDaraja{stkStatus: http.StatusBadGateway, stkBody: `<html>bad gateway</html>`}
	c := newTestClient(t, f)

	_, err := c.InitiatePayment(context.Background(), paymentRequest())
	assert.ErrorIs(t, err, apperrors.ErrGatewayTransport)
	_, isRejection := apperrors.AsGatewayRejection(err)
	assert.False(t, isRejection)
}

func TestInitiatePayment_Unreachable(t *testing.T) {
	cfg := config.MpesaConfig{BaseURL: "http://127.0.0.1:1", ShortCode: "174379", Timeout: time.Second}
	c := newClient(cfg, http.DefaultTransport, time.Now)

	_, err := c.InitiatePayment(context.Background(), paymentRequest())
	assert.Error(t, err)
	assert.True(t, errorsIsAny(err, apperrors.ErrGatewayAuth, apperrors.ErrGatewayTransport))
}

func TestInitiatePayment_TokenFailure(t *testing.T) {
	f := &fakeDaraja{tokenStatus: http.StatusUnauthorized}
	c := newTestClient(t, f)

	_, err := c.InitiatePayment(context.Background(), paymentRequest())
	assert.ErrorIs(t, err, apperrors.ErrGatewayAuth)
	assert.Empty(t, f.lastAuthz, "push must not be sent without a token")
}

func TestInitiatePayment_CancelledContextSkipsTokenRequest(t *testing.T) {
	f := &fakeDaraja{stkBody: `{"ResponseCode":"0"}`}
	c := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.InitiatePayment(ctx, paymentRequest())
	assert.ErrorIs(t, err, apperrors.ErrGatewayAuth)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), f.tokenCalls.Load())
	assert.Empty(t, f.lastAuthz)

	// A later request with a live context still obtains a token.
	_, err = c.InitiatePayment(context.Background(), paymentRequest())
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.tokenCalls.Load())
}

func TestInitiatePayment_InvalidPhone(t *testing.T) {
	f := &fakeDaraja{stkBody: `{"ResponseCode":"0"}`}
	c := newTestClient(t, f)

	req := paymentRequest()
	req.PhoneNumber = "12345"
	_, err := c.InitiatePayment(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, int32(0), f.tokenCalls.Load())
}

func TestParseExpiresIn(t *testing.T) {
	assert.Equal(t, int64(3599), parseExpiresIn(json.RawMessage(`"3599"`)))
	assert.Equal(t, int64(3600), parseExpiresIn(json.RawMessage(`3600`)))
	assert.Equal(t, int64(0), parseExpiresIn(nil))
}

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
