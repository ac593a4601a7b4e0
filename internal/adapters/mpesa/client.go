// Package mpesa initiates Lipa na M-Pesa Online (STK push) payments through the Daraja API.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
	"github.com/msaadaplus/msaada_backend/internal/platform/config"
	"github.com/msaadaplus/msaada_backend/internal/utils"
)

const (
	tokenPath = "/oauth/v1/generate?grant_type=client_credentials"
	stkPath   = "/mpesa/stkpush/v1/processrequest"

	timestampLayout = "20060102150405"
	transactionType = "CustomerPayBillOnline"
	acceptedCode    = "0"
)

// STKPushRequest is the Daraja STK push body.
type STKPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// Client is a PaymentGateway backed by Daraja.
type Client struct {
	cfg        config.MpesaConfig
	httpClient *http.Client
	tokens     *tokenCache
}

var _ clients.PaymentGateway = (*Client)(nil)

// NewClient creates a Daraja client. Access tokens are cached until they expire.
func NewClient(cfg config.MpesaConfig) *Client {
	return newClient(cfg, http.DefaultTransport, time.Now)
}

func newClient(cfg config.MpesaConfig, base http.RoundTripper, now func() time.Time) *Client {
	src := &tokenSource{
		httpClient:     &http.Client{Transport: base, Timeout: cfg.Timeout},
		tokenURL:       cfg.BaseURL + tokenPath,
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		now:            now,
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Transport: base, Timeout: cfg.Timeout},
		tokens:     &tokenCache{src: src},
	}
}

// Password derives the STK push password: Base64(shortcode + passkey + timestamp).
func Password(shortCode, passKey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passKey + timestamp))
}

// BuildSTKPushRequest assembles the push body for req. Amounts are rounded up to whole shillings.
func (c *Client) BuildSTKPushRequest(req domain.PaymentRequest) (STKPushRequest, error) {
	phone, err := utils.NormalizeMSISDN(req.PhoneNumber)
	if err != nil {
		return STKPushRequest{}, apperrors.Newf(apperrors.ErrValidation, "%s", err.Error())
	}
	ts := req.Timestamp.Format(timestampLayout)
	return STKPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          Password(c.cfg.ShortCode, c.cfg.PassKey, ts),
		Timestamp:         ts,
		TransactionType:   transactionType,
		Amount:            req.Amount.Ceil().IntPart(),
		PartyA:            phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  req.AccountReference,
		TransactionDesc:   req.Description,
	}, nil
}

// InitiatePayment sends an STK push prompt to the payer's phone.
func (c *Client) InitiatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentAck, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	body, err := c.BuildSTKPushRequest(req)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", apperrors.ErrGatewayTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+stkPath, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrGatewayTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		logger.Error("M-Pesa token request failed", slog.String("error", err.Error()))
		return nil, err
	}
	tok.SetAuthHeader(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("M-Pesa STK push request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrGatewayTransport, err)
	}
	defer resp.Body.Close()

	payload, err := decodePayload(resp.Body)
	if err != nil {
		logger.Error("M-Pesa returned an unreadable response", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGatewayTransport, err)
	}

	code, _ := payload["ResponseCode"].(string)
	if resp.StatusCode != http.StatusOK || code != acceptedCode {
		logger.Warn("M-Pesa rejected STK push", slog.Int("status", resp.StatusCode), slog.Any("payload", payload))
		return nil, &apperrors.GatewayRejection{Payload: payload}
	}

	merchantID, _ := payload["MerchantRequestID"].(string)
	checkoutID, _ := payload["CheckoutRequestID"].(string)
	logger.Info("M-Pesa STK push accepted", slog.String("checkout_request_id", checkoutID))
	return &domain.PaymentAck{
		MerchantRequestID: merchantID,
		CheckoutRequestID: checkoutID,
		Payload:           payload,
	}, nil
}

func decodePayload(r io.Reader) (map[string]any, error) {
	var payload map[string]any
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload == nil {
		return nil, errors.New("empty response body")
	}
	return payload, nil
}
