package mpesa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/msaadaplus/msaada_backend/internal/apperrors"
	"golang.org/x/oauth2"
)

// tokenSource fetches Daraja access tokens. Daraja issues them from a GET endpoint with
// basic auth and reports expires_in as a string, so oauth2's clientcredentials flow
// cannot be used directly.
type tokenSource struct {
	httpClient     *http.Client
	tokenURL       string
	consumerKey    string
	consumerSecret string
	now            func() time.Time
}

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   json.RawMessage `json:"expires_in"`
}

// fetch requests a new access token. Cancelling ctx aborts the request.
func (s *tokenSource) fetch(ctx context.Context) (*oauth2.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tokenURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build token request: %v", apperrors.ErrGatewayAuth, err)
	}
	req.SetBasicAuth(s.consumerKey, s.consumerSecret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrGatewayAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned %d", apperrors.ErrGatewayAuth, resp.StatusCode)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %v", apperrors.ErrGatewayAuth, err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", apperrors.ErrGatewayAuth)
	}

	tok := &oauth2.Token{AccessToken: body.AccessToken, TokenType: "Bearer"}
	if secs := parseExpiresIn(body.ExpiresIn); secs > 0 {
		tok.Expiry = s.now().Add(time.Duration(secs) * time.Second)
	}
	return tok, nil
}

// boundSource is an oauth2.TokenSource fetching with the context of one payment request.
type boundSource struct {
	ctx context.Context
	src *tokenSource
}

func (b boundSource) Token() (*oauth2.Token, error) {
	return b.src.fetch(b.ctx)
}

// tokenCache keeps the last access token and refreshes it through the caller's context
// once it expires.
type tokenCache struct {
	mu     sync.Mutex
	src    *tokenSource
	cached *oauth2.Token
}

func (c *tokenCache) Token(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tok, err := oauth2.ReuseTokenSource(c.cached, boundSource{ctx: ctx, src: c.src}).Token()
	if err != nil {
		return nil, err
	}
	c.cached = tok
	return tok, nil
}

// parseExpiresIn accepts both "3599" and 3599.
func parseExpiresIn(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	}
	var n int64
	_ = json.Unmarshal(raw, &n)
	return n
}
