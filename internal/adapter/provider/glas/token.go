package glas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/retry"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
)

// DefaultTokenTTL is how long a fetched bearer token is reused.
const DefaultTokenTTL = 50 * time.Minute

const tokenPath = "/Account/token"

// TokenProvider hands out bearer tokens for the GDS API.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Credentials are the form fields of the token request.
type Credentials struct {
	Username     string
	Password     string
	Channel      string
	WholesalerID string
}

// CachedTokenProvider fetches a token with the password grant and reuses it
// until its TTL elapses or Invalidate is called. Safe for concurrent use.
type CachedTokenProvider struct {
	baseURL    string
	creds      Credentials
	ttl        time.Duration
	clock      timeutil.Clock
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewCachedTokenProvider creates a token provider. A zero ttl means
// DefaultTokenTTL; a nil clock means the system clock.
func NewCachedTokenProvider(baseURL string, creds Credentials, ttl time.Duration, clock timeutil.Clock, httpClient *http.Client) *CachedTokenProvider {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if creds.Channel == "" {
		creds.Channel = "GWC"
	}
	return &CachedTokenProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		ttl:        ttl,
		clock:      clock,
		httpClient: httpClient,
	}
}

// Token returns the cached token, fetching a new one when none is valid.
// Concurrent callers wait for a single fetch.
func (p *CachedTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.clock.Now().Before(p.expiresAt) {
		return p.token, nil
	}

	token, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}
	p.token = token
	p.expiresAt = p.clock.Now().Add(p.ttl)
	return token, nil
}

// Invalidate drops the cached token so the next call fetches a new one.
func (p *CachedTokenProvider) Invalidate() {
	p.mu.Lock()
	p.token = ""
	p.expiresAt = time.Time{}
	p.mu.Unlock()
}

func (p *CachedTokenProvider) fetch(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("mode", "pass")
	form.Set("username", p.creds.Username)
	form.Set("password", p.creds.Password)
	form.Set("channel", p.creds.Channel)
	if p.creds.WholesalerID != "" {
		form.Set("defaultWholesalerId", p.creds.WholesalerID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return "", retry.NewPermanent(fmt.Errorf("%w: token endpoint answered %d", domain.ErrUnauthorized, resp.StatusCode))
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return "", &retry.StatusError{StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	token := extractToken(body)
	if token == "" {
		return "", retry.NewPermanent(fmt.Errorf("%w: token missing from response", domain.ErrUnauthorized))
	}
	return token, nil
}

// extractToken reads the token under any of the names the API has used.
func extractToken(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"access_token", "token", "Token", "AccessToken"} {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
