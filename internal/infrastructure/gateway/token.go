package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crestline/financing-service/internal/domain"
)

// The cache key carries a format version so layout changes invalidate old
// entries safely.
const (
	tokenCacheKey = "financing:gateway:token:v2"

	// Tokens are refreshed this long before actual expiry to avoid races
	// with in-flight requests.
	tokenExpiryGrace = 10 * time.Minute
)

type cachedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// APIKey returns a cached bearer token unless it is within the expiry grace
// window, otherwise performs a client-credentials exchange and caches the
// encrypted result with TTL equal to the remaining lifetime. Concurrent
// refreshes are tolerated: a duplicate token is harmless, merely wasteful.
func (c *Client) APIKey(ctx context.Context) (string, error) {
	if token, ok := c.cachedAPIKey(ctx); ok {
		return token, nil
	}
	return c.refreshAPIKey(ctx)
}

func (c *Client) cachedAPIKey(ctx context.Context) (string, bool) {
	encoded, found, err := c.cache.Get(ctx, tokenCacheKey)
	if err != nil {
		slog.Warn("token cache read failed", "error", err.Error())
		return "", false
	}
	if !found {
		return "", false
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	plaintext, ok := c.encryptor.Decrypt(ciphertext)
	if !ok {
		return "", false
	}
	var token cachedToken
	if err := json.Unmarshal([]byte(plaintext), &token); err != nil {
		return "", false
	}
	if time.Until(token.ExpiresAt) <= tokenExpiryGrace {
		return "", false
	}
	return token.AccessToken, true
}

func (c *Client) refreshAPIKey(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("gateway: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.HTTPError{StatusCode: resp.StatusCode, Body: "token exchange failed"}
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("gateway: decode token response: %w", err)
	}

	if c.Metrics != nil {
		c.Metrics.RecordTokenRefresh("cache_miss")
	}
	expiresAt := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	c.storeAPIKey(ctx, cachedToken{AccessToken: token.AccessToken, ExpiresAt: expiresAt})
	return token.AccessToken, nil
}

func (c *Client) storeAPIKey(ctx context.Context, token cachedToken) {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(token)
	if err != nil {
		slog.Warn("token cache marshal failed", "error", err.Error())
		return
	}
	ciphertext, err := c.encryptor.Encrypt(string(payload))
	if err != nil {
		slog.Warn("token cache encrypt failed", "error", err.Error())
		return
	}
	if err := c.cache.Set(ctx, tokenCacheKey, base64.StdEncoding.EncodeToString(ciphertext), ttl); err != nil {
		slog.Warn("token cache write failed", "error", err.Error())
	}
}
