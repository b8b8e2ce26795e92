package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

type Config struct {
	Host           string
	CompanyID      string
	EntityID       string
	ConsumerKey    string
	ConsumerSecret string
	ClientCertPath string
	ClientKeyPath  string
	RequestTimeout time.Duration
}

// Client owns bearer-token acquisition and low-level request handling
// against the financing gateway. Connectors never touch net/http directly.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      domain.TokenCache
	encryptor  domain.Encryptor

	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.FinancingMetrics
}

func NewClient(cfg Config, cache domain.TokenCache, encryptor domain.Encryptor) (*Client, error) {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ClientCertPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("gateway: load client certificate: %w", err)
		}
		transport.TLSClientConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		cache:     cache,
		encryptor: encryptor,
	}, nil
}

// RequestOptions carries the per-call correlation identity. An empty
// ClientRequestID defaults to a fresh UUID; callers pass the merchant
// reference here to make the call idempotent on the provider side.
type RequestOptions struct {
	ClientRequestID string
	MerchantNumber  string
}

// Do issues one authenticated gateway call and decodes the 2xx response body
// into out. HTTP 400 becomes an aggregated *domain.ValidationError, other
// error statuses a *domain.HTTPError, transport failures a
// *domain.TransportError.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions, body, out any) error {
	token, err := c.APIKey(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Host+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}

	clientRequestID := opts.ClientRequestID
	if clientRequestID == "" {
		clientRequestID = uuid.NewString()
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("request-id", uuid.NewString())
	req.Header.Set("client-request-id", clientRequestID)
	req.Header.Set("company-id", c.cfg.CompanyID)
	req.Header.Set("entity-id", c.cfg.EntityID)
	if opts.MerchantNumber != "" {
		req.Header.Set("merchant-number", opts.MerchantNumber)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	c.observeCall(path, started)
	if err != nil {
		c.observeError(path, "transport")
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observeError(path, "transport")
		return &domain.TransportError{Err: err}
	}

	if resp.StatusCode == http.StatusBadRequest {
		c.observeError(path, "validation")
		return parseValidationErrors(responseBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observeError(path, "http")
		return &domain.HTTPError{StatusCode: resp.StatusCode, Body: string(responseBody)}
	}
	if out != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("gateway: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) observeCall(path string, started time.Time) {
	if c.Metrics != nil {
		c.Metrics.RecordGatewayCall(path, time.Since(started).Seconds())
	}
}

func (c *Client) observeError(path, errorType string) {
	if c.Metrics != nil {
		c.Metrics.RecordGatewayError(path, errorType)
	}
}

type errorResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

func parseValidationErrors(body []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Errors) == 0 {
		return &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "__all__", Message: string(body)},
		}}
	}
	return &domain.ValidationError{Errors: parsed.Errors}
}
