package keysvc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the remote key-management service backing envelope
// encryption.
type Client struct {
	host       string
	apiToken   string
	httpClient *http.Client
}

func NewClient(host, apiToken string) *Client {
	return &Client{
		host:     host,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type dataKeyResponse struct {
	PlaintextKey string `json:"plaintext_key"`
	WrappedKey   string `json:"wrapped_key"`
}

type unwrapRequest struct {
	WrappedKey string `json:"wrapped_key"`
}

type unwrapResponse struct {
	PlaintextKey string `json:"plaintext_key"`
}

func (c *Client) GenerateDataKey(ctx context.Context) ([]byte, []byte, error) {
	var out dataKeyResponse
	if err := c.post(ctx, "/v1/keys/data-key", nil, &out); err != nil {
		return nil, nil, err
	}
	plain, err := base64.StdEncoding.DecodeString(out.PlaintextKey)
	if err != nil {
		return nil, nil, fmt.Errorf("keysvc: decode plaintext key: %w", err)
	}
	wrapped, err := base64.StdEncoding.DecodeString(out.WrappedKey)
	if err != nil {
		return nil, nil, fmt.Errorf("keysvc: decode wrapped key: %w", err)
	}
	return plain, wrapped, nil
}

func (c *Client) UnwrapDataKey(ctx context.Context, wrappedKey []byte) ([]byte, error) {
	in := unwrapRequest{WrappedKey: base64.StdEncoding.EncodeToString(wrappedKey)}
	var out unwrapResponse
	if err := c.post(ctx, "/v1/keys/unwrap", &in, &out); err != nil {
		return nil, err
	}
	plain, err := base64.StdEncoding.DecodeString(out.PlaintextKey)
	if err != nil {
		return nil, fmt.Errorf("keysvc: decode plaintext key: %w", err)
	}
	return plain, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("keysvc: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, reader)
	if err != nil {
		return fmt.Errorf("keysvc: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("keysvc: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("keysvc: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("keysvc: HTTP %d: %s", resp.StatusCode, string(responseBody))
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("keysvc: decode response: %w", err)
	}
	return nil
}
