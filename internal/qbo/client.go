// Package qbo is a QuickBooks Online API client covering the operations this
// tool needs: draft invoice creation, item lookups, and the customer
// directory.
package qbo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	productionBaseURL = "https://quickbooks.api.intuit.com/v3/company"
	sandboxBaseURL    = "https://sandbox-quickbooks.api.intuit.com/v3/company"
)

// ClientConfig configures the QBO API client. Tokens come from the OAuth
// layer outside this package.
type ClientConfig struct {
	AccessToken string
	RealmID     string
	Environment string        // "production" (default) or "sandbox"
	BaseURL     string        // overrides the environment-derived URL when set
	Timeout     time.Duration // default 30 seconds
}

// Client is a QuickBooks Online API client scoped to one company (realm).
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	realmID     string
}

// NewClient creates a new QBO API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		if config.Environment == "sandbox" {
			baseURL = sandboxBaseURL
		} else {
			baseURL = productionBaseURL
		}
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: config.AccessToken,
		realmID:     config.RealmID,
	}
}

// get performs a GET against a company-scoped endpoint and decodes the
// response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.realmID, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// post performs a POST with a JSON body against a company-scoped endpoint.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.realmID, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeBody(r io.Reader, out interface{}) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseError extracts the human-readable detail from a QBO fault payload,
// falling back to the raw body.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("QBO API error (status %d): failed to read error response", resp.StatusCode)
	}

	var fault faultResponse
	if err := json.Unmarshal(body, &fault); err == nil && len(fault.Fault.Error) > 0 {
		e := fault.Fault.Error[0]
		if e.Detail != "" {
			return fmt.Errorf("QBO API error: %s", e.Detail)
		}
		if e.Message != "" {
			return fmt.Errorf("QBO API error: %s", e.Message)
		}
	}

	return fmt.Errorf("QBO API error (status %d): %s", resp.StatusCode, string(body))
}
