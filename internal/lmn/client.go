// Package lmn is a client for the LMN accounting API's job-matching
// endpoint, the base source of jobsite → QBO customer mappings.
package lmn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skilledgarden/lmn2qbo/internal/mapping"
)

// DefaultAPIURL is the production LMN accounting API base URL.
const DefaultAPIURL = "https://accounting-api.golmn.com"

// ClientConfig configures the LMN API client.
type ClientConfig struct {
	APIURL  string
	Token   string
	Timeout time.Duration // default 30 seconds
}

// Client calls the LMN accounting API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new LMN API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	baseURL := config.APIURL
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      config.Token,
	}
}

// JobMatch is one entry from the job-matching endpoint.
type JobMatch struct {
	JobsiteID    flexString `json:"JobsiteID"`
	AccountingID flexString `json:"AccountingID"`
	CustomerName string     `json:"CustomerName"`
	JobName      string     `json:"JobName"`
}

// flexString decodes JSON strings and numbers alike; LMN emits IDs as
// integers in some payloads.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = flexString(num.String())
	return nil
}

type jobMatchingResponse struct {
	Items []JobMatch `json:"lmnitems"`
}

// FetchJobMatching fetches the jobsite → accounting customer directory.
func (c *Client) FetchJobMatching(ctx context.Context) ([]JobMatch, error) {
	if c.token == "" {
		return nil, fmt.Errorf("LMN API token not configured")
	}

	url := c.baseURL + "/qbdata/jobmatching"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("LMN API error (status %d): %s", resp.StatusCode, string(body))
	}

	var matching jobMatchingResponse
	if err := json.NewDecoder(resp.Body).Decode(&matching); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return matching.Items, nil
}

// BuildMappings converts job-matching entries to a mapping table. Entries
// missing either ID are skipped; the display name falls back from customer
// name to job name.
func BuildMappings(items []JobMatch) mapping.Table {
	table := make(mapping.Table, len(items))
	for _, item := range items {
		if item.JobsiteID == "" || item.AccountingID == "" {
			continue
		}
		name := item.CustomerName
		if name == "" {
			name = item.JobName
		}
		table[string(item.JobsiteID)] = mapping.Mapping{
			JobsiteID:      string(item.JobsiteID),
			QBOCustomerID:  string(item.AccountingID),
			QBODisplayName: name,
			Notes:          "From LMN API",
		}
	}
	return table
}

// Mappings fetches the job-matching directory as a mapping table,
// implementing mapping.Provider.
func (c *Client) Mappings(ctx context.Context) (mapping.Table, error) {
	items, err := c.FetchJobMatching(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMappings(items), nil
}

// Name implements mapping.Provider.
func (c *Client) Name() string { return "lmn job matching" }
