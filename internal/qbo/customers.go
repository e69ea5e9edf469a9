package qbo

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GetAllCustomers fetches every customer in the company file, paginating
// with STARTPOSITION.
func (c *Client) GetAllCustomers(ctx context.Context) ([]Customer, error) {
	const maxResults = 1000

	var customers []Customer
	startPosition := 1

	for {
		query := fmt.Sprintf("SELECT * FROM Customer STARTPOSITION %d MAXRESULTS %d",
			startPosition, maxResults)

		var resp queryResponse
		if err := c.get(ctx, "query", queryParams(query), &resp); err != nil {
			return nil, err
		}

		batch := resp.QueryResponse.Customer
		if len(batch) == 0 {
			break
		}

		customers = append(customers, batch...)
		startPosition += len(batch)

		if len(batch) < maxResults {
			break
		}
	}

	return customers, nil
}

// GetCustomerByID fetches a single customer. Returns nil when not found.
func (c *Client) GetCustomerByID(ctx context.Context, customerID string) (*Customer, error) {
	endpoint := fmt.Sprintf("%s/%s/customer/%s", c.baseURL, c.realmID, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var cr customerResponse
	if err := decodeBody(resp.Body, &cr); err != nil {
		return nil, err
	}
	return &cr.Customer, nil
}

// SearchCustomersByName searches customers whose display name contains the
// query (case per QBO's LIKE semantics).
func (c *Client) SearchCustomersByName(ctx context.Context, name string) ([]Customer, error) {
	query := fmt.Sprintf("SELECT * FROM Customer WHERE DisplayName LIKE '%%%s%%'", escapeQuery(name))

	var resp queryResponse
	if err := c.get(ctx, "query", queryParams(query), &resp); err != nil {
		return nil, err
	}
	return resp.QueryResponse.Customer, nil
}

// ExportCustomersCSV writes all customers as a reference CSV for building
// the jobsite mapping by hand.
func (c *Client) ExportCustomersCSV(ctx context.Context, w io.Writer) (int, error) {
	customers, err := c.GetAllCustomers(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"QBO_CustomerID", "DisplayName", "Email"}); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	for _, customer := range customers {
		email := ""
		if customer.PrimaryEmailAddr != nil {
			email = customer.PrimaryEmailAddr.Address
		}
		if err := cw.Write([]string{customer.ID, customer.DisplayName, email}); err != nil {
			return 0, fmt.Errorf("failed to write customer row: %w", err)
		}
	}
	cw.Flush()
	return len(customers), cw.Error()
}

// escapeQuery escapes single quotes for QBO query strings.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func queryParams(query string) url.Values {
	return url.Values{"query": []string{query}}
}
