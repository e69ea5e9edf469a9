package lmn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJobMatching(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/qbdata/jobmatching", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		// JobsiteID arrives as a number in some payloads.
		w.Write([]byte(`{"lmnitems":[
			{"JobsiteID":12345,"AccountingID":"67","CustomerName":"Alice Smith","JobName":"Smith Residence"},
			{"JobsiteID":"22222","AccountingID":"68","CustomerName":"","JobName":"Jones Garden"},
			{"JobsiteID":"33333","AccountingID":null,"CustomerName":"No Match","JobName":""}
		]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL, Token: "test-token"})

	items, err := client.FetchJobMatching(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "12345", string(items[0].JobsiteID), "numeric IDs coerce to strings")

	table := BuildMappings(items)
	require.Len(t, table, 2, "entries without an accounting ID are skipped")

	assert.Equal(t, "67", table["12345"].QBOCustomerID)
	assert.Equal(t, "Alice Smith", table["12345"].QBODisplayName)
	assert.Equal(t, "Jones Garden", table["22222"].QBODisplayName, "display name falls back to job name")
	assert.Equal(t, "From LMN API", table["12345"].Notes)
}

func TestFetchJobMatchingRequiresToken(t *testing.T) {
	client := NewClient(ClientConfig{APIURL: "http://localhost:0"})
	_, err := client.FetchJobMatching(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token not configured")
}

func TestFetchJobMatchingHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL, Token: "bad"})
	_, err := client.FetchJobMatching(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestMappingsImplementsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lmnitems":[{"JobsiteID":"J1","AccountingID":"1","CustomerName":"A","JobName":"B"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL, Token: "t"})
	assert.Equal(t, "lmn job matching", client.Name())

	table, err := client.Mappings(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 1)
}
