package qbo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilledgarden/lmn2qbo/internal/invoice"
)

func testClient(url string) *Client {
	return NewClient(ClientConfig{
		AccessToken: "test-token",
		RealmID:     "9999",
		BaseURL:     url,
	})
}

func TestDueDate(t *testing.T) {
	base := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		terms string
		want  string
	}{
		{"Due on receipt", "2026-08-15"},
		{"Net 10", "2026-08-25"},
		{"Net 15", "2026-08-30"},
		{"Net 30", "2026-09-14"},
		{"Net 60", "2026-10-14"},
		{"something else", "2026-08-30"}, // unknown terms fall back to Net 15
	}
	for _, tc := range cases {
		got := DueDate(base, tc.terms).Format("2006-01-02")
		assert.Equal(t, tc.want, got, "terms %q", tc.terms)
	}
}

func TestBuildLineItem(t *testing.T) {
	item := invoice.LineItem{
		Description: "Skilled Garden Hourly Labor 8/05",
		Quantity:    decimal.RequireFromString("3.5"),
		Rate:        decimal.NewFromInt(85),
		Amount:      decimal.RequireFromString("297.50"),
	}
	ref := &Ref{Value: "42", Name: "Skilled Garden Hourly Labor"}

	line := BuildLineItem(item, 1, ref)

	assert.Equal(t, 1, line.LineNum)
	assert.Equal(t, "SalesItemLineDetail", line.DetailType)
	assert.Equal(t, 297.5, line.Amount)
	assert.Equal(t, 3.5, line.SalesItemLineDetail.Qty)
	assert.Equal(t, 85.0, line.SalesItemLineDetail.UnitPrice)
	assert.Equal(t, "42", line.SalesItemLineDetail.ItemRef.Value)
}

func TestCreateDraftInvoice(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/9999/invoice", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{"Invoice":{"Id":"321","DocNumber":"1045","TotalAmt":426.25}}`))
	}))
	defer server.Close()

	inv := invoice.InvoiceData{
		JobsiteID:    "J1",
		CustomerName: "Alice Smith",
		InvoiceDate:  "2026-08-15",
		LineItems: []invoice.LineItem{
			{Description: "Labor", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
		},
	}

	result := testClient(server.URL).CreateDraftInvoice(context.Background(), inv, "67", nil, "Net 15")

	require.True(t, result.Success, "error: %s", result.Err)
	assert.Equal(t, "321", result.InvoiceID)
	assert.Equal(t, "1045", result.InvoiceNumber)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("426.25")))

	assert.Equal(t, "67", captured["CustomerRef"].(map[string]interface{})["value"])
	assert.Equal(t, "2026-08-15", captured["TxnDate"])
	assert.Equal(t, "2026-08-30", captured["DueDate"])
	assert.Contains(t, captured["PrivateNote"], "JobsiteID: J1")
}

func TestCreateDraftInvoiceFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"Fault":{"Error":[{"Message":"Invalid Reference Id","Detail":"CustomerRef has invalid value","code":"2500"}]}}`))
	}))
	defer server.Close()

	inv := invoice.InvoiceData{JobsiteID: "J1", InvoiceDate: "2026-08-15"}
	result := testClient(server.URL).CreateDraftInvoice(context.Background(), inv, "bad", nil, "Net 15")

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "CustomerRef has invalid value")
	assert.Equal(t, "J1", result.JobsiteID)
}

func TestCreateDraftInvoiceBadDate(t *testing.T) {
	inv := invoice.InvoiceData{JobsiteID: "J1", InvoiceDate: "08/15/2026"}
	result := testClient("http://localhost:0").CreateDraftInvoice(context.Background(), inv, "67", nil, "Net 15")

	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "invalid invoice date")
}

func TestGetItemByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/9999/query", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("query"), "FROM Item")

		w.Write([]byte(`{"QueryResponse":{"Item":[{"Id":"42","Name":"Skilled Garden Hourly Labor"}]}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	ref, err := client.LaborItemRef(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "42", ref.Value)
}

func TestGetItemByNameMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"QueryResponse":{}}`))
	}))
	defer server.Close()

	ref, err := testClient(server.URL).LaborItemRef(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ref, "missing item is not an error")
}
