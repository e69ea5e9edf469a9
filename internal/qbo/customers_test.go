package qbo

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllCustomers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("query"), "STARTPOSITION 1")
		w.Write([]byte(`{"QueryResponse":{"Customer":[
			{"Id":"1","DisplayName":"Alice Smith","PrimaryEmailAddr":{"Address":"alice@example.com"}},
			{"Id":"2","DisplayName":"Bob Jones"}
		]}}`))
	}))
	defer server.Close()

	customers, err := testClient(server.URL).GetAllCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Alice Smith", customers[0].DisplayName)
	assert.Equal(t, "alice@example.com", customers[0].PrimaryEmailAddr.Address)
	assert.Nil(t, customers[1].PrimaryEmailAddr)
}

func TestGetCustomerByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	customer, err := testClient(server.URL).GetCustomerByID(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestSearchCustomersByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		assert.Contains(t, query, `DisplayName LIKE '%O\'Brien%'`, "quotes must be escaped")
		w.Write([]byte(`{"QueryResponse":{"Customer":[{"Id":"3","DisplayName":"O'Brien, Pat"}]}}`))
	}))
	defer server.Close()

	customers, err := testClient(server.URL).SearchCustomersByName(context.Background(), "O'Brien")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "3", customers[0].ID)
}

func TestExportCustomersCSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"QueryResponse":{"Customer":[
			{"Id":"1","DisplayName":"Alice Smith","PrimaryEmailAddr":{"Address":"alice@example.com"}}
		]}}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	n, err := testClient(server.URL).ExportCustomersCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "QBO_CustomerID,DisplayName,Email\n1,Alice Smith,alice@example.com\n", buf.String())
}
