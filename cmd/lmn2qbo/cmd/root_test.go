package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilledgarden/lmn2qbo/internal/config"
	"github.com/skilledgarden/lmn2qbo/internal/mapping"
)

func TestFileOnlyResolverNeverCallsTheAPI(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"lmnitems":[]}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "mapping.csv")
	require.NoError(t, mapping.SaveFile(path, mapping.Table{
		"J1": {JobsiteID: "J1", QBOCustomerID: "42"},
	}))

	// Fully configured LMN credentials must still be ignored.
	cfg = &config.Config{
		MappingFile: path,
		LMN:         config.LMNConfig{APIURL: server.URL, Token: "tok"},
	}

	table := fileOnlyResolver().Load(context.Background())

	assert.Equal(t, int64(0), atomic.LoadInt64(&calls), "preview resolution must stay offline")
	require.Len(t, table, 1)
	assert.Equal(t, "42", table["J1"].QBOCustomerID)
}
