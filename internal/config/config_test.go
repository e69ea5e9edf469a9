package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "CUSTOMER_MAPPING_FILE", "LMN_API_TOKEN",
		"QBO_ACCESS_TOKEN", "QBO_REALM_ID", "QBO_ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "config/customer_mapping.csv", cfg.MappingFile)
	assert.Equal(t, "production", cfg.QBO.Environment)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.HasDatabase())
	assert.False(t, cfg.HasLMN())
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "QBO_ACCESS_TOKEN=tok\nQBO_REALM_ID=9999\nLMN_API_TOKEN=lt\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("QBO_ACCESS_TOKEN", "")
	os.Unsetenv("QBO_ACCESS_TOKEN")
	t.Setenv("QBO_REALM_ID", "")
	os.Unsetenv("QBO_REALM_ID")
	t.Setenv("LMN_API_TOKEN", "")
	os.Unsetenv("LMN_API_TOKEN")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.QBO.AccessToken)
	assert.Equal(t, "9999", cfg.QBO.RealmID)
	assert.True(t, cfg.HasLMN())
	assert.NoError(t, cfg.RequireQBO())
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestRequireQBO(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireQBO()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QBO_ACCESS_TOKEN")
	assert.Contains(t, err.Error(), "QBO_REALM_ID")

	cfg.QBO.AccessToken = "tok"
	err = cfg.RequireQBO()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "QBO_ACCESS_TOKEN")
}

func TestRequireDatabase(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireDatabase())
	cfg.DatabaseURL = "postgres://localhost/lmn2qbo"
	assert.NoError(t, cfg.RequireDatabase())
}
