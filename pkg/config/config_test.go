package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
url: https://db.example.com/rest/v1
schema: audit
apiKey: anon-key
headers:
  X-Client-Info: pgrest-test
timeout: 5s
retry:
  enabled: true
  maxRetries: 2
  initialBackoff: 50ms
logLevel: debug
`

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pgrest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "https://db.example.com/rest/v1", cfg.URL)
	assert.Equal(t, "audit", cfg.Schema)
	assert.Equal(t, "anon-key", cfg.APIKey)
	assert.Equal(t, "pgrest-test", cfg.Headers["x-client-info"])
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Retry.Enabled)
	assert.Equal(t, 2, cfg.Retry.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Retry.InitialBackoff)
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxBackoff)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.URL, cfg.URL)
	assert.Equal(t, d.Timeout, cfg.Timeout)
	assert.Equal(t, d.Retry, cfg.Retry)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PGREST_SCHEMA=from_dotenv\n"), 0o600))
	// godotenv sets the variable for the whole process
	t.Cleanup(func() { os.Unsetenv("PGREST_SCHEMA") })
	t.Setenv("PGREST_URL", "http://env:3000")
	t.Setenv("PGREST_RETRY_ENABLED", "true")
	t.Setenv("PGREST_TIMEOUT", "2s")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://env:3000", cfg.URL)
	assert.Equal(t, "from_dotenv", cfg.Schema)
	assert.True(t, cfg.Retry.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoadInvalidFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(writeConfig(t, "url: [unterminated"))
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	cfg := Default()
	cfg.APIKey = "anon-key"
	cfg.Schema = "audit"
	cfg.Headers = map[string]string{"X-Client-Info": "pgrest-test"}

	client, err := cfg.NewClient(nil)
	require.NoError(t, err)

	b := client.From("messages").Select("*")
	assert.Equal(t, "Bearer anon-key", b.Header().Get("Authorization"))
	assert.Equal(t, "pgrest-test", b.Header().Get("X-Client-Info"))
	assert.Equal(t, "/messages", b.URL().Path)

	cfg.URL = "not a url"
	_, err = cfg.NewClient(nil)
	assert.Error(t, err)
}
