package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BIDROOM_CONFIG", "PORT", "LOG_LEVEL", "STORE_BACKEND", "MONGO_URI", "POSTGRES_DSN",
		"FIRESTORE_PROJECT", "NATS_URL", "EVENTS_WEBHOOK_URL", "API_KEYS",
		"RATE_LIMIT_PER_MINUTE", "DEFAULT_MATCH_LIMIT", "READ_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Backend())
	assert.Equal(t, 10, cfg.DefaultMatchLimit)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bidroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
store: postgres
postgres_dsn: postgres://localhost/bidroom
api_keys: [alpha, beta]
read_timeout: 3s
default_match_limit: 5
`), 0o600))
	t.Setenv("BIDROOM_CONFIG", path)
	t.Setenv("PORT", "9100")
	t.Setenv("API_KEYS", "gamma, delta ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.Backend())
	assert.Equal(t, "postgres://localhost/bidroom", cfg.PostgresDSN)
	assert.Equal(t, []string{"gamma", "delta"}, cfg.APIKeys)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5, cfg.DefaultMatchLimit)
}

func TestBackendInferredFromMongoURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMongo, cfg.Backend())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without dsn", map[string]string{"STORE_BACKEND": "postgres"}},
		{"firestore without project", map[string]string{"STORE_BACKEND": "firestore"}},
		{"mongo without uri", map[string]string{"STORE_BACKEND": "mongo"}},
		{"unknown backend", map[string]string{"STORE_BACKEND": "redis"}},
		{"bad match limit", map[string]string{"DEFAULT_MATCH_LIMIT": "0"}},
		{"missing file", map[string]string{"BIDROOM_CONFIG": "/does/not/exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	t.Setenv("READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}
