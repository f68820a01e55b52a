package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seen)
}

func TestRecovery_ReturnsJSONError(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		RequestID, Recovery(discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotEmpty(t, body.Error.RequestID)
}

func TestLogging_WritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	}), RequestID, Logging(logger))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/v1/contractors/c1", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "PUT", line["method"])
	assert.Equal(t, float64(201), line["status"])
	assert.Equal(t, float64(5), line["size"])
	assert.NotEmpty(t, line["request_id"])
}

func TestAPIKeys(t *testing.T) {
	var client string
	h := APIKeys([]string{"secret-key-1", " "})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client = GetClientID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "nope", http.StatusUnauthorized},
		{"valid", "secret-key-1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, keyID("secret-key-1"), client)
	assert.Len(t, client, len("key_")+16)
	assert.NotContains(t, client, "secret")
}

func TestAPIKeys_DisabledWhenEmpty(t *testing.T) {
	h := APIKeys(nil)(http.HandlerFunc(ok))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_PerClientBurst(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	frozen := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }

	allowed, _ := rl.Allow("a")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("a")
	assert.True(t, allowed)
	allowed, wait := rl.Allow("a")
	assert.False(t, allowed)
	assert.InDelta(t, time.Second.Seconds(), wait.Seconds(), 0.01)

	allowed, _ = rl.Allow("b")
	assert.True(t, allowed, "clients are limited independently")

	frozen = frozen.Add(time.Second)
	allowed, _ = rl.Allow("a")
	assert.True(t, allowed, "one token refills per second at 60/min")
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	frozen := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }
	rl.Allow("a")

	frozen = frozen.Add(11 * time.Minute)
	rl.Prune(10 * time.Minute)
	assert.Empty(t, rl.limiters)
}

func TestRateLimit_Middleware(t *testing.T) {
	h := RateLimit(NewRateLimiter(60, 1))(http.HandlerFunc(ok))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "60", first.Header().Get("X-RateLimit-Limit"))

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestRateLimit_DisabledWhenZero(t *testing.T) {
	h := RateLimit(NewRateLimiter(0, 0))(http.HandlerFunc(ok))
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", ClientKey(req))
}

func TestClientKey_SharedPrefixKeysAreSeparateClients(t *testing.T) {
	keys := []string{"tenantA-secret-1", "tenantA-secret-2"}
	h := Chain(http.HandlerFunc(ok), APIKeys(keys), RateLimit(NewRateLimiter(60, 1)))

	assert.NotEqual(t, keyID(keys[0]), keyID(keys[1]))
	for _, k := range keys {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-Key", k)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, k)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", keys[0])
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
