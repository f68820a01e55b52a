package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
)

const ClientIDKey contextKey = "client_id"

// APIKeys checks X-API-Key against a fixed key set. An empty set disables
// the check. Each key is its own client for rate limiting.
func APIKeys(keys []string) func(http.Handler) http.Handler {
	valid := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			valid = append(valid, k)
		}
	}
	return func(next http.Handler) http.Handler {
		if len(valid) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				respondError(w, http.StatusUnauthorized, "authentication_required", "Authentication required", r)
				return
			}
			if !matchKey(valid, apiKey) {
				respondError(w, http.StatusUnauthorized, "invalid_api_key", "Invalid API key", r)
				return
			}
			ctx := context.WithValue(r.Context(), ClientIDKey, keyID(apiKey))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func matchKey(valid []string, key string) bool {
	for _, v := range valid {
		if subtle.ConstantTimeCompare([]byte(v), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// keyID is a stable digest of the full key, so keys sharing a prefix stay
// distinct and the raw key never reaches logs.
func keyID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "key_" + hex.EncodeToString(sum[:8])
}

func GetClientID(ctx context.Context) string {
	if id, ok := ctx.Value(ClientIDKey).(string); ok {
		return id
	}
	return ""
}

// ClientKey identifies the caller: the API key id when authenticated,
// otherwise the remote host.
func ClientKey(r *http.Request) string {
	if id := GetClientID(r.Context()); id != "" {
		return id
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i > 0 {
		host = host[:i]
	}
	if host == "" {
		return "anonymous"
	}
	return host
}
