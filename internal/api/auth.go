package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"huonganh/internal/config"
)

// HTTPAuth guards the admin surface with static API keys.
type HTTPAuth struct {
	cfg     config.APIConfig
	clients map[string]config.APIClientKey
}

func NewHTTPAuth(cfg config.APIConfig) *HTTPAuth {
	m := make(map[string]config.APIClientKey, len(cfg.Auth.APIKeys))
	for _, k := range cfg.Auth.APIKeys {
		m[k.Key] = k
	}
	return &HTTPAuth{cfg: cfg, clients: m}
}

func (a *HTTPAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.cfg.Auth.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		header := strings.TrimSpace(a.cfg.Auth.HeaderAPIKey)
		if header == "" {
			header = "x-api-key"
		}

		apiKey := strings.TrimSpace(r.Header.Get(header))
		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "missing api key")
			return
		}

		client, ok := a.lookup(apiKey)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}

		if err := a.checkPermissions(client, r); err != nil {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// lookup compares in constant time to avoid leaking key prefixes.
func (a *HTTPAuth) lookup(apiKey string) (config.APIClientKey, bool) {
	for key, client := range a.clients {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			return client, true
		}
	}
	return config.APIClientKey{}, false
}

var errPermissionDenied = permissionError("permission denied")

type permissionError string

func (e permissionError) Error() string { return string(e) }

func (a *HTTPAuth) checkPermissions(client config.APIClientKey, r *http.Request) error {
	required := requiredPermission(r)
	if required == "" {
		return nil
	}
	// Empty permissions list means allow-all.
	if len(client.Permissions) == 0 {
		return nil
	}
	for _, p := range client.Permissions {
		if strings.TrimSpace(p) == required {
			return nil
		}
	}
	return errPermissionDenied
}

func requiredPermission(r *http.Request) string {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/v1/admin/bookings"):
		return "manage:bookings"
	case strings.HasPrefix(path, "/api/v1/admin/notifications"):
		return "manage:notifications"
	case strings.HasPrefix(path, "/api/v1/admin/stats"):
		return "read:stats"
	case strings.HasPrefix(path, "/api/v1/admin/"):
		return "manage:content"
	}
	return ""
}
