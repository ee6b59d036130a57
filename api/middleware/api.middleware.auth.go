package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/farmsense/herdhub/internal/errors"
)

// TokenConfig holds the static bearer token collectors and dashboards
// authenticate with. An empty token disables authentication (local
// development).
type TokenConfig struct {
	APIToken string
}

type TokenMiddleware struct {
	config TokenConfig
}

func NewTokenMiddleware(config TokenConfig) *TokenMiddleware {
	return &TokenMiddleware{config: config}
}

// Authenticate validates the bearer token on protected routes
func (t *TokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.config.APIToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(t.config.APIToken)) != 1 {
			handleError(w, errors.NewAuthError("invalid token", nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if len(bearer) > 7 && strings.ToUpper(bearer[0:6]) == "BEARER" {
		return bearer[7:]
	}
	return ""
}

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		http.Error(w, apiErr.Message, apiErr.Code)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
