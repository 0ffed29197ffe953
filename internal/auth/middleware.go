package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ycl-dev/storefront/internal/common"
)

var errNoToken = errors.New("auth: token missing")

// Middleware wires authentication context into HTTP handlers.
type Middleware struct {
	Service *Service
}

// RequireAuth enforces that a valid bearer token is present before executing
// the next handler. The token's claims are attached to the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticateRequest(r)
		if err != nil {
			common.RespondError(w, http.StatusUnauthorized, common.StatusFail, "missing or invalid token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(common.WithClaims(r.Context(), claims)))
	})
}

// RequireRole enforces that the authenticated token carries the given role.
// It must run after RequireAuth.
func (m Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := common.ClaimsFrom(r.Context())
			if !ok {
				common.RespondError(w, http.StatusUnauthorized, common.StatusFail, "missing or invalid token", nil)
				return
			}
			if !claims.HasRole(role) {
				common.RespondError(w, http.StatusForbidden, common.StatusFail, "insufficient role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) authenticateRequest(r *http.Request) (common.Claims, error) {
	if m.Service == nil {
		return common.Claims{}, errors.New("auth: service not configured")
	}
	token := extractToken(r)
	if token == "" {
		return common.Claims{}, errNoToken
	}
	return m.Service.ParseAccessToken(token)
}

func extractToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
