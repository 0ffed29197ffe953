package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/ycl-dev/storefront/internal/common"
)

const (
	claimName  = "name"
	claimRoles = "roles"
)

// TokenValidator checks a parsed access token against the API's issuer,
// audience, clock, and algorithm expectations, then extracts the identity
// claims the authorization gate consumes. Role names ride in a custom
// "roles" claim so request handling never re-reads them from storage.
type TokenValidator struct {
	Issuer    string
	Audience  string
	ClockSkew time.Duration
	Algorithm jwa.SignatureAlgorithm
}

// Validate verifies the token and returns the claims it carries. A token
// that fails any contextual check yields zero claims.
func (v TokenValidator) Validate(tok jwt.Token, algorithm jwa.SignatureAlgorithm, now time.Time) (common.Claims, error) {
	if tok == nil {
		return common.Claims{}, errors.New("auth: token is nil")
	}

	if algorithm == "" {
		return common.Claims{}, errors.New("auth: token missing algorithm")
	}
	if v.Algorithm != "" && algorithm != v.Algorithm {
		return common.Claims{}, fmt.Errorf("auth: unexpected token algorithm %s", algorithm)
	}

	options := []jwt.ValidateOption{
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
	}
	if v.ClockSkew > 0 {
		options = append(options, jwt.WithAcceptableSkew(v.ClockSkew))
	}
	if v.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.Issuer))
	}
	if v.Audience != "" {
		options = append(options, jwt.WithAudience(v.Audience))
	}

	if err := jwt.Validate(tok, options...); err != nil {
		return common.Claims{}, err
	}
	return v.claims(tok), nil
}

func (v TokenValidator) claims(tok jwt.Token) common.Claims {
	claims := common.Claims{UserID: tok.Subject()}
	if raw, ok := tok.Get(claimName); ok {
		if name, ok := raw.(string); ok {
			claims.Name = name
		}
	}
	if raw, ok := tok.Get(claimRoles); ok {
		claims.Roles = roleNames(raw)
	}
	return claims
}

// roleNames tolerates the shapes a roles claim takes after JSON round
// trips: a string slice when freshly built, []any once parsed, or a bare
// string from hand-built tokens.
func roleNames(v any) []string {
	switch values := v.(type) {
	case []string:
		return values
	case []any:
		out := make([]string, 0, len(values))
		for _, item := range values {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if values == "" {
			return nil
		}
		return []string{values}
	default:
		return nil
	}
}
