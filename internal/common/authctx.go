package common

import (
	"context"
	"slices"
)

// Claims carries the identity facts embedded in an access token.
type Claims struct {
	UserID string
	Name   string
	Roles  []string
}

// HasRole reports whether the claims include the given role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

type ctxKey string

const claimsKey ctxKey = "auth/claims"

// WithClaims stores the authenticated token claims on the provided context.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom extracts the authenticated claims from the context if present.
func ClaimsFrom(ctx context.Context) (Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}

// UserID extracts the authenticated user identifier from the context if present.
func UserID(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFrom(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
