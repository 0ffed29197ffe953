package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/ycl-dev/storefront/internal/common"
	"github.com/ycl-dev/storefront/internal/db"
)

const defaultAccessTTL = 30 * time.Minute

// Service verifies credentials and issues signed access tokens.
type Service struct {
	queries   db.Querier
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
	signer    jwa.SignatureAlgorithm
	validator TokenValidator
	issuer    string
	audience  string
	clockSkew time.Duration
}

// Config configures the auth service.
type Config struct {
	Queries        db.Querier
	Secret         string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       string
	ClockSkew      time.Duration
}

// TokenResult bundles the signed access token with its expiry.
type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewService constructs a Service instance with sane defaults.
func NewService(cfg Config) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("auth: queries is required")
	}
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "storefront-api"
	}
	audience := strings.TrimSpace(cfg.Audience)
	if audience == "" {
		audience = "storefront-clients"
	}
	clockSkew := cfg.ClockSkew
	if clockSkew < 0 {
		clockSkew = 0
	}

	return &Service{
		queries:   cfg.Queries,
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
		signer:    jwa.HS256,
		validator: TokenValidator{
			Issuer:    issuer,
			Audience:  audience,
			ClockSkew: clockSkew,
			Algorithm: jwa.HS256,
		},
		issuer:    issuer,
		audience:  audience,
		clockSkew: clockSkew,
	}, nil
}

// WithNow allows tests to override the time provider.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// IssueToken verifies the supplied credentials and signs an access token
// carrying the user's name and roles. Unknown users and wrong passwords
// produce the same error so the endpoint does not leak which one failed.
func (s *Service) IssueToken(ctx context.Context, name, password string) (TokenResult, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || password == "" {
		return TokenResult{}, credentialError(nil)
	}

	dbUser, err := s.queries.GetUserByName(ctx, trimmed)
	if err != nil {
		return TokenResult{}, credentialError(err)
	}

	ok, err := argon2id.ComparePasswordAndHash(password, dbUser.PasswordHash)
	if err != nil || !ok {
		return TokenResult{}, credentialError(err)
	}

	subject := uuidString(dbUser.ID)
	if subject == "" {
		return TokenResult{}, errors.New("auth: invalid user identifier")
	}

	return s.signAccessToken(subject, dbUser.Name, dbUser.Roles)
}

// ParseAccessToken validates a signed token and returns the claims it carries.
func (s *Service) ParseAccessToken(token string) (common.Claims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return common.Claims{}, unauthorizedError("missing token", nil)
	}
	algorithm, err := extractTokenAlgorithm(trimmed)
	if err != nil {
		return common.Claims{}, unauthorizedError("invalid token", err)
	}
	if s.validator.Algorithm != "" && algorithm != s.validator.Algorithm {
		return common.Claims{}, unauthorizedError("invalid token", fmt.Errorf("unexpected token algorithm %s", algorithm))
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(algorithm, s.secret))
	if err != nil {
		return common.Claims{}, unauthorizedError("invalid token", err)
	}
	claims, err := s.validator.Validate(parsed, algorithm, s.now())
	if err != nil {
		return common.Claims{}, unauthorizedError("invalid token", err)
	}
	return claims, nil
}

func (s *Service) signAccessToken(subject, name string, roles []string) (TokenResult, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	builder := jwt.NewBuilder().
		Subject(subject).
		Issuer(s.issuer).
		Audience([]string{s.audience}).
		IssuedAt(now).
		NotBefore(now.Add(-s.clockSkew)).
		Expiration(expiresAt).
		Claim(claimName, name).
		Claim(claimRoles, roles)
	token, err := builder.Build()
	if err != nil {
		return TokenResult{}, fmt.Errorf("build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(s.signer, s.secret))
	if err != nil {
		return TokenResult{}, fmt.Errorf("sign token: %w", err)
	}
	return TokenResult{Token: string(signed), ExpiresAt: expiresAt}, nil
}

func extractTokenAlgorithm(token string) (jwa.SignatureAlgorithm, error) {
	message, err := jws.ParseString(token)
	if err != nil {
		return "", err
	}
	signatures := message.Signatures()
	if len(signatures) == 0 {
		return "", errors.New("auth: token contains no signatures")
	}
	var algorithm jwa.SignatureAlgorithm
	for _, sig := range signatures {
		headers := sig.ProtectedHeaders()
		if headers == nil {
			return "", errors.New("auth: token missing protected headers")
		}
		alg := headers.Algorithm()
		if alg == "" {
			return "", errors.New("auth: token missing algorithm")
		}
		if alg == jwa.NoSignature {
			return "", errors.New("auth: token uses none algorithm")
		}
		if algorithm == "" {
			algorithm = alg
		} else if algorithm != alg {
			return "", errors.New("auth: mixed token algorithms detected")
		}
	}
	return algorithm, nil
}

func credentialError(err error) *common.AppError {
	return common.NewAppError(common.StatusUserNotFound, "invalid name or password", http.StatusBadRequest, err)
}

func unauthorizedError(message string, err error) *common.AppError {
	return common.NewAppError(common.StatusFail, message, http.StatusUnauthorized, err)
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}
