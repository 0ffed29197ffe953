package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ycl-dev/storefront/internal/common"
	"github.com/ycl-dev/storefront/internal/db"
)

const pgUniqueViolation = "23505"

// User is the safe subset of the account model returned to clients.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// Service handles account registration.
type Service struct {
	queries db.Querier
}

// NewService constructs a registration service.
func NewService(queries db.Querier) (*Service, error) {
	if queries == nil {
		return nil, errors.New("user: queries is required")
	}
	return &Service{queries: queries}, nil
}

// Register creates a new account holding the requested roles. A taken name
// is reported as a registration failure rather than a conflict so the
// response shape matches the rest of the API.
func (s *Service) Register(ctx context.Context, name, password string, roles []string) (User, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return User{}, registrationError("name is required", nil, nil)
	}
	if password == "" {
		return User{}, registrationError("password is required", nil, nil)
	}
	cleanRoles := trimRoles(roles)
	if len(cleanRoles) == 0 {
		return User{}, registrationError("at least one role is required", nil, nil)
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.queries.CreateUser(ctx, db.CreateUserParams{
		Name:         trimmed,
		PasswordHash: hash,
		Roles:        cleanRoles,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return User{}, registrationError("name is already taken", nil, err)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return User{
		ID:        uuidString(created.ID),
		Name:      created.Name,
		Roles:     created.Roles,
		CreatedAt: toTime(created.CreatedAt),
	}, nil
}

func trimRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		if trimmed := strings.TrimSpace(role); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func registrationError(message string, fieldErrors []string, err error) *common.AppError {
	appErr := common.NewAppError(common.StatusAddUserFail, message, http.StatusBadRequest, err)
	appErr.Errors = fieldErrors
	return appErr
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

func toTime(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time
}
