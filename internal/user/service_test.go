package user

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ycl-dev/storefront/internal/common"
	"github.com/ycl-dev/storefront/internal/db"
)

var errNotImplemented = errors.New("not implemented")

type fakeQueries struct {
	mu          sync.Mutex
	usersByName map[string]db.User
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{usersByName: make(map[string]db.User)}
}

func (f *fakeQueries) CreateUser(_ context.Context, arg db.CreateUserParams) (db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.usersByName[arg.Name]; exists {
		return db.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_name_key"}
	}
	id := uuid.New()
	var pgid pgtype.UUID
	copy(pgid.Bytes[:], id[:])
	pgid.Valid = true
	user := db.User{
		ID:           pgid,
		Name:         arg.Name,
		PasswordHash: arg.PasswordHash,
		Roles:        arg.Roles,
	}
	f.usersByName[arg.Name] = user
	return user, nil
}

func (f *fakeQueries) GetUserByName(_ context.Context, name string) (db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.usersByName[name]
	if !ok {
		return db.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeQueries) GetUserByID(context.Context, pgtype.UUID) (db.User, error) {
	return db.User{}, errNotImplemented
}

func (f *fakeQueries) CreateProduct(context.Context, db.CreateProductParams) (db.Product, error) {
	return db.Product{}, errNotImplemented
}

func (f *fakeQueries) GetProductByID(context.Context, pgtype.UUID) (db.Product, error) {
	return db.Product{}, errNotImplemented
}

func (f *fakeQueries) ListProducts(context.Context) ([]db.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) UpdateProduct(context.Context, db.UpdateProductParams) (db.Product, error) {
	return db.Product{}, errNotImplemented
}

func (f *fakeQueries) DeleteProduct(context.Context, pgtype.UUID) (int64, error) {
	return 0, errNotImplemented
}

func (f *fakeQueries) CreateOrder(context.Context, pgtype.UUID) (db.Order, error) {
	return db.Order{}, errNotImplemented
}

func (f *fakeQueries) CreateOrderDetail(context.Context, db.CreateOrderDetailParams) (db.OrderDetail, error) {
	return db.OrderDetail{}, errNotImplemented
}

func (f *fakeQueries) ListOrderDetailsByUser(context.Context, pgtype.UUID) ([]db.ListOrderDetailsByUserRow, error) {
	return nil, errNotImplemented
}

func (f *fakeQueries) WithTx(pgx.Tx) db.Querier { return f }

func TestServiceRegisterSuccess(t *testing.T) {
	queries := newFakeQueries()
	svc, err := NewService(queries)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Register(context.Background(), "Alice", "Password1", []string{"User"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected user id")
	}
	if created.Name != "Alice" {
		t.Fatalf("unexpected name: %s", created.Name)
	}
	if len(created.Roles) != 1 || created.Roles[0] != "User" {
		t.Fatalf("unexpected roles: %v", created.Roles)
	}

	stored, err := queries.GetUserByName(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("get stored user: %v", err)
	}
	ok, err := argon2id.ComparePasswordAndHash("Password1", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatal("expected stored hash to verify against the original password")
	}
	if stored.PasswordHash == "Password1" {
		t.Fatal("password must not be stored in plain text")
	}
}

func TestServiceRegisterDuplicateName(t *testing.T) {
	queries := newFakeQueries()
	svc, _ := NewService(queries)

	if _, err := svc.Register(context.Background(), "Alice", "Password1", []string{"User"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Alice", "Password2", []string{"User"})
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Status != common.StatusAddUserFail {
		t.Fatalf("unexpected status: %s", appErr.Status)
	}
	if appErr.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("unexpected http status: %d", appErr.HTTPStatus)
	}
}

func TestServiceRegisterHonorsRequestedRoles(t *testing.T) {
	queries := newFakeQueries()
	svc, _ := NewService(queries)

	created, err := svc.Register(context.Background(), "Root", "Password1", []string{"Admin", "User"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(created.Roles) != 2 || created.Roles[0] != "Admin" || created.Roles[1] != "User" {
		t.Fatalf("unexpected roles: %v", created.Roles)
	}

	stored, err := queries.GetUserByName(context.Background(), "Root")
	if err != nil {
		t.Fatalf("get stored user: %v", err)
	}
	if len(stored.Roles) != 2 || stored.Roles[0] != "Admin" || stored.Roles[1] != "User" {
		t.Fatalf("stored roles: %v", stored.Roles)
	}
}

func TestServiceRegisterRejectsEmptyRoles(t *testing.T) {
	svc, _ := NewService(newFakeQueries())

	for _, roles := range [][]string{nil, {}, {"  "}} {
		_, err := svc.Register(context.Background(), "Alice", "Password1", roles)
		var appErr *common.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("roles %v: expected AppError, got %v", roles, err)
		}
		if appErr.Status != common.StatusAddUserFail {
			t.Fatalf("roles %v: unexpected status: %s", roles, appErr.Status)
		}
	}
}

func TestServiceRegisterRejectsBlankName(t *testing.T) {
	svc, _ := NewService(newFakeQueries())

	_, err := svc.Register(context.Background(), "   ", "Password1", []string{"User"})
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Status != common.StatusAddUserFail {
		t.Fatalf("unexpected status: %s", appErr.Status)
	}
}
