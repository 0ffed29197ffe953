package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

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

func (f *fakeQueries) addUser(name, password string, roles []string) db.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		panic(err)
	}
	user := db.User{
		ID:           newPgUUID(),
		Name:         name,
		PasswordHash: hash,
		Roles:        roles,
	}
	f.usersByName[name] = user
	return user
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

func (f *fakeQueries) CreateUser(context.Context, db.CreateUserParams) (db.User, error) {
	return db.User{}, errNotImplemented
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

func newPgUUID() pgtype.UUID {
	id := uuid.New()
	var out pgtype.UUID
	copy(out.Bytes[:], id[:])
	out.Valid = true
	return out
}
