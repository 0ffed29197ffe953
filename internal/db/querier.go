package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the query surface consumed by the service layer. Fakes implement
// it in tests; *Queries implements it against Postgres.
type Querier interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByName(ctx context.Context, name string) (User, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (User, error)

	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error)

	CreateOrder(ctx context.Context, userID pgtype.UUID) (Order, error)
	CreateOrderDetail(ctx context.Context, arg CreateOrderDetailParams) (OrderDetail, error)
	ListOrderDetailsByUser(ctx context.Context, userID pgtype.UUID) ([]ListOrderDetailsByUserRow, error)

	WithTx(tx pgx.Tx) Querier
}

var _ Querier = (*Queries)(nil)
