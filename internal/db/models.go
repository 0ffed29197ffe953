package db

import "github.com/jackc/pgx/v5/pgtype"

// User is an account holder with one or more role names.
type User struct {
	ID           pgtype.UUID
	Name         string
	PasswordHash string
	Roles        []string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

// Product is a catalog entry. Price is stored in minor currency units.
type Product struct {
	ID        pgtype.UUID
	Name      string
	Price     int64
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// Order groups the line items placed by a user in one transaction.
type Order struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// OrderDetail is one line of an order. Price snapshots the product price
// at the time the order was created.
type OrderDetail struct {
	ID        pgtype.UUID
	OrderID   pgtype.UUID
	ProductID pgtype.UUID
	Price     int64
	Quantity  int32
	CreatedAt pgtype.Timestamptz
}
