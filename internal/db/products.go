package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createProduct = `
INSERT INTO products (name, price, quantity)
VALUES ($1, $2, $3)
RETURNING id, name, price, quantity, created_at, updated_at
`

// CreateProductParams holds the columns required to insert a product.
type CreateProductParams struct {
	Name     string
	Price    int64
	Quantity int32
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct, arg.Name, arg.Price, arg.Quantity)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getProductByID = `
SELECT id, name, price, quantity, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProductByID, id)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listProducts = `
SELECT id, name, price, quantity, created_at, updated_at
FROM products
ORDER BY created_at, name
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const updateProduct = `
UPDATE products
SET name = $2, price = $3, quantity = $4, updated_at = now()
WHERE id = $1
RETURNING id, name, price, quantity, created_at, updated_at
`

// UpdateProductParams overwrites every mutable product column.
type UpdateProductParams struct {
	ID       pgtype.UUID
	Name     string
	Price    int64
	Quantity int32
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct, arg.ID, arg.Name, arg.Price, arg.Quantity)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const deleteProduct = `
DELETE FROM products
WHERE id = $1
`

// DeleteProduct removes a product and reports the number of affected rows.
func (q *Queries) DeleteProduct(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
