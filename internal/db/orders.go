package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `
INSERT INTO orders (user_id)
VALUES ($1)
RETURNING id, user_id, created_at, updated_at
`

func (q *Queries) CreateOrder(ctx context.Context, userID pgtype.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder, userID)
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

const createOrderDetail = `
INSERT INTO order_details (order_id, product_id, price, quantity)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, product_id, price, quantity, created_at
`

// CreateOrderDetailParams holds one order line with its price snapshot.
type CreateOrderDetailParams struct {
	OrderID   pgtype.UUID
	ProductID pgtype.UUID
	Price     int64
	Quantity  int32
}

func (q *Queries) CreateOrderDetail(ctx context.Context, arg CreateOrderDetailParams) (OrderDetail, error) {
	row := q.db.QueryRow(ctx, createOrderDetail, arg.OrderID, arg.ProductID, arg.Price, arg.Quantity)
	var d OrderDetail
	err := row.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Price, &d.Quantity, &d.CreatedAt)
	return d, err
}

const listOrderDetailsByUser = `
SELECT od.id, od.order_id, od.product_id, p.name, od.price, od.quantity, od.created_at
FROM order_details od
JOIN orders o ON o.id = od.order_id
JOIN products p ON p.id = od.product_id
WHERE o.user_id = $1
ORDER BY od.created_at, od.id
`

// ListOrderDetailsByUserRow joins each order line with its product name.
type ListOrderDetailsByUserRow struct {
	ID          pgtype.UUID
	OrderID     pgtype.UUID
	ProductID   pgtype.UUID
	ProductName string
	Price       int64
	Quantity    int32
	CreatedAt   pgtype.Timestamptz
}

func (q *Queries) ListOrderDetailsByUser(ctx context.Context, userID pgtype.UUID) ([]ListOrderDetailsByUserRow, error) {
	rows, err := q.db.Query(ctx, listOrderDetailsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListOrderDetailsByUserRow
	for rows.Next() {
		var r ListOrderDetailsByUserRow
		if err := rows.Scan(&r.ID, &r.OrderID, &r.ProductID, &r.ProductName, &r.Price, &r.Quantity, &r.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
