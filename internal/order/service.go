package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/ycl-dev/storefront/internal/common"
	"github.com/ycl-dev/storefront/internal/db"
	"github.com/ycl-dev/storefront/internal/obs"
)

// TxBeginner starts transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Line is a single requested order position.
type Line struct {
	ProductID string
	Quantity  int32
}

// Detail is the API representation of a purchased line.
type Detail struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Product   string    `json:"product"`
	Price     int64     `json:"price"`
	Quantity  int32     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// Placed summarises a successfully created order.
type Placed struct {
	OrderID   string   `json:"order_id"`
	Details   []Detail `json:"details"`
	TotalCost int64    `json:"total_cost"`
}

// Service places orders and reads back purchase history.
type Service struct {
	queries db.Querier
	pool    TxBeginner
	logger  zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries db.Querier
	Pool    TxBeginner
	Logger  zerolog.Logger
}

// NewService constructs an order service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("order: queries is required")
	}
	if cfg.Pool == nil {
		return nil, errors.New("order: pool is required")
	}
	return &Service{queries: cfg.Queries, pool: cfg.Pool, logger: cfg.Logger}, nil
}

// Place validates and persists an order in a single transaction. Every
// requested product must exist and hold at least the requested quantity;
// otherwise nothing is written. Stock levels are checked but deliberately
// left untouched.
func (s *Service) Place(ctx context.Context, userID string, lines []Line) (Placed, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Placed{}, common.NewAppError(common.StatusFail, "unauthorized", http.StatusUnauthorized, err)
	}
	if len(lines) == 0 {
		return Placed{}, rejected("order must contain at least one line", nil, "empty")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return Placed{}, rejected("quantity must be positive", nil, "invalid_quantity")
		}
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Placed{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	qtx := s.queries.WithTx(tx)

	products := make([]db.Product, 0, len(lines))
	for _, line := range lines {
		pid, err := toUUID(line.ProductID)
		if err != nil {
			return Placed{}, rejected("product not found", err, "unknown_product")
		}
		product, err := qtx.GetProductByID(ctx, pid)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Placed{}, rejected("product not found", err, "unknown_product")
			}
			return Placed{}, fmt.Errorf("get product: %w", err)
		}
		if product.Quantity < line.Quantity {
			return Placed{}, rejected("insufficient stock", nil, "insufficient_stock")
		}
		products = append(products, product)
	}

	created, err := qtx.CreateOrder(ctx, uid)
	if err != nil {
		return Placed{}, fmt.Errorf("create order: %w", err)
	}

	details := make([]Detail, 0, len(lines))
	var total int64
	for i, line := range lines {
		product := products[i]
		detail, err := qtx.CreateOrderDetail(ctx, db.CreateOrderDetailParams{
			OrderID:   created.ID,
			ProductID: product.ID,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		if err != nil {
			return Placed{}, fmt.Errorf("create order detail: %w", err)
		}
		total += product.Price * int64(line.Quantity)
		details = append(details, Detail{
			ID:        uuidString(detail.ID),
			OrderID:   uuidString(detail.OrderID),
			ProductID: uuidString(detail.ProductID),
			Product:   product.Name,
			Price:     detail.Price,
			Quantity:  detail.Quantity,
			CreatedAt: toTime(detail.CreatedAt),
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return Placed{}, fmt.Errorf("commit order: %w", err)
	}

	if obs.OrdersPlacedTotal != nil {
		obs.OrdersPlacedTotal.Inc()
	}
	s.logger.Info().Str("order_id", uuidString(created.ID)).Int("lines", len(lines)).Msg("order placed")

	return Placed{OrderID: uuidString(created.ID), Details: details, TotalCost: total}, nil
}

// Details returns the purchase history of the given user. An empty history
// is not an error.
func (s *Service) Details(ctx context.Context, userID string) ([]Detail, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return nil, common.NewAppError(common.StatusFail, "unauthorized", http.StatusUnauthorized, err)
	}
	rows, err := s.queries.ListOrderDetailsByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	details := make([]Detail, 0, len(rows))
	for _, row := range rows {
		details = append(details, Detail{
			ID:        uuidString(row.ID),
			OrderID:   uuidString(row.OrderID),
			ProductID: uuidString(row.ProductID),
			Product:   row.ProductName,
			Price:     row.Price,
			Quantity:  row.Quantity,
			CreatedAt: toTime(row.CreatedAt),
		})
	}
	return details, nil
}

func rejected(message string, err error, reason string) *common.AppError {
	if obs.OrdersRejectedTotal != nil {
		obs.OrdersRejectedTotal.WithLabelValues(reason).Inc()
	}
	return common.NewAppError(common.StatusAddOrderFail, message, http.StatusBadRequest, err)
}

func toUUID(value string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(value); err != nil {
		return pgtype.UUID{}, err
	}
	return id, nil
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
