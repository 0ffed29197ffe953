package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/ycl-dev/storefront/internal/common"
	"github.com/ycl-dev/storefront/internal/db"
)

const pgUniqueViolation = "23505"

const listCacheKey = "catalog:products"

// Product is the API representation of a catalog entry.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int32     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input captures the payload for creating or updating a product.
type Input struct {
	Name     string
	Price    int64
	Quantity int32
}

// Service orchestrates product CRUD and list caching.
type Service struct {
	queries db.Querier
	cache   *Cache
	logger  zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries db.Querier
	Cache   *Cache
	Logger  zerolog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries is required")
	}
	return &Service{queries: cfg.Queries, cache: cfg.Cache, logger: cfg.Logger}, nil
}

// List returns all products, served from cache when possible.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var cached []Product
	hit, err := s.cache.GetJSON(ctx, listCacheKey, &cached)
	if err != nil {
		s.logger.Warn().Err(err).Msg("product list cache read failed")
	}
	if hit {
		return cached, nil
	}

	rows, err := s.queries.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, convertProduct(row))
	}
	if err := s.cache.SetJSON(ctx, listCacheKey, products); err != nil {
		s.logger.Warn().Err(err).Msg("product list cache write failed")
	}
	return products, nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	pid, err := toUUID(id)
	if err != nil {
		return Product{}, notFoundError(err)
	}
	row, err := s.queries.GetProductByID(ctx, pid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, notFoundError(err)
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return convertProduct(row), nil
}

// Add creates a new product. Duplicate names are rejected.
func (s *Service) Add(ctx context.Context, input Input) (Product, error) {
	if err := validateInput(input); err != nil {
		return Product{}, err
	}
	created, err := s.queries.CreateProduct(ctx, db.CreateProductParams{
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Product{}, common.NewAppError(common.StatusFail, "product name already exists", http.StatusBadRequest, err)
		}
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	s.invalidateList(ctx)
	return convertProduct(created), nil
}

// Update replaces the mutable fields of an existing product.
func (s *Service) Update(ctx context.Context, id string, input Input) (Product, error) {
	pid, err := toUUID(id)
	if err != nil {
		return Product{}, notFoundError(err)
	}
	if err := validateInput(input); err != nil {
		return Product{}, err
	}
	updated, err := s.queries.UpdateProduct(ctx, db.UpdateProductParams{
		ID:       pid,
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, notFoundError(err)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Product{}, common.NewAppError(common.StatusFail, "product name already exists", http.StatusBadRequest, err)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	s.invalidateList(ctx)
	return convertProduct(updated), nil
}

// Remove deletes a product by id.
func (s *Service) Remove(ctx context.Context, id string) error {
	pid, err := toUUID(id)
	if err != nil {
		return notFoundError(err)
	}
	affected, err := s.queries.DeleteProduct(ctx, pid)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return notFoundError(nil)
	}
	s.invalidateList(ctx)
	return nil
}

func (s *Service) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("product list cache invalidation failed")
	}
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.Name) == "" {
		return common.NewAppError(common.StatusFail, "name is required", http.StatusBadRequest, nil)
	}
	if input.Price < 0 {
		return common.NewAppError(common.StatusFail, "price must not be negative", http.StatusBadRequest, nil)
	}
	if input.Quantity < 0 {
		return common.NewAppError(common.StatusFail, "quantity must not be negative", http.StatusBadRequest, nil)
	}
	return nil
}

func notFoundError(err error) *common.AppError {
	return common.NewAppError(common.StatusFail, "product not found", http.StatusBadRequest, err)
}

func convertProduct(row db.Product) Product {
	return Product{
		ID:        uuidString(row.ID),
		Name:      row.Name,
		Price:     row.Price,
		Quantity:  row.Quantity,
		CreatedAt: toTime(row.CreatedAt),
		UpdatedAt: toTime(row.UpdatedAt),
	}
}

func toUUID(value string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(strings.TrimSpace(value)); err != nil {
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
