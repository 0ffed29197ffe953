package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts over a pgx pool, connection, or transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries executes the application's SQL statements against a DBTX.
type Queries struct {
	db DBTX
}

// New constructs a Queries instance bound to the given executor.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the provided transaction.
func (q *Queries) WithTx(tx pgx.Tx) Querier {
	return &Queries{db: tx}
}
