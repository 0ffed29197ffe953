package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `
INSERT INTO users (name, password_hash, roles)
VALUES ($1, $2, $3)
RETURNING id, name, password_hash, roles, created_at, updated_at
`

// CreateUserParams holds the columns required to insert a user.
type CreateUserParams struct {
	Name         string
	PasswordHash string
	Roles        []string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Name, arg.PasswordHash, arg.Roles)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByName = `
SELECT id, name, password_hash, roles, created_at, updated_at
FROM users
WHERE name = $1
`

func (q *Queries) GetUserByName(ctx context.Context, name string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByName, name)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByID = `
SELECT id, name, password_hash, roles, created_at, updated_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
