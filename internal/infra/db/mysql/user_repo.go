package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/venture-studio/internal/domain/users"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *users.User) error {
	const q = `
INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
VALUES (?,?,?,?,?,?);
`
	u.CreatedAt = nowIfZero(u.CreatedAt)
	u.UpdatedAt = nowIfZero(u.UpdatedAt)
	_, err := r.db.ExecContext(ctx, q, u.ID, stringOrDash(u.Name), strings.ToLower(u.Email), u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return mapErr("create user", err)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	const q = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM users WHERE id=?;
`
	return r.scanOne(ctx, "get user", q, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	const q = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM users WHERE email=?;
`
	return r.scanOne(ctx, "get user by email", q, strings.ToLower(email))
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?;`, id)
	if err != nil {
		return mapErr("delete user", err)
	}
	return expectOne("delete user", res)
}

func (r *UserRepository) scanOne(ctx context.Context, op, q string, arg any) (*users.User, error) {
	var u users.User
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapErr(op, err)
	}
	return &u, nil
}
