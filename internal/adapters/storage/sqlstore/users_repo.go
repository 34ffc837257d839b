package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"cat-collector/internal/domain/accounts"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) (accounts.User, error) {
	err := r.s.queryRow(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`, u.Username, u.PasswordHash, u.CreatedAt.UTC()).Scan(&u.ID)
	if isUniqueViolation(err) {
		return accounts.User{}, accounts.ErrUsernameTaken
	}
	if err != nil {
		return accounts.User{}, err
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	return r.get(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (accounts.User, error) {
	return r.get(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *userRepo) get(ctx context.Context, q string, arg any) (accounts.User, error) {
	var u accounts.User
	err := r.s.queryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, dbTime{&u.CreatedAt})
	if errors.Is(err, sql.ErrNoRows) {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, err
}
