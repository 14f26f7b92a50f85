package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/SEUB66/sofartist-lounge/internal/domain/user"
)

// CreateUser inserts a new user and returns it with its assigned id.
func (s *Store) CreateUser(ctx context.Context, nickname, passwordHash string) (*user.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (nickname, password_hash, created_at) VALUES (?, ?, ?)`,
		nickname, passwordHash, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user id")
	}
	return &user.User{
		ID:           id,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// UserByNickname returns the user with the given nickname.
// Returns user.ErrNotFound when no such user exists.
func (s *Store) UserByNickname(ctx context.Context, nickname string) (*user.User, error) {
	var u user.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, nickname, password_hash, is_admin, created_at, last_seen_at
		 FROM users WHERE nickname = ?`, nickname)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user")
	}
	return &u, nil
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, nickname, password_hash, is_admin, created_at, last_seen_at
		 FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user")
	}
	return &u, nil
}

// ListUsers returns all users ordered by nickname.
func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	users := []user.User{}
	err := s.db.SelectContext(ctx, &users,
		`SELECT id, nickname, password_hash, is_admin, created_at, last_seen_at
		 FROM users ORDER BY nickname`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// TouchUser stamps the user's last_seen_at.
func (s *Store) TouchUser(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_seen_at = ? WHERE id = ?`, time.Now().UTC(), id)
	return errors.Wrap(err, "failed to touch user")
}

// SetUserPassword replaces the user's password hash.
func (s *Store) SetUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	return errors.Wrap(err, "failed to set password")
}
