package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/SEUB66/sofartist-lounge/internal/domain/media"
)

// InsertMedia persists a shared link and returns it with its assigned id.
func (s *Store) InsertMedia(ctx context.Context, userID int64, kind media.Kind, url, title string) (*media.Item, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO media_items (user_id, kind, url, title, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, kind, url, title, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert media item")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read media id")
	}

	var nickname string
	if err := s.db.GetContext(ctx, &nickname,
		`SELECT nickname FROM users WHERE id = ?`, userID); err != nil {
		return nil, errors.Wrap(err, "failed to resolve submitter")
	}

	return &media.Item{
		ID:        id,
		UserID:    userID,
		Nickname:  nickname,
		Kind:      kind,
		URL:       url,
		Title:     title,
		CreatedAt: now,
	}, nil
}

// MediaByID returns a single shared item.
func (s *Store) MediaByID(ctx context.Context, id int64) (*media.Item, error) {
	var item media.Item
	err := s.db.GetContext(ctx, &item,
		`SELECT m.id, m.user_id, u.nickname, m.kind, m.url, m.title, m.created_at
		 FROM media_items m JOIN users u ON u.id = m.user_id
		 WHERE m.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, media.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query media item")
	}
	return &item, nil
}

// ListMedia returns shared items, newest first. An empty kind returns
// everything.
func (s *Store) ListMedia(ctx context.Context, kind media.Kind) ([]media.Item, error) {
	items := []media.Item{}
	query := `SELECT m.id, m.user_id, u.nickname, m.kind, m.url, m.title, m.created_at
	          FROM media_items m JOIN users u ON u.id = m.user_id`
	args := []any{}
	if kind != "" {
		query += ` WHERE m.kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY m.id DESC`

	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list media items")
	}
	return items, nil
}

// DeleteMedia removes a shared item by id.
func (s *Store) DeleteMedia(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM media_items WHERE id = ?`, id)
	return errors.Wrap(err, "failed to delete media item")
}
