package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/SEUB66/sofartist-lounge/internal/domain/message"
)

// InsertMessage persists a chat message and returns it with id and nickname.
func (s *Store) InsertMessage(ctx context.Context, userID int64, body string) (*message.Message, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, body, created_at) VALUES (?, ?, ?)`,
		userID, body, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert message")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read message id")
	}

	var nickname string
	if err := s.db.GetContext(ctx, &nickname,
		`SELECT nickname FROM users WHERE id = ?`, userID); err != nil {
		return nil, errors.Wrap(err, "failed to resolve sender")
	}

	return &message.Message{
		ID:        id,
		UserID:    userID,
		Nickname:  nickname,
		Body:      body,
		CreatedAt: now,
	}, nil
}

// MessagesAfter returns up to limit messages with id greater than after,
// oldest first. This is the polling contract: clients pass the highest id
// they have seen and receive only what is new.
func (s *Store) MessagesAfter(ctx context.Context, after int64, limit int) ([]message.Message, error) {
	msgs := []message.Message{}
	err := s.db.SelectContext(ctx, &msgs,
		`SELECT m.id, m.user_id, u.nickname, m.body, m.created_at
		 FROM messages m JOIN users u ON u.id = m.user_id
		 WHERE m.id > ?
		 ORDER BY m.id ASC
		 LIMIT ?`, after, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}
	return msgs, nil
}

// DeleteMessage removes a message by id.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return errors.Wrap(err, "failed to delete message")
}
