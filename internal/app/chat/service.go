// Package chat provides the polled chat service.
package chat

import (
	"context"

	"github.com/SEUB66/sofartist-lounge/internal/domain/message"
)

// Store is the persistence the chat service runs against.
type Store interface {
	InsertMessage(ctx context.Context, userID int64, body string) (*message.Message, error)
	MessagesAfter(ctx context.Context, after int64, limit int) ([]message.Message, error)
}

// Service validates and stores chat messages and serves the polling reads.
type Service struct {
	store        Store
	defaultLimit int
	maxLimit     int
}

// NewService creates a chat service with the given polling limits.
func NewService(store Store, defaultLimit, maxLimit int) *Service {
	return &Service{
		store:        store,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Post validates and persists a message from the given user.
func (s *Service) Post(ctx context.Context, userID int64, body string) (*message.Message, error) {
	if err := message.ValidateBody(body); err != nil {
		return nil, err
	}
	return s.store.InsertMessage(ctx, userID, body)
}

// Since returns messages with id greater than after, oldest first.
// A limit of zero selects the default; anything above the maximum is
// capped to it.
func (s *Service) Since(ctx context.Context, after int64, limit int) ([]message.Message, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return s.store.MessagesAfter(ctx, after, limit)
}
