// Package library provides the shared media link collection.
package library

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/SEUB66/sofartist-lounge/internal/domain/media"
)

var ErrNotOwner = errors.New("not the owner of this item")

// Store is the persistence the library runs against.
type Store interface {
	InsertMedia(ctx context.Context, userID int64, kind media.Kind, url, title string) (*media.Item, error)
	MediaByID(ctx context.Context, id int64) (*media.Item, error)
	ListMedia(ctx context.Context, kind media.Kind) ([]media.Item, error)
	DeleteMedia(ctx context.Context, id int64) error
}

// Service manages the shared media links.
type Service struct {
	store Store
}

// NewService creates a library service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Share validates and stores a new link. When kind is empty it is
// inferred from the URL extension.
func (s *Service) Share(ctx context.Context, userID int64, rawURL, title, kindStr string) (*media.Item, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := media.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	var kind media.Kind
	if kindStr == "" {
		kind = media.DetectKind(rawURL)
	} else {
		k, err := media.ParseKind(kindStr)
		if err != nil {
			return nil, err
		}
		kind = k
	}

	return s.store.InsertMedia(ctx, userID, kind, rawURL, strings.TrimSpace(title))
}

// List returns shared items, newest first, optionally filtered by kind.
func (s *Service) List(ctx context.Context, kindStr string) ([]media.Item, error) {
	var kind media.Kind
	if kindStr != "" {
		k, err := media.ParseKind(kindStr)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	return s.store.ListMedia(ctx, kind)
}

// Remove deletes an item. Only the submitter may remove their own item
// unless force is set (admin path).
func (s *Service) Remove(ctx context.Context, id, userID int64, force bool) error {
	item, err := s.store.MediaByID(ctx, id)
	if err != nil {
		return err
	}
	if !force && item.UserID != userID {
		return ErrNotOwner
	}
	return s.store.DeleteMedia(ctx, id)
}
