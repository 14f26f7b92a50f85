// Package session provides nickname login and session token management.
package session

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/SEUB66/sofartist-lounge/internal/domain/user"
	"github.com/SEUB66/sofartist-lounge/internal/infra/store"
)

var (
	ErrPasswordRequired = errors.New("password required for this nickname")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Store is the persistence the session manager runs against.
type Store interface {
	CreateUser(ctx context.Context, nickname, passwordHash string) (*user.User, error)
	UserByNickname(ctx context.Context, nickname string) (*user.User, error)
	UserByID(ctx context.Context, id int64) (*user.User, error)
	TouchUser(ctx context.Context, id int64) error
	SetUserPassword(ctx context.Context, id int64, passwordHash string) error
	CreateSession(ctx context.Context, token string, userID int64, ttl time.Duration) (*store.Session, error)
	SessionByToken(ctx context.Context, token string) (*store.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// Config holds session manager configuration. RequirePassword refuses
// passwordless registration of new nicknames.
type Config struct {
	TTL             time.Duration
	BcryptCost      int
	RequirePassword bool
}

// Manager handles login, logout and token authentication.
type Manager struct {
	store  Store
	config Config
}

// NewManager creates a session manager.
func NewManager(s Store, cfg Config) *Manager {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.TTL == 0 {
		cfg.TTL = 72 * time.Hour
	}
	return &Manager{store: s, config: cfg}
}

// Login authenticates a nickname, registering it on first use, and
// returns a fresh session token. A nickname claimed without a password
// stays open; supplying a password on a passwordless account claims it.
func (m *Manager) Login(ctx context.Context, nickname, password string) (string, *user.User, error) {
	if err := user.ValidateNickname(nickname); err != nil {
		return "", nil, err
	}

	u, err := m.store.UserByNickname(ctx, nickname)
	switch {
	case errors.Is(err, user.ErrNotFound):
		u, err = m.register(ctx, nickname, password)
		if err != nil {
			return "", nil, err
		}
	case err != nil:
		return "", nil, err
	default:
		if err := m.verify(ctx, u, password); err != nil {
			return "", nil, err
		}
	}

	token := uuid.New().String()
	if _, err := m.store.CreateSession(ctx, token, u.ID, m.config.TTL); err != nil {
		return "", nil, err
	}
	if err := m.store.TouchUser(ctx, u.ID); err != nil {
		zlog.Warn().Err(err).Int64("user_id", u.ID).Msg("failed to stamp last seen")
	}

	return token, u, nil
}

// register creates a new account for a nickname.
func (m *Manager) register(ctx context.Context, nickname, password string) (*user.User, error) {
	if password == "" && m.config.RequirePassword {
		return nil, ErrPasswordRequired
	}
	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), m.config.BcryptCost)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		hash = string(h)
	}
	u, err := m.store.CreateUser(ctx, nickname, hash)
	if err != nil {
		return nil, err
	}
	zlog.Info().Str("nickname", nickname).Msg("registered new user")
	return u, nil
}

// verify checks the password rules for an existing account.
func (m *Manager) verify(ctx context.Context, u *user.User, password string) error {
	if u.HasPassword() {
		if password == "" {
			return ErrPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return user.ErrWrongPassword
		}
		return nil
	}

	// Passwordless account: a supplied password claims the nickname.
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), m.config.BcryptCost)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		if err := m.store.SetUserPassword(ctx, u.ID, string(h)); err != nil {
			return err
		}
		u.PasswordHash = string(h)
		zlog.Info().Str("nickname", u.Nickname).Msg("nickname claimed with password")
	}
	return nil
}

// Authenticate resolves a session token to its user.
func (m *Manager) Authenticate(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	sess, err := m.store.SessionByToken(ctx, token)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	u, err := m.store.UserByID(ctx, sess.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrNotAuthenticated
	}
	return u, err
}

// Logout deletes the session token.
func (m *Manager) Logout(ctx context.Context, token string) error {
	return m.store.DeleteSession(ctx, token)
}
