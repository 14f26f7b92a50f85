package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SEUB66/sofartist-lounge/internal/domain/user"
	"github.com/SEUB66/sofartist-lounge/internal/infra/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return NewManager(s, Config{TTL: time.Hour, BcryptCost: bcrypt.MinCost})
}

func TestLogin_RegistersNewNickname(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, u, err := m.Login(ctx, "aoi", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "aoi", u.Nickname)
	assert.False(t, u.HasPassword())

	// The token authenticates.
	got, err := m.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestLogin_InvalidNickname(t *testing.T) {
	m := newTestManager(t)

	tests := []string{"", "x", "space name", "way-too-long-nickname-over-limit", "bad!chars"}
	for _, nickname := range tests {
		t.Run(nickname, func(t *testing.T) {
			_, _, err := m.Login(context.Background(), nickname, "")
			assert.ErrorIs(t, err, user.ErrInvalidNickname)
		})
	}
}

func TestLogin_PasswordProtectedAccount(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, _, err := m.Login(ctx, "aoi", "hunter2")
	require.NoError(t, err)

	// Correct password logs in.
	token, _, err := m.Login(ctx, "aoi", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Wrong password is rejected.
	_, _, err = m.Login(ctx, "aoi", "nope")
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	// Missing password is rejected.
	_, _, err = m.Login(ctx, "aoi", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestLogin_PasswordClaimsOpenNickname(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, _, err := m.Login(ctx, "aoi", "")
	require.NoError(t, err)

	// Supplying a password on a passwordless account claims it.
	_, u, err := m.Login(ctx, "aoi", "hunter2")
	require.NoError(t, err)
	assert.True(t, u.HasPassword())

	// From now on the password is required.
	_, _, err = m.Login(ctx, "aoi", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestLogin_RequirePassword(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	m := NewManager(s, Config{TTL: time.Hour, BcryptCost: bcrypt.MinCost, RequirePassword: true})
	ctx := context.Background()

	// Passwordless registration is refused.
	_, _, err = m.Login(ctx, "aoi", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	// A password registers the nickname as usual.
	token, u, err := m.Login(ctx, "aoi", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, u.HasPassword())
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = m.Authenticate(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, _, err := m.Login(ctx, "aoi", "")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, token))

	_, err = m.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
