package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEUB66/sofartist-lounge/internal/domain/message"
	"github.com/SEUB66/sofartist-lounge/internal/infra/store"
)

func newTestService(t *testing.T) (*Service, int64) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	u, err := s.CreateUser(context.Background(), "aoi", "")
	require.NoError(t, err)

	return NewService(s, 3, 5), u.ID
}

func TestPost_Validation(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "normal message", body: "hello lounge"},
		{name: "empty body", body: "", wantErr: true},
		{name: "whitespace only", body: "   \n\t", wantErr: true},
		{name: "at the length limit", body: strings.Repeat("a", message.MaxBodyLength)},
		{name: "over the length limit", body: strings.Repeat("a", message.MaxBodyLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := svc.Post(ctx, userID, tt.body)
			if tt.wantErr {
				assert.ErrorIs(t, err, message.ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, msg.Body)
			assert.Equal(t, "aoi", msg.Nickname)
		})
	}
}

func TestSince_LimitRules(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.Post(ctx, userID, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	// Zero limit selects the default (3).
	msgs, err := svc.Since(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)

	// Oversized limit is capped to the maximum (5).
	msgs, err = svc.Since(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, msgs, 5)

	// An explicit limit within bounds is honored.
	msgs, err = svc.Since(ctx, 0, 4)
	require.NoError(t, err)
	assert.Len(t, msgs, 4)
}

func TestSince_HighWaterMark(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	first, err := svc.Post(ctx, userID, "one")
	require.NoError(t, err)
	second, err := svc.Post(ctx, userID, "two")
	require.NoError(t, err)

	msgs, err := svc.Since(ctx, first.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, second.ID, msgs[0].ID)

	// Nothing new past the latest id.
	msgs, err = svc.Since(ctx, second.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
