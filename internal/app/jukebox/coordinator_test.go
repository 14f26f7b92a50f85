package jukebox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEUB66/sofartist-lounge/internal/domain/playback"
	"github.com/SEUB66/sofartist-lounge/internal/infra/store"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return NewCoordinator(s)
}

func int64p(v int64) *int64 { return &v }

// The full lifecycle a pair of cooperating clients walks through:
// empty store, pick a track, pause it.
func TestCoordinator_Scenario(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	state, err := c.State(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.CurrentTrackID)
	assert.Equal(t, 0.0, state.PositionSeconds)
	assert.False(t, state.IsPlaying)

	require.NoError(t, c.SetTrack(ctx, int64p(3)))

	state, err = c.State(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentTrackID)
	assert.Equal(t, int64(3), *state.CurrentTrackID)
	assert.Equal(t, 0.0, state.PositionSeconds)
	assert.True(t, state.IsPlaying)

	require.NoError(t, c.SetPlaying(ctx, false))

	state, err = c.State(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentTrackID)
	assert.Equal(t, int64(3), *state.CurrentTrackID)
	assert.Equal(t, 0.0, state.PositionSeconds)
	assert.False(t, state.IsPlaying)
}

func TestCoordinator_SetTrack(t *testing.T) {
	tests := []struct {
		name        string
		trackID     *int64
		wantPlaying bool
	}{
		{name: "selecting a track starts playback", trackID: int64p(5), wantPlaying: true},
		{name: "clearing the track stops playback", trackID: nil, wantPlaying: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCoordinator(t)
			ctx := context.Background()

			// Seed a running state with a non-zero playhead.
			require.NoError(t, c.SetTrack(ctx, int64p(1)))
			require.NoError(t, c.SetPosition(ctx, 99))

			require.NoError(t, c.SetTrack(ctx, tt.trackID))

			state, err := c.State(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.trackID, state.CurrentTrackID)
			assert.Equal(t, 0.0, state.PositionSeconds, "track change must reset the playhead")
			assert.Equal(t, tt.wantPlaying, state.IsPlaying)
		})
	}
}

func TestCoordinator_SetPosition(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	require.NoError(t, c.SetTrack(ctx, int64p(2)))
	require.NoError(t, c.SetPosition(ctx, 63.5))

	state, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 63.5, state.PositionSeconds)
	require.NotNil(t, state.CurrentTrackID)
	assert.Equal(t, int64(2), *state.CurrentTrackID, "seek must not change the track")
	assert.True(t, state.IsPlaying, "seek must not change the playing flag")
}

func TestCoordinator_Validation(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.SetPosition(ctx, -0.5), playback.ErrNegativePosition)
	assert.ErrorIs(t, c.SetTrack(ctx, int64p(-1)), playback.ErrNegativeTrackID)
}
