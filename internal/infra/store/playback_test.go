package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEUB66/sofartist-lounge/internal/domain/playback"
)

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }
func boolp(v bool) *bool          { return &v }

func TestGetPlayback_LazyCreateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	assert.Nil(t, first.CurrentTrackID)
	assert.Equal(t, 0.0, first.PositionSeconds)
	assert.False(t, first.IsPlaying)

	second, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.CurrentTrackID, second.CurrentTrackID)
	assert.Equal(t, first.PositionSeconds, second.PositionSeconds)
	assert.Equal(t, first.IsPlaying, second.IsPlaying)

	// Still a single row.
	var count int
	require.NoError(t, s.db.Get(&count, `SELECT COUNT(*) FROM playback_state`))
	assert.Equal(t, 1, count)
}

func TestPatchPlayback_LastWriteWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(int64p(1))))
	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(int64p(2))))

	state, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentTrackID)
	assert.Equal(t, int64(2), *state.CurrentTrackID)
}

func TestPatchPlayback_FieldIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(int64p(7))))
	require.NoError(t, s.PatchPlayback(ctx, playback.Patch{PositionSeconds: float64p(42.5)}))

	// Flipping the playing flag leaves track and position untouched.
	require.NoError(t, s.PatchPlayback(ctx, playback.Patch{IsPlaying: boolp(false)}))

	state, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentTrackID)
	assert.Equal(t, int64(7), *state.CurrentTrackID)
	assert.Equal(t, 42.5, state.PositionSeconds)
	assert.False(t, state.IsPlaying)
}

func TestPatchPlayback_TrackChangeResetsPosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(int64p(1))))
	require.NoError(t, s.PatchPlayback(ctx, playback.Patch{PositionSeconds: float64p(120)}))

	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(int64p(5))))

	state, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentTrackID)
	assert.Equal(t, int64(5), *state.CurrentTrackID)
	assert.Equal(t, 0.0, state.PositionSeconds)
	assert.True(t, state.IsPlaying)
}

func TestPatchPlayback_NullTrackStopsPlayback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(int64p(3))))
	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(nil)))

	state, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.CurrentTrackID)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 0.0, state.PositionSeconds)
}

func TestPatchPlayback_RejectsMalformedValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.PatchPlayback(ctx, playback.Patch{PositionSeconds: float64p(-1)})
	assert.ErrorIs(t, err, playback.ErrNegativePosition)

	err = s.PatchPlayback(ctx, playback.TrackPatch(int64p(-2)))
	assert.ErrorIs(t, err, playback.ErrNegativeTrackID)

	// Rejected writes leave no row behind a fresh store.
	var count int
	require.NoError(t, s.db.Get(&count, `SELECT COUNT(*) FROM playback_state`))
	assert.Equal(t, 0, count)
}

func TestPatchPlayback_StampsUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.GetPlayback(ctx)
	require.NoError(t, err)

	require.NoError(t, s.PatchPlayback(ctx, playback.Patch{IsPlaying: boolp(true)}))

	after, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
	assert.True(t, after.IsPlaying)
}

func TestResetPlayback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PatchPlayback(ctx, playback.TrackPatch(int64p(9))))
	require.NoError(t, s.ResetPlayback(ctx))

	state, err := s.GetPlayback(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.CurrentTrackID)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 0.0, state.PositionSeconds)
}
