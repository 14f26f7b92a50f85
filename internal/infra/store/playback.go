package store

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/SEUB66/sofartist-lounge/internal/domain/playback"
)

// playbackRowID is the fixed id of the singleton playback row.
const playbackRowID = 1

// ensurePlaybackRow lazily creates the singleton row with defaults.
// The fixed primary key makes this idempotent: a second caller's insert
// is a no-op and both observe the same row.
func (s *Store) ensurePlaybackRow(ctx context.Context) error {
	def := playback.Default()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO playback_state (id, current_track_id, position_seconds, is_playing, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		playbackRowID, def.CurrentTrackID, def.PositionSeconds, def.IsPlaying, time.Now().UTC())
	return errors.Wrap(err, "failed to create playback row")
}

// GetPlayback returns the shared playback state, creating the default row
// if none exists yet.
func (s *Store) GetPlayback(ctx context.Context) (playback.State, error) {
	if err := s.ensurePlaybackRow(ctx); err != nil {
		return playback.State{}, err
	}

	var st playback.State
	err := s.db.GetContext(ctx, &st,
		`SELECT current_track_id, position_seconds, is_playing, updated_at
		 FROM playback_state WHERE id = ?`, playbackRowID)
	if err != nil {
		return playback.State{}, errors.Wrap(err, "failed to read playback state")
	}
	return st, nil
}

// PatchPlayback merges the present patch fields into the singleton row and
// stamps updated_at. The merge is a single UPDATE, so sqlite's row-level
// atomicity is the only ordering guarantee: concurrent writers race and
// the last one wins per field.
func (s *Store) PatchPlayback(ctx context.Context, patch playback.Patch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.ensurePlaybackRow(ctx); err != nil {
		return err
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if patch.TrackID != nil {
		sets = append(sets, "current_track_id = ?")
		args = append(args, *patch.TrackID)
	}
	if patch.PositionSeconds != nil {
		sets = append(sets, "position_seconds = ?")
		args = append(args, *patch.PositionSeconds)
	}
	if patch.IsPlaying != nil {
		sets = append(sets, "is_playing = ?")
		args = append(args, *patch.IsPlaying)
	}
	args = append(args, playbackRowID)

	_, err := s.db.ExecContext(ctx,
		`UPDATE playback_state SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return errors.Wrap(err, "failed to patch playback state")
}

// ResetPlayback puts the singleton row back to its defaults.
func (s *Store) ResetPlayback(ctx context.Context) error {
	if err := s.ensurePlaybackRow(ctx); err != nil {
		return err
	}
	def := playback.Default()
	_, err := s.db.ExecContext(ctx,
		`UPDATE playback_state SET current_track_id = ?, position_seconds = ?, is_playing = ?, updated_at = ?
		 WHERE id = ?`,
		def.CurrentTrackID, def.PositionSeconds, def.IsPlaying, time.Now().UTC(), playbackRowID)
	return errors.Wrap(err, "failed to reset playback state")
}
