// Package jukebox provides the shared playback coordinator.
//
// The coordinator is deliberately thin: a single persisted record holds
// which track is active, its playhead position and a play/pause flag, and
// every mutation is an unconditional last-write-wins merge. There is no
// versioning, no compare-and-swap and no drift correction; cooperating
// clients converge by polling.
package jukebox

import (
	"context"

	"github.com/SEUB66/sofartist-lounge/internal/domain/playback"
)

// Store is the persistence the coordinator runs against.
type Store interface {
	GetPlayback(ctx context.Context) (playback.State, error)
	PatchPlayback(ctx context.Context, patch playback.Patch) error
}

// Coordinator exposes the shared playback operations used by every client.
type Coordinator struct {
	store Store
}

// NewCoordinator creates a coordinator over the given store.
func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// State returns the current shared state, creating the default record on
// first read.
func (c *Coordinator) State(ctx context.Context) (playback.State, error) {
	return c.store.GetPlayback(ctx)
}

// SetTrack switches the active track. The playhead resets to zero and the
// playing flag follows whether a track was selected: a nil track id stops
// playback.
func (c *Coordinator) SetTrack(ctx context.Context, trackID *int64) error {
	return c.store.PatchPlayback(ctx, playback.TrackPatch(trackID))
}

// SetPlaying flips only the play/pause flag.
func (c *Coordinator) SetPlaying(ctx context.Context, isPlaying bool) error {
	return c.store.PatchPlayback(ctx, playback.Patch{IsPlaying: &isPlaying})
}

// SetPosition moves only the playhead. Used as a scrub/seek hook; pollers
// do not apply it for drift correction.
func (c *Coordinator) SetPosition(ctx context.Context, seconds float64) error {
	return c.store.PatchPlayback(ctx, playback.Patch{PositionSeconds: &seconds})
}
