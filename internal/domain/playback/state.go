// Package playback provides the shared PlaybackState domain types.
package playback

import (
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrNegativePosition = errors.New("position must not be negative")
	ErrNegativeTrackID  = errors.New("track id must not be negative")
)

// State is the single shared record describing what the virtual jukebox
// is doing. Every client observes the same row; conflicting writers are
// resolved last-write-wins with no ordering check beyond arrival time.
type State struct {
	CurrentTrackID  *int64    `db:"current_track_id" json:"current_track_id"`
	PositionSeconds float64   `db:"position_seconds" json:"position_seconds"`
	IsPlaying       bool      `db:"is_playing" json:"is_playing"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Default returns the state a fresh lounge starts with.
func Default() State {
	return State{
		CurrentTrackID:  nil,
		PositionSeconds: 0,
		IsPlaying:       false,
	}
}

// Patch describes a partial update to the shared state. Nil fields are
// left untouched by the store.
type Patch struct {
	TrackID         **int64  // set CurrentTrackID (outer nil = untouched, inner nil = no track)
	PositionSeconds *float64 // set PositionSeconds
	IsPlaying       *bool    // set IsPlaying
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.TrackID == nil && p.PositionSeconds == nil && p.IsPlaying == nil
}

// Validate rejects malformed field values. Values are rejected, never
// silently clamped.
func (p Patch) Validate() error {
	if p.PositionSeconds != nil && *p.PositionSeconds < 0 {
		return errors.Wrapf(ErrNegativePosition, "%v", *p.PositionSeconds)
	}
	if p.TrackID != nil && *p.TrackID != nil && **p.TrackID < 0 {
		return errors.Wrapf(ErrNegativeTrackID, "%d", **p.TrackID)
	}
	return nil
}

// TrackPatch builds a patch that switches the active track: position is
// reset and the playing flag follows whether a track was selected.
func TrackPatch(trackID *int64) Patch {
	position := 0.0
	playing := trackID != nil
	return Patch{
		TrackID:         &trackID,
		PositionSeconds: &position,
		IsPlaying:       &playing,
	}
}
