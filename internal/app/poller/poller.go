// Package poller keeps a local player approximately aligned with the
// shared playback state by re-fetching it on a fixed interval.
package poller

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/SEUB66/sofartist-lounge/internal/domain/playback"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 2 * time.Second

// Client fetches the shared state from the coordinator.
type Client interface {
	PlaybackState(ctx context.Context) (playback.State, error)
}

// Player is the local media player the poller reconciles. Implementations
// report their currently loaded track index, or -1 when nothing is loaded.
type Player interface {
	CurrentTrack() int64
	IsPlaying() bool
	LoadTrack(index int64)
	Play()
	Pause()
}

// Poller drives a Player from the shared state.
type Poller struct {
	client   Client
	player   Player
	interval time.Duration

	// trackCount is the size of the locally known track list. Shared
	// track ids beyond it wrap modulo, since the id is an opaque index
	// into each client's own list.
	trackCount int64
}

// New creates a poller. An interval of zero selects DefaultInterval.
func New(client Client, player Player, trackCount int64, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		client:     client,
		player:     player,
		interval:   interval,
		trackCount: trackCount,
	}
}

// Run polls until the context is cancelled. Fetch failures are logged and
// swallowed; the next tick retries with no backoff. In-flight results that
// arrive after cancellation are simply dropped with the loop.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Reconcile once immediately so a fresh client does not sit idle for
	// a full interval.
	p.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick performs a single fetch-and-reconcile pass.
func (p *Poller) Tick(ctx context.Context) {
	state, err := p.client.PlaybackState(ctx)
	if err != nil {
		zlog.Debug().Err(err).Msg("playback poll failed, retrying next tick")
		return
	}
	p.reconcile(state)
}

// reconcile applies the shared state to the local player.
// PositionSeconds is fetched but never forced onto the playhead, so
// clients drift apart over time; that imprecision is the design.
func (p *Poller) reconcile(state playback.State) {
	if state.CurrentTrackID == nil {
		if p.player.CurrentTrack() >= 0 && p.player.IsPlaying() {
			p.player.Pause()
		}
		return
	}

	local := p.localIndex(*state.CurrentTrackID)

	if p.player.CurrentTrack() != local {
		p.player.LoadTrack(local)
		p.applyPlaying(state.IsPlaying)
		return
	}

	if p.player.IsPlaying() != state.IsPlaying {
		p.applyPlaying(state.IsPlaying)
	}
}

// localIndex maps the shared track id onto this client's track list,
// wrapping when the id exceeds the list length.
func (p *Poller) localIndex(trackID int64) int64 {
	if p.trackCount <= 0 {
		return trackID
	}
	return trackID % p.trackCount
}

func (p *Poller) applyPlaying(playing bool) {
	if playing {
		p.player.Play()
	} else {
		p.player.Pause()
	}
}
