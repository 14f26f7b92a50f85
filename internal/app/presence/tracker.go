// Package presence tracks which users are currently online.
package presence

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Entry describes one online user.
type Entry struct {
	UserID   int64     `json:"user_id"`
	Nickname string    `json:"nickname"`
	LastSeen time.Time `json:"last_seen"`
}

// Tracker manages online presence with thread-safe access. A user is
// online while their last heartbeat is within the timeout; a background
// sweep drops stale entries.
type Tracker struct {
	mu      sync.RWMutex
	entries map[int64]*Entry
	timeout time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewTracker creates a tracker with the given staleness timeout.
func NewTracker(timeout time.Duration) *Tracker {
	return &Tracker{
		entries: make(map[int64]*Entry),
		timeout: timeout,
	}
}

// Start launches the background sweep. Stop must be called to release it.
func (t *Tracker) Start(sweepInterval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.sweep(time.Now())
			}
		}
	}()
}

// Stop halts the background sweep.
func (t *Tracker) Stop() {
	if t.cancel != nil {
		t.cancel()
		<-t.done
	}
}

// Touch records activity for a user, marking them online.
func (t *Tracker) Touch(userID int64, nickname string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[userID] = &Entry{
		UserID:   userID,
		Nickname: nickname,
		LastSeen: time.Now(),
	}
}

// Leave removes a user immediately (explicit logout).
func (t *Tracker) Leave(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, userID)
}

// Online returns all currently online users sorted by nickname.
func (t *Tracker) Online() []Entry {
	cutoff := time.Now().Add(-t.timeout)

	t.mu.RLock()
	result := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if e.LastSeen.After(cutoff) {
			result = append(result, *e)
		}
	}
	t.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].Nickname < result[j].Nickname
	})
	return result
}

// Count returns the number of online users.
func (t *Tracker) Count() int {
	cutoff := time.Now().Add(-t.timeout)

	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, e := range t.entries {
		if e.LastSeen.After(cutoff) {
			n++
		}
	}
	return n
}

// sweep drops entries not seen since the timeout.
func (t *Tracker) sweep(now time.Time) {
	cutoff := now.Add(-t.timeout)

	t.mu.Lock()
	defer t.mu.Unlock()
	for id, e := range t.entries {
		if !e.LastSeen.After(cutoff) {
			delete(t.entries, id)
		}
	}
}
