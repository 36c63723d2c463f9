package swarm

import (
	"sync"

	"github.com/rexshade/ttorrent/internal/byteutil"
)

// State is the tracker process's lifecycle state, per spec §4.5.
type State int

const (
	StateStopped State = iota
	StateRunning
	StateStopping
)

// Tracker owns the registry of admitted torrents: a closed tracker only
// serves info-hashes an operator has explicitly admitted. Admission is
// serialized against itself by admitMu; lookups never take that lock, so
// a slow admission never stalls concurrent announces (spec §5).
type Tracker struct {
	admitMu sync.Mutex
	torrents sync.Map // hex info-hash (string) -> *TrackedTorrent

	stateMu sync.Mutex
	state    State
}

// NewTracker returns a tracker with an empty registry, in the STOPPED
// state.
func NewTracker() *Tracker {
	return &Tracker{}
}

func infoHashKey(hash [20]byte) string { return byteutil.HexLower(hash[:]) }

// Admit registers hash as servable, creating a fresh empty peer table if
// it is not already known, and returns that torrent's table. Admission
// is idempotent: admitting an already-known hash returns its existing
// table untouched.
func (t *Tracker) Admit(hash [20]byte) *TrackedTorrent {
	t.admitMu.Lock()
	defer t.admitMu.Unlock()

	key := infoHashKey(hash)
	if v, ok := t.torrents.Load(key); ok {
		return v.(*TrackedTorrent)
	}
	tt := NewTrackedTorrent()
	t.torrents.Store(key, tt)
	return tt
}

// Lookup returns the torrent admitted under hash, if any. Lock-free.
func (t *Tracker) Lookup(hash [20]byte) (*TrackedTorrent, bool) {
	v, ok := t.torrents.Load(infoHashKey(hash))
	if !ok {
		return nil, false
	}
	return v.(*TrackedTorrent), true
}

// Withdraw removes hash from the registry entirely, refusing further
// announces for it.
func (t *Tracker) Withdraw(hash [20]byte) {
	t.admitMu.Lock()
	defer t.admitMu.Unlock()
	t.torrents.Delete(infoHashKey(hash))
}

// Each calls fn for every currently-admitted torrent. Used by the reaper
// to sweep without holding any single lock across the whole registry.
func (t *Tracker) Each(fn func(hash string, tt *TrackedTorrent)) {
	t.torrents.Range(func(k, v any) bool {
		fn(k.(string), v.(*TrackedTorrent))
		return true
	})
}

// State returns the tracker process's current lifecycle state.
func (t *Tracker) State() State {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()
	return t.state
}

// SetState transitions the tracker's lifecycle state. The HTTP server
// calls this as it binds, and as it begins and finishes shutting down.
func (t *Tracker) SetState(s State) {
	t.stateMu.Lock()
	t.state = s
	t.stateMu.Unlock()
}
