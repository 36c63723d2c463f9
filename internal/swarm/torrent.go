package swarm

import (
	"sync"
	"time"

	"github.com/rexshade/ttorrent/internal/byteutil"
)

// TrackedTorrent owns one torrent's peer table, keyed by hex peer-id.
// All mutation goes through Announce and Reap, both of which take the
// table's single mutex; reads (Seeders, Leechers, Peers) take it too but
// only ever hold it long enough to copy the data they return, per the
// "no lock longer than a single peer-table mutation" rule in spec §5.
type TrackedTorrent struct {
	mu    sync.Mutex
	peers map[string]*TrackedPeer
}

// NewTrackedTorrent returns an empty peer table, admitted but with no
// participants yet.
func NewTrackedTorrent() *TrackedTorrent {
	return &TrackedTorrent{peers: make(map[string]*TrackedPeer)}
}

func peerKey(id [20]byte) string { return byteutil.HexLower(id[:]) }

// Announce applies the event transition table from spec §4.4 and
// refreshes the peer's last-announce timestamp on any outcome other than
// removal. incoming carries the peer's self-reported id/ip/port/stats;
// its State and LastAnnounce fields are ignored in favor of event and now.
func (t *TrackedTorrent) Announce(event AnnounceEvent, incoming TrackedPeer, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := peerKey(incoming.ID)
	existing, known := t.peers[key]

	switch event {
	case EventStopped:
		delete(t.peers, key)
		return
	case EventStarted:
		incoming.State = PeerStarted
	case EventCompleted:
		incoming.State = PeerCompleted
	case EventNone:
		if known {
			incoming.State = existing.State
		} else {
			incoming.State = PeerStarted
		}
	}

	incoming.LastAnnounce = now
	t.peers[key] = &incoming
}

// Seeders counts peers with nothing left to download.
func (t *TrackedTorrent) Seeders() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, p := range t.peers {
		if p.IsSeeder() {
			n++
		}
	}
	return n
}

// Leechers counts peers still downloading.
func (t *TrackedTorrent) Leechers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, p := range t.peers {
		if !p.IsSeeder() {
			n++
		}
	}
	return n
}

// Peers returns up to limit peers other than exclude, for inclusion in
// an announce response. limit <= 0 means unbounded. Order is
// unspecified: the spec only requires a cap, not a selection policy.
func (t *TrackedTorrent) Peers(exclude [20]byte, limit int) []TrackedPeer {
	t.mu.Lock()
	defer t.mu.Unlock()

	excludeKey := peerKey(exclude)
	out := make([]TrackedPeer, 0, len(t.peers))
	for key, p := range t.peers {
		if key == excludeKey {
			continue
		}
		out = append(out, *p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Len reports the number of peers currently tracked, seeders and
// leechers combined.
func (t *TrackedTorrent) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.peers)
}

// Reap removes every peer whose last announce is at least window old as
// of now, and returns how many were removed. Called by Reaper per
// torrent so that one slow torrent never blocks sweeping the others.
func (t *TrackedTorrent) Reap(now time.Time, window time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for key, p := range t.peers {
		if !p.Fresh(now, window) {
			delete(t.peers, key)
			removed++
		}
	}
	return removed
}
