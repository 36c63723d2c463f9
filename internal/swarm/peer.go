// Package swarm implements the tracker's in-memory state: per-torrent
// peer tables with freshness-based eviction, announce-event transitions,
// and the tracker-wide torrent registry. Everything here is owned by one
// Tracker value — no process-wide singletons, per the closed-tracker
// registry note in spec §9.
//
// The guarded-map shape (a Mutex next to a map[string]*T, a done
// channel for cooperative shutdown) is grounded on
// prxssh-echo/internal/peer/manager.go's Manager.
package swarm

import (
	"net"
	"time"
)

// PeerState is a peer's last-reported participation state.
type PeerState int

const (
	PeerUnknown PeerState = iota
	PeerStarted
	PeerCompleted
	PeerStopped
)

func (s PeerState) String() string {
	switch s {
	case PeerStarted:
		return "started"
	case PeerCompleted:
		return "completed"
	case PeerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// AnnounceEvent is the event field of an incoming announce request.
type AnnounceEvent int

const (
	EventNone AnnounceEvent = iota
	EventStarted
	EventCompleted
	EventStopped
)

// TrackedPeer is one swarm participant's state as last reported to the
// tracker.
type TrackedPeer struct {
	ID           [20]byte
	IP           net.IP
	Port         uint16
	Uploaded     int64
	Downloaded   int64
	Left         int64
	State        PeerState
	LastAnnounce time.Time
}

// IsSeeder reports whether the peer has nothing left to download.
func (p TrackedPeer) IsSeeder() bool { return p.Left == 0 }

// Fresh reports whether the peer announced within window of now.
func (p TrackedPeer) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(p.LastAnnounce) < window
}
