package trackerhttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rexshade/ttorrent/internal/swarm"
)

// handleAnnounce implements the GET /announce endpoint of spec §4.5.
// Every rejection — known taxonomy or not — is reported as a bencoded
// failure-reason body with HTTP 200; only unknown routes get a real
// HTTP error status, matching chihaya's ServeAnnounce in
// 3bf47a03_chihaya-chihaya__http-announce.go.go.
func (s *Server) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	infoHash, ok := parseRawHash(q.Get("info_hash"))
	if !ok {
		s.fail(w, KindMissingParameter, "missing or malformed info_hash")
		return
	}
	peerID, ok := parseRawHash(q.Get("peer_id"))
	if !ok {
		s.fail(w, KindMissingParameter, "missing or malformed peer_id")
		return
	}

	port, err := parsePort(q.Get("port"))
	if err != nil {
		s.fail(w, KindInvalidPeer, err.Error())
		return
	}

	uploaded, err := parseNonNegative(q.Get("uploaded"))
	if err != nil {
		s.fail(w, KindMissingParameter, "uploaded: "+err.Error())
		return
	}
	downloaded, err := parseNonNegative(q.Get("downloaded"))
	if err != nil {
		s.fail(w, KindMissingParameter, "downloaded: "+err.Error())
		return
	}
	left, err := parseNonNegative(q.Get("left"))
	if err != nil {
		s.fail(w, KindMissingParameter, "left: "+err.Error())
		return
	}

	event, err := parseEvent(q.Get("event"))
	if err != nil {
		s.fail(w, KindInvalidEvent, err.Error())
		return
	}

	ip := parsePeerIP(q.Get("ip"), r)
	if ip == nil {
		s.fail(w, KindInvalidPeer, "could not determine peer address")
		return
	}

	tt, ok := s.tracker.Lookup(infoHash)
	if !ok {
		s.fail(w, KindUnknownTorrent, "torrent is not registered with this tracker")
		return
	}

	tt.Announce(event, swarm.TrackedPeer{
		ID:         peerID,
		IP:         ip,
		Port:       port,
		Uploaded:   uploaded,
		Downloaded: downloaded,
		Left:       left,
	}, time.Now())

	numWant := s.cfg.DefaultNumWant
	if v := q.Get("numwant"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			numWant = n
		}
	}
	if numWant > s.cfg.MaxNumWant {
		numWant = s.cfg.MaxNumWant
	}

	compact := s.cfg.CompactPeers
	if v := q.Get("compact"); v != "" {
		compact = v != "0"
	}

	// Peers treats a limit of 0 as unbounded, so numwant=0 is handled here.
	var peers []swarm.TrackedPeer
	if numWant > 0 {
		peers = tt.Peers(peerID, numWant)
	}
	body := encodeSuccess(int64(s.cfg.AnnounceInterval/time.Second), tt.Seeders(), tt.Leechers(), peers, compact)
	s.writeOK(w, body)
}

func (s *Server) fail(w http.ResponseWriter, kind AnnounceErrorKind, detail string) {
	s.log.Debug().Str("kind", string(kind)).Str("detail", detail).Msg("announce rejected")
	s.writeOK(w, encodeFailure(string(kind)+": "+detail))
}

func (s *Server) writeOK(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
