package trackerhttp

import (
	"net"

	"github.com/rexshade/ttorrent/internal/bencode"
	"github.com/rexshade/ttorrent/internal/swarm"
)

// encodeFailure builds the bencoded {"failure reason": ...} dict spec
// §4.5 and §6 require for every protocol-level rejection — tracker
// failures never use an HTTP error status, so clients that only check
// the body can rely on this shape.
func encodeFailure(reason string) []byte {
	out, err := bencode.Encode(map[string]any{"failure reason": reason})
	if err != nil {
		// A plain string value can't fail to bencode.
		panic(err)
	}
	return out
}

// encodeSuccess builds a successful announce response, grounded on
// chihaya's ServeAnnounce in other_examples'
// 3bf47a03_chihaya-chihaya__http-announce.go.go: interval/complete/
// incomplete plus a compact or dictionary peers field.
func encodeSuccess(interval int64, complete, incomplete int, peers []swarm.TrackedPeer, compact bool) []byte {
	m := map[string]any{
		"interval":   interval,
		"complete":   int64(complete),
		"incomplete": int64(incomplete),
	}
	if compact {
		m["peers"] = compactPeers(peers)
	} else {
		m["peers"] = dictPeers(peers)
	}
	out, err := bencode.Encode(m)
	if err != nil {
		panic(err)
	}
	return out
}

// compactPeers packs each peer into 6 bytes (4-byte IPv4 + 2-byte
// big-endian port), BEP 23's compact format. Peers without a usable
// IPv4 address are dropped from the compact field entirely — there is
// no peers6 companion in this tracker, consistent with spec §1's
// IPv4-required, IPv6-optional non-goal.
func compactPeers(peers []swarm.TrackedPeer) []byte {
	buf := make([]byte, 0, len(peers)*6)
	for _, p := range peers {
		ip4 := p.IP.To4()
		if ip4 == nil {
			continue
		}
		buf = append(buf, ip4...)
		buf = append(buf, byte(p.Port>>8), byte(p.Port))
	}
	return buf
}

// dictPeers builds the verbose dictionary-model peer list: a list of
// {peer id, ip, port} dicts, for clients that didn't request compact.
func dictPeers(peers []swarm.TrackedPeer) []any {
	out := make([]any, 0, len(peers))
	for _, p := range peers {
		ip := p.IP
		if ip == nil {
			ip = net.IPv4zero
		}
		out = append(out, map[string]any{
			"peer id": string(p.ID[:]),
			"ip":      ip.String(),
			"port":    int64(p.Port),
		})
	}
	return out
}
