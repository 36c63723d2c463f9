package trackerhttp

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/rexshade/ttorrent/internal/swarm"
)

// parseRawHash pulls a 20-byte field out of a query value. Go's
// url.Values already percent-decodes the raw bytes for us (net/url's
// query unescaping operates on bytes, not runes), so no custom parser
// along the lines of modasi-mika's query type is needed — this is
// just a length check.
func parseRawHash(v string) ([20]byte, bool) {
	var out [20]byte
	if len(v) != 20 {
		return out, false
	}
	copy(out[:], v)
	return out, true
}

func parsePort(v string) (uint16, error) {
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("port must be in 1-65535, got %q", v)
	}
	return uint16(n), nil
}

func parseNonNegative(v string) (int64, error) {
	if v == "" {
		return 0, fmt.Errorf("missing value")
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("must be a non-negative integer, got %q", v)
	}
	return n, nil
}

// parseEvent maps the event parameter to the transition spec §4.4
// describes. An absent value is EventNone; anything other than the
// three recognized keywords is rejected.
func parseEvent(v string) (swarm.AnnounceEvent, error) {
	switch v {
	case "":
		return swarm.EventNone, nil
	case "started":
		return swarm.EventStarted, nil
	case "completed":
		return swarm.EventCompleted, nil
	case "stopped":
		return swarm.EventStopped, nil
	default:
		return swarm.EventNone, fmt.Errorf("unrecognized event %q", v)
	}
}

// parsePeerIP resolves the peer's address: the client's explicit ip
// parameter if present, otherwise the connection's remote address. It
// returns nil when the chosen value is not a valid IP; a malformed ip
// parameter does not fall back to the remote address.
func parsePeerIP(raw string, r *http.Request) net.IP {
	if raw != "" {
		return net.ParseIP(raw)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
