package metainfo

import "errors"

// ErrMalformedMetainfo is the sentinel kind wrapped by every schema-level
// validation failure here (bencode syntax errors bubble up from the
// bencode package itself, unwrapped, as bencode.ErrMalformed).
var ErrMalformedMetainfo = errors.New("malformed metainfo")

// ErrUnsupportedURI is returned when an announce or announce-list entry
// fails strict URI parsing. eduardo-antunes/torrent-go's client-side
// tracker.go let url.Parse errors bubble up as generic I/O-flavored
// errors; spec calls for a dedicated kind so operators can tell a bad
// tracker URL apart from a network failure.
var ErrUnsupportedURI = errors.New("unsupported announce uri")
