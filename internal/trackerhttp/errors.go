package trackerhttp

// AnnounceErrorKind is the failure taxonomy from spec §4.5, surfaced to
// clients as the "failure reason" string of a bencoded error response
// (never as an HTTP error status — see §6).
type AnnounceErrorKind string

const (
	// KindUnknownTorrent means info-hash isn't in the registry: this is
	// a closed tracker, so an unrecognized torrent is rejected outright.
	KindUnknownTorrent AnnounceErrorKind = "unknown torrent"
	// KindInvalidEvent means the event parameter held something other
	// than started/stopped/completed/absent.
	KindInvalidEvent AnnounceErrorKind = "invalid event"
	// KindMissingParameter means a required parameter was absent or
	// failed to parse.
	KindMissingParameter AnnounceErrorKind = "missing parameter"
	// KindInvalidPeer means port or ip validation failed.
	KindInvalidPeer AnnounceErrorKind = "invalid peer"
)
