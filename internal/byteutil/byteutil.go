// Package byteutil collects the small byte-level helpers the metainfo and
// tracker packages both need: hex encoding of raw 20-byte hashes and the
// SHA-1 wrapping used to derive an info-hash.
package byteutil

import (
	"crypto/sha1" //nolint:gosec // required by the BitTorrent wire format, not used for security
	"encoding/hex"
	"strings"
)

// SHA1 returns the 20-byte SHA-1 digest of data.
func SHA1(data []byte) [sha1.Size]byte {
	return sha1.Sum(data)
}

// HexUpper renders a byte slice (typically a 20-byte info-hash) as
// uppercase hex, matching the canonical human-readable info-hash form
// named in spec.
func HexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// HexLower renders a byte slice as lowercase hex, the form used to key
// the tracker's torrent and peer registries.
func HexLower(b []byte) string {
	return hex.EncodeToString(b)
}
