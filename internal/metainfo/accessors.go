package metainfo

import "github.com/rexshade/ttorrent/internal/byteutil"

// Name is the suggested file name (single-file mode) or directory name
// (multi-file mode).
func (t *Torrent) Name() string { return t.name }

// Comment is the optional free-text comment field, empty if absent.
func (t *Torrent) Comment() string { return t.comment }

// CreatedBy is the optional creator-tool field, empty if absent.
func (t *Torrent) CreatedBy() string { return t.createdBy }

// CreationDate returns the optional creation-date field and whether it
// was present at all.
func (t *Torrent) CreationDate() (int64, bool) {
	if t.creationDate == nil {
		return 0, false
	}
	return *t.creationDate, true
}

// Announce is the single-tracker announce URL, empty if the torrent only
// declares an announce-list or is trackerless.
func (t *Torrent) Announce() string { return t.announce }

// AnnounceTiers returns the deduplicated announce-list tiers, falling
// back to a single tier holding Announce when no announce-list was
// present, or nil for a trackerless torrent.
func (t *Torrent) AnnounceTiers() [][]string {
	if len(t.announceList) > 0 {
		return t.announceList
	}
	if t.announce != "" {
		return [][]string{{t.announce}}
	}
	return nil
}

// PieceLength is the fixed byte length of every piece but the last.
func (t *Torrent) PieceLength() int64 { return t.pieceLength }

// Pieces is the concatenated SHA-1 digests, 20 bytes per piece, in piece
// order.
func (t *Torrent) Pieces() []byte { return t.pieces }

// PieceCount returns the number of pieces declared by Pieces.
func (t *Torrent) PieceCount() int { return len(t.pieces) / 20 }

// Files lists every file in the torrent. For a single-file torrent this
// is a single entry whose Path is [Name()].
func (t *Torrent) Files() []File { return t.files }

// IsMultiFile reports whether the torrent declares info.files rather
// than a single info.length.
func (t *Torrent) IsMultiFile() bool { return t.multiFile }

// Size is the sum of every file's length.
func (t *Torrent) Size() int64 {
	var total int64
	for _, f := range t.files {
		total += f.Length
	}
	return total
}

// IsSeeder reports whether this Torrent was constructed as a local
// seed (via Create, or Parse/Load with seeder=true) rather than loaded
// to describe a torrent this node does not yet hold data for.
func (t *Torrent) IsSeeder() bool { return t.seeder }

// InfoHash is the raw 20-byte SHA-1 digest of the info dictionary's
// exact encoded bytes.
func (t *Torrent) InfoHash() [20]byte { return t.infoHash }

// InfoHashHex is InfoHash rendered as 40 uppercase hex characters, the
// canonical human-readable form.
func (t *Torrent) InfoHashHex() string { return byteutil.HexUpper(t.infoHash[:]) }

// InfoBytes returns the exact encoded bytes the info-hash was computed
// over.
func (t *Torrent) InfoBytes() []byte { return t.infoBytes }

// Bytes returns the full encoded .torrent file, as parsed or as produced
// by Create.
func (t *Torrent) Bytes() []byte { return t.raw }
