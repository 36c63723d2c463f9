package metainfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rexshade/ttorrent/internal/bencode"
)

func singleFileTorrentBytes(t *testing.T) []byte {
	t.Helper()
	top := map[string]any{
		"announce": "http://tracker.example/announce",
		"info": map[string]any{
			"name":         "a.txt",
			"piece length": int64(16),
			"pieces":       string(make([]byte, 20)),
			"length":       int64(16),
		},
	}
	raw, err := bencode.Encode(top)
	require.NoError(t, err)
	return raw
}

func TestParseSingleFile(t *testing.T) {
	raw := singleFileTorrentBytes(t)
	tr, err := Parse(raw, false)
	require.NoError(t, err)

	require.Equal(t, "a.txt", tr.Name())
	require.False(t, tr.IsMultiFile())
	require.Equal(t, int64(16), tr.Size())
	require.Equal(t, "http://tracker.example/announce", tr.Announce())
	require.Equal(t, [][]string{{"http://tracker.example/announce"}}, tr.AnnounceTiers())
	require.False(t, tr.IsSeeder())
	require.Len(t, tr.InfoHash(), 20)
	require.Len(t, tr.InfoHashHex(), 40)
}

func TestParseMultiFile(t *testing.T) {
	top := map[string]any{
		"announce-list": []any{
			[]any{"http://a.example/announce", "http://b.example/announce"},
			[]any{"http://c.example/announce"},
		},
		"info": map[string]any{
			"name":         "pkg",
			"piece length": int64(8),
			"pieces":       string(make([]byte, 40)),
			"files": []any{
				map[string]any{"length": int64(5), "path": []any{"a.bin"}},
				map[string]any{"length": int64(7), "path": []any{"sub", "b.bin"}},
			},
		},
	}
	raw, err := bencode.Encode(top)
	require.NoError(t, err)

	tr, err := Parse(raw, true)
	require.NoError(t, err)
	require.True(t, tr.IsMultiFile())
	require.True(t, tr.IsSeeder())
	require.Equal(t, "pkg", tr.Name())
	require.Equal(t, int64(12), tr.Size())
	require.Len(t, tr.Files(), 2)
	require.Equal(t, []string{"sub", "b.bin"}, tr.Files()[1].Path)

	tiers := tr.AnnounceTiers()
	require.Len(t, tiers, 2)
	require.Equal(t, []string{"http://a.example/announce", "http://b.example/announce"}, tiers[0])
	require.Equal(t, []string{"http://c.example/announce"}, tiers[1])
}

func TestParseDedupesAnnounceListAcrossTiers(t *testing.T) {
	top := map[string]any{
		"announce-list": []any{
			[]any{"http://a.example/announce"},
			[]any{"http://a.example/announce", "http://b.example/announce"},
		},
		"info": map[string]any{
			"name":         "a.txt",
			"piece length": int64(16),
			"pieces":       string(make([]byte, 20)),
			"length":       int64(16),
		},
	}
	raw, err := bencode.Encode(top)
	require.NoError(t, err)

	tr, err := Parse(raw, false)
	require.NoError(t, err)
	tiers := tr.AnnounceTiers()
	require.Equal(t, []string{"http://a.example/announce"}, tiers[0])
	require.Equal(t, []string{"http://b.example/announce"}, tiers[1])
}

func TestParseRejectsMissingInfo(t *testing.T) {
	raw, err := bencode.Encode(map[string]any{"announce": "http://tracker.example/announce"})
	require.NoError(t, err)
	_, err = Parse(raw, false)
	require.ErrorIs(t, err, ErrMalformedMetainfo)
}

func TestParseRejectsBadAnnounceURI(t *testing.T) {
	top := map[string]any{
		"announce": "not a uri",
		"info": map[string]any{
			"name":         "a.txt",
			"piece length": int64(16),
			"pieces":       string(make([]byte, 20)),
			"length":       int64(16),
		},
	}
	raw, err := bencode.Encode(top)
	require.NoError(t, err)
	_, err = Parse(raw, false)
	require.ErrorIs(t, err, ErrUnsupportedURI)
}

func TestInfoHashIgnoresSiblingFields(t *testing.T) {
	// Two torrents with the same info dict but different top-level
	// siblings (announce vs comment) must hash identically: the
	// info-hash is a function of info alone.
	raw1, err := bencode.Encode(map[string]any{
		"announce": "http://tracker.example/announce",
		"info": map[string]any{
			"name":         "a.txt",
			"piece length": int64(16),
			"pieces":       string(make([]byte, 20)),
			"length":       int64(16),
		},
	})
	require.NoError(t, err)
	raw2, err := bencode.Encode(map[string]any{
		"comment": "unrelated",
		"info": map[string]any{
			"name":         "a.txt",
			"piece length": int64(16),
			"pieces":       string(make([]byte, 20)),
			"length":       int64(16),
		},
	})
	require.NoError(t, err)

	t1, err := Parse(raw1, false)
	require.NoError(t, err)
	t2, err := Parse(raw2, false)
	require.NoError(t, err)
	require.Equal(t, t1.InfoHash(), t2.InfoHash())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.torrent")
	require.NoError(t, os.WriteFile(path, singleFileTorrentBytes(t), 0o644))

	tr, err := Load(path, false)
	require.NoError(t, err)
	require.Equal(t, "a.txt", tr.Name())
}

func TestCreateSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	content := make([]byte, 40)
	for i := range content {
		content[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	tr, err := Create(CreateOptions{
		Parent:      path,
		Announce:    "http://tracker.example/announce",
		CreatedBy:   "ttorrentd",
		PieceLength: 16,
		Workers:     2,
	})
	require.NoError(t, err)
	require.True(t, tr.IsSeeder())
	require.Equal(t, "a.bin", tr.Name())
	require.Equal(t, int64(40), tr.Size())
	require.Equal(t, 3, tr.PieceCount())
	require.Equal(t, "ttorrentd", tr.CreatedBy())

	reparsed, err := Parse(tr.Bytes(), false)
	require.NoError(t, err)
	require.Equal(t, tr.InfoHash(), reparsed.InfoHash())
}

func TestCreateMultiFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.bin"), make([]byte, 15), 0o644))

	tr, err := Create(CreateOptions{
		Parent:      dir,
		Files:       []string{"a.bin", filepath.Join("sub", "b.bin")},
		PieceLength: 8,
	})
	require.NoError(t, err)
	require.True(t, tr.IsMultiFile())
	require.Equal(t, int64(25), tr.Size())
	require.Len(t, tr.Files(), 2)
	require.Equal(t, []string{"sub", "b.bin"}, tr.Files()[1].Path)
}
