package hashing

import (
	"crypto/sha1" //nolint:gosec
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestHashFilesSinglePieceExactBoundary(t *testing.T) {
	dir := t.TempDir()
	content := seqBytes(32)
	path := writeTempFile(t, dir, "a.bin", content)

	pieces, err := HashFiles([]FileSpan{{Path: path, Length: int64(len(content))}}, 32, 2)
	require.NoError(t, err)
	require.Len(t, pieces, 20)

	want := sha1.Sum(content)
	require.Equal(t, want[:], pieces)
}

func TestHashFilesMultiplePiecesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := seqBytes(10)
	b := seqBytes(10)
	c := seqBytes(10)
	pa := writeTempFile(t, dir, "a.bin", a)
	pb := writeTempFile(t, dir, "b.bin", b)
	pc := writeTempFile(t, dir, "c.bin", c)

	spans := []FileSpan{
		{Path: pa, Length: int64(len(a))},
		{Path: pb, Length: int64(len(b))},
		{Path: pc, Length: int64(len(c))},
	}
	pieces, err := HashFiles(spans, 10, 4)
	require.NoError(t, err)
	require.Len(t, pieces, 60)

	full := append(append(append([]byte{}, a...), b...), c...)
	for i := 0; i < 3; i++ {
		want := sha1.Sum(full[i*10 : i*10+10])
		require.Equal(t, want[:], pieces[i*20:i*20+20], "piece %d", i)
	}
}

func TestHashFilesTrailingShortPiece(t *testing.T) {
	dir := t.TempDir()
	content := seqBytes(25)
	path := writeTempFile(t, dir, "a.bin", content)

	pieces, err := HashFiles([]FileSpan{{Path: path, Length: int64(len(content))}}, 10, 3)
	require.NoError(t, err)
	require.Len(t, pieces, 60)

	want0 := sha1.Sum(content[0:10])
	want1 := sha1.Sum(content[10:20])
	want2 := sha1.Sum(content[20:25])
	require.Equal(t, want0[:], pieces[0:20])
	require.Equal(t, want1[:], pieces[20:40])
	require.Equal(t, want2[:], pieces[40:60])
}

func TestHashFilesOrderingIsByIndexNotCompletion(t *testing.T) {
	dir := t.TempDir()
	// Many small pieces across many workers stresses that results land
	// at their own index even when workers finish out of order.
	content := seqBytes(2000)
	path := writeTempFile(t, dir, "a.bin", content)

	pieces, err := HashFiles([]FileSpan{{Path: path, Length: int64(len(content))}}, 17, 8)
	require.NoError(t, err)

	pieceLen := int64(17)
	total := int64(len(content))
	n := int((total + pieceLen - 1) / pieceLen)
	require.Len(t, pieces, n*20)

	for i := 0; i < n; i++ {
		start := int64(i) * pieceLen
		end := start + pieceLen
		if end > total {
			end = total
		}
		want := sha1.Sum(content[start:end])
		require.Equal(t, want[:], pieces[i*20:i*20+20], "piece %d", i)
	}
}

func TestHashFilesRejectsNonPositivePieceLength(t *testing.T) {
	_, err := HashFiles(nil, 0, 1)
	require.Error(t, err)
}

func TestVerifyDetectsMismatch(t *testing.T) {
	dir := t.TempDir()
	content := seqBytes(40)
	path := writeTempFile(t, dir, "a.bin", content)
	spans := []FileSpan{{Path: path, Length: int64(len(content))}}

	expected, err := HashFiles(spans, 20, 2)
	require.NoError(t, err)

	results, err := Verify(spans, 20, expected, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].OK)
	require.True(t, results[1].OK)

	corrupted := append([]byte{}, expected...)
	corrupted[0] ^= 0xFF
	results, err = Verify(spans, 20, corrupted, 2)
	require.NoError(t, err)
	require.False(t, results[0].OK)
	require.True(t, results[1].OK)
}

func seqBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}
