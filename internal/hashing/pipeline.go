// Package hashing implements the parallel SHA-1 piece-hashing pipeline
// used both to create new torrents (internal/metainfo.Create) and to
// verify that data already on disk matches a torrent's declared pieces.
//
// The worker-pool shape — a bounded job channel feeding fixed goroutines,
// each writing its result into a pre-sized slice at its own piece index
// rather than a channel read in completion order — is grounded on
// martymcquaid-omnicloud2024/omnicloud/internal/torrent/generator.go's
// generatePieces, stripped of its database checkpointing (out of scope
// here; this package has no storage dependency of its own).
package hashing

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // required by the BitTorrent wire format, not used for security
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"
)

// maxWorkers caps DefaultWorkers the same way generator.go caps its own
// worker count, to bound goroutine and in-flight-piece memory overhead.
const maxWorkers = 16

// readBufferSize is the chunk size used to stream file contents into
// pieces; generator.go uses the same 512KB figure.
const readBufferSize = 512 * 1024

// FileSpan is one file's contribution to a torrent's concatenated piece
// stream: a path to read from and the number of bytes it contributes.
type FileSpan struct {
	Path   string
	Length int64
}

// DefaultWorkers returns the hashing worker count used when none is
// requested explicitly and TTORRENT_HASHING_THREADS is unset: the host's
// reported parallelism, capped at maxWorkers.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n > maxWorkers {
		n = maxWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

func resolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	if v := os.Getenv("TTORRENT_HASHING_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultWorkers()
}

type pieceJob struct {
	index int
	data  []byte
}

// HashFiles streams the concatenated contents of spans, in order, into
// pieceLength-sized pieces (the last may be shorter) and returns their
// SHA-1 digests concatenated in piece order — 20 bytes per piece, the
// exact shape of a metainfo info.pieces field. workers <= 0 resolves via
// TTORRENT_HASHING_THREADS then DefaultWorkers.
func HashFiles(spans []FileSpan, pieceLength int64, workers int) ([]byte, error) {
	if pieceLength <= 0 {
		return nil, fmt.Errorf("hashing: piece length must be positive, got %d", pieceLength)
	}

	var totalSize int64
	for _, s := range spans {
		totalSize += s.Length
	}
	estimatedPieces := int((totalSize + pieceLength - 1) / pieceLength)
	if estimatedPieces == 0 {
		return []byte{}, nil
	}

	numWorkers := resolveWorkers(workers)
	results := make([][]byte, estimatedPieces)
	var resultsMu sync.Mutex

	jobs := make(chan pieceJob, numWorkers*2)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				sum := sha1.Sum(job.data)
				resultsMu.Lock()
				for job.index >= len(results) {
					results = append(results, nil)
				}
				results[job.index] = sum[:]
				resultsMu.Unlock()
			}
		}()
	}

	pieceIndex := 0
	current := make([]byte, 0, pieceLength)
	var readErr error

readLoop:
	for _, span := range spans {
		f, err := os.Open(span.Path)
		if err != nil {
			readErr = err
			break
		}
		buf := make([]byte, readBufferSize)
		for {
			n, rerr := f.Read(buf)
			if n > 0 {
				data := buf[:n]
				for len(data) > 0 {
					space := int(pieceLength) - len(current)
					if space > len(data) {
						space = len(data)
					}
					current = append(current, data[:space]...)
					data = data[space:]
					if int64(len(current)) == pieceLength {
						piece := make([]byte, len(current))
						copy(piece, current)
						jobs <- pieceJob{index: pieceIndex, data: piece}
						pieceIndex++
						current = current[:0]
					}
				}
			}
			if rerr == io.EOF {
				break
			}
			if rerr != nil {
				readErr = rerr
				f.Close()
				break readLoop
			}
		}
		f.Close()
	}

	if readErr == nil && len(current) > 0 {
		piece := make([]byte, len(current))
		copy(piece, current)
		jobs <- pieceJob{index: pieceIndex, data: piece}
		pieceIndex++
	}

	close(jobs)
	wg.Wait()

	if readErr != nil {
		return nil, readErr
	}

	results = results[:pieceIndex]
	pieces := make([]byte, 0, pieceIndex*20)
	for i, h := range results {
		if h == nil {
			return nil, fmt.Errorf("hashing: missing digest for piece %d", i)
		}
		pieces = append(pieces, h...)
	}
	return pieces, nil
}

// VerifyResult reports whether one piece's on-disk bytes matched its
// declared digest.
type VerifyResult struct {
	Index int
	OK    bool
}

// Verify re-hashes spans the same way HashFiles does and compares each
// resulting digest against the corresponding 20-byte slice of expected
// (a torrent's info.pieces). It is how a node checks data it already has
// on disk against a loaded torrent before announcing as a seeder, rather
// than trusting the data sight unseen.
func Verify(spans []FileSpan, pieceLength int64, expected []byte, workers int) ([]VerifyResult, error) {
	actual, err := HashFiles(spans, pieceLength, workers)
	if err != nil {
		return nil, err
	}
	n := len(actual) / 20
	out := make([]VerifyResult, n)
	for i := 0; i < n; i++ {
		a := actual[i*20 : i*20+20]
		var ok bool
		if end := (i + 1) * 20; end <= len(expected) {
			ok = bytes.Equal(a, expected[i*20:end])
		}
		out[i] = VerifyResult{Index: i, OK: ok}
	}
	return out, nil
}
