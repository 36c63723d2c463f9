// Command announce-client is a smoke-test tool: it sends a single
// announce to a running ttorrentd and prints the decoded response,
// mirroring omnicloud's tools/seed-test convention of a small
// standalone probe program alongside the daemon.
//
// It adapts the teacher's client-side TrackerQuery/TrackerAnnounce/
// generatePeerId (root main.go/tracker.go, out of scope for the
// tracker server itself per spec §1) into a debugging aid for the
// server this repo actually builds.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/rexshade/ttorrent/internal/bencode"
)

func main() {
	var (
		trackerURL = flag.String("tracker", "http://127.0.0.1:6969/announce", "tracker announce URL")
		infoHash   = flag.String("info-hash", "", "40-char hex info-hash")
		port       = flag.Int("port", 6881, "local peer port to advertise")
		event      = flag.String("event", "started", "started, stopped, completed, or empty for none")
		left       = flag.Int64("left", 0, "bytes left to download")
	)
	flag.Parse()

	if *infoHash == "" {
		fmt.Fprintln(os.Stderr, "announce-client: -info-hash is required")
		os.Exit(2)
	}
	hashBytes, err := hex.DecodeString(*infoHash)
	if err != nil || len(hashBytes) != 20 {
		fmt.Fprintln(os.Stderr, "announce-client: -info-hash must be 40 hex characters")
		os.Exit(2)
	}

	peerID := generatePeerID()
	q := url.Values{}
	q.Set("info_hash", string(hashBytes))
	q.Set("peer_id", peerID)
	q.Set("port", strconv.Itoa(*port))
	q.Set("uploaded", "0")
	q.Set("downloaded", "0")
	q.Set("left", strconv.FormatInt(*left, 10))
	if *event != "" {
		q.Set("event", *event)
	}

	reqURL, err := url.Parse(*trackerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "announce-client: bad tracker URL: %v\n", err)
		os.Exit(1)
	}
	reqURL.RawQuery = q.Encode()

	resp, err := http.Get(reqURL.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "announce-client: request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "announce-client: reading response: %v\n", err)
		os.Exit(1)
	}

	v, err := bencode.Decode(body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "announce-client: response is not valid bencode: %v\nraw: %q\n", err, body)
		os.Exit(1)
	}
	fmt.Printf("status=%d peer_id=%x\nresponse=%#v\n", resp.StatusCode, peerID, bencode.ToNative(v))
}

// generatePeerID follows the Azureus-style convention the teacher's
// generatePeerId used: a short client tag followed by random bytes,
// padded to 20 bytes total.
func generatePeerID() string {
	const clientTag = "-TT0001-"
	var b strings.Builder
	b.WriteString(clientTag)
	remaining := 20 - len(clientTag)
	randBytes := make([]byte, remaining)
	if _, err := rand.Read(randBytes); err != nil {
		for i := range randBytes {
			randBytes[i] = byte(i)
		}
	}
	b.Write(randBytes)
	return b.String()
}
