// Package config loads the tracker's runtime configuration from
// environment variables over a set of sane defaults, the same
// precedence martymcquaid-omnicloud2024/omnicloud/internal/config's
// Load uses (file defaults, then env overrides) minus the file layer —
// this tracker has no auth.config equivalent to read.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable the tracker process reads at startup.
type Config struct {
	// BindAddr is the HTTP listen address, e.g. ":6969".
	BindAddr string

	// AnnounceInterval is the interval (seconds) advertised to clients
	// in announce responses.
	AnnounceInterval time.Duration

	// FreshnessWindow is how long a peer may go without re-announcing
	// before the reaper considers it stale. Must exceed AnnounceInterval.
	FreshnessWindow time.Duration

	// ReapInterval is how often the reaper sweeps all torrents.
	ReapInterval time.Duration

	// DefaultNumWant is how many peers an announce response includes
	// when the client didn't request a specific count.
	DefaultNumWant int

	// MaxNumWant caps how many peers any single announce response may
	// include, regardless of the client's numwant.
	MaxNumWant int

	// HashingWorkers is the default piece-hashing worker count; 0 means
	// resolve via TTORRENT_HASHING_THREADS then host parallelism.
	HashingWorkers int

	// PieceLength is the default piece size used by Create.
	PieceLength int64

	// CompactPeers selects the compact (6-bytes-per-peer) response
	// format by default; operators may still honor a client's explicit
	// compact=0 request.
	CompactPeers bool
}

// Production returns the defaults suited to a real deployment: 1800s
// announce interval, matching the 2x-interval freshness window spec
// §4.4 suggests.
func Production() Config {
	return Config{
		BindAddr:         ":6969",
		AnnounceInterval: 1800 * time.Second,
		FreshnessWindow:  3600 * time.Second,
		ReapInterval:     15 * time.Second,
		DefaultNumWant:   50,
		MaxNumWant:       200,
		HashingWorkers:   0,
		PieceLength:      524288,
		CompactPeers:     true,
	}
}

// Test returns defaults suited to fast-moving integration tests: a 60s
// announce interval and a proportionally short freshness window.
func Test() Config {
	cfg := Production()
	cfg.AnnounceInterval = 60 * time.Second
	cfg.FreshnessWindow = 120 * time.Second
	cfg.ReapInterval = 5 * time.Second
	return cfg
}

// Load starts from base and applies environment variable overrides,
// validating the result.
func Load(base Config) (Config, error) {
	cfg := base

	if v := os.Getenv("TTORRENT_BIND_ADDR"); v != "" {
		cfg.BindAddr = v
	}
	if d, ok := envDuration("TTORRENT_ANNOUNCE_INTERVAL"); ok {
		cfg.AnnounceInterval = d
	}
	if d, ok := envDuration("TTORRENT_FRESHNESS_WINDOW"); ok {
		cfg.FreshnessWindow = d
	}
	if d, ok := envDuration("TTORRENT_REAP_INTERVAL"); ok {
		cfg.ReapInterval = d
	}
	if n, ok := envInt("TTORRENT_DEFAULT_NUMWANT"); ok {
		cfg.DefaultNumWant = n
	}
	if n, ok := envInt("TTORRENT_MAX_NUMWANT"); ok {
		cfg.MaxNumWant = n
	}
	if n, ok := envInt("TTORRENT_HASHING_THREADS"); ok {
		cfg.HashingWorkers = n
	}
	if n, ok := envInt("TTORRENT_PIECE_LENGTH"); ok {
		cfg.PieceLength = int64(n)
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations that would violate spec invariants,
// in particular the freshness-window-exceeds-interval rule in §4.4.
func (c Config) Validate() error {
	if c.AnnounceInterval <= 0 {
		return fmt.Errorf("config: announce interval must be positive, got %s", c.AnnounceInterval)
	}
	if c.FreshnessWindow <= c.AnnounceInterval {
		return fmt.Errorf("config: freshness window (%s) must exceed announce interval (%s)",
			c.FreshnessWindow, c.AnnounceInterval)
	}
	if c.ReapInterval <= 0 {
		return fmt.Errorf("config: reap interval must be positive, got %s", c.ReapInterval)
	}
	if c.DefaultNumWant <= 0 || c.MaxNumWant < c.DefaultNumWant {
		return fmt.Errorf("config: numwant bounds invalid (default=%d max=%d)", c.DefaultNumWant, c.MaxNumWant)
	}
	if c.PieceLength <= 0 {
		return fmt.Errorf("config: piece length must be positive, got %d", c.PieceLength)
	}
	return nil
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	n, ok := envInt(key)
	if !ok {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}
