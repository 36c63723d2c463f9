// Command ttorrentd runs the tracker process: it loads configuration,
// starts the swarm registry, the freshness reaper, and the HTTP
// announce server, and waits for SIGINT/SIGTERM to shut down
// gracefully. The signal-then-timeout-context shutdown sequence is
// grounded on omnicloud/cmd/omnicloud/main.go's interrupt handling.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rexshade/ttorrent/internal/config"
	"github.com/rexshade/ttorrent/internal/swarm"
	"github.com/rexshade/ttorrent/internal/trackerhttp"
)

var errInvalidHashLength = errors.New("ttorrentd: info-hash must be 40 hex characters")

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	cfg, err := config.Load(config.Production())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	tracker := swarm.NewTracker()
	if err := admitFromEnv(tracker); err != nil {
		log.Fatal().Err(err).Msg("could not admit configured torrents")
	}

	reaper := swarm.NewReaper(tracker, cfg.FreshnessWindow, cfg.ReapInterval, log)
	go reaper.Run()
	defer reaper.Stop()

	server := trackerhttp.NewServer(tracker, cfg, log)
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("tracker failed to start")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutdown signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracker shutdown did not complete cleanly")
	}
}

// admitFromEnv is a placeholder admission path for operators running
// the tracker ad hoc without a companion admission API: a
// TTORRENT_ADMIT_HASHES env var of comma-separated 40-char hex
// info-hashes is admitted at startup. A real deployment would drive
// Admit/Withdraw from a management endpoint instead.
func admitFromEnv(tracker *swarm.Tracker) error {
	raw := os.Getenv("TTORRENT_ADMIT_HASHES")
	if raw == "" {
		return nil
	}
	for _, hexHash := range strings.Split(raw, ",") {
		hexHash = strings.TrimSpace(hexHash)
		if hexHash == "" {
			continue
		}
		hash, err := decodeHexHash(hexHash)
		if err != nil {
			return err
		}
		tracker.Admit(hash)
	}
	return nil
}

func decodeHexHash(s string) ([20]byte, error) {
	var out [20]byte
	if len(s) != 40 {
		return out, errInvalidHashLength
	}
	n, err := hex.Decode(out[:], []byte(s))
	if err != nil || n != 20 {
		return out, errInvalidHashLength
	}
	return out, nil
}
