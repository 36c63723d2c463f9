package swarm

import (
	"time"

	"github.com/rs/zerolog"
)

// Reaper periodically sweeps every admitted torrent's peer table and
// evicts peers that have gone stale. It is a single long-running task
// per spec §4.6: it observes a cooperative stop signal between sweeps
// rather than being interrupted mid-sweep, the idiomatic Go equivalent
// of the source's thread-interruption reaper (spec §9).
type Reaper struct {
	tracker   *Tracker
	freshness time.Duration
	interval  time.Duration
	log       zerolog.Logger

	stop chan struct{}
	done chan struct{}
}

// NewReaper builds a reaper that evicts peers idle for at least
// freshness, checking every interval.
func NewReaper(tracker *Tracker, freshness, interval time.Duration, log zerolog.Logger) *Reaper {
	return &Reaper{
		tracker:   tracker,
		freshness: freshness,
		interval:  interval,
		log:       log.With().Str("component", "reaper").Logger(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run blocks, sweeping every r.interval, until Stop is called. Intended
// to be launched with `go r.Run()`.
func (r *Reaper) Run() {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// Stop signals Run to exit after its current sweep and waits for it to
// do so.
func (r *Reaper) Stop() {
	close(r.stop)
	<-r.done
}

func (r *Reaper) sweep() {
	now := time.Now()
	r.tracker.Each(func(hash string, tt *TrackedTorrent) {
		removed := tt.Reap(now, r.freshness)
		if removed > 0 {
			r.log.Debug().
				Str("info_hash", hash).
				Int("removed", removed).
				Msg("reaped stale peers")
		}
	})
}
