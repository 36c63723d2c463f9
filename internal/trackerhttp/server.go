// Package trackerhttp is the HTTP transport for the tracker's announce
// protocol (spec §4.5). The router shape — a Server wrapping a
// *mux.Router, with /announce registered ahead of the catch-all — is
// grounded on martymcquaid-omnicloud2024/omnicloud/internal/api/server.go;
// the status-code-capturing logging middleware is grounded on that
// package's middleware.go, adapted to zerolog and a uuid request id in
// place of that file's log.Printf/net/http auth middleware (this
// tracker has no announce-time authentication, per spec §1).
package trackerhttp

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rexshade/ttorrent/internal/config"
	"github.com/rexshade/ttorrent/internal/swarm"
)

// serverBanner is sent as the Server response header on every request
// that matches a route, per spec §6. The router's not-found handler runs
// outside the logging middleware and does not set it.
const serverBanner = "ttorrentd"

// Server binds the tracker's swarm registry to an HTTP listener.
type Server struct {
	tracker *swarm.Tracker
	cfg     config.Config
	log     zerolog.Logger

	router *mux.Router
	http   *http.Server
}

// NewServer builds a Server ready to Start.
func NewServer(tracker *swarm.Tracker, cfg config.Config, log zerolog.Logger) *Server {
	s := &Server{
		tracker: tracker,
		cfg:     cfg,
		log:     log.With().Str("component", "trackerhttp").Logger(),
	}

	s.router = mux.NewRouter()
	s.router.Use(s.loggingMiddleware)
	s.router.HandleFunc("/announce", s.handleAnnounce).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(http.NotFound)

	s.http = &http.Server{
		Addr:         cfg.BindAddr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Start binds the listen address and begins serving in the
// background, transitioning the tracker to StateRunning.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.BindAddr)
	if err != nil {
		return err
	}
	s.tracker.SetState(swarm.StateRunning)
	s.log.Info().Str("addr", s.cfg.BindAddr).Msg("tracker listening")

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("tracker server exited unexpectedly")
		}
	}()
	return nil
}

// Stop drains in-flight requests and shuts the listener down,
// transitioning StateRunning -> StateStopping -> StateStopped.
func (s *Server) Stop(ctx context.Context) error {
	s.tracker.SetState(swarm.StateStopping)
	err := s.http.Shutdown(ctx)
	s.tracker.SetState(swarm.StateStopped)
	return err
}

// responseRecorder wraps http.ResponseWriter to capture the status
// code for logging, the same shape as omnicloud's middleware.go.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("Server", serverBanner)

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Debug().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}
