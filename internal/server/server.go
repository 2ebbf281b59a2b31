// Package server exposes the engine over HTTP and a websocket game session.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/connect4-go/internal/config"
	"github.com/lgbarn/connect4-go/internal/errors"
	"github.com/lgbarn/connect4-go/internal/storage"
)

// shutdownTimeout bounds how long Run waits for open requests on exit.
const shutdownTimeout = 5 * time.Second

// Server serves the analysis API and websocket games.
type Server struct {
	cfg     *config.ServerConfig
	search  *config.SearchConfig
	store   *storage.Store // nil disables the /api/store routes
	log     zerolog.Logger
	version string
}

// New creates a server from cfg. The store may be nil.
func New(cfg *config.Config, store *storage.Store, version string) *Server {
	return &Server{
		cfg:     cfg.Server,
		search:  cfg.Search,
		store:   store,
		log:     cfg.Logger(),
		version: version,
	}
}

// Handler returns the router with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/position", s.handlePosition)
		r.Post("/bestmove", s.handleBestMove)
		if s.store != nil {
			r.Post("/store", s.handleStoreSave)
			r.Get("/store", s.handleStoreList)
			r.Get("/store/{id}", s.handleStoreGet)
		}
	})
	r.Get("/ws", s.handleWS)
	return r
}

// Run listens on the configured address until ctx is canceled, then shuts
// the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("graceful shutdown failed")
			return srv.Close()
		}
		s.log.Info().Msg("server stopped")
		return nil
	})
	return g.Wait()
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
