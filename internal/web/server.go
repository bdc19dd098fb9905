// Package web exposes the reconciliation engine over HTTP. Handlers
// translate between HTTP and the engine; every balance is computed by the
// engine and the statement builder, never here.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/krystal-group/stripe-statements/internal/companies"
	"github.com/krystal-group/stripe-statements/internal/loader"
	"github.com/krystal-group/stripe-statements/internal/logging"
	"github.com/krystal-group/stripe-statements/internal/reconcile"

	"github.com/gorilla/mux"
)

// Server is the HTTP front end over the loader and engine.
type Server struct {
	engine   *reconcile.Engine
	loader   *loader.Loader
	registry *companies.Registry
	log      logging.Logger

	httpServer *http.Server
}

// NewServer wires a server from its dependencies.
func NewServer(addr string, l *loader.Loader, engine *reconcile.Engine, registry *companies.Registry, logger logging.Logger) *Server {
	s := &Server{
		engine:   engine,
		loader:   l,
		registry: registry,
		log:      logger,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/companies", s.handleCompanies).Methods(http.MethodGet)
	r.HandleFunc("/api/statement/{company}/{year:[0-9]{4}}/{month:[0-9]{1,2}}", s.handleStatement).Methods(http.MethodGet)
	r.HandleFunc("/api/payout/{company}/{year:[0-9]{4}}/{month:[0-9]{1,2}}", s.handlePayout).Methods(http.MethodGet)
	r.HandleFunc("/api/previous-balance/{company}/{period}", s.handlePreviousBalance).Methods(http.MethodGet)

	return r
}

// Start serves until the context is cancelled, then drains connections
// within the shutdown grace period.
func (s *Server) Start(ctx context.Context, shutdownGrace time.Duration) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("HTTP server listening", logging.Field{Key: logging.FieldAddr, Value: s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	s.log.Info("HTTP server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
