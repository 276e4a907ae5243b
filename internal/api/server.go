// Package api exposes the backtest service over HTTP.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-quant/internal/logger"
	"github.com/rxtech-lab/argo-quant/internal/service"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Config configures the HTTP server.
type Config struct {
	Addr           string
	AllowedOrigins []string
	// RequestTimeout bounds each API request. Zero means no bound.
	RequestTimeout  time.Duration
	DefaultInterval marketdata.Interval
}

// Server serves the backtest API.
type Server struct {
	service *service.BacktestService
	config  Config
	log     *logger.Logger
	router  *mux.Router
}

// NewServer creates a server and registers its routes.
func NewServer(svc *service.BacktestService, config Config, log *logger.Logger) *Server {
	if config.DefaultInterval == "" {
		config.DefaultInterval = marketdata.IntervalOneHour
	}

	s := &Server{
		service: svc,
		config:  config,
		log:     logger.OrNop(log),
		router:  mux.NewRouter(),
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	s.router.Use(requestIDMiddleware, s.accessLogMiddleware, corsMiddleware(s.config.AllowedOrigins))

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ohlcv", s.handleOHLCV).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/strategy/backtest", s.handleBacktest).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/strategy/equity_curve", s.handleEquityCurve).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/strategy/schema", s.handleStrategySchema).Methods(http.MethodGet, http.MethodOptions)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("HTTP server listening", zap.String("addr", listener.Addr().String()))
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.log.Info("Shutting down HTTP server")

		return httpServer.Shutdown(shutdownCtx)
	}
}
