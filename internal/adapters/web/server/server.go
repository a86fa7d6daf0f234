package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcalzada-xor/s1gap/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/s1gap/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/s1gap/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/s1gap/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr      string
	Service   ports.APService
	WSManager *websocket.WSManager

	InterfaceHandler *handlers.InterfaceHandler
	StationHandler   *handlers.StationHandler
	NegotiateHandler *handlers.NegotiateHandler
	ConfigHandler    *handlers.ConfigHandler

	srv *http.Server
}

// NewServer creates a new web server. ws may be shared with the station
// event fanout so the same manager receives events and serves clients.
func NewServer(addr string, service ports.APService, ws *websocket.WSManager) *Server {
	if ws == nil {
		ws = websocket.NewWSManager(service, 64)
	}
	return &Server{
		Addr:             addr,
		Service:          service,
		WSManager:        ws,
		InterfaceHandler: handlers.NewInterfaceHandler(service),
		StationHandler:   handlers.NewStationHandler(service),
		NegotiateHandler: handlers.NewNegotiateHandler(service),
		ConfigHandler:    handlers.NewConfigHandler(service, ws),
	}
}

// Handler builds the instrumented HTTP handler. Background helpers stop
// when ctx is cancelled.
func (s *Server) Handler(ctx context.Context) http.Handler {
	limiter := middleware.NewRateLimiter(ctx, 30, time.Minute)
	return otelhttp.NewHandler(SetupRoutes(s, limiter), "s1gap-api")
}

// Run starts the server and the event broadcaster and blocks until ctx is
// cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.WSManager.Start(ctx)

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Web server shutdown error", "error", err)
		}
	}()

	slog.Info("Web server listening", "addr", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
