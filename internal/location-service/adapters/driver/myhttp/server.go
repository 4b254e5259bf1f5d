package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"trackmate/internal/config"
	"trackmate/internal/location-service/adapters/driven/db"
	"trackmate/internal/location-service/adapters/driven/ws"
	"trackmate/internal/location-service/adapters/driver/myhttp/handle"
	"trackmate/internal/location-service/adapters/driver/myhttp/middleware"
	"trackmate/internal/location-service/core/services"
	"trackmate/internal/mylogger"

	"github.com/rs/cors"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}
}

// Run connects the database, wires routes and starts listening. It returns
// when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	database, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	s.Configure()

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{s.cfg.App.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.LocationServicePort),
		Handler: corsWrapper.Handler(s.mux),
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.LocationServicePort)
	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, services and routes.
func (s *Server) Configure() {
	locationRepo := db.NewLocationRepo(s.db)
	hub := ws.NewHub(s.mylog)

	locationService := services.NewLocationService(s.appCtx, s.mylog, locationRepo, hub)

	locationHandler := handle.NewLocationHandler(locationService, s.mylog)
	wsHandler := handle.NewWebSocketHandler(hub, locationService, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	s.mux.Handle("POST /locations/{participant_id}", authMiddleware.Wrap(locationHandler.Record()))
	s.mux.Handle("GET /locations/{participant_id}", authMiddleware.Wrap(locationHandler.ParticipantLocation()))
	s.mux.Handle("GET /trips/{trip_id}/locations", authMiddleware.Wrap(locationHandler.TripLocations()))
	s.mux.Handle("GET /ws/trips/{trip_id}/locations", authMiddleware.Wrap(wsHandler.TripLocations()))
}
