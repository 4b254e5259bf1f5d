package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"trackmate/internal/config"
	"trackmate/internal/maps"
	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/adapters/driven/bm"
	"trackmate/internal/trip-service/adapters/driven/db"
	"trackmate/internal/trip-service/adapters/driven/geocode"
	"trackmate/internal/trip-service/adapters/driver/myhttp/handle"
	"trackmate/internal/trip-service/adapters/driver/myhttp/middleware"
	"trackmate/internal/trip-service/core/ports"
	"trackmate/internal/trip-service/core/services"

	"github.com/rs/cors"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	broker ports.IInviteBroker
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

// Run connects the driven adapters, wires routes and starts listening. It
// returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	database, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	broker, err := bm.New(s.appCtx, *s.cfg.RabbitMq, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.broker = broker
	mylog.Info("Successful rabbitmq connection")

	s.Configure()

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   []string{s.cfg.App.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.TripServicePort),
		Handler: corsWrapper.Handler(s.mux),
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.TripServicePort)
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

	if s.broker != nil {
		if err := s.broker.Close(); err != nil {
			s.mylog.Error("Failed to close rabbitmq connection", err)
		} else {
			s.mylog.Info("RabbitMQ connection closed")
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
	tripsRepo := db.NewTripsRepo(s.db)
	participantsRepo := db.NewParticipantsRepo(s.db)

	tripService := services.NewTripService(s.appCtx, s.mylog, tripsRepo, participantsRepo, s.broker)
	invitationService := services.NewInvitationService(s.appCtx, s.mylog, tripsRepo, participantsRepo)

	mapsClient := maps.NewClient(s.cfg.App.MapsAPIKey)
	geocoder := geocode.NewGoogleGeocoder(mapsClient)

	tripsHandler := handle.NewTripsHandler(tripService, s.mylog)
	invitationsHandler := handle.NewInvitationsHandler(invitationService, s.mylog)
	mapsHandler := handle.NewMapsHandler(geocoder, geocoder, s.cfg.App.MapsAPIKey, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	s.mux.Handle("POST /trips", authMiddleware.Wrap(tripsHandler.CreateTrip()))
	s.mux.Handle("GET /trips", authMiddleware.Wrap(tripsHandler.ListTrips()))
	s.mux.Handle("GET /trips/{trip_id}", authMiddleware.Wrap(tripsHandler.GetTrip()))
	s.mux.Handle("PATCH /trips/{trip_id}", authMiddleware.Wrap(tripsHandler.UpdateTrip()))
	s.mux.Handle("DELETE /trips/{trip_id}", authMiddleware.Wrap(tripsHandler.DeleteTrip()))

	s.mux.Handle("GET /invitations/{participant_id}", authMiddleware.Wrap(invitationsHandler.GetInvitation()))
	s.mux.Handle("POST /invitations/{participant_id}", authMiddleware.Wrap(invitationsHandler.Respond()))

	s.mux.Handle("GET /geocode", authMiddleware.Wrap(mapsHandler.Geocode()))
	s.mux.Handle("GET /directions", authMiddleware.Wrap(mapsHandler.Directions()))
	s.mux.Handle("GET /maps-key", authMiddleware.Wrap(mapsHandler.MapsKey()))
}
