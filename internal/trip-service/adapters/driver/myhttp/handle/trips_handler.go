package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/core/domain/dto"
	"trackmate/internal/trip-service/core/ports"
)

type TripsHandler struct {
	tripService ports.ITripService
	log         mylogger.Logger
}

func NewTripsHandler(ts ports.ITripService, log mylogger.Logger) *TripsHandler {
	return &TripsHandler{
		tripService: ts,
		log:         log,
	}
}

func (th *TripsHandler) CreateTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.CreateTripRequest{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		trip, err := th.tripService.CreateTrip(ctx, r.Header.Get("X-UserId"), req)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"trip":    trip,
			"message": "Trip created and invitations sent",
		})
	}
}

func (th *TripsHandler) ListTrips() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		trips, err := th.tripService.ListTrips(ctx, r.Header.Get("X-UserId"))
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{"trips": trips})
	}
}

func (th *TripsHandler) GetTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripId := r.PathValue("trip_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		trip, err := th.tripService.GetTrip(ctx, tripId)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{"trip": trip})
	}
}

func (th *TripsHandler) UpdateTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripId := r.PathValue("trip_id")

		req := dto.UpdateTripRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		trip, err := th.tripService.UpdateDestination(ctx, tripId, r.Header.Get("X-UserId"), req)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"trip":    trip,
		})
	}
}

func (th *TripsHandler) DeleteTrip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripId := r.PathValue("trip_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := th.tripService.DeleteTrip(ctx, tripId, r.Header.Get("X-UserId")); err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Trip deleted successfully",
		})
	}
}
