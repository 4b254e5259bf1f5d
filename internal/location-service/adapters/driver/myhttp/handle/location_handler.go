package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"trackmate/internal/location-service/core/domain/dto"
	"trackmate/internal/location-service/core/ports"
	"trackmate/internal/mylogger"
)

type LocationHandler struct {
	locationService ports.ILocationService
	log             mylogger.Logger
}

func NewLocationHandler(ls ports.ILocationService, log mylogger.Logger) *LocationHandler {
	return &LocationHandler{
		locationService: ls,
		log:             log,
	}
}

func (lh *LocationHandler) Record() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantId := r.PathValue("participant_id")

		req := dto.RecordLocationRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		resp, err := lh.locationService.Record(ctx, r.Header.Get("X-UserId"), participantId, req)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, resp)
	}
}

func (lh *LocationHandler) ParticipantLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		participantId := r.PathValue("participant_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		participant, err := lh.locationService.ParticipantLocation(ctx, r.Header.Get("X-UserId"), participantId)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, participant)
	}
}

func (lh *LocationHandler) TripLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tripId := r.PathValue("trip_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		locations, err := lh.locationService.TripLocations(ctx, r.Header.Get("X-UserId"), tripId)
		if err != nil {
			jsonError(w, errStatus(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, locations)
	}
}
