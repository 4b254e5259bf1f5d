package handle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/core/domain/dto"
	"trackmate/internal/trip-service/core/ports"
)

// MapsHandler proxies the maps provider: forward geocoding for trip
// destinations, driving routes, and the browser API key handout.
type MapsHandler struct {
	geocoder   ports.IGeocoder
	router     ports.IRouter
	mapsAPIKey string
	log        mylogger.Logger
}

func NewMapsHandler(geocoder ports.IGeocoder, router ports.IRouter, mapsAPIKey string, log mylogger.Logger) *MapsHandler {
	return &MapsHandler{
		geocoder:   geocoder,
		router:     router,
		mapsAPIKey: mapsAPIKey,
		log:        log,
	}
}

func (mh *MapsHandler) Geocode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("address")
		if address == "" {
			jsonResponse(w, http.StatusBadRequest, dto.GeocodeResponse{
				Success: false,
				Error:   "address parameter is required",
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		lat, lng, err := mh.geocoder.Geocode(ctx, address)
		if err != nil {
			mh.log.Action("Geocode").Error("Geocoding failed", err, "address", address)
			jsonResponse(w, http.StatusBadGateway, dto.GeocodeResponse{
				Success: false,
				Error:   "failed to geocode address",
			})
			return
		}

		jsonResponse(w, http.StatusOK, dto.GeocodeResponse{
			Success: true,
			Lat:     lat,
			Lng:     lng,
		})
	}
}

// Directions proxies the driving-route lookup used to draw participant
// routes on the map.
func (mh *MapsHandler) Directions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coords, err := parseCoords(r, "originLat", "originLng", "destLat", "destLng")
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, dto.RouteResponse{
				Success: false,
				Error:   err.Error(),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		route, err := mh.router.Route(ctx, coords[0], coords[1], coords[2], coords[3])
		if err != nil {
			mh.log.Action("Directions").Error("Route lookup failed", err)
			jsonResponse(w, http.StatusBadGateway, dto.RouteResponse{
				Success: false,
				Error:   "failed to compute route",
			})
			return
		}

		jsonResponse(w, http.StatusOK, dto.RouteResponse{Success: true, Route: route})
	}
}

func parseCoords(r *http.Request, keys ...string) ([]float64, error) {
	out := make([]float64, 0, len(keys))
	for _, key := range keys {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			return nil, fmt.Errorf("%s parameter is required", key)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", key)
		}
		out = append(out, v)
	}
	return out, nil
}

// MapsKey hands the provider API key to the client once per session.
func (mh *MapsHandler) MapsKey() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mh.mapsAPIKey == "" {
			jsonError(w, http.StatusInternalServerError, errors.New("maps API key not configured"))
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"apiKey": mh.mapsAPIKey})
	}
}
