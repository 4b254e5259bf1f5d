package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/core/domain/dto"
	"trackmate/internal/trip-service/core/myerrors"
)

type fakeTripService struct {
	trip dto.TripDto
	err  error
}

func (f *fakeTripService) CreateTrip(_ context.Context, _ string, _ dto.CreateTripRequest) (dto.TripDto, error) {
	return f.trip, f.err
}

func (f *fakeTripService) ListTrips(_ context.Context, _ string) ([]dto.TripSummaryDto, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []dto.TripSummaryDto{{Id: f.trip.Id, Destination: f.trip.Destination, Status: "ACCEPTED"}}, nil
}

func (f *fakeTripService) GetTrip(_ context.Context, _ string) (dto.TripDto, error) {
	return f.trip, f.err
}

func (f *fakeTripService) UpdateDestination(_ context.Context, _, _ string, _ dto.UpdateTripRequest) (dto.TripDto, error) {
	return f.trip, f.err
}

func (f *fakeTripService) DeleteTrip(_ context.Context, _, _ string) error {
	return f.err
}

func newTripsHandlerFixture() (*TripsHandler, *fakeTripService) {
	svc := &fakeTripService{trip: dto.TripDto{Id: "trip-1", Destination: "Jaipur, India"}}
	return NewTripsHandler(svc, mylogger.NewDiscard()), svc
}

func TestCreateTripHandler(t *testing.T) {
	h, _ := newTripsHandlerFixture()

	body := `{"destination":"Jaipur, India","friendEmails":["ravi@example.com"]}`
	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body))
	req.Header.Set("X-UserId", "user-1")
	rec := httptest.NewRecorder()
	h.CreateTrip()(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var resp struct {
		Success bool        `json:"success"`
		Trip    dto.TripDto `json:"trip"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Trip.Id != "trip-1" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestCreateTripHandlerMalformedBody(t *testing.T) {
	h, _ := newTripsHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader("{oops"))
	rec := httptest.NewRecorder()
	h.CreateTrip()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// Service errors travel to the client through one mapping; check each
// taxonomy bucket once against a representative handler.
func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", myerrors.ErrValidation, http.StatusBadRequest},
		{"unauthenticated", myerrors.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", myerrors.ErrForbidden, http.StatusForbidden},
		{"trip not found", myerrors.ErrTripNotFound, http.StatusNotFound},
		{"invite not found", myerrors.ErrInviteNotFound, http.StatusNotFound},
		{"already decided", myerrors.ErrAlreadyDecided, http.StatusBadRequest},
		{"dependency", myerrors.ErrDependency, http.StatusBadGateway},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, svc := newTripsHandlerFixture()
			svc.err = tc.err

			req := httptest.NewRequest(http.MethodGet, "/trips/trip-1", nil)
			req.SetPathValue("trip_id", "trip-1")
			req.Header.Set("X-UserId", "user-1")
			rec := httptest.NewRecorder()
			h.GetTrip()(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			var resp struct {
				Error string `json:"error"`
				Code  int    `json:"code"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tc.want || resp.Error == "" {
				t.Fatalf("body = %+v", resp)
			}
		})
	}
}

func TestDeleteTripHandlerForbidden(t *testing.T) {
	h, svc := newTripsHandlerFixture()
	svc.err = myerrors.ErrForbidden

	req := httptest.NewRequest(http.MethodDelete, "/trips/trip-1", nil)
	req.SetPathValue("trip_id", "trip-1")
	req.Header.Set("X-UserId", "user-2")
	rec := httptest.NewRecorder()
	h.DeleteTrip()(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestUpdateTripHandler(t *testing.T) {
	h, svc := newTripsHandlerFixture()
	svc.trip.Destination = "Udaipur, India"

	body := `{"destination":"Udaipur, India"}`
	req := httptest.NewRequest(http.MethodPatch, "/trips/trip-1", strings.NewReader(body))
	req.SetPathValue("trip_id", "trip-1")
	req.Header.Set("X-UserId", "user-1")
	rec := httptest.NewRecorder()
	h.UpdateTrip()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Trip dto.TripDto `json:"trip"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Trip.Destination != "Udaipur, India" {
		t.Fatalf("destination = %q", resp.Trip.Destination)
	}
}
