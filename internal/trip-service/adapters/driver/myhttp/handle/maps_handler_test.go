package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackmate/internal/mylogger"
	"trackmate/internal/trip-service/core/domain/dto"
)

type fakeGeocoder struct {
	lat, lng float64
	err      error
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (float64, float64, error) {
	return f.lat, f.lng, f.err
}

type fakeRouter struct {
	route dto.RouteDto
	err   error
}

func (f *fakeRouter) Route(_ context.Context, _, _, _, _ float64) (dto.RouteDto, error) {
	return f.route, f.err
}

func newMapsFixture() (*MapsHandler, *fakeGeocoder, *fakeRouter) {
	geocoder := &fakeGeocoder{lat: 26.9124, lng: 75.7873}
	router := &fakeRouter{route: dto.RouteDto{
		Path:         []dto.PointDto{{Lat: 28.61, Lng: 77.23}, {Lat: 26.91, Lng: 75.79}},
		DistanceText: "279 km",
		DurationText: "5 hours 15 mins",
	}}
	h := NewMapsHandler(geocoder, router, "browser-key", mylogger.NewDiscard())
	return h, geocoder, router
}

func TestGeocodeHandler(t *testing.T) {
	h, _, _ := newMapsFixture()

	req := httptest.NewRequest(http.MethodGet, "/geocode?address=Jaipur", nil)
	rec := httptest.NewRecorder()
	h.Geocode()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp dto.GeocodeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Lat != 26.9124 || resp.Lng != 75.7873 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestGeocodeHandlerRequiresAddress(t *testing.T) {
	h, _, _ := newMapsFixture()

	req := httptest.NewRequest(http.MethodGet, "/geocode", nil)
	rec := httptest.NewRecorder()
	h.Geocode()(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGeocodeHandlerUpstreamFailureIs502(t *testing.T) {
	h, geocoder, _ := newMapsFixture()
	geocoder.err = errors.New("quota exceeded")

	req := httptest.NewRequest(http.MethodGet, "/geocode?address=Jaipur", nil)
	rec := httptest.NewRecorder()
	h.Geocode()(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestDirectionsHandler(t *testing.T) {
	h, _, _ := newMapsFixture()

	req := httptest.NewRequest(http.MethodGet,
		"/directions?originLat=28.61&originLng=77.23&destLat=26.91&destLng=75.79", nil)
	rec := httptest.NewRecorder()
	h.Directions()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp dto.RouteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || len(resp.Route.Path) != 2 || resp.Route.DistanceText != "279 km" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestDirectionsHandlerValidatesParams(t *testing.T) {
	h, _, _ := newMapsFixture()

	cases := []struct {
		name  string
		query string
	}{
		{"missing destLng", "originLat=28.61&originLng=77.23&destLat=26.91"},
		{"non-numeric originLat", "originLat=north&originLng=77.23&destLat=26.91&destLng=75.79"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/directions?"+tc.query, nil)
			rec := httptest.NewRecorder()
			h.Directions()(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestDirectionsHandlerUpstreamFailureIs502(t *testing.T) {
	h, _, router := newMapsFixture()
	router.err = errors.New("upstream down")

	req := httptest.NewRequest(http.MethodGet,
		"/directions?originLat=28.61&originLng=77.23&destLat=26.91&destLng=75.79", nil)
	rec := httptest.NewRecorder()
	h.Directions()(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestMapsKeyHandler(t *testing.T) {
	h, _, _ := newMapsFixture()

	req := httptest.NewRequest(http.MethodGet, "/maps-key", nil)
	rec := httptest.NewRecorder()
	h.MapsKey()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["apiKey"] != "browser-key" {
		t.Fatalf("apiKey = %q", resp["apiKey"])
	}
}

func TestMapsKeyHandlerUnconfigured(t *testing.T) {
	h := NewMapsHandler(&fakeGeocoder{}, &fakeRouter{}, "", mylogger.NewDiscard())

	req := httptest.NewRequest(http.MethodGet, "/maps-key", nil)
	rec := httptest.NewRecorder()
	h.MapsKey()(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
