package maps

import (
	"math"
	"testing"
)

func TestDecodePolyline(t *testing.T) {
	// Worked example from the polyline algorithm reference.
	got := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	want := []LatLng{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}

	if len(got) != len(want) {
		t.Fatalf("decoded %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].Lat-want[i].Lat) > 1e-9 || math.Abs(got[i].Lng-want[i].Lng) > 1e-9 {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodePolylineEmpty(t *testing.T) {
	if got := DecodePolyline(""); len(got) != 0 {
		t.Fatalf("decoded %d points from empty input", len(got))
	}
}

func TestDecodePolylineTruncatedInput(t *testing.T) {
	// A dangling latitude delta without its longitude must not panic or
	// produce a half-decoded point.
	if got := DecodePolyline("_p~iF"); len(got) != 0 {
		t.Fatalf("decoded %d points from truncated input", len(got))
	}
}

func TestDecodePolylineSinglePoint(t *testing.T) {
	got := DecodePolyline("_p~iF~ps|U")
	if len(got) != 1 {
		t.Fatalf("decoded %d points, want 1", len(got))
	}
	if math.Abs(got[0].Lat-38.5) > 1e-9 || math.Abs(got[0].Lng+120.2) > 1e-9 {
		t.Fatalf("point = %+v, want {38.5 -120.2}", got[0])
	}
}
