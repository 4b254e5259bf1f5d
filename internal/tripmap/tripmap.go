// Package tripmap reconciles the live trip map: markers for every
// participant's latest location, driving routes to the destination, and a
// camera that fits once and then stays under the viewer's control.
package tripmap

import "context"

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParticipantLocation is one row of the fan-out response. Location is nil
// for participants who never reported.
type ParticipantLocation struct {
	ParticipantId string
	UserId        string
	UserName      string
	UserEmail     string
	Location      *LatLng
}

// Snapshot is everything one refresh renders from: the most recently
// completed location pull combined with the most recent trip pull.
type Snapshot struct {
	TripId      string
	Destination string
	// DestinationCoord is nil until the destination has been geocoded.
	DestinationCoord *LatLng
	Participants     []ParticipantLocation
}

type Marker struct {
	ParticipantId string
	Position      LatLng
	Label         string
	Color         string
	// Self marks the viewer's own record, drawn distinctly.
	Self bool
}

type RouteLine struct {
	ParticipantId string
	Path          []LatLng
	Color         string
}

type Bounds struct {
	SouthWest LatLng
	NorthEast LatLng
}

type Viewport struct {
	Center LatLng  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

// Surface is the drawing target. DrawRoute must never move the camera; only
// FitBounds and SetViewport are camera operations.
type Surface interface {
	Clear()
	DrawMarker(m Marker)
	DrawDestination(pos LatLng, label string)
	DrawRoute(r RouteLine)
	FitBounds(b Bounds, padding int, maxZoom float64)
	SetViewport(v Viewport)
	Viewport() Viewport
}

// RouteSource computes a driving path between two points.
type RouteSource interface {
	Route(ctx context.Context, from, to LatLng) ([]LatLng, error)
}
