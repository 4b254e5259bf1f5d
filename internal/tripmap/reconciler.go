package tripmap

import (
	"context"
	"sync"

	"trackmate/internal/mylogger"
)

const (
	boundsPadding = 50
	maxFitZoom    = 15
)

// Reconciler redraws the surface from each snapshot. Every refresh discards
// the previous markers and routes and rebuilds them, which keeps the surface
// consistent without diffing; only the camera carries state across refreshes.
type Reconciler struct {
	mylog   mylogger.Logger
	surface Surface
	routes  RouteSource
	store   ViewportStore
	selfId  string

	mu sync.Mutex
	// fitted flips on the first successful population and never resets for
	// the lifetime of the view: the camera belongs to the viewer afterwards.
	fitted bool
	tripId string
}

func NewReconciler(mylog mylogger.Logger, surface Surface, routes RouteSource, store ViewportStore, tripId, selfParticipantId string) *Reconciler {
	r := &Reconciler{
		mylog:   mylog,
		surface: surface,
		routes:  routes,
		store:   store,
		tripId:  tripId,
		selfId:  selfParticipantId,
	}

	if store != nil {
		if v, ok := store.Load(tripId); ok {
			surface.SetViewport(v)
			// A restored view wins over the initial auto-fit.
			r.fitted = true
		}
	}
	return r
}

// Apply renders one snapshot. It is atomic from the viewer's perspective:
// concurrent pollers serialize here.
func (r *Reconciler) Apply(ctx context.Context, snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.surface.Clear()

	if snap.DestinationCoord != nil {
		r.surface.DrawDestination(*snap.DestinationCoord, snap.Destination)
	}

	var positions []LatLng
	for _, p := range snap.Participants {
		if p.Location == nil {
			continue
		}
		pos := *p.Location
		positions = append(positions, pos)
		color := ColorFor(p.ParticipantId)

		r.surface.DrawMarker(Marker{
			ParticipantId: p.ParticipantId,
			Position:      pos,
			Label:         p.UserName,
			Color:         color,
			Self:          p.ParticipantId == r.selfId,
		})

		if snap.DestinationCoord == nil {
			continue
		}
		path, err := r.routes.Route(ctx, pos, *snap.DestinationCoord)
		if err != nil {
			// one broken route never takes down the rest of the refresh
			r.mylog.Warn("Skipping route for participant",
				"participantId", p.ParticipantId, "error", err.Error())
			continue
		}
		r.surface.DrawRoute(RouteLine{
			ParticipantId: p.ParticipantId,
			Path:          path,
			Color:         color,
		})
	}

	if !r.fitted && len(positions) > 0 {
		if snap.DestinationCoord != nil {
			positions = append(positions, *snap.DestinationCoord)
		}
		r.surface.FitBounds(boundsFor(positions), boundsPadding, maxFitZoom)
		r.fitted = true
	}

	if r.store != nil {
		if err := r.store.Save(r.tripId, r.surface.Viewport()); err != nil {
			r.mylog.Warn("Failed to persist viewport", "error", err.Error())
		}
	}
}

// AnchorSelf recenters the camera on the viewer's own last pushed position.
// This is the one camera move that happens after the initial fit: it is
// driven by the viewer's own device while tracking, never by fan-out
// refreshes, which keep their hands off the camera.
func (r *Reconciler) AnchorSelf(pos LatLng) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.surface.Viewport()
	v.Center = pos
	r.surface.SetViewport(v)

	if r.store != nil {
		if err := r.store.Save(r.tripId, v); err != nil {
			r.mylog.Warn("Failed to persist viewport", "error", err.Error())
		}
	}
}

func boundsFor(positions []LatLng) Bounds {
	b := Bounds{SouthWest: positions[0], NorthEast: positions[0]}
	for _, p := range positions[1:] {
		if p.Lat < b.SouthWest.Lat {
			b.SouthWest.Lat = p.Lat
		}
		if p.Lng < b.SouthWest.Lng {
			b.SouthWest.Lng = p.Lng
		}
		if p.Lat > b.NorthEast.Lat {
			b.NorthEast.Lat = p.Lat
		}
		if p.Lng > b.NorthEast.Lng {
			b.NorthEast.Lng = p.Lng
		}
	}
	return b
}
