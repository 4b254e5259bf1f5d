package main

import (
	"fmt"
	"sync"

	"trackmate/internal/tripmap"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// TerminalSurface renders the trip map as a stream of text lines, one per
// drawn element. It honors every contract the reconciler relies on, the
// camera semantics included: routes never move the viewport, only FitBounds
// and SetViewport do.
type TerminalSurface struct {
	mu       sync.Mutex
	viewport tripmap.Viewport
	quiet    bool
	refresh  int
}

func NewTerminalSurface(quiet bool) *TerminalSurface {
	return &TerminalSurface{quiet: quiet}
}

func (s *TerminalSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh++
	s.printf("%s-- refresh %d --%s\n", Gray, s.refresh, Reset)
}

func (s *TerminalSurface) DrawMarker(m tripmap.Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, color := " ", Cyan
	if m.Self {
		tag, color = "*", Green
	}
	s.printf("%s%s %s @ (%.5f, %.5f) [%s]%s\n",
		color, tag, m.Label, m.Position.Lat, m.Position.Lng, m.Color, Reset)
}

func (s *TerminalSurface) DrawDestination(pos tripmap.LatLng, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printf("%s◎ %s (%.5f, %.5f)%s\n", Yellow, label, pos.Lat, pos.Lng, Reset)
}

func (s *TerminalSurface) DrawRoute(r tripmap.RouteLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printf("%s  route %s: %d points [%s]%s\n", Gray, r.ParticipantId, len(r.Path), r.Color, Reset)
}

func (s *TerminalSurface) FitBounds(b tripmap.Bounds, _ int, maxZoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewport = tripmap.Viewport{
		Center: tripmap.LatLng{
			Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
			Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
		},
		Zoom: maxZoom,
	}
	s.printf("%s  view fitted: center (%.5f, %.5f) zoom %.1f%s\n",
		Gray, s.viewport.Center.Lat, s.viewport.Center.Lng, s.viewport.Zoom, Reset)
}

func (s *TerminalSurface) SetViewport(v tripmap.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
}

func (s *TerminalSurface) Viewport() tripmap.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

func (s *TerminalSurface) printf(format string, args ...interface{}) {
	if s.quiet {
		return
	}
	fmt.Printf(format, args...)
}
