package tripmap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trackmate/internal/mylogger"
)

const (
	locationsPollInterval = 5 * time.Second
	tripPollInterval      = 30 * time.Second
)

type TripInfo struct {
	TripId      string
	Destination string
}

// TripAPI is the server surface the viewer polls.
type TripAPI interface {
	Trip(ctx context.Context, tripId string) (TripInfo, error)
	TripLocations(ctx context.Context, tripId string) ([]ParticipantLocation, string, error)
	Geocode(ctx context.Context, address string) (LatLng, error)
}

// Poller drives the reconciler from two independent tickers: a fast one for
// participant locations and a slow one for trip and participant status. The
// tickers never wait on each other; each renders from the most recently
// completed pull of both kinds, so a refresh can briefly pair a newer
// location set with an older trip state.
type Poller struct {
	mylog      mylogger.Logger
	api        TripAPI
	reconciler *Reconciler
	tripId     string

	mu           sync.Mutex
	destination  string
	destCoord    *LatLng
	participants []ParticipantLocation
}

func NewPoller(mylog mylogger.Logger, api TripAPI, reconciler *Reconciler, tripId string) *Poller {
	return &Poller{
		mylog:      mylog,
		api:        api,
		reconciler: reconciler,
		tripId:     tripId,
	}
}

// Run blocks until ctx is cancelled. The first load is synchronous and its
// failure is terminal; afterwards transient errors only log and the stale
// render stays up until the next tick succeeds.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.pullLocations(ctx); err != nil {
		return fmt.Errorf("initial trip load: %w", err)
	}
	p.refreshDestination(ctx)
	p.render(ctx)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(locationsPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.pullLocations(ctx); err != nil {
					p.mylog.Warn("Location pull failed, keeping previous render",
						"tripId", p.tripId, "error", err.Error())
					continue
				}
				p.render(ctx)
			}
		}
	}()

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(tripPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.pullTrip(ctx); err != nil {
					p.mylog.Warn("Trip pull failed, keeping previous render",
						"tripId", p.tripId, "error", err.Error())
					continue
				}
				p.render(ctx)
			}
		}
	}()

	wg.Wait()
	return nil
}

func (p *Poller) pullLocations(ctx context.Context) error {
	participants, destination, err := p.api.TripLocations(ctx, p.tripId)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.participants = participants
	changed := destination != "" && destination != p.destination
	if changed {
		p.destination = destination
	}
	p.mu.Unlock()

	if changed {
		p.refreshDestination(ctx)
	}
	return nil
}

func (p *Poller) pullTrip(ctx context.Context) error {
	info, err := p.api.Trip(ctx, p.tripId)
	if err != nil {
		return err
	}

	p.mu.Lock()
	changed := info.Destination != p.destination
	p.destination = info.Destination
	p.mu.Unlock()

	if changed {
		p.refreshDestination(ctx)
	}
	return nil
}

// refreshDestination geocodes the current destination. The destination is
// geocoded once per value; a geocoding failure is a dependency error, not a
// terminal one: markers still render, routes wait for the next change.
func (p *Poller) refreshDestination(ctx context.Context) {
	p.mu.Lock()
	destination := p.destination
	p.mu.Unlock()

	if destination == "" {
		return
	}

	coord, err := p.api.Geocode(ctx, destination)
	if err != nil {
		p.mylog.Warn("Failed to geocode destination",
			"destination", destination, "error", err.Error())
		return
	}

	p.mu.Lock()
	p.destCoord = &coord
	p.mu.Unlock()
}

func (p *Poller) render(ctx context.Context) {
	p.mu.Lock()
	snap := Snapshot{
		TripId:           p.tripId,
		Destination:      p.destination,
		DestinationCoord: p.destCoord,
		Participants:     p.participants,
	}
	p.mu.Unlock()

	p.reconciler.Apply(ctx, snap)
}
