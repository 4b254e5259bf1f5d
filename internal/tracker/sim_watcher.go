package tracker

import (
	"context"
	"math/rand"
	"time"
)

// SimWatcher fakes a device position stream by drifting from a starting
// point, the same way a phone slowly reports movement. It stands in for a
// real geolocation source on platforms without one.
type SimWatcher struct {
	Start    Position
	Interval time.Duration
}

func NewSimWatcher(lat, lng float64, interval time.Duration) *SimWatcher {
	return &SimWatcher{
		Start:    Position{Latitude: lat, Longitude: lng},
		Interval: interval,
	}
}

func (w *SimWatcher) Watch(ctx context.Context) (<-chan Position, error) {
	out := make(chan Position)

	go func() {
		defer close(out)

		pos := w.Start
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Simulate small movement
				pos.Latitude += (rand.Float64() - 0.5) / 1000
				pos.Longitude += (rand.Float64() - 0.5) / 1000
				pos.ObservedAt = time.Now()

				select {
				case out <- pos:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
