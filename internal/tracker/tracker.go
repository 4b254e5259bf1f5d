// Package tracker implements the client-side location tracker: a two-state
// machine that watches device positions while tracking and pushes each
// observation to the location service.
package tracker

import (
	"context"
	"sync"
	"time"

	"trackmate/internal/mylogger"
)

const pushTimeout = 10 * time.Second

type Position struct {
	Latitude   float64
	Longitude  float64
	Accuracy   *float64
	Heading    *float64
	Speed      *float64
	ObservedAt time.Time
}

// Watcher streams device positions. Implementations must deliver fresh,
// highest-accuracy fixes only, never cached ones, and must close the channel
// when the context is cancelled.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Position, error)
}

// Pusher delivers one position report to the server.
type Pusher interface {
	PushLocation(ctx context.Context, participantId string, pos Position) error
}

// Tracker moves between exactly two states, Idle and Tracking, only on
// explicit Start/Stop calls. There are no automatic transitions.
type Tracker struct {
	mylog         mylogger.Logger
	watcher       Watcher
	pusher        Pusher
	participantId string

	// onPush observes every position handed to the pusher; the viewer uses
	// it to anchor its own map centering independently of the fan-out.
	onPush func(Position)

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func New(mylog mylogger.Logger, watcher Watcher, pusher Pusher, participantId string, onPush func(Position)) *Tracker {
	return &Tracker{
		mylog:         mylog,
		watcher:       watcher,
		pusher:        pusher,
		participantId: participantId,
		onPush:        onPush,
	}
}

// Start transitions Idle -> Tracking and subscribes to the watcher. Calling
// Start while already Tracking is a no-op.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	positions, err := t.watcher.Watch(watchCtx)
	if err != nil {
		cancel()
		return err
	}

	t.cancel = cancel
	t.stopped = make(chan struct{})
	go t.loop(positions, t.stopped)

	t.mylog.Action("tracking_started").Info("Location tracking started",
		"participantId", t.participantId)
	return nil
}

// Stop transitions Tracking -> Idle: the watcher subscription is cancelled
// immediately, in-flight pushes are left to complete. Calling Stop while
// Idle is a no-op.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel, stopped := t.cancel, t.stopped
	t.cancel, t.stopped = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped

	t.mylog.Action("tracking_stopped").Info("Location tracking stopped",
		"participantId", t.participantId)
}

func (t *Tracker) Tracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Tracker) loop(positions <-chan Position, stopped chan struct{}) {
	defer close(stopped)

	for pos := range positions {
		// Fire-and-forget: the push must survive Stop, so it runs on its
		// own context, and a failure never stops tracking.
		go func(p Position) {
			ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
			defer cancel()

			if err := t.pusher.PushLocation(ctx, t.participantId, p); err != nil {
				t.mylog.Error("Failed to push location", err,
					"participantId", t.participantId)
			}
		}(pos)

		if t.onPush != nil {
			t.onPush(pos)
		}
	}
}
