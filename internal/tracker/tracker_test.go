package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trackmate/internal/mylogger"
)

type chanWatcher struct {
	positions chan Position
	watchErr  error
}

func (w *chanWatcher) Watch(ctx context.Context) (<-chan Position, error) {
	if w.watchErr != nil {
		return nil, w.watchErr
	}
	out := make(chan Position)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p, ok := <-w.positions:
				if !ok {
					return
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type recordingPusher struct {
	mu     sync.Mutex
	pushes []Position
	err    error
	done   chan struct{}
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{done: make(chan struct{}, 16)}
}

func (p *recordingPusher) PushLocation(_ context.Context, _ string, pos Position) error {
	p.mu.Lock()
	p.pushes = append(p.pushes, pos)
	p.mu.Unlock()
	p.done <- struct{}{}
	return p.err
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushes)
}

func waitForPush(t *testing.T, p *recordingPusher) {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a push")
	}
}

func TestEachObservationTriggersOnePush(t *testing.T) {
	watcher := &chanWatcher{positions: make(chan Position)}
	pusher := newRecordingPusher()
	tr := New(mylogger.NewDiscard(), watcher, pusher, "part-1", nil)

	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer tr.Stop()

	watcher.positions <- Position{Latitude: 28.61, Longitude: 77.23}
	waitForPush(t, pusher)
	watcher.positions <- Position{Latitude: 28.62, Longitude: 77.24}
	waitForPush(t, pusher)

	if got := pusher.count(); got != 2 {
		t.Errorf("expected 2 pushes, got %d", got)
	}
}

func TestStartThenImmediateStopPushesNothing(t *testing.T) {
	watcher := &chanWatcher{positions: make(chan Position)}
	pusher := newRecordingPusher()
	tr := New(mylogger.NewDiscard(), watcher, pusher, "part-1", nil)

	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	tr.Stop()

	if tr.Tracking() {
		t.Error("expected Idle after Stop")
	}
	if got := pusher.count(); got != 0 {
		t.Errorf("expected zero pushes, got %d", got)
	}
}

func TestPushFailureDoesNotStopTracking(t *testing.T) {
	watcher := &chanWatcher{positions: make(chan Position)}
	pusher := newRecordingPusher()
	pusher.err = errors.New("server unreachable")
	tr := New(mylogger.NewDiscard(), watcher, pusher, "part-1", nil)

	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer tr.Stop()

	watcher.positions <- Position{Latitude: 28.61, Longitude: 77.23}
	waitForPush(t, pusher)

	if !tr.Tracking() {
		t.Error("tracker must keep tracking through push failures")
	}

	watcher.positions <- Position{Latitude: 28.62, Longitude: 77.24}
	waitForPush(t, pusher)
	if got := pusher.count(); got != 2 {
		t.Errorf("expected 2 attempted pushes, got %d", got)
	}
}

func TestStartWhileTrackingIsNoop(t *testing.T) {
	watcher := &chanWatcher{positions: make(chan Position)}
	pusher := newRecordingPusher()
	tr := New(mylogger.NewDiscard(), watcher, pusher, "part-1", nil)

	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("first Start returned error: %v", err)
	}
	defer tr.Stop()
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}
	if !tr.Tracking() {
		t.Error("expected Tracking")
	}
}

func TestStartPropagatesWatcherError(t *testing.T) {
	watcher := &chanWatcher{watchErr: errors.New("no geolocation source")}
	tr := New(mylogger.NewDiscard(), watcher, newRecordingPusher(), "part-1", nil)

	if err := tr.Start(context.Background()); err == nil {
		t.Fatal("expected Start to fail")
	}
	if tr.Tracking() {
		t.Error("failed Start must leave the tracker Idle")
	}
}

func TestOnPushFeedsCameraAnchor(t *testing.T) {
	watcher := &chanWatcher{positions: make(chan Position)}
	pusher := newRecordingPusher()

	var mu sync.Mutex
	var anchors []Position
	tr := New(mylogger.NewDiscard(), watcher, pusher, "part-1", func(p Position) {
		mu.Lock()
		anchors = append(anchors, p)
		mu.Unlock()
	})

	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	watcher.positions <- Position{Latitude: 28.61, Longitude: 77.23}
	waitForPush(t, pusher)
	tr.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(anchors) != 1 || anchors[0].Latitude != 28.61 {
		t.Errorf("expected 1 anchor update at 28.61, got %+v", anchors)
	}
}
