package ws

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"smartpark/internal/models"
)

type fakeConn struct {
	mu       sync.Mutex
	written  []SlotUpdate
	writeErr error
	closed   bool
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	update, ok := v.(SlotUpdate)
	if !ok {
		return errors.New("unexpected message type")
	}
	f.written = append(f.written, update)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) updates() []SlotUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SlotUpdate(nil), f.written...)
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := &fakeConn{}
	b := &fakeConn{}
	hub.Add(a)
	hub.Add(b)

	hub.SlotChanged(5, models.SlotOccupied)

	for _, c := range []*fakeConn{a, b} {
		got := c.updates()
		if len(got) != 1 {
			t.Fatalf("client received %d updates, want 1", len(got))
		}
		if got[0].SlotNumber != 5 || got[0].Status != models.SlotOccupied {
			t.Fatalf("update = %+v, want slot 5 occupied", got[0])
		}
	}
}

func TestHubDropsFailingClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	healthy := &fakeConn{}
	broken := &fakeConn{writeErr: errors.New("write: broken pipe")}
	hub.Add(healthy)
	hub.Add(broken)

	hub.SlotChanged(3, models.SlotAvailable)

	if hub.ClientCount() != 1 {
		t.Fatalf("client count = %d, want 1", hub.ClientCount())
	}
	broken.mu.Lock()
	closed := broken.closed
	broken.mu.Unlock()
	if !closed {
		t.Fatal("failing client was not closed")
	}

	hub.SlotChanged(3, models.SlotOccupied)
	if got := healthy.updates(); len(got) != 2 {
		t.Fatalf("healthy client received %d updates, want 2", len(got))
	}
}

// overlapConn flags any two WriteJSON calls that run at the same time.
type overlapConn struct {
	mu       sync.Mutex
	active   bool
	overlaps int
	writes   int
}

func (c *overlapConn) WriteJSON(v any) error {
	c.mu.Lock()
	if c.active {
		c.overlaps++
	}
	c.active = true
	c.writes++
	c.mu.Unlock()

	time.Sleep(time.Millisecond)

	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
	return nil
}

func (c *overlapConn) Close() error { return nil }

func TestHubSerializesConcurrentBroadcasts(t *testing.T) {
	const broadcasters = 16

	hub := NewHub(zap.NewNop())
	c := &overlapConn{}
	hub.Add(c)

	var wg sync.WaitGroup
	for i := 0; i < broadcasters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := models.SlotOccupied
			if i%2 == 0 {
				status = models.SlotAvailable
			}
			hub.SlotChanged(i, status)
		}(i)
	}
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overlaps != 0 {
		t.Fatalf("detected %d overlapping writes on one connection", c.overlaps)
	}
	if c.writes != broadcasters {
		t.Fatalf("writes = %d, want %d", c.writes, broadcasters)
	}
}

func TestHubRemove(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := &fakeConn{}
	hub.Add(c)
	hub.Remove(c)

	hub.SlotChanged(1, models.SlotOccupied)

	if hub.ClientCount() != 0 {
		t.Fatalf("client count = %d, want 0", hub.ClientCount())
	}
	if len(c.updates()) != 0 {
		t.Fatal("removed client still received updates")
	}
}
