package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// fakeClock lets tests move time forward
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = clock.Now
	return s, clock
}

func TestResolve(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	id, created := s.Resolve("")
	if !created {
		t.Fatal("Expected a new session for an empty id")
	}

	again, created := s.Resolve(id.String())
	if created || again != id {
		t.Errorf("Expected existing session %s, got %s (created=%v)", id, again, created)
	}

	other, created := s.Resolve("not-a-uuid")
	if !created || other == id {
		t.Errorf("Expected a fresh session for a malformed id, got %s", other)
	}

	unknown, created := s.Resolve(uuid.New().String())
	if !created || unknown == id {
		t.Error("Expected a fresh session for an unknown id")
	}

	if s.Len() != 3 {
		t.Errorf("Expected 3 sessions, got %d", s.Len())
	}
}

func TestPutGetClear(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	id, _ := s.Resolve("")

	if _, ok := s.Get(id); ok {
		t.Fatal("New session must not have an upload")
	}

	s.Put(id, Upload{Filename: "levels.csv", Data: []byte("a,b\n1,2\n")})
	up, ok := s.Get(id)
	if !ok {
		t.Fatal("Expected upload after Put")
	}
	if up.Filename != "levels.csv" || string(up.Data) != "a,b\n1,2\n" {
		t.Errorf("Unexpected upload %+v", up)
	}
	if up.UploadedAt.IsZero() {
		t.Error("Expected UploadedAt to be set")
	}

	s.Clear(id)
	if _, ok := s.Get(id); ok {
		t.Error("Expected no upload after Clear")
	}
	if _, created := s.Resolve(id.String()); created {
		t.Error("Clear must keep the session")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	a, _ := s.Resolve("")
	b, _ := s.Resolve("")

	s.Put(a, Upload{Filename: "a.csv", Data: []byte("x\n1\n")})
	if _, ok := s.Get(b); ok {
		t.Error("Session b must not see session a's upload")
	}
	s.Put(b, Upload{Filename: "b.xlsx", Data: []byte("PK")})
	if up, _ := s.Get(a); up.Filename != "a.csv" {
		t.Errorf("Session a upload changed to %s", up.Filename)
	}
}

func TestExpiry(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)
	id, _ := s.Resolve("")
	s.Put(id, Upload{Filename: "a.csv"})

	clock.Advance(9 * time.Minute)
	if _, created := s.Resolve(id.String()); created {
		t.Fatal("Session expired too early")
	}

	// Resolve refreshed the session
	clock.Advance(9 * time.Minute)
	if _, ok := s.Get(id); !ok {
		t.Fatal("Expected upload to survive after refresh")
	}

	clock.Advance(11 * time.Minute)
	if _, ok := s.Get(id); ok {
		t.Error("Expected expired session to hide its upload")
	}
	if removed := s.Sweep(); removed != 1 {
		t.Errorf("Expected 1 session swept, got %d", removed)
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d", s.Len())
	}
	if _, created := s.Resolve(id.String()); !created {
		t.Error("Expected a new session after expiry")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewStore(time.Nanosecond)
	s.Resolve("")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, time.Millisecond)
	}()

	deadline := time.After(2 * time.Second)
	for s.Len() > 0 {
		select {
		case <-deadline:
			t.Fatal("Janitor did not sweep the expired session")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil from Run, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := s.Resolve("")
			s.Put(id, Upload{Filename: id.String() + ".csv"})
			up, ok := s.Get(id)
			if !ok || up.Filename != id.String()+".csv" {
				t.Errorf("Session %s saw upload %q", id, up.Filename)
			}
			s.Sweep()
		}()
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Errorf("Expected 20 sessions, got %d", s.Len())
	}
}
