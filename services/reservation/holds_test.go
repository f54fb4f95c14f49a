package reservation

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCreateHoldUnknownListing(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.CreateHold("nonexistent", dr(t, "2026-09-01", "2026-09-03"), time.Minute)
	if !IsNotFound(err) {
		t.Fatalf("CreateHold on unknown listing: got %v, want NotFoundError", err)
	}
}

func TestCreateHoldConflict(t *testing.T) {
	e, _ := newTestEngine(t)
	r := dr(t, "2026-09-01", "2026-09-05")

	if _, err := e.CreateHold("cabin-x", r, time.Minute); err != nil {
		t.Fatalf("first CreateHold: %v", err)
	}
	_, err := e.CreateHold("cabin-x", dr(t, "2026-09-03", "2026-09-07"), time.Minute)
	if !IsConflict(err) {
		t.Fatalf("overlapping CreateHold: got %v, want ConflictError", err)
	}
}

func TestReleaseHoldTwice(t *testing.T) {
	e, _ := newTestEngine(t)

	hold, err := e.CreateHold("cabin-x", dr(t, "2026-09-01", "2026-09-05"), time.Minute)
	if err != nil {
		t.Fatalf("CreateHold: %v", err)
	}
	if _, err := e.ReleaseHold(hold.ID); err != nil {
		t.Fatalf("first ReleaseHold: %v", err)
	}
	if _, err := e.ReleaseHold(hold.ID); !IsNotFound(err) {
		t.Fatalf("second ReleaseHold: got %v, want NotFoundError", err)
	}
}

func TestConcurrentOverlappingHolds(t *testing.T) {
	e, _ := newTestEngine(t)
	r := dr(t, "2026-09-01", "2026-09-05")

	const attempts = 16
	var wins, conflicts int64
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := e.CreateHold("cabin-x", r, time.Minute)
			switch {
			case err == nil:
				atomic.AddInt64(&wins, 1)
			case IsConflict(err):
				atomic.AddInt64(&conflicts, 1)
			default:
				t.Errorf("CreateHold: unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("got %d successful holds, want exactly 1", wins)
	}
	if conflicts != attempts-1 {
		t.Fatalf("got %d conflicts, want %d", conflicts, attempts-1)
	}
}

func TestHoldDefaultTTL(t *testing.T) {
	e, _ := newTestEngine(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e.Now = func() time.Time { return now }

	hold, err := e.CreateHold("cabin-x", dr(t, "2026-09-01", "2026-09-05"), 0)
	if err != nil {
		t.Fatalf("CreateHold: %v", err)
	}
	if got := hold.ExpiresAt.Sub(hold.CreatedAt); got != DefaultHoldTTL {
		t.Fatalf("hold TTL = %v, want %v", got, DefaultHoldTTL)
	}
}
