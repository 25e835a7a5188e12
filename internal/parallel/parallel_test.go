package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 100000
	For(n, cfg, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForCoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	n := 10000
	seen := make([]int32, n)
	For(n, cfg, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, c := range seen {
		if c != 1 {
			t.Errorf("Index %d visited %d times", i, c)
		}
	}
}

func TestForSequential(t *testing.T) {
	cfg := Sequential()

	var counter int64
	For(100, cfg, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestForSmallFallsBackToSequential(t *testing.T) {
	cfg := DefaultConfig()

	// Below MinChunkSize the loop runs on the calling goroutine, so order
	// is deterministic.
	order := make([]int, 0, 100)
	For(100, cfg, func(i int) {
		order = append(order, i)
	})

	if len(order) != 100 {
		t.Fatalf("Expected 100 calls, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Errorf("Position %d: expected %d, got %d", i, i, v)
		}
	}
}

func TestForZero(t *testing.T) {
	called := false
	For(0, DefaultConfig(), func(_ int) { called = true })
	if called {
		t.Error("Expected no calls for n=0")
	}
}
