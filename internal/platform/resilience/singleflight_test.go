package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		val, err, _ := flight.Do("2026-08-28", func() (any, error) {
			executions.Add(1)
			close(entered)
			<-release
			return "target-42", nil
		})
		if err != nil || val != "target-42" {
			t.Errorf("leader got (%v, %v)", val, err)
		}
	}()

	// Wait until the leader holds the key, then pile on followers.
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("leader never entered")
	}

	const followers = 8
	for i := 0; i < followers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, shared := flight.Do("2026-08-28", func() (any, error) {
				executions.Add(1)
				return "duplicate", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !shared || val != "target-42" {
				t.Errorf("follower got (%v, shared=%t)", val, shared)
			}
		}()
	}

	// Give followers a moment to register before releasing the leader.
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
}

func TestSingleFlight_SequentialCallsRunSeparately(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32

	for i := 0; i < 3; i++ {
		_, _, shared := flight.Do("key", func() (any, error) {
			executions.Add(1)
			return nil, nil
		})
		if shared {
			t.Fatalf("call %d unexpectedly shared a result", i)
		}
	}

	if got := executions.Load(); got != 3 {
		t.Fatalf("expected 3 executions, got %d", got)
	}
}
