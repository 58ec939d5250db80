package sync_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ttssync "github.com/dgnsrekt/lostvoice/tts/sync"
)

// TestDrainOrder tests that queued functions run in FIFO order.
func TestDrainOrder(t *testing.T) {
	d := ttssync.NewDispatcher()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		d.Post(func() { got = append(got, i) })
	}

	if d.Len() != 5 {
		t.Errorf("Len() = %d, want 5", d.Len())
	}
	if n := d.Drain(); n != 5 {
		t.Errorf("Drain() = %d, want 5", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v", got)
		}
	}
	if d.Drain() != 0 {
		t.Error("second Drain should run nothing")
	}
}

// TestDrainRunsNestedPosts tests work posted while draining.
func TestDrainRunsNestedPosts(t *testing.T) {
	d := ttssync.NewDispatcher()

	var got []string
	d.Post(func() {
		got = append(got, "outer")
		d.Post(func() { got = append(got, "inner") })
	})

	if n := d.Drain(); n != 2 {
		t.Errorf("Drain() = %d, want 2", n)
	}
	if len(got) != 2 || got[1] != "inner" {
		t.Errorf("got %v", got)
	}
}

// TestPostAfterClose tests that a closed dispatcher rejects work.
func TestPostAfterClose(t *testing.T) {
	d := ttssync.NewDispatcher()
	d.Close()
	d.Close()

	if d.Post(func() {}) {
		t.Error("Post after Close should return false")
	}
}

// TestRunSingleGoroutine tests that concurrent posts run one at a time on
// the Run goroutine.
func TestRunSingleGoroutine(t *testing.T) {
	d := ttssync.NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	var (
		wg      sync.WaitGroup
		running int32
		overlap int32
		count   int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Post(func() {
					if atomic.AddInt32(&running, 1) > 1 {
						atomic.StoreInt32(&overlap, 1)
					}
					atomic.AddInt32(&count, 1)
					atomic.AddInt32(&running, -1)
				})
			}
		}()
	}
	wg.Wait()
	d.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	if atomic.LoadInt32(&overlap) != 0 {
		t.Error("functions ran concurrently")
	}
	if c := atomic.LoadInt32(&count); c != 1000 {
		t.Errorf("ran %d functions, want 1000", c)
	}
}

// TestRunContextCancel tests that Run stops with the context.
func TestRunContextCancel(t *testing.T) {
	d := ttssync.NewDispatcher()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
