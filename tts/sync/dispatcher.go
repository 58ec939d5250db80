// Package sync moves speech engine callbacks onto the goroutine that owns
// the navigation state.
package sync

import (
	"context"
	"sync"
)

// Dispatcher is an unbounded FIFO of functions run by a single goroutine.
// Post never blocks, so engine goroutines can report progress while the
// owner is itself waiting on the engine (for example inside CancelAll).
type Dispatcher struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		wake: make(chan struct{}, 1),
	}
}

// Post queues fn. It reports false if the dispatcher has been closed.
func (d *Dispatcher) Post(fn func()) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return true
}

// Len returns the number of queued functions.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Drain runs every queued function, including ones posted while draining,
// on the calling goroutine. It returns how many ran.
func (d *Dispatcher) Drain() int {
	n := 0
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return n
		}
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		fn()
		n++
	}
}

// Run drains the queue whenever work arrives until ctx is done or the
// dispatcher is closed. Work still queued at close is run before Run
// returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		d.Drain()

		d.mu.Lock()
		closed := d.closed
		d.mu.Unlock()
		if closed {
			d.Drain()
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.wake:
		}
	}
}

// Close stops accepting work and wakes Run so it can return.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}
