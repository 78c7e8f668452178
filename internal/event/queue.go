package event

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Next once the queue is closed.
var ErrClosed = errors.New("event queue closed")

// DefaultQueueSize is the buffer size used when none is given.
const DefaultQueueSize = 64

// Queue is an ordered multi-producer, single-consumer event queue. Events
// from one producer are delivered in the order sent.
type Queue struct {
	ch        chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewQueue creates a queue buffering up to size events. Senders block while
// it is full.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		ch:   make(chan Event, size),
		done: make(chan struct{}),
	}
}

// Sender returns a handle producers use to send events.
func (q *Queue) Sender() Sender {
	return Sender{q: q}
}

// Next blocks until an event is available, the context is done, or the
// queue is closed.
func (q *Queue) Next(ctx context.Context) (Event, error) {
	select {
	case ev := <-q.ch:
		return ev, nil
	case <-q.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the queue. Pending and later sends are dropped. Safe to call
// more than once.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// Sender is the producer side of a Queue. It is a small value, safe to copy
// into goroutines. The zero Sender drops everything.
type Sender struct {
	q *Queue
}

// Send enqueues ev, blocking while the queue is full. It returns false if
// the queue is closed.
func (s Sender) Send(ev Event) bool {
	if s.q == nil || s.q.Closed() {
		return false
	}
	select {
	case s.q.ch <- ev:
		return true
	case <-s.q.done:
		return false
	}
}

// Done is closed when the queue closes. Producers select on it to stop.
func (s Sender) Done() <-chan struct{} {
	if s.q == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.q.done
}
