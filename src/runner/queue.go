package runner

import (
	"errors"
	"sync"
	"time"
)

var ErrClosed = errors.New("queue is closed")

//Queue is the ordered unbounded channel with a single consumer
//Push never blocks, so a burst of values is queued without loss
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	ready  chan struct{} //signalled when an item is pushed or the queue is closed
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{ready: make(chan struct{}, 1)}
}

//Push appends v, fails with ErrClosed after Close
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.notify()
	return nil
}

//Close forbids the further pushes, the queued items can still be popped
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notify()
}

//Pop blocks until the item is available
//ok is false when the queue is closed and drained
func (q *Queue[T]) Pop() (v T, ok bool) {
	for {
		if v, ok, done := q.take(); done {
			return v, ok
		}
		<-q.ready
	}
}

//PopTimeout is like Pop but waits no longer than d
//ok is false on timeout and when the queue is closed and drained
func (q *Queue[T]) PopTimeout(d time.Duration) (v T, ok bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		if v, ok, done := q.take(); done {
			return v, ok
		}
		select {
		case <-q.ready:
		case <-timer.C:
			return v, false
		}
	}
}

//TryPop returns the next item without blocking, def when the queue is empty
//ok is false when the queue is closed and drained
func (q *Queue[T]) TryPop(def T) (v T, ok bool) {
	if v, ok, done := q.take(); done {
		return v, ok
	}
	return def, true
}

//Len returns the number of queued items
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

//take pops the head, done is false when the queue is empty and still open
func (q *Queue[T]) take() (v T, ok bool, done bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) > 0 {
		v = q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		return v, true, true
	}
	if q.closed {
		return v, false, true
	}
	return v, false, false
}

func (q *Queue[T]) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
