package platform

import "sync"

// Queue is a serial callback queue. It implements the dispatch contract
// for hosts that drain scheduled work explicitly, and gives tests a
// deterministic stand-in for the UI thread:
//
//	q := platform.NewQueue()
//	platform.RegisterDispatch(q.Enqueue)
//	defer platform.RegisterDispatch(nil)
//	// ... trigger change notifications ...
//	q.Pump() // runs the scheduled re-applications
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a callback to the queue. Safe to call from any
// goroutine. Nil callbacks are ignored.
func (q *Queue) Enqueue(callback func()) {
	if callback == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, callback)
	q.mu.Unlock()
}

// Pump runs queued callbacks in order until the queue is empty,
// including callbacks enqueued while pumping. It returns the number of
// callbacks run. Pump must be called from the goroutine acting as the
// UI thread.
func (q *Queue) Pump() int {
	count := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return count
		}
		callback := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()
		callback()
		count++
	}
}

// Len returns the number of callbacks currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
