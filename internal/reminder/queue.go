package reminder

import "sync"

// Queue is the unbounded FIFO buffer between the scanner and the delivery
// loop. Process-local; contents are lost on crash, which is acceptable
// because the next tick supersedes a missed cycle.
type Queue struct {
	mu    sync.Mutex
	items []Request
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a request.
func (q *Queue) Enqueue(r Request) {
	q.mu.Lock()
	q.items = append(q.items, r)
	q.mu.Unlock()
}

// Dequeue pops the oldest request. ok is false when the queue is empty.
func (q *Queue) Dequeue() (Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Request{}, false
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r, true
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
