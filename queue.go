package tern

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type firedCompletion struct {
	c  *Completion
	ok bool
}

// CompletionQueue is the unbounded FIFO channel between transports and the
// poller. Transports submit fired operations from any goroutine and never
// block; the poller takes them in submission order.
type CompletionQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	fired  []firedCompletion
	closed bool
}

func NewCompletionQueue() *CompletionQueue {
	q := &CompletionQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Submit records that c's operation finished with the given outcome. Safe to
// call from any goroutine; never blocks.
func (q *CompletionQueue) Submit(c *Completion, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		log.Warn().Stringer("kind", c.Kind()).Msg("Submit on closed completion queue")
		return
	}

	q.fired = append(q.fired, firedCompletion{c, ok})
	q.cond.Signal()
}

// Take blocks until a fired completion is available or the queue is closed
// and drained. The second return is false once the queue is exhausted.
func (q *CompletionQueue) Take() (firedCompletion, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.fired) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.fired) == 0 {
		return firedCompletion{}, false
	}

	next := q.fired[0]
	q.fired = q.fired[1:]
	return next, true
}

// Close marks the queue finished. Completions already submitted are still
// delivered; later submissions are dropped.
func (q *CompletionQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}
