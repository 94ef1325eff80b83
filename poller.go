package tern

import (
	"sync"
)

// Poller is the background loop that turns queue submissions into completion
// firings. It never interprets completions; each Fire marshals its own
// handling onto the owning executor.
type Poller struct {
	queue *CompletionQueue

	shutdownOnce sync.Once
	done         chan struct{}
}

// NewPoller starts polling q on a background goroutine.
func NewPoller(q *CompletionQueue) *Poller {
	p := &Poller{
		queue: q,
		done:  make(chan struct{}),
	}
	go p.poll()
	return p
}

func (p *Poller) poll() {
	defer close(p.done)

	for {
		next, ok := p.queue.Take()
		if !ok {
			return
		}
		next.c.Fire(next.ok)
	}
}

// Shutdown closes the queue, delivers everything already submitted, and waits
// for the polling goroutine to exit. Idempotent.
func (p *Poller) Shutdown() {
	p.shutdownOnce.Do(p.queue.Close)
	<-p.done
}
