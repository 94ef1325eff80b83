package tern

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"
)

// SerialExecutor runs tasks one at a time, in FIFO order, on a single
// background goroutine. Enqueue never blocks, so completion handlers can be
// scheduled from the poller even while the executor is busy with a task that
// is itself waiting on the transport.
type SerialExecutor struct {
	clock clock.Clock

	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool

	done chan struct{}
}

var _ Executor = (*SerialExecutor)(nil)

// NewSerialExecutor starts an executor using the wall clock.
func NewSerialExecutor() *SerialExecutor {
	return NewSerialExecutorWithClock(clock.New())
}

// NewSerialExecutorWithClock starts an executor whose delayed tasks are
// scheduled against c. Tests pass a mock clock to control time.
func NewSerialExecutorWithClock(c clock.Clock) *SerialExecutor {
	e := &SerialExecutor{
		clock: c,
		done:  make(chan struct{}),
	}
	e.cond = sync.NewCond(&e.mu)
	go e.run()
	return e
}

func (e *SerialExecutor) run() {
	defer close(e.done)

	for {
		e.mu.Lock()
		for len(e.tasks) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.tasks) == 0 {
			e.mu.Unlock()
			return
		}
		task := e.tasks[0]
		e.tasks = e.tasks[1:]
		e.mu.Unlock()

		task()
	}
}

// Enqueue schedules task to run after all previously enqueued tasks. Never
// blocks; safe from any goroutine.
func (e *SerialExecutor) Enqueue(task func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		log.Warn().Msg("Enqueue on shut-down executor")
		return
	}

	e.tasks = append(e.tasks, task)
	e.cond.Signal()
}

// EnqueueBlocking schedules task and waits for it to finish. Must not be
// called from the executor itself.
func (e *SerialExecutor) EnqueueBlocking(task func()) {
	ran := make(chan struct{})
	e.Enqueue(func() {
		defer close(ran)
		task()
	})

	select {
	case <-ran:
	case <-e.done:
		// Shut down before the task could run.
	}
}

// EnqueueAfter schedules task to be enqueued once d has elapsed. The returned
// timer may be stopped to abandon the task before it is enqueued.
func (e *SerialExecutor) EnqueueAfter(d time.Duration, task func()) *clock.Timer {
	return e.clock.AfterFunc(d, func() {
		e.Enqueue(task)
	})
}

// Shutdown runs every task already enqueued, then stops the executor
// goroutine. Tasks enqueued afterwards are dropped.
func (e *SerialExecutor) Shutdown() {
	e.mu.Lock()
	e.closed = true
	e.cond.Broadcast()
	e.mu.Unlock()

	<-e.done
}
