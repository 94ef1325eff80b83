package tern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestQueueDeliversInSubmissionOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := NewSerialExecutor()
	defer exec.Shutdown()

	q := NewCompletionQueue()
	a := newCompletion(CompletionWrite, exec, nil)
	b := newCompletion(CompletionRead, exec, nil)
	c := newCompletion(CompletionFinish, exec, nil)

	q.Submit(a, true)
	q.Submit(b, false)
	q.Submit(c, true)

	next, ok := q.Take()
	require.True(t, ok)
	assert.Same(t, a, next.c)
	assert.True(t, next.ok)

	next, ok = q.Take()
	require.True(t, ok)
	assert.Same(t, b, next.c)
	assert.False(t, next.ok)

	next, ok = q.Take()
	require.True(t, ok)
	assert.Same(t, c, next.c)
}

func TestQueueTakeBlocksUntilSubmit(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := NewSerialExecutor()
	defer exec.Shutdown()

	q := NewCompletionQueue()
	c := newCompletion(CompletionRead, exec, nil)

	taken := make(chan *Completion)
	go func() {
		next, ok := q.Take()
		assert.True(t, ok)
		taken <- next.c
	}()

	time.Sleep(10 * time.Millisecond)
	q.Submit(c, true)

	select {
	case got := <-taken:
		assert.Same(t, c, got)
	case <-time.After(time.Second):
		t.Fatal("Take never returned")
	}
}

func TestQueueCloseDrainsThenStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := NewSerialExecutor()
	defer exec.Shutdown()

	q := NewCompletionQueue()
	c := newCompletion(CompletionWrite, exec, nil)
	q.Submit(c, true)
	q.Close()

	next, ok := q.Take()
	require.True(t, ok)
	assert.Same(t, c, next.c)

	_, ok = q.Take()
	assert.False(t, ok)
}

func TestQueueDropsSubmissionsAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := NewSerialExecutor()
	defer exec.Shutdown()

	q := NewCompletionQueue()
	q.Close()
	q.Submit(newCompletion(CompletionRead, exec, nil), true)

	_, ok := q.Take()
	assert.False(t, ok)
}
