package tern

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestExecutorRunsTasksInFIFOOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewSerialExecutor()

	var order []int
	for i := 0; i < 100; i++ {
		i := i
		e.Enqueue(func() { order = append(order, i) })
	}
	e.Shutdown()

	require.Len(t, order, 100)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestExecutorRunsEveryTaskExactlyOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewSerialExecutor()

	// No synchronization inside the tasks: the race detector flags any
	// overlap between them.
	counts := make(map[int]int)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Enqueue(func() { counts[i]++ })
		}()
	}
	wg.Wait()
	e.Shutdown()

	require.Len(t, counts, 32)
	for i := 0; i < 32; i++ {
		assert.Equal(t, 1, counts[i])
	}
}

func TestEnqueueBlockingWaitsForTask(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewSerialExecutor()
	defer e.Shutdown()

	ran := false
	e.EnqueueBlocking(func() { ran = true })
	assert.True(t, ran)
}

func TestEnqueueAfterShutdownIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewSerialExecutor()
	e.Shutdown()

	ran := false
	e.Enqueue(func() { ran = true })
	e.EnqueueBlocking(func() { ran = true })
	assert.False(t, ran)
}

func TestEnqueueAfterFiresOnClockAdvance(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewMock()
	e := NewSerialExecutorWithClock(clk)
	defer e.Shutdown()

	ran := make(chan struct{})
	e.EnqueueAfter(time.Minute, func() { close(ran) })

	select {
	case <-ran:
		t.Fatal("task ran before the delay elapsed")
	case <-time.After(10 * time.Millisecond):
	}

	clk.Add(time.Minute)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestEnqueueAfterCanBeStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewMock()
	e := NewSerialExecutorWithClock(clk)
	defer e.Shutdown()

	ran := false
	timer := e.EnqueueAfter(time.Minute, func() { ran = true })
	timer.Stop()
	clk.Add(2 * time.Minute)

	e.EnqueueBlocking(func() {})
	assert.False(t, ran)
}
