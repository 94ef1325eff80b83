// Package testutil provides a programmable in-memory CallHandle for driving
// StreamingReader through exact completion interleavings.
package testutil

import (
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/tern-rpc/tern"
)

// EndState describes how one issued operation should complete.
type EndState struct {
	Kind    tern.CompletionKind
	Ok      bool
	Payload []byte
	Status  *status.Status
}

func WriteOk() EndState {
	return EndState{Kind: tern.CompletionWrite, Ok: true}
}

func WriteError() EndState {
	return EndState{Kind: tern.CompletionWrite}
}

func ReadPayload(s string) EndState {
	return EndState{Kind: tern.CompletionRead, Ok: true, Payload: []byte(s)}
}

func ReadOk() EndState {
	return EndState{Kind: tern.CompletionRead, Ok: true}
}

func ReadError() EndState {
	return EndState{Kind: tern.CompletionRead}
}

func FinishOk() EndState {
	return EndState{Kind: tern.CompletionFinish, Ok: true, Status: status.New(codes.OK, "")}
}

func FinishStatus(code codes.Code) EndState {
	return EndState{Kind: tern.CompletionFinish, Ok: true, Status: status.New(code, "")}
}

// FakeCall implements tern.CallHandle. Issued completions are parked until
// the test forces them to a given end state; with KeepPollingQueue the fake
// instead fails everything as it is issued, which is how teardown paths
// drain.
type FakeCall struct {
	queue *tern.CompletionQueue

	issuedCh chan *tern.Completion

	mu          sync.Mutex
	keepPolling bool
	cancelled   bool
	headers     metadata.MD
	status      *status.Status
	writes      [][]byte
}

var _ tern.CallHandle = (*FakeCall)(nil)

func NewFakeCall(queue *tern.CompletionQueue) *FakeCall {
	return &FakeCall{
		queue:    queue,
		issuedCh: make(chan *tern.Completion, 16),
		status:   status.New(codes.OK, ""),
	}
}

func (f *FakeCall) Write(c *tern.Completion) {
	f.mu.Lock()
	payload := make([]byte, len(c.WritePayload()))
	copy(payload, c.WritePayload())
	f.writes = append(f.writes, payload)
	f.mu.Unlock()

	f.issue(c)
}

func (f *FakeCall) Read(c *tern.Completion) {
	f.issue(c)
}

func (f *FakeCall) Finish(c *tern.Completion) {
	f.issue(c)
}

func (f *FakeCall) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = true
}

func (f *FakeCall) ResponseHeaders() metadata.MD {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers
}

func (f *FakeCall) FinalStatus() *status.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// SetResponseHeaders seeds the headers returned by ResponseHeaders.
func (f *FakeCall) SetResponseHeaders(md metadata.MD) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headers = md
}

// SetFinalStatus seeds the status reported once the call finishes.
func (f *FakeCall) SetFinalStatus(st *status.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = st
}

// Cancelled reports whether the call was cancelled.
func (f *FakeCall) Cancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

// SentRequests returns a copy of every payload written to the call.
func (f *FakeCall) SentRequests() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.writes))
	copy(out, f.writes)
	return out
}

func (f *FakeCall) issue(c *tern.Completion) {
	f.mu.Lock()
	keep := f.keepPolling
	f.mu.Unlock()

	if keep {
		f.queue.Submit(c, false)
		return
	}
	f.issuedCh <- c
}

// KeepPollingQueue switches the fake into drain mode: every parked and every
// future operation is immediately submitted as failed, the way a cancelled
// call surrenders its tags.
func (f *FakeCall) KeepPollingQueue() {
	f.mu.Lock()
	f.keepPolling = true
	f.mu.Unlock()

	for {
		select {
		case c := <-f.issuedCh:
			f.queue.Submit(c, false)
		default:
			return
		}
	}
}

func (f *FakeCall) next(t *testing.T) *tern.Completion {
	t.Helper()
	select {
	case c := <-f.issuedCh:
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for an operation to be issued")
		return nil
	}
}

// StreamTester wires a FakeCall, completion queue, poller and serial executor
// together, standing in for the transport around one reader.
type StreamTester struct {
	Queue  *tern.CompletionQueue
	Poller *tern.Poller
	Exec   *tern.SerialExecutor
	Call   *FakeCall
}

func NewStreamTester() *StreamTester {
	queue := tern.NewCompletionQueue()
	return &StreamTester{
		Queue:  queue,
		Poller: tern.NewPoller(queue),
		Exec:   tern.NewSerialExecutor(),
		Call:   NewFakeCall(queue),
	}
}

// ForceFinish completes issued operations in exactly the given order, waiting
// after each one until the reader has handled it.
func (st *StreamTester) ForceFinish(t *testing.T, states ...EndState) {
	t.Helper()
	for _, state := range states {
		c := st.Call.next(t)
		if c.Kind() != state.Kind {
			t.Fatalf("expected a %v operation, got %v", state.Kind, c.Kind())
		}
		st.complete(c, state)
	}
}

// ForceFinishAnyTypeOrder completes issued operations as they appear,
// matching each against the remaining end states by kind.
func (st *StreamTester) ForceFinishAnyTypeOrder(t *testing.T, states ...EndState) {
	t.Helper()
	remaining := append([]EndState(nil), states...)
	for len(remaining) > 0 {
		c := st.Call.next(t)

		matched := -1
		for i, state := range remaining {
			if state.Kind == c.Kind() {
				matched = i
				break
			}
		}
		if matched < 0 {
			t.Fatalf("unexpected %v operation", c.Kind())
		}

		state := remaining[matched]
		remaining = append(remaining[:matched], remaining[matched+1:]...)
		st.complete(c, state)
	}
}

// KeepPollingQueue puts the fake call into drain mode; see
// FakeCall.KeepPollingQueue.
func (st *StreamTester) KeepPollingQueue() {
	st.Call.KeepPollingQueue()
}

// Shutdown stops the poller and executor. Safe once all readers are
// finished.
func (st *StreamTester) Shutdown() {
	st.Poller.Shutdown()
	st.Exec.Shutdown()
}

func (st *StreamTester) complete(c *tern.Completion, state EndState) {
	if state.Payload != nil {
		c.SetPayload(state.Payload)
	}
	if state.Kind == tern.CompletionFinish && state.Status != nil {
		st.Call.SetFinalStatus(state.Status)
	}

	// Fired from the test goroutine, standing in for the poller: firing
	// enqueues handling onto the executor, so the barrier below runs
	// strictly after the reader has dealt with this completion.
	c.Fire(state.Ok)
	st.Exec.EnqueueBlocking(func() {})
}
