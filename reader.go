package tern

import (
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type readerState int

const (
	stateCreated readerState = iota
	stateStarted
	stateFinishing
	stateFinished
)

// StreamingReader performs a single request/stream-response RPC: it writes
// one request, reads server messages one at a time until the stream ends,
// retrieves the final status, and hands the caller either every message read
// or a single error. The callback fires exactly once.
//
// A reader drives one call over its lifetime and cannot be restarted.
//
// Every method must be called on the owning executor. The reader may not be
// discarded while PendingCompletions is nonzero: the transport still
// references the completions' buffers until they fire.
type StreamingReader struct {
	call    CallHandle
	exec    Executor
	request []byte

	state   readerState
	started bool

	callback  ResultCallback
	responses [][]byte

	pending      []*Completion
	finishIssued bool
}

// NewStreamingReader returns an unstarted reader that will send request as
// the call's single outbound message.
func NewStreamingReader(call CallHandle, exec Executor, request []byte) *StreamingReader {
	return &StreamingReader{
		call:    call,
		exec:    exec,
		request: request,
	}
}

// Start begins the call and registers the callback that will receive its
// outcome. Calling Start twice is a programming error and panics.
func (r *StreamingReader) Start(callback ResultCallback) {
	if r.started {
		log.Panic().Msg("Start called twice on StreamingReader")
	}
	r.started = true
	r.state = stateStarted
	r.callback = callback

	c := r.newCompletion(CompletionWrite, r.onWrite)
	c.setWritePayload(r.request)
	r.call.Write(c)
}

// FinishImmediately tears the call down without ever invoking the result
// callback, waiting for every issued completion to leave the transport.
// Safe to call in any state, any number of times.
func (r *StreamingReader) FinishImmediately() {
	if r.state == stateCreated || r.state == stateFinished {
		// Nothing issued yet, or already torn down.
		return
	}
	r.callback = nil
	r.fastFinish()
	r.state = stateFinished
}

// FinishAndNotify tears the call down and invokes the result callback with
// the supplied status in place of the one the transport would report. Used
// when a higher layer decides the stream must be abandoned with a specific
// outcome. Returns ErrNotStarted if Start was never called, since no
// callback exists to notify.
func (r *StreamingReader) FinishAndNotify(st *status.Status) error {
	if !r.started {
		return ErrNotStarted
	}

	callback := r.callback
	r.callback = nil
	responses := r.responses
	r.responses = nil

	if r.state != stateFinished {
		r.fastFinish()
		r.state = stateFinished
	}

	deliver(callback, responses, st)
	return nil
}

// GetResponseHeaders returns the header metadata the call has produced so
// far. Callable any time after Start; empty metadata simply means headers
// have not arrived yet.
func (r *StreamingReader) GetResponseHeaders() metadata.MD {
	return r.call.ResponseHeaders()
}

// PendingCompletions reports how many issued operations have not yet fired.
// The owner must not discard the reader while it is nonzero.
func (r *StreamingReader) PendingCompletions() int {
	return len(r.pending)
}

func (r *StreamingReader) newCompletion(kind CompletionKind, action CompletionAction) *Completion {
	c := newCompletion(kind, r.exec, action)
	r.pending = append(r.pending, c)
	return c
}

func (r *StreamingReader) unregister(c *Completion) {
	for i, p := range r.pending {
		if p == c {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return
		}
	}
}

func (r *StreamingReader) onWrite(ok bool, c *Completion) {
	r.unregister(c)

	if !ok {
		// The authoritative error only arrives with the final status.
		r.startFinish()
		return
	}
	r.issueRead()
}

func (r *StreamingReader) onRead(ok bool, c *Completion) {
	r.unregister(c)

	if !ok {
		// A failed read is how the transport signals both end-of-stream and
		// stream breakage; only the final status can tell them apart.
		r.startFinish()
		return
	}

	r.responses = append(r.responses, c.Payload())
	r.issueRead()
}

func (r *StreamingReader) onFinish(_ bool, c *Completion) {
	r.unregister(c)
	r.state = stateFinished

	st := r.call.FinalStatus()
	log.Debug().Stringer("code", st.Code()).Msg("StreamingReader finished")

	callback := r.callback
	r.callback = nil
	responses := r.responses
	r.responses = nil

	// The callback may discard the reader; it must be the last thing touched.
	deliver(callback, responses, st)
}

func (r *StreamingReader) issueRead() {
	r.call.Read(r.newCompletion(CompletionRead, r.onRead))
}

func (r *StreamingReader) startFinish() {
	if r.state != stateStarted {
		return
	}
	r.state = stateFinishing
	r.finishIssued = true
	r.call.Finish(r.newCompletion(CompletionFinish, r.onFinish))
}

// fastFinish cancels the call and blocks until the transport has surrendered
// every issued completion, issuing the final finish operation if it hasn't
// been already. No actions run for the drained completions.
func (r *StreamingReader) fastFinish() {
	r.call.Cancel()

	for _, c := range r.pending {
		c.Cancel()
	}
	for _, c := range r.pending {
		c.WaitUntilOffQueue()
	}
	r.pending = nil

	if !r.finishIssued {
		r.finishIssued = true
		c := newCompletion(CompletionFinish, r.exec, nil)
		r.call.Finish(c)
		c.WaitUntilOffQueue()
	}
}

// deliver hands the outcome to the callback. A free function: once it runs,
// the reader must no longer be touched, since the callback may destroy it.
func deliver(callback ResultCallback, responses [][]byte, st *status.Status) {
	if callback == nil {
		return
	}
	if err := statusErr(st); err != nil {
		callback(nil, err)
		return
	}
	callback(responses, nil)
}
