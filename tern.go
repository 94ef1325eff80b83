// Package tern drives client-side streaming RPCs over a completion-queue
// transport.
//
// The transport is abstracted behind CallHandle: every operation issued on a
// call (write, read, finish) is asynchronous and reports back by submitting a
// Completion to a CompletionQueue. A background Poller takes fired
// completions off the queue and dispatches them; each completion marshals its
// handling onto the serial Executor that owns the reader, so reader logic is
// never entered from two places at once.
//
// StreamingReader is the heart of the package: it performs one
// request/stream-response call, collecting every message the server sends and
// delivering them (or a single typed error) to the caller's callback exactly
// once.
package tern

import (
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// CallHandle is the live RPC call the reader drives. Implementations arrange
// for each accepted Completion to be submitted to the completion queue once
// the corresponding transport operation lands; they never invoke completions
// directly.
//
// Write, Read and Finish must not block. The reader guarantees it issues at
// most one operation of each kind at a time, and never issues Read before the
// write has completed.
type CallHandle interface {
	// Write sends the completion's write payload to the server.
	Write(c *Completion)
	// Read receives the next message from the server. On success the
	// transport stores the received bytes on the completion before it fires.
	Read(c *Completion)
	// Finish closes the call and makes the final status available.
	Finish(c *Completion)
	// Cancel requests immediate termination of the call. Any in-flight
	// operations still fire their completions (unsuccessfully).
	Cancel()
	// ResponseHeaders returns whatever header metadata has arrived so far.
	// Empty metadata before headers arrive is valid, not an error.
	ResponseHeaders() metadata.MD
	// FinalStatus reports the call's outcome. Only valid once the Finish
	// completion has fired.
	FinalStatus() *status.Status
}

// Executor is a strictly serial task queue. All reader methods must be called
// on it, and all completion handling is marshaled onto it; tasks run one at a
// time, FIFO, to completion.
type Executor interface {
	Enqueue(task func())
	// EnqueueBlocking runs task on the executor and does not return until it
	// has finished. It must not be called from the executor itself.
	EnqueueBlocking(task func())
}

// ResultCallback receives the outcome of the call: either every message read
// from the stream, in arrival order, or a single error carrying a grpc status
// code. Exactly one of responses and err is set.
type ResultCallback func(responses [][]byte, err error)
