package tern

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// CompletionKind identifies which call operation a completion tracks.
type CompletionKind int

const (
	CompletionWrite CompletionKind = iota
	CompletionRead
	CompletionFinish
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionWrite:
		return "write"
	case CompletionRead:
		return "read"
	case CompletionFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// CompletionAction handles a fired completion. It always runs on the owning
// executor.
type CompletionAction func(ok bool, c *Completion)

var writeBufferPool bytebufferpool.Pool

// Completion tracks one outstanding asynchronous operation on a CallHandle.
// It is created by the reader, handed to the transport, fired exactly once by
// the poller, and retired afterwards; a fired completion is never reused.
type Completion struct {
	kind CompletionKind
	exec Executor

	// action is owned by the executor: it is only read when handling a fired
	// completion and only cleared by Cancel, both of which run as executor
	// tasks.
	action CompletionAction

	writeBuf *bytebufferpool.ByteBuffer
	readBuf  []byte

	fireOnce sync.Once
	offQueue chan struct{}
}

func newCompletion(kind CompletionKind, exec Executor, action CompletionAction) *Completion {
	return &Completion{
		kind:     kind,
		exec:     exec,
		action:   action,
		offQueue: make(chan struct{}),
	}
}

// Kind reports which operation this completion tracks.
func (c *Completion) Kind() CompletionKind {
	return c.kind
}

// SetPayload stores bytes received from the server. The transport calls it on
// a read completion before firing it.
func (c *Completion) SetPayload(b []byte) {
	c.readBuf = b
}

// Payload returns the bytes received by a successful read.
func (c *Completion) Payload() []byte {
	return c.readBuf
}

func (c *Completion) setWritePayload(b []byte) {
	buf := writeBufferPool.Get()
	_, _ = buf.Write(b)
	c.writeBuf = buf
}

// WritePayload returns the bytes a write completion carries to the server.
// Valid until the completion fires.
func (c *Completion) WritePayload() []byte {
	if c.writeBuf == nil {
		return nil
	}
	return c.writeBuf.B
}

// Fire delivers the operation's outcome. The transport (via the poller) calls
// it exactly once, from outside the executor; handling is marshaled onto the
// executor before any reader state is touched.
func (c *Completion) Fire(ok bool) {
	c.fireOnce.Do(func() {
		// Unblocks WaitUntilOffQueue before the executor task runs: a
		// blocked executor must be able to observe the transport has
		// surrendered the completion.
		close(c.offQueue)

		c.exec.Enqueue(func() {
			if c.action != nil {
				c.action(ok, c)
			}
			c.retire()
		})
	})
}

// Cancel detaches the completion from its action so that firing it has no
// effect beyond retiring it. Must be called on the executor.
func (c *Completion) Cancel() {
	c.action = nil
}

// WaitUntilOffQueue blocks until the completion has fired, i.e. until the
// transport no longer references its buffers. It does not wait for the action
// to have run.
func (c *Completion) WaitUntilOffQueue() {
	<-c.offQueue
}

func (c *Completion) retire() {
	if c.writeBuf != nil {
		writeBufferPool.Put(c.writeBuf)
		c.writeBuf = nil
	}
	c.readBuf = nil
}
