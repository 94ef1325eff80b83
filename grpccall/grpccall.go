// Package grpccall adapts a grpc-go client stream to tern.CallHandle.
//
// Each operation issued on the handle runs on its own goroutine and submits
// its completion to the reader's completion queue when the underlying stream
// call returns. Payloads pass through untouched: the server-streaming method
// is invoked with a raw pass-through codec, so the reader stays
// payload-agnostic.
package grpccall

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/tern-rpc/tern"
)

// rawMessage is an opaque payload moved through the stream without
// serialization.
type rawMessage []byte

type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(*rawMessage)
	if !ok {
		return nil, fmt.Errorf("grpccall: cannot marshal %T", v)
	}
	return *m, nil
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(*rawMessage)
	if !ok {
		return fmt.Errorf("grpccall: cannot unmarshal into %T", v)
	}
	*m = data
	return nil
}

func (rawCodec) Name() string {
	return "tern-raw"
}

var streamDesc = &grpc.StreamDesc{
	ServerStreams: true,
}

// Call drives a server-streaming grpc method as a tern.CallHandle.
type Call struct {
	cancel context.CancelFunc
	stream grpc.ClientStream
	queue  *tern.CompletionQueue

	mu       sync.Mutex
	headers  metadata.MD
	finalErr error
}

var _ tern.CallHandle = (*Call)(nil)

// New opens a server-streaming call to method on conn. Completions for the
// call's operations are submitted to queue.
func New(
	ctx context.Context,
	conn grpc.ClientConnInterface,
	method string,
	queue *tern.CompletionQueue,
) (*Call, error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := conn.NewStream(ctx, streamDesc, method, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		cancel()
		return nil, errors.Wrapf(err, "grpccall: open %s", method)
	}

	c := &Call{
		cancel: cancel,
		stream: stream,
		queue:  queue,
	}

	// Header blocks until headers arrive, so fetch them off to the side and
	// serve whatever has been seen so far.
	go func() {
		md, err := stream.Header()
		if err != nil {
			log.Debug().Err(err).Msg("grpccall: no response headers")
			return
		}
		c.mu.Lock()
		c.headers = md
		c.mu.Unlock()
	}()

	return c, nil
}

// Write sends the completion's payload as the call's single request, then
// half-closes the stream.
func (c *Call) Write(comp *tern.Completion) {
	go func() {
		msg := rawMessage(comp.WritePayload())
		err := c.stream.SendMsg(&msg)
		if err != nil {
			c.observe(err)
		} else if err = c.stream.CloseSend(); err != nil {
			c.observe(err)
		}
		c.queue.Submit(comp, err == nil)
	}()
}

// Read receives the next server message into the completion's payload.
func (c *Call) Read(comp *tern.Completion) {
	go func() {
		var msg rawMessage
		err := c.stream.RecvMsg(&msg)
		if err != nil {
			c.observe(err)
			c.queue.Submit(comp, false)
			return
		}
		comp.SetPayload(msg)
		c.queue.Submit(comp, true)
	}()
}

// Finish drains the stream until it reports its terminal condition, making
// the final status available.
func (c *Call) Finish(comp *tern.Completion) {
	go func() {
		for {
			var msg rawMessage
			if err := c.stream.RecvMsg(&msg); err != nil {
				c.observe(err)
				break
			}
		}
		c.queue.Submit(comp, true)
	}()
}

// Cancel aborts the call. In-flight operations still submit their
// completions once the stream surrenders them.
func (c *Call) Cancel() {
	c.cancel()
}

// ResponseHeaders returns the headers seen so far; empty metadata until they
// arrive.
func (c *Call) ResponseHeaders() metadata.MD {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.headers
}

// FinalStatus reports the call's outcome, valid once the Finish completion
// has fired. A stream that ended cleanly reports OK.
func (c *Call) FinalStatus() *status.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finalErr == nil {
		return status.New(codes.OK, "")
	}
	if st, ok := status.FromError(c.finalErr); ok {
		return st
	}
	return status.New(codes.Unknown, c.finalErr.Error())
}

func (c *Call) observe(err error) {
	if err == io.EOF {
		// Clean end of stream, not a call failure.
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalErr == nil {
		c.finalErr = err
	}
}
