package tern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc/metadata"

	"github.com/tern-rpc/tern"
	"github.com/tern-rpc/tern/mocks"
)

func TestStartIssuesWriteCarryingRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := tern.NewSerialExecutor()
	defer exec.Shutdown()

	call := mocks.NewCallHandle(t)

	var issued *tern.Completion
	call.EXPECT().Write(mock.Anything).Run(func(c *tern.Completion) {
		issued = c
	}).Once()

	reader := tern.NewStreamingReader(call, exec, []byte("hello"))
	exec.EnqueueBlocking(func() {
		reader.Start(func([][]byte, error) {})
	})

	require.NotNil(t, issued)
	assert.Equal(t, tern.CompletionWrite, issued.Kind())
	assert.Equal(t, []byte("hello"), issued.WritePayload())

	exec.EnqueueBlocking(func() {
		assert.Equal(t, 1, reader.PendingCompletions())
	})
}

func TestGetResponseHeadersDelegatesToCall(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := tern.NewSerialExecutor()
	defer exec.Shutdown()

	md := metadata.Pairs("x-request-id", "42")

	call := mocks.NewCallHandle(t)
	call.EXPECT().Write(mock.Anything).Once()
	call.EXPECT().ResponseHeaders().Return(md).Once()

	reader := tern.NewStreamingReader(call, exec, nil)
	exec.EnqueueBlocking(func() {
		reader.Start(func([][]byte, error) {})
		assert.Equal(t, md, reader.GetResponseHeaders())
	})
}
