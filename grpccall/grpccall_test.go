package grpccall

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRawCodecPassesBytesThrough(t *testing.T) {
	codec := rawCodec{}

	in := rawMessage("opaque payload")
	data, err := codec.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte("opaque payload"), data)

	var out rawMessage
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestRawCodecRejectsOtherTypes(t *testing.T) {
	codec := rawCodec{}

	_, err := codec.Marshal("not a raw message")
	assert.Error(t, err)

	assert.Error(t, codec.Unmarshal([]byte("x"), &struct{}{}))
}

func TestFinalStatusBeforeAnyError(t *testing.T) {
	c := &Call{}
	assert.Equal(t, codes.OK, c.FinalStatus().Code())
}

func TestFinalStatusIgnoresCleanEndOfStream(t *testing.T) {
	c := &Call{}
	c.observe(io.EOF)
	assert.Equal(t, codes.OK, c.FinalStatus().Code())
}

func TestFinalStatusKeepsFirstError(t *testing.T) {
	c := &Call{}
	c.observe(status.Error(codes.Unavailable, "connection reset"))
	c.observe(status.Error(codes.Internal, "later"))

	st := c.FinalStatus()
	assert.Equal(t, codes.Unavailable, st.Code())
	assert.Equal(t, "connection reset", st.Message())
}

func TestFinalStatusWrapsPlainErrors(t *testing.T) {
	c := &Call{}
	c.observe(io.ErrUnexpectedEOF)
	assert.Equal(t, codes.Unknown, c.FinalStatus().Code())
}
