package encoding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceAsyncReader struct {
	data []byte
	pos  int
}

func (r *sliceAsyncReader) ReadByte(ctx context.Context) (byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func TestDecodeFixedHeaderAsync(t *testing.T) {
	r := &sliceAsyncReader{data: []byte{0xC0, 0x00}}
	fh, err := DecodeFixedHeaderAsync(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, PINGREQ, fh.Type)
}

func TestDecodeVariablePacketAsync(t *testing.T) {
	r := &sliceAsyncReader{data: []byte{0xC0, 0x00}}
	packet, err := DecodeVariablePacketAsync(context.Background(), r)
	require.NoError(t, err)
	_, ok := packet.(*Pingreq)
	assert.True(t, ok)
}

func TestDecodeFixedHeaderAsync_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &sliceAsyncReader{data: []byte{0xC0, 0x00}}
	_, err := DecodeFixedHeaderAsync(ctx, r)
	assert.ErrorIs(t, err, context.Canceled)
}
