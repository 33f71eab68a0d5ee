package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingreqPingresp_Encode(t *testing.T) {
	var reqBuf bytes.Buffer
	require.NoError(t, NewPingreq().Encode(&reqBuf))
	assert.Equal(t, []byte{0xC0, 0x00}, reqBuf.Bytes())

	var respBuf bytes.Buffer
	require.NoError(t, NewPingresp().Encode(&respBuf))
	assert.Equal(t, []byte{0xD0, 0x00}, respBuf.Bytes())
}

func TestDisconnect_Encode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDisconnect().Encode(&buf))
	assert.Equal(t, []byte{0xE0, 0x00}, buf.Bytes())
}
