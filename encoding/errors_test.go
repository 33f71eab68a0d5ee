package encoding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsDefined(t *testing.T) {
	sentinels := []error{
		ErrVariableByteIntegerTooLarge,
		ErrMalformedVariableByteInteger,
		ErrUnexpectedEOF,
		ErrBufferTooSmall,
		ErrInvalidType,
		ErrReservedType,
		ErrInvalidFlag,
		ErrInvalidReservedFlag,
		ErrInvalidQoS,
		ErrInvalidProtocolVersion,
		ErrInvalidProtocolName,
		ErrInvalidUTF8,
		ErrNullCharacter,
		ErrSurrogateCodePoint,
		ErrNonCharacterCodePoint,
		ErrControlCharacter,
		ErrInvalidTopicName,
		ErrInvalidTopicFilter,
		ErrInvalidSubscribeReturnCode,
		ErrInvalidConnectReturnCode,
		ErrInvalidConnectFlags,
		ErrInvalidPacketIDZero,
		ErrInvalidRemainingLength,
		ErrTrailingBytes,
	}
	for _, err := range sentinels {
		assert.NotNil(t, err)
	}
}

func TestReservedTypeError(t *testing.T) {
	err := &ReservedTypeError{TypeByte: 0xF0, Drained: []byte{0x01, 0x02, 0x03}}

	assert.Contains(t, err.Error(), "0xf0")
	assert.Contains(t, err.Error(), "3 bytes drained")
	assert.True(t, errors.Is(err, ErrReservedType))
}

func TestReservedTypeError_EmptyDrain(t *testing.T) {
	err := &ReservedTypeError{TypeByte: 0x00}
	assert.Contains(t, err.Error(), "0 bytes drained")
}
