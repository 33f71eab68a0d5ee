package encoding

import (
	stderrors "errors"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the v3.1.1 taxonomy (spec section 7). Callers compare against these with
// errors.Is; decoders wrap them with github.com/cockroachdb/errors to attach call-site context
// without losing the sentinel identity.
var (
	// ErrVariableByteIntegerTooLarge indicates the value exceeds the maximum encodable value (268,435,455).
	ErrVariableByteIntegerTooLarge = stderrors.New("variable byte integer value exceeds maximum (268,435,455)")

	// ErrMalformedVariableByteInteger indicates a 5th continuation byte was seen while decoding a
	// remaining-length integer.
	ErrMalformedVariableByteInteger = stderrors.New("malformed remaining length: fifth continuation byte")

	// ErrUnexpectedEOF indicates the input ended before a frame could be fully read.
	ErrUnexpectedEOF = stderrors.New("unexpected end of input")

	// ErrBufferTooSmall indicates the destination buffer is too small for the operation.
	ErrBufferTooSmall = stderrors.New("buffer too small")

	// ErrInvalidType indicates a packet-type nibble outside the 1..14 range this codec knows about.
	ErrInvalidType = stderrors.New("invalid packet type")

	// ErrReservedType indicates packet type 0 or 15 (MQTT-4.8): a fatal protocol violation.
	ErrReservedType = stderrors.New("reserved packet type not allowed")

	// ErrInvalidFlag indicates the fixed-header flag nibble does not match the required value for
	// a non-PUBLISH packet type, or encodes an invalid PUBLISH QoS (3).
	ErrInvalidFlag = stderrors.New("invalid flags for packet type")

	// ErrInvalidReservedFlag indicates CONNECT's reserved bit or CONNACK's reserved bits are
	// nonzero. DecodeConnect marks its ErrInvalidConnectFlags error with this sentinel, so both
	// match with errors.Is.
	ErrInvalidReservedFlag = stderrors.New("reserved flag bit must be zero")

	// ErrInvalidQoS indicates a QoS byte outside {0,1,2}.
	ErrInvalidQoS = stderrors.New("invalid QoS level")

	// ErrInvalidProtocolVersion indicates an unrecognized CONNECT protocol-level byte.
	ErrInvalidProtocolVersion = stderrors.New("invalid protocol version")

	// ErrInvalidProtocolName indicates the CONNECT protocol name does not match the expected
	// "MQTT" (level 4) or "MQIsdp" (level 3) string.
	ErrInvalidProtocolName = stderrors.New("invalid protocol name")

	// ErrInvalidUTF8 indicates string bytes are not valid UTF-8 or contain a disallowed code point.
	ErrInvalidUTF8 = stderrors.New("invalid UTF-8 encoding")

	// ErrNullCharacter indicates a null byte (U+0000) inside a UTF-8 string field.
	ErrNullCharacter = stderrors.New("null character (U+0000) not allowed in UTF-8 string")

	// ErrSurrogateCodePoint indicates a UTF-16 surrogate code point inside a UTF-8 string field.
	ErrSurrogateCodePoint = stderrors.New("UTF-16 surrogate code points (U+D800 to U+DFFF) not allowed")

	// ErrNonCharacterCodePoint indicates a non-character code point inside a UTF-8 string field.
	ErrNonCharacterCodePoint = stderrors.New("non-character code points (U+FFFE, U+FFFF) not allowed")

	// ErrControlCharacter indicates a control character inside a UTF-8 string field (strict mode only).
	ErrControlCharacter = stderrors.New("control characters (U+0001 to U+001F, U+007F to U+009F) should be avoided")

	// ErrInvalidTopicName indicates a PUBLISH topic name fails validation (empty, too long, or
	// contains a wildcard character).
	ErrInvalidTopicName = stderrors.New("invalid topic name")

	// ErrInvalidTopicFilter indicates a SUBSCRIBE/UNSUBSCRIBE topic filter fails wildcard-placement
	// validation.
	ErrInvalidTopicFilter = stderrors.New("invalid topic filter")

	// ErrInvalidSubscribeReturnCode indicates a SUBACK return-code byte outside {0,1,2,0x80}.
	ErrInvalidSubscribeReturnCode = stderrors.New("invalid SUBACK return code")

	// ErrInvalidConnectReturnCode indicates a CONNACK return-code byte outside 0x00-0x05.
	ErrInvalidConnectReturnCode = stderrors.New("invalid CONNACK return code")

	// ErrInvalidConnectFlags indicates CONNECT's reserved bit 0 is nonzero.
	ErrInvalidConnectFlags = stderrors.New("invalid CONNECT flags: reserved bit must be 0")

	// ErrInvalidPacketIDZero indicates a zero packet identifier on a packet that requires a
	// nonzero one.
	ErrInvalidPacketIDZero = stderrors.New("packet identifier cannot be 0 for QoS > 0")

	// ErrInvalidRemainingLength indicates the remaining length exceeds the protocol maximum or the
	// configured Limits cap.
	ErrInvalidRemainingLength = stderrors.New("remaining length exceeds maximum or configured limit")

	// ErrTrailingBytes indicates bytes remained inside a packet's declared remaining length after
	// its fields were fully decoded (spec section 9: treated as a protocol error).
	ErrTrailingBytes = stderrors.New("trailing bytes within declared remaining length")
)

// ReservedTypeError is returned by DecodeVariablePacket/DecodeVariablePacketAsync when the fixed
// header names a reserved packet type (0 or 15). It carries the offending type/flags byte and the
// bytes drained from the declared remaining length so a caller can log or diagnose the frame
// before disconnecting the peer (MQTT-4.8 requires a broker to disconnect on this condition).
type ReservedTypeError struct {
	TypeByte byte
	Drained  []byte
}

func (e *ReservedTypeError) Error() string {
	return errors.Newf("reserved packet type byte 0x%02x, %d bytes drained", e.TypeByte, len(e.Drained)).Error()
}

func (e *ReservedTypeError) Unwrap() error {
	return ErrReservedType
}
