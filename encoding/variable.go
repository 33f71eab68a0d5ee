package encoding

import (
	"io"

	"github.com/cockroachdb/errors"
)

// AnyPacket is implemented by every decoded control packet. Type-switch on the concrete type
// (*Connect, *Publish, *Suback, ...) to reach packet-specific fields.
type AnyPacket interface {
	Header() FixedHeader
	Encode(w io.Writer) error
}

// DecodeVariablePacket reads one complete MQTT control packet from r: the fixed header, then a
// variable header and payload bounded to exactly the declared remaining length.
//
// If the fixed header names a reserved packet type (0 or 15), the remaining-length bytes are
// drained from r and the returned error is a *ReservedTypeError (MQTT-4.8 requires closing the
// connection on this condition, but lets the caller log the drained bytes first).
func DecodeVariablePacket(r io.Reader) (AnyPacket, error) {
	return decodeVariablePacket(r, MaxVariableByteInteger)
}

// DecodeVariablePacketWithLimits is DecodeVariablePacket with a caller-supplied ceiling on
// remaining length, rejecting oversized frames before any payload is read.
func DecodeVariablePacketWithLimits(r io.Reader, limits Limits) (AnyPacket, error) {
	return decodeVariablePacket(r, limits.effectiveMaxRemainingLength())
}

func decodeVariablePacket(r io.Reader, maxRemainingLength uint32) (AnyPacket, error) {
	first, err := readByte(r)
	if err != nil {
		return nil, err
	}

	typeNibble := PacketType(first >> 4)
	remainingLength, err := DecodeVariableByteInteger(r)
	if err != nil {
		return nil, err
	}

	if typeNibble == Reserved || typeNibble == reservedTop {
		drained := make([]byte, remainingLength)
		if _, err := io.ReadFull(r, drained); err != nil {
			return nil, errors.Wrap(err, "draining reserved-type packet")
		}
		return nil, &ReservedTypeError{TypeByte: first, Drained: drained}
	}

	if remainingLength > maxRemainingLength {
		return nil, errors.Wrapf(ErrInvalidRemainingLength, "%d exceeds limit %d", remainingLength, maxRemainingLength)
	}

	fh, err := NewFixedHeader(typeNibble, first&0x0F, remainingLength)
	if err != nil {
		return nil, err
	}

	body := io.LimitReader(r, int64(fh.RemainingLength))
	packet, err := decodeBody(fh, body)
	if err != nil {
		return nil, err
	}

	if n, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, ErrTrailingBytes
	}

	return packet, nil
}

func decodeBody(fh FixedHeader, body io.Reader) (AnyPacket, error) {
	switch fh.Type {
	case CONNECT:
		return DecodeConnect(fh, body)
	case CONNACK:
		return DecodeConnack(fh, body)
	case PUBLISH:
		return DecodePublish(fh, body)
	case PUBACK:
		return DecodePuback(fh, body)
	case PUBREC:
		return DecodePubrec(fh, body)
	case PUBREL:
		return DecodePubrel(fh, body)
	case PUBCOMP:
		return DecodePubcomp(fh, body)
	case SUBSCRIBE:
		return DecodeSubscribe(fh, body)
	case SUBACK:
		return DecodeSuback(fh, body)
	case UNSUBSCRIBE:
		return DecodeUnsubscribe(fh, body)
	case UNSUBACK:
		return DecodeUnsuback(fh, body)
	case PINGREQ:
		return DecodePingreq(fh)
	case PINGRESP:
		return DecodePingresp(fh)
	case DISCONNECT:
		return DecodeDisconnect(fh)
	default:
		return nil, errors.Wrapf(ErrInvalidType, "packet type %d", byte(fh.Type))
	}
}
