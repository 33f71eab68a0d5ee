package encoding

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

type streamState int

const (
	awaitHeader streamState = iota
	awaitBody
)

// StreamDecoder incrementally decodes a byte stream of back-to-back MQTT control packets for
// transports that deliver data in arbitrary-sized chunks (a net.Conn read loop, a channel of
// buffered chunks, ...). Feed it bytes with Write, then drain complete packets with Next; Next
// returns ok=false once the buffered bytes no longer contain a complete packet, without
// consuming them, so a later Write can complete the frame.
type StreamDecoder struct {
	limits Limits
	state  streamState
	buf    bytes.Buffer

	fh        FixedHeader
	headerLen int
}

// NewStreamDecoder returns a StreamDecoder enforcing limits on every packet it decodes.
func NewStreamDecoder(limits Limits) *StreamDecoder {
	return &StreamDecoder{limits: limits}
}

// Write appends newly-arrived bytes to the decoder's internal buffer. It never fails; decode
// errors surface from Next.
func (d *StreamDecoder) Write(p []byte) (int, error) {
	return d.buf.Write(p)
}

// Buffered returns the number of bytes currently held, waiting on a complete packet.
func (d *StreamDecoder) Buffered() int {
	return d.buf.Len()
}

// Next returns the next fully-buffered packet. ok is false when more bytes are needed; err is
// non-nil when the stream is unrecoverable (malformed frame, a limit exceeded, or a reserved
// packet type) and decoding must stop. A *ReservedTypeError is returned with ok=false, matching
// DecodeVariablePacket's contract, but the offending bytes have already been drained from the
// internal buffer so a subsequent Next (after the caller decides whether to keep going) resumes
// cleanly at the next frame.
func (d *StreamDecoder) Next() (AnyPacket, bool, error) {
	for {
		switch d.state {
		case awaitHeader:
			packet, ok, err := d.tryHeader()
			if !ok || err != nil {
				return packet, ok, err
			}
		case awaitBody:
			return d.tryBody()
		}
	}
}

func (d *StreamDecoder) tryHeader() (AnyPacket, bool, error) {
	data := d.buf.Bytes()
	if len(data) < 1 {
		return nil, false, nil
	}

	first := data[0]
	typeNibble := PacketType(first >> 4)
	remainingLength, n, err := DecodeVariableByteIntegerFromBytes(data[1:])
	if err != nil {
		if errors.Is(err, ErrUnexpectedEOF) {
			return nil, false, nil
		}
		return nil, false, err
	}
	headerLen := 1 + n

	if typeNibble == Reserved || typeNibble == reservedTop {
		need := headerLen + int(remainingLength)
		if len(data) < need {
			return nil, false, nil
		}
		drained := append([]byte(nil), data[headerLen:need]...)
		d.buf.Next(need)
		return nil, false, &ReservedTypeError{TypeByte: first, Drained: drained}
	}

	if remainingLength > d.limits.effectiveMaxRemainingLength() {
		return nil, false, errors.Wrapf(ErrInvalidRemainingLength, "%d exceeds limit", remainingLength)
	}

	fh, err := NewFixedHeader(typeNibble, first&0x0F, remainingLength)
	if err != nil {
		return nil, false, err
	}

	d.fh = fh
	d.headerLen = headerLen
	d.state = awaitBody
	return nil, true, nil
}

func (d *StreamDecoder) tryBody() (AnyPacket, bool, error) {
	need := d.headerLen + int(d.fh.RemainingLength)
	if d.buf.Len() < need {
		return nil, false, nil
	}

	frame := d.buf.Next(need)
	body := frame[d.headerLen:]
	packet, err := decodeBody(d.fh, bytes.NewReader(body))
	d.state = awaitHeader
	if err != nil {
		return nil, false, err
	}
	return packet, true, nil
}
