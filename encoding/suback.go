package encoding

import (
	"io"

	"github.com/cockroachdb/errors"
)

// SubscribeReturnCode is one byte of a SUBACK packet, either a granted maximum QoS or the
// 0x80 failure code (MQTT-3.9.3).
type SubscribeReturnCode byte

const (
	SubscribeSuccessQoS0 SubscribeReturnCode = 0x00
	SubscribeSuccessQoS1 SubscribeReturnCode = 0x01
	SubscribeSuccessQoS2 SubscribeReturnCode = 0x02
	SubscribeFailure     SubscribeReturnCode = 0x80
)

// IsValid reports whether c is 0x00, 0x01, 0x02, or 0x80.
func (c SubscribeReturnCode) IsValid() bool {
	return c == SubscribeSuccessQoS0 || c == SubscribeSuccessQoS1 || c == SubscribeSuccessQoS2 || c == SubscribeFailure
}

// Suback represents a SUBACK packet acknowledging a SUBSCRIBE, with one return code per requested
// subscription, in order (MQTT-3.9.3-1).
type Suback struct {
	FixedHeader FixedHeader
	PacketID    uint16
	ReturnCodes []SubscribeReturnCode
}

// NewSuback builds a SUBACK packet.
func NewSuback(packetID uint16, codes []SubscribeReturnCode) *Suback {
	return &Suback{PacketID: packetID, ReturnCodes: codes}
}

// Header returns the packet's fixed header.
func (p *Suback) Header() FixedHeader { return p.FixedHeader }

// Encode writes the SUBACK packet to w.
func (p *Suback) Encode(w io.Writer) error {
	if err := ValidatePacketID(p.PacketID, true); err != nil {
		return err
	}

	fh := FixedHeader{Type: SUBACK, Flags: DefaultFlags(SUBACK), RemainingLength: uint32(2 + len(p.ReturnCodes))}
	p.FixedHeader = fh
	if err := fh.Encode(w); err != nil {
		return err
	}

	if err := writeTwoByteInt(w, p.PacketID); err != nil {
		return err
	}

	for _, code := range p.ReturnCodes {
		if !code.IsValid() {
			return errors.Wrapf(ErrInvalidSubscribeReturnCode, "0x%02x", byte(code))
		}
		if err := writeByte(w, byte(code)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSuback decodes a SUBACK packet's variable header and payload from r, which must be
// bounded to exactly fh.RemainingLength bytes.
func DecodeSuback(fh FixedHeader, r io.Reader) (*Suback, error) {
	packetID, err := readTwoByteInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "packet identifier")
	}
	if err := ValidatePacketID(packetID, true); err != nil {
		return nil, err
	}

	raw, err := readRawTail(r)
	if err != nil {
		return nil, errors.Wrap(err, "return codes")
	}

	codes := make([]SubscribeReturnCode, len(raw))
	for i, b := range raw {
		code := SubscribeReturnCode(b)
		if !code.IsValid() {
			return nil, errors.Wrapf(ErrInvalidSubscribeReturnCode, "0x%02x at index %d", b, i)
		}
		codes[i] = code
	}

	return &Suback{FixedHeader: fh, PacketID: packetID, ReturnCodes: codes}, nil
}
