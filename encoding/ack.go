package encoding

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Puback acknowledges a QoS 1 PUBLISH.
type Puback struct {
	FixedHeader FixedHeader
	PacketID    uint16
}

// Pubrec is the first acknowledgement in a QoS 2 PUBLISH exchange.
type Pubrec struct {
	FixedHeader FixedHeader
	PacketID    uint16
}

// Pubrel is the second acknowledgement in a QoS 2 PUBLISH exchange; its fixed-header flags are
// fixed at 0x02 (MQTT-3.6.1-1).
type Pubrel struct {
	FixedHeader FixedHeader
	PacketID    uint16
}

// Pubcomp is the final acknowledgement in a QoS 2 PUBLISH exchange.
type Pubcomp struct {
	FixedHeader FixedHeader
	PacketID    uint16
}

func encodeIDOnlyPacket(w io.Writer, t PacketType, packetID uint16) error {
	fh := FixedHeader{Type: t, Flags: DefaultFlags(t), RemainingLength: 2}
	if err := fh.Encode(w); err != nil {
		return err
	}
	return writeTwoByteInt(w, packetID)
}

func decodeIDOnlyPacket(r io.Reader) (uint16, error) {
	packetID, err := readTwoByteInt(r)
	if err != nil {
		return 0, errors.Wrap(err, "packet identifier")
	}
	if err := ValidatePacketID(packetID, true); err != nil {
		return 0, err
	}
	return packetID, nil
}

// NewPuback builds a PUBACK packet for packetID.
func NewPuback(packetID uint16) *Puback { return &Puback{PacketID: packetID} }

// Header returns the packet's fixed header.
func (p *Puback) Header() FixedHeader { return p.FixedHeader }

// Encode writes the PUBACK packet to w.
func (p *Puback) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: PUBACK, Flags: DefaultFlags(PUBACK), RemainingLength: 2}
	return encodeIDOnlyPacket(w, PUBACK, p.PacketID)
}

// DecodePuback decodes a PUBACK packet's variable header from r.
func DecodePuback(fh FixedHeader, r io.Reader) (*Puback, error) {
	id, err := decodeIDOnlyPacket(r)
	if err != nil {
		return nil, err
	}
	return &Puback{FixedHeader: fh, PacketID: id}, nil
}

// NewPubrec builds a PUBREC packet for packetID.
func NewPubrec(packetID uint16) *Pubrec { return &Pubrec{PacketID: packetID} }

// Header returns the packet's fixed header.
func (p *Pubrec) Header() FixedHeader { return p.FixedHeader }

// Encode writes the PUBREC packet to w.
func (p *Pubrec) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: PUBREC, Flags: DefaultFlags(PUBREC), RemainingLength: 2}
	return encodeIDOnlyPacket(w, PUBREC, p.PacketID)
}

// DecodePubrec decodes a PUBREC packet's variable header from r.
func DecodePubrec(fh FixedHeader, r io.Reader) (*Pubrec, error) {
	id, err := decodeIDOnlyPacket(r)
	if err != nil {
		return nil, err
	}
	return &Pubrec{FixedHeader: fh, PacketID: id}, nil
}

// NewPubrel builds a PUBREL packet for packetID.
func NewPubrel(packetID uint16) *Pubrel { return &Pubrel{PacketID: packetID} }

// Header returns the packet's fixed header.
func (p *Pubrel) Header() FixedHeader { return p.FixedHeader }

// Encode writes the PUBREL packet to w.
func (p *Pubrel) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: PUBREL, Flags: DefaultFlags(PUBREL), RemainingLength: 2}
	return encodeIDOnlyPacket(w, PUBREL, p.PacketID)
}

// DecodePubrel decodes a PUBREL packet's variable header from r.
func DecodePubrel(fh FixedHeader, r io.Reader) (*Pubrel, error) {
	id, err := decodeIDOnlyPacket(r)
	if err != nil {
		return nil, err
	}
	return &Pubrel{FixedHeader: fh, PacketID: id}, nil
}

// NewPubcomp builds a PUBCOMP packet for packetID.
func NewPubcomp(packetID uint16) *Pubcomp { return &Pubcomp{PacketID: packetID} }

// Header returns the packet's fixed header.
func (p *Pubcomp) Header() FixedHeader { return p.FixedHeader }

// Encode writes the PUBCOMP packet to w.
func (p *Pubcomp) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: PUBCOMP, Flags: DefaultFlags(PUBCOMP), RemainingLength: 2}
	return encodeIDOnlyPacket(w, PUBCOMP, p.PacketID)
}

// DecodePubcomp decodes a PUBCOMP packet's variable header from r.
func DecodePubcomp(fh FixedHeader, r io.Reader) (*Pubcomp, error) {
	id, err := decodeIDOnlyPacket(r)
	if err != nil {
		return nil, err
	}
	return &Pubcomp{FixedHeader: fh, PacketID: id}, nil
}
