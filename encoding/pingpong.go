package encoding

import "io"

// Pingreq is a keep-alive ping sent by the client.
type Pingreq struct {
	FixedHeader FixedHeader
}

// NewPingreq builds a PINGREQ packet.
func NewPingreq() *Pingreq { return &Pingreq{} }

// Header returns the packet's fixed header.
func (p *Pingreq) Header() FixedHeader { return p.FixedHeader }

// Encode writes the PINGREQ packet to w.
func (p *Pingreq) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: PINGREQ, Flags: DefaultFlags(PINGREQ)}
	return p.FixedHeader.Encode(w)
}

// DecodePingreq decodes a PINGREQ packet, which carries no variable header or payload.
func DecodePingreq(fh FixedHeader) (*Pingreq, error) {
	return &Pingreq{FixedHeader: fh}, nil
}

// Pingresp answers a PINGREQ.
type Pingresp struct {
	FixedHeader FixedHeader
}

// NewPingresp builds a PINGRESP packet.
func NewPingresp() *Pingresp { return &Pingresp{} }

// Header returns the packet's fixed header.
func (p *Pingresp) Header() FixedHeader { return p.FixedHeader }

// Encode writes the PINGRESP packet to w.
func (p *Pingresp) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: PINGRESP, Flags: DefaultFlags(PINGRESP)}
	return p.FixedHeader.Encode(w)
}

// DecodePingresp decodes a PINGRESP packet, which carries no variable header or payload.
func DecodePingresp(fh FixedHeader) (*Pingresp, error) {
	return &Pingresp{FixedHeader: fh}, nil
}
