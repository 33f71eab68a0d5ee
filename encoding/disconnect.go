package encoding

import "io"

// Disconnect signals a graceful client-initiated connection close.
type Disconnect struct {
	FixedHeader FixedHeader
}

// NewDisconnect builds a DISCONNECT packet.
func NewDisconnect() *Disconnect { return &Disconnect{} }

// Header returns the packet's fixed header.
func (p *Disconnect) Header() FixedHeader { return p.FixedHeader }

// Encode writes the DISCONNECT packet to w.
func (p *Disconnect) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: DISCONNECT, Flags: DefaultFlags(DISCONNECT)}
	return p.FixedHeader.Encode(w)
}

// DecodeDisconnect decodes a DISCONNECT packet, which carries no variable header or payload.
func DecodeDisconnect(fh FixedHeader) (*Disconnect, error) {
	return &Disconnect{FixedHeader: fh}, nil
}
