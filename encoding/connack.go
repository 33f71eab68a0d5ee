package encoding

import (
	"io"

	"github.com/cockroachdb/errors"
)

// ConnectReturnCode is the CONNACK return code, one of the six values MQTT-3.2.2-3 defines.
type ConnectReturnCode byte

const (
	ConnectAccepted                    ConnectReturnCode = 0x00
	ConnectRefusedUnacceptableProtocol ConnectReturnCode = 0x01
	ConnectRefusedIdentifierRejected   ConnectReturnCode = 0x02
	ConnectRefusedServerUnavailable    ConnectReturnCode = 0x03
	ConnectRefusedBadUsernamePassword  ConnectReturnCode = 0x04
	ConnectRefusedNotAuthorized        ConnectReturnCode = 0x05
)

func (c ConnectReturnCode) String() string {
	switch c {
	case ConnectAccepted:
		return "accepted"
	case ConnectRefusedUnacceptableProtocol:
		return "unacceptable protocol version"
	case ConnectRefusedIdentifierRejected:
		return "identifier rejected"
	case ConnectRefusedServerUnavailable:
		return "server unavailable"
	case ConnectRefusedBadUsernamePassword:
		return "bad username or password"
	case ConnectRefusedNotAuthorized:
		return "not authorized"
	default:
		return "unknown"
	}
}

// IsValid reports whether c is one of the six return codes MQTT-3.2.2-3 defines.
func (c ConnectReturnCode) IsValid() bool {
	return c <= ConnectRefusedNotAuthorized
}

// Connack represents a CONNACK packet.
type Connack struct {
	FixedHeader    FixedHeader
	SessionPresent bool
	ReturnCode     ConnectReturnCode
}

// NewConnack builds a CONNACK packet. Per MQTT-3.2.2-4, SessionPresent must be false whenever
// ReturnCode is not ConnectAccepted; callers that violate this get it silently cleared on Encode.
func NewConnack(sessionPresent bool, code ConnectReturnCode) *Connack {
	return &Connack{
		FixedHeader: FixedHeader{Type: CONNACK, Flags: DefaultFlags(CONNACK), RemainingLength: 2},
		SessionPresent: sessionPresent,
		ReturnCode:     code,
	}
}

// Header returns the packet's fixed header.
func (p *Connack) Header() FixedHeader { return p.FixedHeader }

// Encode writes the CONNACK packet to w.
func (p *Connack) Encode(w io.Writer) error {
	p.FixedHeader = FixedHeader{Type: CONNACK, Flags: DefaultFlags(CONNACK), RemainingLength: 2}
	if err := p.FixedHeader.Encode(w); err != nil {
		return err
	}

	sessionPresent := p.SessionPresent && p.ReturnCode == ConnectAccepted
	var ackFlags byte
	if sessionPresent {
		ackFlags |= 0x01
	}
	if err := writeByte(w, ackFlags); err != nil {
		return err
	}
	return writeByte(w, byte(p.ReturnCode))
}

// DecodeConnack decodes a CONNACK packet's variable header from r.
func DecodeConnack(fh FixedHeader, r io.Reader) (*Connack, error) {
	ackFlags, err := readByte(r)
	if err != nil {
		return nil, errors.Wrap(err, "connect acknowledge flags")
	}
	if ackFlags&0xFE != 0 {
		return nil, errors.Wrap(ErrInvalidReservedFlag, "CONNACK acknowledge flags bits 1-7")
	}

	codeByte, err := readByte(r)
	if err != nil {
		return nil, errors.Wrap(err, "return code")
	}
	code := ConnectReturnCode(codeByte)
	if !code.IsValid() {
		return nil, errors.Wrapf(ErrInvalidConnectReturnCode, "CONNACK return code 0x%02x", codeByte)
	}

	return &Connack{
		FixedHeader:    fh,
		SessionPresent: ackFlags&0x01 != 0,
		ReturnCode:     code,
	}, nil
}
