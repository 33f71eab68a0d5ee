package encoding

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/axmq/mqttcodec/topic"
)

// ProtocolVersion identifies the MQTT protocol level carried in CONNECT.
type ProtocolVersion byte

const (
	ProtocolLevel31  ProtocolVersion = 0x03 // "MQIsdp"
	ProtocolLevel311 ProtocolVersion = 0x04 // "MQTT"
)

func protocolName(v ProtocolVersion) (string, error) {
	switch v {
	case ProtocolLevel311:
		return "MQTT", nil
	case ProtocolLevel31:
		return "MQIsdp", nil
	default:
		return "", errors.Wrapf(ErrInvalidProtocolVersion, "level 0x%02x", byte(v))
	}
}

// Connect represents an MQTT 3.1.1 (or 3.1) CONNECT packet. Optional payload fields are present
// iff their corresponding connect-flag bit is set; use SetWill/SetCredentials to keep the flags
// and payload slots consistent rather than assigning the fields directly.
type Connect struct {
	FixedHeader FixedHeader

	ProtocolVersion ProtocolVersion
	CleanSession    bool
	KeepAlive       uint16
	ClientID        string

	willFlag    bool
	willQoS     QoS
	willRetain  bool
	willTopic   topic.Name
	willPayload []byte

	usernameFlag bool
	username     string
	passwordFlag bool
	password     []byte
}

// NewConnect builds a CONNECT packet for the given client identifier at MQTT 3.1.1.
func NewConnect(clientID string, keepAlive uint16, cleanSession bool) *Connect {
	p := &Connect{
		ProtocolVersion: ProtocolLevel311,
		CleanSession:    cleanSession,
		KeepAlive:       keepAlive,
		ClientID:        clientID,
	}
	p.syncRemainingLength()
	return p
}

// SetWill atomically sets the will flag, topic, payload, QoS, and retain bit.
func (p *Connect) SetWill(topicName topic.Name, payload []byte, qos QoS, retain bool) {
	p.willFlag = true
	p.willTopic = topicName
	p.willPayload = payload
	p.willQoS = qos
	p.willRetain = retain
	p.syncRemainingLength()
}

// ClearWill removes the will flag and its payload fields together.
func (p *Connect) ClearWill() {
	p.willFlag = false
	p.willTopic = topic.Name{}
	p.willPayload = nil
	p.willQoS = QoS0
	p.willRetain = false
	p.syncRemainingLength()
}

// SetCredentials atomically sets the username/password flags and values. Per MQTT-3.1.2-22 a
// password must not be set without a username.
func (p *Connect) SetCredentials(username string, password []byte) error {
	if len(password) > 0 && username == "" {
		return errors.New("password set without username")
	}
	p.usernameFlag = username != ""
	p.username = username
	p.passwordFlag = len(password) > 0
	p.password = password
	p.syncRemainingLength()
	return nil
}

func (p *Connect) connectFlags() byte {
	var f byte
	if p.CleanSession {
		f |= 0x02
	}
	if p.willFlag {
		f |= 0x04
		f |= byte(p.willQoS) << 3
		if p.willRetain {
			f |= 0x20
		}
	}
	if p.passwordFlag {
		f |= 0x40
	}
	if p.usernameFlag {
		f |= 0x80
	}
	return f
}

func (p *Connect) variableHeaderLength() int {
	name, _ := protocolName(p.ProtocolVersion)
	return 2 + len(name) + 1 + 1 + 2
}

func (p *Connect) payloadLength() int {
	n := 2 + len(p.ClientID)
	if p.willFlag {
		n += 2 + len(p.willTopic.String())
		n += 2 + len(p.willPayload)
	}
	if p.usernameFlag {
		n += 2 + len(p.username)
	}
	if p.passwordFlag {
		n += 2 + len(p.password)
	}
	return n
}

func (p *Connect) syncRemainingLength() {
	p.FixedHeader = FixedHeader{
		Type:            CONNECT,
		Flags:           DefaultFlags(CONNECT),
		RemainingLength: uint32(p.variableHeaderLength() + p.payloadLength()),
	}
}

func (p *Connect) encodedLength() uint32 {
	return uint32(p.FixedHeader.EncodedLength()) + p.FixedHeader.RemainingLength
}

// Header returns the packet's fixed header.
func (p *Connect) Header() FixedHeader { return p.FixedHeader }

// Encode writes the CONNECT packet to w.
func (p *Connect) Encode(w io.Writer) error {
	p.syncRemainingLength()

	if err := p.FixedHeader.Encode(w); err != nil {
		return err
	}

	name, err := protocolName(p.ProtocolVersion)
	if err != nil {
		return err
	}
	if err := writeUTF8String(w, name); err != nil {
		return err
	}
	if err := writeByte(w, byte(p.ProtocolVersion)); err != nil {
		return err
	}
	if err := writeByte(w, p.connectFlags()); err != nil {
		return err
	}
	if err := writeTwoByteInt(w, p.KeepAlive); err != nil {
		return err
	}

	if err := writeUTF8String(w, p.ClientID); err != nil {
		return err
	}
	if p.willFlag {
		if err := writeUTF8String(w, p.willTopic.String()); err != nil {
			return err
		}
		if err := writeVarBytes(w, p.willPayload); err != nil {
			return err
		}
	}
	if p.usernameFlag {
		if err := writeUTF8String(w, p.username); err != nil {
			return err
		}
	}
	if p.passwordFlag {
		if err := writeVarBytes(w, p.password); err != nil {
			return err
		}
	}
	return nil
}

// DecodeConnect decodes a CONNECT packet's variable header and payload from r, which must be
// bounded to exactly fh.RemainingLength bytes (the caller, typically DecodeVariablePacket, owns
// that bound).
func DecodeConnect(fh FixedHeader, r io.Reader) (*Connect, error) {
	name, err := readUTF8String(r)
	if err != nil {
		return nil, errors.Wrap(err, "protocol name")
	}

	levelByte, err := readByte(r)
	if err != nil {
		return nil, errors.Wrap(err, "protocol level")
	}
	level := ProtocolVersion(levelByte)
	wantName, err := protocolName(level)
	if err != nil {
		return nil, err
	}
	if name != wantName {
		return nil, errors.Wrapf(ErrInvalidProtocolName, "got %q for level 0x%02x", name, levelByte)
	}

	flags, err := readByte(r)
	if err != nil {
		return nil, errors.Wrap(err, "connect flags")
	}
	if err := ValidateConnectFlags(flags); err != nil {
		return nil, errors.Mark(err, ErrInvalidReservedFlag)
	}

	keepAlive, err := readTwoByteInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "keep alive")
	}

	p := &Connect{
		FixedHeader:     fh,
		ProtocolVersion: level,
		CleanSession:    flags&0x02 != 0,
		KeepAlive:       keepAlive,
	}

	p.willFlag = flags&0x04 != 0
	p.willQoS = QoS((flags & 0x18) >> 3)
	p.willRetain = flags&0x20 != 0
	if p.willFlag && !p.willQoS.IsValid() {
		return nil, errors.Wrap(ErrInvalidQoS, "will QoS")
	}
	p.usernameFlag = flags&0x80 != 0
	p.passwordFlag = flags&0x40 != 0

	clientID, err := readUTF8String(r)
	if err != nil {
		return nil, errors.Wrap(err, "client identifier")
	}
	p.ClientID = clientID

	if p.willFlag {
		willTopicStr, err := readUTF8String(r)
		if err != nil {
			return nil, errors.Wrap(err, "will topic")
		}
		willTopic, err := topic.NewName(willTopicStr)
		if err != nil {
			return nil, err
		}
		p.willTopic = willTopic

		willPayload, err := readVarBytes(r)
		if err != nil {
			return nil, errors.Wrap(err, "will message")
		}
		p.willPayload = willPayload
	}

	if p.usernameFlag {
		username, err := readUTF8String(r)
		if err != nil {
			return nil, errors.Wrap(err, "username")
		}
		p.username = username
	}

	if p.passwordFlag {
		password, err := readVarBytes(r)
		if err != nil {
			return nil, errors.Wrap(err, "password")
		}
		p.password = password
	}

	return p, nil
}

// WillTopic returns the will topic and whether a will is set.
func (p *Connect) WillTopic() (topic.Name, bool) { return p.willTopic, p.willFlag }

// WillPayload returns the will message bytes.
func (p *Connect) WillPayload() []byte { return p.willPayload }

// WillQoS returns the will QoS.
func (p *Connect) WillQoS() QoS { return p.willQoS }

// WillRetain returns the will retain flag.
func (p *Connect) WillRetain() bool { return p.willRetain }

// Username returns the username and whether it is set.
func (p *Connect) Username() (string, bool) { return p.username, p.usernameFlag }

// Password returns the password and whether it is set.
func (p *Connect) Password() ([]byte, bool) { return p.password, p.passwordFlag }
