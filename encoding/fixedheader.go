package encoding

import (
	"io"

	"github.com/cockroachdb/errors"
)

// PacketType identifies one of the fourteen MQTT 3.1.1 control packet types. Values 0 and 15 are
// reserved by the protocol (MQTT-2.2.1) and rejected by DecodeFixedHeader.
type PacketType byte

const (
	Reserved    PacketType = 0
	CONNECT     PacketType = 1
	CONNACK     PacketType = 2
	PUBLISH     PacketType = 3
	PUBACK      PacketType = 4
	PUBREC      PacketType = 5
	PUBREL      PacketType = 6
	PUBCOMP     PacketType = 7
	SUBSCRIBE   PacketType = 8
	SUBACK      PacketType = 9
	UNSUBSCRIBE PacketType = 10
	UNSUBACK    PacketType = 11
	PINGREQ     PacketType = 12
	PINGRESP    PacketType = 13
	DISCONNECT  PacketType = 14
	reservedTop PacketType = 15
)

// String returns the human-readable packet type name.
func (t PacketType) String() string {
	names := [16]string{
		Reserved:    "RESERVED",
		CONNECT:     "CONNECT",
		CONNACK:     "CONNACK",
		PUBLISH:     "PUBLISH",
		PUBACK:      "PUBACK",
		PUBREC:      "PUBREC",
		PUBREL:      "PUBREL",
		PUBCOMP:     "PUBCOMP",
		SUBSCRIBE:   "SUBSCRIBE",
		SUBACK:      "SUBACK",
		UNSUBSCRIBE: "UNSUBSCRIBE",
		UNSUBACK:    "UNSUBACK",
		PINGREQ:     "PINGREQ",
		PINGRESP:    "PINGRESP",
		DISCONNECT:  "DISCONNECT",
		reservedTop: "RESERVED",
	}
	if t <= reservedTop {
		return names[t]
	}
	return "UNKNOWN"
}

// QoS is an MQTT delivery quality-of-service level.
type QoS byte

const (
	QoS0 QoS = 0 // At most once, no acknowledgement.
	QoS1 QoS = 1 // At least once, acknowledged with PUBACK.
	QoS2 QoS = 2 // Exactly once, acknowledged with PUBREC/PUBREL/PUBCOMP.
)

// IsValid returns true if the QoS level is 0, 1, or 2.
func (q QoS) IsValid() bool {
	return q <= QoS2
}

func (q QoS) String() string {
	switch q {
	case QoS0:
		return "QoS0"
	case QoS1:
		return "QoS1"
	case QoS2:
		return "QoS2"
	default:
		return "INVALID"
	}
}

// requiredFlags maps a non-PUBLISH packet type to the flag nibble MQTT-2.2.2 requires it to carry.
var requiredFlags = map[PacketType]byte{
	CONNECT:     0x00,
	CONNACK:     0x00,
	PUBACK:      0x00,
	PUBREC:      0x00,
	PUBREL:      0x02,
	PUBCOMP:     0x00,
	SUBSCRIBE:   0x02,
	SUBACK:      0x00,
	UNSUBSCRIBE: 0x02,
	UNSUBACK:    0x00,
	PINGREQ:     0x00,
	PINGRESP:    0x00,
	DISCONNECT:  0x00,
}

// DefaultFlags returns the fixed flag nibble required for a non-PUBLISH packet type. Calling it
// for PUBLISH returns 0; build PUBLISH's flags explicitly from DUP/QoS/RETAIN instead.
func DefaultFlags(t PacketType) byte {
	return requiredFlags[t]
}

// FixedHeader is the 2-5 byte prefix common to every MQTT control packet: a type+flags byte
// followed by the variable-length-integer remaining length.
type FixedHeader struct {
	Type            PacketType
	Flags           byte
	RemainingLength uint32

	// DUP, QoS, and Retain are PUBLISH-specific views of Flags, populated by
	// NewFixedHeader/DecodeFixedHeader for convenience; they are ignored for every other type.
	DUP    bool
	QoS    QoS
	Retain bool
}

// NewFixedHeader constructs and validates a FixedHeader per the MQTT-2.2.2 flag table. For
// PUBLISH, flags is interpreted as DUP/QoS/RETAIN bits and the QoS must be 0, 1, or 2 (not 3).
// For every other type, flags must equal the type's single required nibble exactly.
func NewFixedHeader(t PacketType, flags byte, remainingLength uint32) (FixedHeader, error) {
	fh := FixedHeader{Type: t, Flags: flags & 0x0F, RemainingLength: remainingLength}

	if t == Reserved || t == reservedTop {
		return FixedHeader{}, errors.Wrapf(ErrReservedType, "packet type %d", byte(t))
	}
	if t > reservedTop {
		return FixedHeader{}, errors.Wrapf(ErrInvalidType, "packet type %d", byte(t))
	}

	if t == PUBLISH {
		fh.DUP = (fh.Flags & 0x08) != 0
		fh.QoS = QoS((fh.Flags & 0x06) >> 1)
		fh.Retain = (fh.Flags & 0x01) != 0
		if !fh.QoS.IsValid() {
			return FixedHeader{}, errors.Wrap(ErrInvalidFlag, "PUBLISH QoS bits encode 3")
		}
	} else if err := validateFlags(t, fh.Flags); err != nil {
		return FixedHeader{}, err
	}

	if err := ValidateRemainingLength(remainingLength); err != nil {
		return FixedHeader{}, err
	}

	return fh, nil
}

func validateFlags(t PacketType, flags byte) error {
	want, ok := requiredFlags[t]
	if !ok {
		return errors.Wrapf(ErrInvalidType, "packet type %d", byte(t))
	}
	if flags != want {
		return errors.Wrapf(ErrInvalidFlag, "type %s requires flags 0x%02x, got 0x%02x", t, want, flags)
	}
	return nil
}

// PublishFlags packs DUP/QoS/RETAIN into a PUBLISH fixed-header flag nibble.
func PublishFlags(dup bool, qos QoS, retain bool) byte {
	var flags byte
	if dup {
		flags |= 0x08
	}
	flags |= byte(qos) << 1
	if retain {
		flags |= 0x01
	}
	return flags
}

// Encode writes the fixed header: one type/flags byte, then 1-4 remaining-length bytes.
func (h FixedHeader) Encode(w io.Writer) error {
	typeByte := byte(h.Type)<<4 | h.Flags
	if err := writeByte(w, typeByte); err != nil {
		return err
	}
	rl, err := EncodeVariableByteInteger(h.RemainingLength)
	if err != nil {
		return err
	}
	_, err = w.Write(rl)
	return err
}

// EncodedLength returns the number of bytes Encode will write (2..5).
func (h FixedHeader) EncodedLength() int {
	return 1 + SizeVariableByteInteger(h.RemainingLength)
}

// EncodeTo encodes the fixed header into buf starting at offset 0, returning the bytes written.
func (h FixedHeader) EncodeTo(buf []byte) (int, error) {
	if len(buf) < 1 {
		return 0, ErrBufferTooSmall
	}
	buf[0] = byte(h.Type)<<4 | h.Flags
	n, err := EncodeVariableByteIntegerTo(buf, 1, h.RemainingLength)
	if err != nil {
		return 0, err
	}
	return 1 + n, nil
}

// DecodeFixedHeader reads and validates a fixed header from r, per MQTT-2.2.2/2.2.3.
func DecodeFixedHeader(r io.Reader) (FixedHeader, error) {
	first, err := readByte(r)
	if err != nil {
		return FixedHeader{}, err
	}

	remainingLength, err := DecodeVariableByteInteger(r)
	if err != nil {
		return FixedHeader{}, err
	}

	return NewFixedHeader(PacketType(first>>4), first&0x0F, remainingLength)
}

// DecodeFixedHeaderFromBytes decodes a fixed header from an in-memory buffer, returning the
// number of bytes consumed. Used by StreamDecoder, which never blocks on a partial prefix.
func DecodeFixedHeaderFromBytes(data []byte) (FixedHeader, int, error) {
	if len(data) < 1 {
		return FixedHeader{}, 0, ErrUnexpectedEOF
	}
	first := data[0]
	remainingLength, n, err := DecodeVariableByteIntegerFromBytes(data[1:])
	if err != nil {
		return FixedHeader{}, 0, err
	}
	fh, err := NewFixedHeader(PacketType(first>>4), first&0x0F, remainingLength)
	if err != nil {
		return FixedHeader{}, 0, err
	}
	return fh, 1 + n, nil
}
