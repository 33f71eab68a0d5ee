package encoding

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/axmq/mqttcodec/topic"
)

// Publish represents a PUBLISH packet carrying application data on a topic.
type Publish struct {
	FixedHeader FixedHeader
	TopicName   topic.Name
	PacketID    uint16 // valid only when FixedHeader.QoS > QoS0 (MQTT-2.3.1-1)
	Payload     []byte
}

// NewPublish builds a PUBLISH packet. packetID is ignored for QoS0.
func NewPublish(topicName topic.Name, payload []byte, qos QoS, dup, retain bool, packetID uint16) *Publish {
	return &Publish{
		FixedHeader: FixedHeader{
			Type:   PUBLISH,
			Flags:  PublishFlags(dup, qos, retain),
			DUP:    dup,
			QoS:    qos,
			Retain: retain,
		},
		TopicName: topicName,
		PacketID:  packetID,
		Payload:   payload,
	}
}

// Header returns the packet's fixed header.
func (p *Publish) Header() FixedHeader { return p.FixedHeader }

// Encode writes the PUBLISH packet to w.
func (p *Publish) Encode(w io.Writer) error {
	remainingLength := uint32(2 + len(p.TopicName.String()) + len(p.Payload))
	if p.FixedHeader.QoS > QoS0 {
		remainingLength += 2
	}

	fh := FixedHeader{
		Type:            PUBLISH,
		Flags:           PublishFlags(p.FixedHeader.DUP, p.FixedHeader.QoS, p.FixedHeader.Retain),
		RemainingLength: remainingLength,
		DUP:             p.FixedHeader.DUP,
		QoS:             p.FixedHeader.QoS,
		Retain:          p.FixedHeader.Retain,
	}
	p.FixedHeader = fh

	if err := fh.Encode(w); err != nil {
		return err
	}

	if err := writeUTF8String(w, p.TopicName.String()); err != nil {
		return err
	}

	if p.FixedHeader.QoS > QoS0 {
		if err := ValidatePacketID(p.PacketID, true); err != nil {
			return err
		}
		if err := writeTwoByteInt(w, p.PacketID); err != nil {
			return err
		}
	}

	if len(p.Payload) == 0 {
		return nil
	}
	_, err := w.Write(p.Payload)
	return err
}

// DecodePublish decodes a PUBLISH packet's variable header and payload from r, which must be
// bounded to exactly fh.RemainingLength bytes.
func DecodePublish(fh FixedHeader, r io.Reader) (*Publish, error) {
	topicStr, err := readUTF8String(r)
	if err != nil {
		return nil, errors.Wrap(err, "topic name")
	}
	topicName, err := topic.NewName(topicStr)
	if err != nil {
		return nil, err
	}

	var packetID uint16
	if fh.QoS > QoS0 {
		packetID, err = readTwoByteInt(r)
		if err != nil {
			return nil, errors.Wrap(err, "packet identifier")
		}
		if err := ValidatePacketID(packetID, true); err != nil {
			return nil, err
		}
	}

	payload, err := readRawTail(r)
	if err != nil {
		return nil, errors.Wrap(err, "payload")
	}

	return &Publish{
		FixedHeader: fh,
		TopicName:   topicName,
		PacketID:    packetID,
		Payload:     payload,
	}, nil
}
