package encoding

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/axmq/mqttcodec/topic"
)

// Subscription is one topic-filter/QoS pair within a SUBSCRIBE packet.
type Subscription struct {
	Filter topic.Filter
	QoS    QoS
}

// Subscribe represents a SUBSCRIBE packet. Its fixed-header flags are fixed at 0x02
// (MQTT-3.8.1-1).
type Subscribe struct {
	FixedHeader   FixedHeader
	PacketID      uint16
	Subscriptions []Subscription
}

// NewSubscribe builds a SUBSCRIBE packet. An empty subscription list is structurally valid here;
// call Validate for the stricter MQTT-3.8.3-3 requirement of at least one subscription.
func NewSubscribe(packetID uint16, subs []Subscription) *Subscribe {
	return &Subscribe{PacketID: packetID, Subscriptions: subs}
}

// Validate reports MQTT-3.8.3-3: a SUBSCRIBE must carry at least one subscription.
func (p *Subscribe) Validate() error {
	if len(p.Subscriptions) == 0 {
		return errors.New("SUBSCRIBE must contain at least one topic filter")
	}
	return nil
}

func (p *Subscribe) remainingLength() uint32 {
	n := uint32(2)
	for _, sub := range p.Subscriptions {
		n += uint32(2 + len(sub.Filter.String()) + 1)
	}
	return n
}

// Header returns the packet's fixed header.
func (p *Subscribe) Header() FixedHeader { return p.FixedHeader }

// Encode writes the SUBSCRIBE packet to w.
func (p *Subscribe) Encode(w io.Writer) error {
	if err := ValidatePacketID(p.PacketID, true); err != nil {
		return err
	}

	fh := FixedHeader{Type: SUBSCRIBE, Flags: DefaultFlags(SUBSCRIBE), RemainingLength: p.remainingLength()}
	p.FixedHeader = fh
	if err := fh.Encode(w); err != nil {
		return err
	}

	if err := writeTwoByteInt(w, p.PacketID); err != nil {
		return err
	}

	for _, sub := range p.Subscriptions {
		if err := writeUTF8String(w, sub.Filter.String()); err != nil {
			return err
		}
		if !sub.QoS.IsValid() {
			return errors.Wrap(ErrInvalidQoS, "subscription options byte")
		}
		if err := writeByte(w, byte(sub.QoS)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSubscribe decodes a SUBSCRIBE packet's variable header and payload from r, which must be
// bounded to exactly fh.RemainingLength bytes.
func DecodeSubscribe(fh FixedHeader, r io.Reader) (*Subscribe, error) {
	packetID, err := readTwoByteInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "packet identifier")
	}
	if err := ValidatePacketID(packetID, true); err != nil {
		return nil, err
	}

	// A RemainingLength of exactly 2 (the packet identifier, no tuples) is a structurally valid
	// zero-subscription payload; Validate rejects it for callers enforcing MQTT-3.8.3-3.
	remaining := int64(fh.RemainingLength) - 2

	var subs []Subscription
	for remaining > 0 {
		filterStr, err := readUTF8String(r)
		if err != nil {
			return nil, errors.Wrap(err, "topic filter")
		}
		remaining -= int64(2 + len(filterStr))

		filter, err := topic.NewFilter(filterStr)
		if err != nil {
			return nil, err
		}

		optionsByte, err := readByte(r)
		if err != nil {
			return nil, errors.Wrap(err, "subscription options")
		}
		remaining--
		if optionsByte&0xFC != 0 {
			return nil, errors.Wrap(ErrInvalidQoS, "subscription options reserved bits")
		}
		qos := QoS(optionsByte)
		if !qos.IsValid() {
			return nil, errors.Wrap(ErrInvalidQoS, "subscription options QoS bits")
		}

		subs = append(subs, Subscription{Filter: filter, QoS: qos})
	}

	return &Subscribe{FixedHeader: fh, PacketID: packetID, Subscriptions: subs}, nil
}
