package encoding

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/axmq/mqttcodec/topic"
)

// Unsubscribe represents an UNSUBSCRIBE packet. Its fixed-header flags are fixed at 0x02
// (MQTT-3.10.1-1).
type Unsubscribe struct {
	FixedHeader FixedHeader
	PacketID    uint16
	Filters     []topic.Filter
}

// NewUnsubscribe builds an UNSUBSCRIBE packet. Like SUBSCRIBE, an empty filter list is
// structurally valid; call Validate for MQTT-3.10.3-2's at-least-one requirement.
func NewUnsubscribe(packetID uint16, filters []topic.Filter) *Unsubscribe {
	return &Unsubscribe{PacketID: packetID, Filters: filters}
}

// Validate reports MQTT-3.10.3-2: an UNSUBSCRIBE must carry at least one topic filter.
func (p *Unsubscribe) Validate() error {
	if len(p.Filters) == 0 {
		return errors.New("UNSUBSCRIBE must contain at least one topic filter")
	}
	return nil
}

func (p *Unsubscribe) remainingLength() uint32 {
	n := uint32(2)
	for _, f := range p.Filters {
		n += uint32(2 + len(f.String()))
	}
	return n
}

// Header returns the packet's fixed header.
func (p *Unsubscribe) Header() FixedHeader { return p.FixedHeader }

// Encode writes the UNSUBSCRIBE packet to w.
func (p *Unsubscribe) Encode(w io.Writer) error {
	if err := ValidatePacketID(p.PacketID, true); err != nil {
		return err
	}

	fh := FixedHeader{Type: UNSUBSCRIBE, Flags: DefaultFlags(UNSUBSCRIBE), RemainingLength: p.remainingLength()}
	p.FixedHeader = fh
	if err := fh.Encode(w); err != nil {
		return err
	}

	if err := writeTwoByteInt(w, p.PacketID); err != nil {
		return err
	}

	for _, f := range p.Filters {
		if err := writeUTF8String(w, f.String()); err != nil {
			return err
		}
	}
	return nil
}

// DecodeUnsubscribe decodes an UNSUBSCRIBE packet's variable header and payload from r, which
// must be bounded to exactly fh.RemainingLength bytes.
func DecodeUnsubscribe(fh FixedHeader, r io.Reader) (*Unsubscribe, error) {
	packetID, err := readTwoByteInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "packet identifier")
	}
	if err := ValidatePacketID(packetID, true); err != nil {
		return nil, err
	}

	// A RemainingLength of exactly 2 (the packet identifier, no filters) is a structurally valid
	// zero-filter payload; Validate rejects it for callers enforcing MQTT-3.10.3-2.
	remaining := int64(fh.RemainingLength) - 2

	var filters []topic.Filter
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
		filters = append(filters, filter)
	}

	return &Unsubscribe{FixedHeader: fh, PacketID: packetID, Filters: filters}, nil
}
