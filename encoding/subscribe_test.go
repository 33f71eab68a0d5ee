package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axmq/mqttcodec/topic"
)

func TestSubscribe_EncodeDecode_RoundTrip(t *testing.T) {
	f1, err := topic.NewFilter("a/b")
	require.NoError(t, err)
	f2, err := topic.NewFilter("c/+/d")
	require.NoError(t, err)

	p := NewSubscribe(12, []Subscription{
		{Filter: f1, QoS: QoS1},
		{Filter: f2, QoS: QoS2},
	})

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))
	assert.Equal(t, byte(0x82), buf.Bytes()[0]) // SUBSCRIBE=8, flags=0x02

	fh, n, err := DecodeFixedHeaderFromBytes(buf.Bytes())
	require.NoError(t, err)
	decoded, err := DecodeSubscribe(fh, bytes.NewReader(buf.Bytes()[n:]))
	require.NoError(t, err)
	require.Len(t, decoded.Subscriptions, 2)
	assert.Equal(t, "a/b", decoded.Subscriptions[0].Filter.String())
	assert.Equal(t, QoS1, decoded.Subscriptions[0].QoS)
	assert.Equal(t, "c/+/d", decoded.Subscriptions[1].Filter.String())
	assert.Equal(t, QoS2, decoded.Subscriptions[1].QoS)
}

func TestSubscribe_Validate_EmptyRejected(t *testing.T) {
	p := NewSubscribe(1, nil)
	assert.Error(t, p.Validate())
}

func TestSubscribe_DecodeEmptyPayload_YieldsZeroSubscriptions(t *testing.T) {
	fh := FixedHeader{Type: SUBSCRIBE, Flags: DefaultFlags(SUBSCRIBE), RemainingLength: 2}
	decoded, err := DecodeSubscribe(fh, bytes.NewReader([]byte{0x00, 0x01})) // packet ID 1, no tuples
	require.NoError(t, err)
	assert.Empty(t, decoded.Subscriptions)
	assert.Error(t, decoded.Validate())
}

func TestSuback_EncodeDecode_RoundTrip(t *testing.T) {
	p := NewSuback(12, []SubscribeReturnCode{SubscribeSuccessQoS1, SubscribeFailure, SubscribeSuccessQoS2})

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))

	fh, n, err := DecodeFixedHeaderFromBytes(buf.Bytes())
	require.NoError(t, err)
	decoded, err := DecodeSuback(fh, bytes.NewReader(buf.Bytes()[n:]))
	require.NoError(t, err)
	assert.Equal(t, uint16(12), decoded.PacketID)
	assert.Equal(t, []SubscribeReturnCode{SubscribeSuccessQoS1, SubscribeFailure, SubscribeSuccessQoS2}, decoded.ReturnCodes)
}

func TestUnsubscribe_EncodeDecode_RoundTrip(t *testing.T) {
	f1, err := topic.NewFilter("a/b")
	require.NoError(t, err)
	f2, err := topic.NewFilter("c/#")
	require.NoError(t, err)

	p := NewUnsubscribe(5, []topic.Filter{f1, f2})

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))
	assert.Equal(t, byte(0xA2), buf.Bytes()[0]) // UNSUBSCRIBE=10, flags=0x02

	fh, n, err := DecodeFixedHeaderFromBytes(buf.Bytes())
	require.NoError(t, err)
	decoded, err := DecodeUnsubscribe(fh, bytes.NewReader(buf.Bytes()[n:]))
	require.NoError(t, err)
	require.Len(t, decoded.Filters, 2)
	assert.Equal(t, "a/b", decoded.Filters[0].String())
	assert.Equal(t, "c/#", decoded.Filters[1].String())
}

func TestUnsubscribe_DecodeEmptyPayload_YieldsZeroFilters(t *testing.T) {
	fh := FixedHeader{Type: UNSUBSCRIBE, Flags: DefaultFlags(UNSUBSCRIBE), RemainingLength: 2}
	decoded, err := DecodeUnsubscribe(fh, bytes.NewReader([]byte{0x00, 0x05})) // packet ID 5, no filters
	require.NoError(t, err)
	assert.Empty(t, decoded.Filters)
	assert.Error(t, decoded.Validate())
}

func TestUnsuback_EncodeDecode_RoundTrip(t *testing.T) {
	p := NewUnsuback(5)

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))

	fh, n, err := DecodeFixedHeaderFromBytes(buf.Bytes())
	require.NoError(t, err)
	decoded, err := DecodeUnsuback(fh, bytes.NewReader(buf.Bytes()[n:]))
	require.NoError(t, err)
	assert.Equal(t, uint16(5), decoded.PacketID)
}
