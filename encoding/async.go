package encoding

import (
	"context"
)

// AsyncByteReader is the cooperative-suspension analogue of io.Reader: ReadByte blocks only until
// ctx is done or a byte becomes available. It lets DecodeFixedHeaderAsync and
// DecodeVariablePacketAsync integrate with any async runtime or scheduler without this package
// depending on one: callers adapt their own transport (a channel, an event-loop callback, ...) to
// this single method.
type AsyncByteReader interface {
	ReadByte(ctx context.Context) (byte, error)
}

// asyncReader adapts an AsyncByteReader bound to a fixed context into an io.Reader, so the
// synchronous Decode* functions can be reused without duplicating their logic.
type asyncReader struct {
	ctx context.Context
	r   AsyncByteReader
}

func (a asyncReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := a.ctx.Err(); err != nil {
		return 0, err
	}
	b, err := a.r.ReadByte(a.ctx)
	if err != nil {
		return 0, err
	}
	p[0] = b
	return 1, nil
}

// DecodeFixedHeaderAsync decodes a fixed header one byte at a time from r, checking ctx between
// reads so a caller can cancel a decode that is blocked on a slow peer.
func DecodeFixedHeaderAsync(ctx context.Context, r AsyncByteReader) (FixedHeader, error) {
	return DecodeFixedHeader(asyncReader{ctx: ctx, r: r})
}

// DecodeVariablePacketAsync decodes one complete control packet from r, honoring ctx cancellation
// the same way DecodeFixedHeaderAsync does.
func DecodeVariablePacketAsync(ctx context.Context, r AsyncByteReader) (AnyPacket, error) {
	return DecodeVariablePacket(asyncReader{ctx: ctx, r: r})
}
