// If you are AI: This file implements envelope encoding and decoding.

package amfpacket

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"amfgate/internal/core/protocol/amf0"
	"amfgate/internal/core/protocol/amf3"
)

// Codec encodes and decodes envelopes.
// With ResetPerValue set the context is cleared before every header and message value,
// which is how Flash Player and most remoting servers scope their reference tables.
type Codec struct {
	ResetPerValue bool
}

// Encode encodes p with one context shared by all values.
func Encode(p *Packet, ctx *amf3.SerializationContext) ([]byte, error) {
	return Codec{}.Encode(p, ctx)
}

// Decode decodes an envelope with one context shared by all values.
func Decode(data []byte, ctx *amf3.DeserializationContext) (*Packet, error) {
	return Codec{}.Decode(data, ctx)
}

// Encode encodes p. Counts are checked before anything is written. On failure no bytes
// are returned and ctx is cleared, since earlier values may have added entries the peer
// will never see.
func (c Codec) Encode(p *Packet, ctx *amf3.SerializationContext) ([]byte, error) {
	if len(p.Headers) > maxCount {
		return nil, ErrTooManyHeaders
	}
	if len(p.Messages) > maxCount {
		return nil, ErrTooManyMessages
	}
	out, err := c.encode(p, ctx)
	if err != nil {
		ctx.Clear()
		return nil, err
	}
	return out, nil
}

// encode writes the envelope.
func (c Codec) encode(p *Packet, ctx *amf3.SerializationContext) ([]byte, error) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint16(Version))

	_ = binary.Write(&buf, binary.BigEndian, uint16(len(p.Headers)))
	for _, h := range p.Headers {
		if err := amf0.WriteUTF(&buf, h.Name); err != nil {
			return nil, fmt.Errorf("header name: %w", err)
		}
		flag := byte(0x00)
		if h.MustUnderstand {
			flag = 0x01
		}
		buf.WriteByte(flag)
		if err := c.encodeValue(&buf, h.Value, ctx); err != nil {
			return nil, fmt.Errorf("header %q: %w", h.Name, err)
		}
	}

	_ = binary.Write(&buf, binary.BigEndian, uint16(len(p.Messages)))
	for _, m := range p.Messages {
		if err := amf0.WriteUTF(&buf, m.Target); err != nil {
			return nil, fmt.Errorf("message target: %w", err)
		}
		if err := amf0.WriteUTF(&buf, m.Response); err != nil {
			return nil, fmt.Errorf("message response: %w", err)
		}
		if err := c.encodeValue(&buf, m.Value, ctx); err != nil {
			return nil, fmt.Errorf("message %q: %w", m.Target, err)
		}
	}
	return buf.Bytes(), nil
}

// encodeValue writes the U32 length, the AVM+ marker and the AMF3 value.
func (c Codec) encodeValue(buf *bytes.Buffer, v amf3.Value, ctx *amf3.SerializationContext) error {
	if c.ResetPerValue {
		ctx.Clear()
	}
	body, err := amf3.AppendValue([]byte{avmPlusMarker}, v, ctx)
	if err != nil {
		return err
	}
	if uint64(len(body)) >= math.MaxUint32 {
		return fmt.Errorf("%w: value of %d bytes", amf3.ErrCapacity, len(body))
	}
	_ = binary.Write(buf, binary.BigEndian, uint32(len(body)))
	buf.Write(body)
	return nil
}

// Decode decodes one envelope from data. On failure ctx is cleared.
func (c Codec) Decode(data []byte, ctx *amf3.DeserializationContext) (*Packet, error) {
	p, err := c.decode(bytes.NewReader(data), ctx)
	if err != nil {
		ctx.Clear()
		return nil, err
	}
	return p, nil
}

// decode reads the envelope.
func (c Codec) decode(r *bytes.Reader, ctx *amf3.DeserializationContext) (*Packet, error) {
	var version uint16
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, truncated(err, "version")
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	p := &Packet{}
	var count uint16
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, truncated(err, "header count")
	}
	for i := 0; i < int(count); i++ {
		h, err := c.decodeHeader(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("header %d: %w", i, err)
		}
		p.Headers = append(p.Headers, h)
	}

	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, truncated(err, "message count")
	}
	for i := 0; i < int(count); i++ {
		m, err := c.decodeMessage(r, ctx)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		p.Messages = append(p.Messages, m)
	}
	return p, nil
}

// decodeHeader reads one header.
func (c Codec) decodeHeader(r *bytes.Reader, ctx *amf3.DeserializationContext) (Header, error) {
	name, err := amf0.ReadUTF(r)
	if err != nil {
		return Header{}, truncated(err, "header name")
	}
	flag, err := r.ReadByte()
	if err != nil {
		return Header{}, truncated(err, "must-understand flag")
	}
	v, err := c.decodeValue(r, ctx)
	if err != nil {
		return Header{}, err
	}
	return Header{Name: name, MustUnderstand: flag == 0x01, Value: v}, nil
}

// decodeMessage reads one message.
func (c Codec) decodeMessage(r *bytes.Reader, ctx *amf3.DeserializationContext) (Message, error) {
	target, err := amf0.ReadUTF(r)
	if err != nil {
		return Message{}, truncated(err, "target")
	}
	response, err := amf0.ReadUTF(r)
	if err != nil {
		return Message{}, truncated(err, "response")
	}
	v, err := c.decodeValue(r, ctx)
	if err != nil {
		return Message{}, err
	}
	return Message{Target: target, Response: response, Value: v}, nil
}

// decodeValue reads the U32 length, the AVM+ marker and one AMF3 value. A known length
// bounds the value; an unknown length leaves the value to delimit itself.
func (c Codec) decodeValue(r *bytes.Reader, ctx *amf3.DeserializationContext) (amf3.Value, error) {
	if c.ResetPerValue {
		ctx.Clear()
	}
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, truncated(err, "value length")
	}
	if length == UnknownLength {
		marker, err := r.ReadByte()
		if err != nil {
			return nil, truncated(err, "value marker")
		}
		if marker != avmPlusMarker {
			return nil, fmt.Errorf("%w: value marker 0x%02x", amf3.ErrInvalidMarker, marker)
		}
		return amf3.NewDecoder(r, ctx).Decode()
	}
	if length == 0 || int64(length) > int64(r.Len()) {
		return nil, fmt.Errorf("%w: value of %d bytes, have %d", amf3.ErrTruncated, length, r.Len())
	}
	body := make([]byte, length)
	_, _ = io.ReadFull(r, body)
	if body[0] != avmPlusMarker {
		return nil, fmt.Errorf("%w: value marker 0x%02x", amf3.ErrInvalidMarker, body[0])
	}
	v, _, err := amf3.Decode(body[1:], ctx)
	return v, err
}

// truncated maps end-of-input errors to amf3.ErrTruncated.
func truncated(err error, field string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", amf3.ErrTruncated, field)
	}
	return err
}
