// If you are AI: This file implements the AMF3 decoder entry points and the primitive
// value readers.

package amf3

import (
	"bytes"
	"fmt"
)

// Decoder reads AMF3 values from a stream using one deserialization context.
// External decoders receive it to read their payload.
type Decoder struct {
	c       cursor
	ctx     *DeserializationContext
	keyWork int
}

// NewDecoder returns a decoder reading from r through ctx.
func NewDecoder(r Reader, ctx *DeserializationContext) *Decoder {
	if ctx == nil {
		ctx = NewDeserializationContext(nil)
	}
	return &Decoder{c: cursor{r: r}, ctx: ctx}
}

// Decode reads one value from the front of data and returns it with the number of
// bytes consumed. On failure the tables of ctx are restored.
func Decode(data []byte, ctx *DeserializationContext) (Value, int, error) {
	d := NewDecoder(bytes.NewReader(data), ctx)
	v, err := d.Decode()
	return v, d.c.n, err
}

// Decode reads one value and restores the context tables when it fails.
func (d *Decoder) Decode() (Value, error) {
	m := d.ctx.mark()
	v, err := d.ReadValue()
	if err != nil {
		d.ctx.rollback(m)
		return nil, err
	}
	return v, nil
}

// Consumed returns the number of bytes read so far.
func (d *Decoder) Consumed() int { return d.c.n }

// Context returns the deserialization context.
func (d *Decoder) Context() *DeserializationContext { return d.ctx }

// ReadValue reads one marker-prefixed value.
func (d *Decoder) ReadValue() (Value, error) {
	marker, err := d.c.readByte()
	if err != nil {
		return nil, err
	}
	switch marker {
	case MarkerUndefined:
		return Undefined{}, nil
	case MarkerNull:
		return Null{}, nil
	case MarkerFalse:
		return Bool(false), nil
	case MarkerTrue:
		return Bool(true), nil
	case MarkerInteger:
		u, err := readU29(&d.c)
		if err != nil {
			return nil, err
		}
		return Integer(signExtend29(u)), nil
	case MarkerDouble:
		f, err := d.c.readFloat64()
		if err != nil {
			return nil, err
		}
		return Double(f), nil
	case MarkerString:
		s, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case MarkerXMLDocument:
		return readText(d, func(s string) *XMLDocument { return &XMLDocument{Text: s} })
	case MarkerXML:
		return readText(d, func(s string) *XML { return &XML{Text: s} })
	case MarkerDate:
		return d.readDate()
	case MarkerArray:
		return d.readArray()
	case MarkerObject:
		return d.readObject()
	case MarkerByteArray:
		return d.readByteArray()
	case MarkerVectorInt:
		return d.readIntVector()
	case MarkerVectorUint:
		return d.readUintVector()
	case MarkerVectorDouble:
		return d.readDoubleVector()
	case MarkerVectorObject:
		return d.readObjectVector()
	case MarkerDictionary:
		return d.readDictionary()
	}
	return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidMarker, marker)
}

// ReadString reads a UTF-8-vr string without marker, using the string table.
func (d *Decoder) ReadString() (string, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return "", err
	}
	if !h.inline {
		return d.ctx.String(h.value)
	}
	if h.value == 0 {
		return "", nil
	}
	b, err := d.c.readBytes(h.value)
	if err != nil {
		return "", err
	}
	s := string(b)
	d.ctx.AddString(s)
	return s, nil
}

// ReadByte reads one raw byte.
func (d *Decoder) ReadByte() (byte, error) { return d.c.readByte() }

// ReadBytes reads n raw bytes.
func (d *Decoder) ReadBytes(n int) ([]byte, error) { return d.c.readBytes(n) }

// ReadUint32 reads a big-endian uint32.
func (d *Decoder) ReadUint32() (uint32, error) { return d.c.readUint32() }

// ReadU29 reads a bare U29 field.
func (d *Decoder) ReadU29() (uint32, error) { return readU29(&d.c) }

// readText reads an XML or XML document value.
func readText[T Value](d *Decoder, build func(string) T) (Value, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[T](d.ctx, h.value)
	}
	b, err := d.c.readBytes(h.value)
	if err != nil {
		return nil, err
	}
	v := build(string(b))
	d.ctx.AddObject(v)
	return v, nil
}

// readDate reads a date. The inline form carries no length, only the flag bit.
func (d *Decoder) readDate() (Value, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*Date](d.ctx, h.value)
	}
	f, err := d.c.readFloat64()
	if err != nil {
		return nil, err
	}
	v := &Date{Millis: int64(f)}
	d.ctx.AddObject(v)
	return v, nil
}

// readByteArray reads a byte array.
func (d *Decoder) readByteArray() (Value, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*ByteArray](d.ctx, h.value)
	}
	b, err := d.c.readBytes(h.value)
	if err != nil {
		return nil, err
	}
	v := &ByteArray{Bytes: b}
	d.ctx.AddObject(v)
	return v, nil
}
