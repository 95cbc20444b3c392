// If you are AI: This file implements the AMF3 encoder entry points and the primitive
// value writers.

package amf3

import "fmt"

// Encoder appends AMF3 values to a buffer using one serialization context.
// Externalizers receive the encoder to write their payload.
type Encoder struct {
	ctx *SerializationContext
	buf []byte
}

// NewEncoder returns an encoder writing through ctx.
func NewEncoder(ctx *SerializationContext) *Encoder {
	if ctx == nil {
		ctx = NewSerializationContext()
	}
	return &Encoder{ctx: ctx}
}

// Encode returns the encoding of v. On failure the tables of ctx are restored and
// no bytes are returned.
func Encode(v Value, ctx *SerializationContext) ([]byte, error) {
	return AppendValue(nil, v, ctx)
}

// AppendValue appends the encoding of v to buf. On failure buf is returned unchanged
// and the tables of ctx are restored. A nil ctx encodes in a fresh context.
func AppendValue(buf []byte, v Value, ctx *SerializationContext) ([]byte, error) {
	if ctx == nil {
		ctx = NewSerializationContext()
	}
	e := &Encoder{ctx: ctx, buf: buf}
	m := ctx.mark()
	if err := e.WriteValue(v); err != nil {
		ctx.rollback(m)
		return buf, err
	}
	return e.buf, nil
}

// Bytes returns the bytes written so far.
func (e *Encoder) Bytes() []byte { return e.buf }

// Context returns the serialization context.
func (e *Encoder) Context() *SerializationContext { return e.ctx }

// WriteValue appends one marker-prefixed value.
func (e *Encoder) WriteValue(v Value) error {
	if isNil(v) {
		if v == nil {
			e.buf = append(e.buf, MarkerUndefined)
		} else {
			e.buf = append(e.buf, MarkerNull)
		}
		return nil
	}
	switch x := v.(type) {
	case Undefined:
		e.buf = append(e.buf, MarkerUndefined)
	case Null:
		e.buf = append(e.buf, MarkerNull)
	case Bool:
		if x {
			e.buf = append(e.buf, MarkerTrue)
		} else {
			e.buf = append(e.buf, MarkerFalse)
		}
	case Integer:
		if x < MinInt || x > MaxInt {
			e.writeDouble(float64(x))
			return nil
		}
		e.buf = appendU29(append(e.buf, MarkerInteger), uint32(x))
	case Double:
		e.writeDouble(float64(x))
	case String:
		e.buf = append(e.buf, MarkerString)
		return e.WriteString(string(x))
	case *XMLDocument:
		return e.writeText(MarkerXMLDocument, x, x.Text)
	case *XML:
		return e.writeText(MarkerXML, x, x.Text)
	case *Date:
		return e.writeDate(x)
	case *ByteArray:
		return e.writeByteArray(x)
	case *Array:
		return e.writeArray(x)
	case *Object:
		return e.writeObject(x)
	case *Dictionary:
		return e.writeDictionary(x)
	case *IntVector:
		return e.writeIntVector(x)
	case *UintVector:
		return e.writeUintVector(x)
	case *DoubleVector:
		return e.writeDoubleVector(x)
	case *ObjectVector:
		return e.writeObjectVector(x)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidValue, v)
	}
	return nil
}

// WriteString appends a UTF-8-vr string without marker, using the string table.
func (e *Encoder) WriteString(s string) error {
	if s == "" {
		e.buf = append(e.buf, utf8Empty)
		return nil
	}
	if i, ok := e.ctx.StringIndex(s); ok {
		return e.appendRef(i)
	}
	if err := e.appendInline(len(s)); err != nil {
		return err
	}
	e.buf = append(e.buf, s...)
	e.ctx.AddString(s)
	return nil
}

// WriteBytes appends raw bytes.
func (e *Encoder) WriteBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// WriteByte appends one raw byte.
func (e *Encoder) WriteByte(b byte) error {
	e.buf = append(e.buf, b)
	return nil
}

// WriteUint32 appends a big-endian uint32.
func (e *Encoder) WriteUint32(v uint32) {
	e.buf = appendUint32(e.buf, v)
}

// WriteU29 appends a bare U29 field.
func (e *Encoder) WriteU29(v uint32) error {
	if v > 0x1FFFFFFF {
		return fmt.Errorf("%w: u29 %d", ErrCapacity, v)
	}
	e.buf = appendU29(e.buf, v)
	return nil
}

// writeDouble appends a double with its marker.
func (e *Encoder) writeDouble(v float64) {
	e.buf = appendFloat64(append(e.buf, MarkerDouble), v)
}

// appendInline appends an inline length header.
func (e *Encoder) appendInline(n int) error {
	buf, err := appendInlineHeader(e.buf, n)
	e.buf = buf
	return err
}

// appendRef appends a reference header.
func (e *Encoder) appendRef(i int) error {
	buf, err := appendRefHeader(e.buf, i)
	e.buf = buf
	return err
}

// reference writes marker and, when v is already in the object table, the reference
// to it. Otherwise it registers v and reports that the body must follow.
func (e *Encoder) reference(marker byte, v Value) (bool, error) {
	e.buf = append(e.buf, marker)
	if i, ok := e.ctx.ObjectIndex(v); ok {
		return true, e.appendRef(i)
	}
	e.ctx.AddObject(v)
	return false, nil
}

// writeText writes an XML or XML document value.
func (e *Encoder) writeText(marker byte, v Value, text string) error {
	if done, err := e.reference(marker, v); done || err != nil {
		return err
	}
	if err := e.appendInline(len(text)); err != nil {
		return err
	}
	e.buf = append(e.buf, text...)
	return nil
}

// writeDate writes a date as milliseconds since the epoch.
func (e *Encoder) writeDate(d *Date) error {
	if done, err := e.reference(MarkerDate, d); done || err != nil {
		return err
	}
	e.buf = appendFloat64(append(e.buf, 0x01), float64(d.Millis))
	return nil
}

// writeByteArray writes a byte array.
func (e *Encoder) writeByteArray(b *ByteArray) error {
	if done, err := e.reference(MarkerByteArray, b); done || err != nil {
		return err
	}
	if err := e.appendInline(len(b.Bytes)); err != nil {
		return err
	}
	e.buf = append(e.buf, b.Bytes...)
	return nil
}
