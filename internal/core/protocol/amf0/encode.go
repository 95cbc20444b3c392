// If you are AI: This file implements AMF0 encoding for remoting and command messages.
// Values of the amf3 package are written behind the AVM+ marker.

package amf0

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"amfgate/internal/core/protocol/amf3"
)

var (
	ErrStringTooLong   = errors.New("AMF0 string too long")
	ErrUnsupportedType = errors.New("unsupported AMF0 value type")
)

// Encoder writes AMF0 values. AMF3 values share one serialization context.
type Encoder struct {
	w   io.Writer
	avm *amf3.SerializationContext
}

// NewEncoder returns an encoder writing to w. A nil ctx gets a fresh context.
func NewEncoder(w io.Writer, ctx *amf3.SerializationContext) *Encoder {
	if ctx == nil {
		ctx = amf3.NewSerializationContext()
	}
	return &Encoder{w: w, avm: ctx}
}

// Encode writes an AMF0 value to the writer.
func Encode(w io.Writer, val Value) error {
	return NewEncoder(w, nil).Encode(val)
}

// Encode writes one value.
func (e *Encoder) Encode(val Value) error {
	w := e.w
	switch v := val.(type) {
	case nil:
		return encodeMarker(w, TypeNull)
	case Undefined:
		return encodeMarker(w, TypeUndefined)
	case float64:
		return encodeNumber(w, v)
	case int:
		return encodeNumber(w, float64(v))
	case int32:
		return encodeNumber(w, float64(v))
	case int64:
		return encodeNumber(w, float64(v))
	case uint32:
		return encodeNumber(w, float64(v))
	case bool:
		return encodeBoolean(w, v)
	case string:
		return encodeString(w, v)
	case XMLDocument:
		return encodeLong(w, TypeXMLDocument, string(v))
	case time.Time:
		return encodeDate(w, v)
	case Object:
		if err := encodeMarker(w, TypeObject); err != nil {
			return err
		}
		return e.encodeMembers(v)
	case ECMAArray:
		return e.encodeECMAArray(v)
	case *TypedObject:
		if err := encodeMarker(w, TypeTypedObject); err != nil {
			return err
		}
		if err := WriteUTF(w, v.ClassName); err != nil {
			return err
		}
		return e.encodeMembers(v.Object)
	case Array:
		return e.encodeArray(v)
	case amf3.Value:
		return e.encodeAVMPlus(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, val)
	}
}

// encodeMarker writes a single type marker.
func encodeMarker(w io.Writer, marker byte) error {
	return binary.Write(w, binary.BigEndian, marker)
}

// encodeNumber encodes an AMF0 number.
func encodeNumber(w io.Writer, num float64) error {
	if err := encodeMarker(w, TypeNumber); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, num)
}

// encodeBoolean encodes an AMF0 boolean.
func encodeBoolean(w io.Writer, b bool) error {
	if err := encodeMarker(w, TypeBoolean); err != nil {
		return err
	}
	var val byte
	if b {
		val = 1
	}
	return binary.Write(w, binary.BigEndian, val)
}

// encodeString encodes an AMF0 string, switching to a long string past 65535 bytes.
func encodeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return encodeLong(w, TypeLongString, s)
	}
	if err := encodeMarker(w, TypeString); err != nil {
		return err
	}
	return WriteUTF(w, s)
}

// encodeLong encodes a string with a 32-bit length under the given marker.
func encodeLong(w io.Writer, marker byte, s string) error {
	if uint64(len(s)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	if err := encodeMarker(w, marker); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// encodeDate encodes milliseconds since the epoch and a zero time zone.
func encodeDate(w io.Writer, t time.Time) error {
	if err := encodeMarker(w, TypeDate); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, float64(t.UnixMilli())); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, int16(0))
}

// encodeMembers writes key/value pairs in key order and the object end marker.
func (e *Encoder) encodeMembers(obj map[string]Value) error {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := WriteUTF(e.w, key); err != nil {
			return err
		}
		if err := e.Encode(obj[key]); err != nil {
			return err
		}
	}
	// Object end marker
	if err := binary.Write(e.w, binary.BigEndian, uint16(0)); err != nil {
		return err
	}
	return encodeMarker(e.w, TypeObjectEnd)
}

// encodeECMAArray encodes an associative array with its entry count.
func (e *Encoder) encodeECMAArray(arr ECMAArray) error {
	if err := encodeMarker(e.w, TypeECMAArray); err != nil {
		return err
	}
	if err := binary.Write(e.w, binary.BigEndian, uint32(len(arr))); err != nil {
		return err
	}
	return e.encodeMembers(arr)
}

// encodeArray encodes an AMF0 strict array.
func (e *Encoder) encodeArray(arr Array) error {
	if err := encodeMarker(e.w, TypeStrictArray); err != nil {
		return err
	}
	count := uint32(len(arr))
	if err := binary.Write(e.w, binary.BigEndian, count); err != nil {
		return err
	}
	for _, val := range arr {
		if err := e.Encode(val); err != nil {
			return err
		}
	}
	return nil
}

// encodeAVMPlus writes the AMF3 switch marker followed by one AMF3 value.
func (e *Encoder) encodeAVMPlus(v amf3.Value) error {
	body, err := amf3.AppendValue([]byte{TypeAVMPlus}, v, e.avm)
	if err != nil {
		return err
	}
	_, err = e.w.Write(body)
	return err
}

// EncodeCommand writes each item as a separate value, in order.
func (e *Encoder) EncodeCommand(items ...Value) error {
	for _, item := range items {
		if err := e.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// EncodeCommand encodes an AMF0 command to bytes.
// Items are written sequentially; the body starts with the first item's marker.
func EncodeCommand(arr Array) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, nil).EncodeCommand(arr...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
