// If you are AI: This file implements AMF0 decoding for remoting and command messages.
// A value behind the AVM+ marker is decoded with the decoder's AMF3 context.

package amf0

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"amfgate/internal/core/protocol/amf3"
)

var (
	ErrUnexpectedType = errors.New("unexpected AMF0 type")
	ErrInvalidData    = errors.New("invalid AMF0 data")
	ErrBadReference   = errors.New("AMF0 reference out of range")
)

// preallocLimit caps slice capacity taken from untrusted counts.
const preallocLimit = 1024

// Decoder reads AMF0 values. AMF3 values share one deserialization context.
type Decoder struct {
	r    amf3.Reader
	avm  *amf3.DeserializationContext
	refs []Value
}

// NewDecoder returns a decoder reading from r. A nil ctx gets a fresh context.
func NewDecoder(r io.Reader, ctx *amf3.DeserializationContext) *Decoder {
	br, ok := r.(amf3.Reader)
	if !ok {
		br = &byteReader{r: r}
	}
	if ctx == nil {
		ctx = amf3.NewDeserializationContext(nil)
	}
	return &Decoder{r: br, avm: ctx}
}

// Decode reads and decodes a single AMF0 value from the reader.
// Returns the decoded value and any error.
func Decode(r io.Reader) (Value, error) {
	return NewDecoder(r, nil).Decode()
}

// DecodeString reads an AMF0 string value.
func DecodeString(r io.Reader) (string, error) {
	var typeMarker byte
	if err := binary.Read(r, binary.BigEndian, &typeMarker); err != nil {
		return "", err
	}
	if typeMarker != TypeString {
		return "", ErrUnexpectedType
	}
	return ReadUTF(r)
}

// Decode reads one value. io.EOF is returned only when the input ends before a marker.
func (d *Decoder) Decode() (Value, error) {
	typeMarker, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	v, err := d.decodeBody(typeMarker)
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return v, err
}

// decodeBody decodes the value following typeMarker.
func (d *Decoder) decodeBody(typeMarker byte) (Value, error) {
	switch typeMarker {
	case TypeNumber:
		return decodeNumber(d.r)
	case TypeBoolean:
		return decodeBoolean(d.r)
	case TypeString:
		return ReadUTF(d.r)
	case TypeNull, TypeUndefined:
		return nil, nil
	case TypeObject:
		obj := make(Object)
		d.refs = append(d.refs, obj)
		return obj, d.decodeMembers(obj)
	case TypeTypedObject:
		className, err := ReadUTF(d.r)
		if err != nil {
			return nil, err
		}
		obj := &TypedObject{ClassName: className, Object: make(Object)}
		d.refs = append(d.refs, obj)
		return obj, d.decodeMembers(obj.Object)
	case TypeECMAArray:
		return d.decodeECMAArray()
	case TypeStrictArray:
		return d.decodeStrictArray()
	case TypeReference:
		var index uint16
		if err := binary.Read(d.r, binary.BigEndian, &index); err != nil {
			return nil, err
		}
		if int(index) >= len(d.refs) {
			return nil, fmt.Errorf("%w: %d of %d", ErrBadReference, index, len(d.refs))
		}
		if d.refs[index] == nil {
			return nil, fmt.Errorf("%w: %d is still being decoded", ErrBadReference, index)
		}
		return d.refs[index], nil
	case TypeDate:
		return decodeDate(d.r)
	case TypeLongString:
		return decodeLong(d.r)
	case TypeXMLDocument:
		s, err := decodeLong(d.r)
		return XMLDocument(s), err
	case TypeAVMPlus:
		return amf3.NewDecoder(d.r, d.avm).Decode()
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnexpectedType, typeMarker)
	}
}

// decodeNumber decodes an AMF0 number (double precision float64).
func decodeNumber(r io.Reader) (float64, error) {
	var num float64
	err := binary.Read(r, binary.BigEndian, &num)
	return num, err
}

// decodeBoolean decodes an AMF0 boolean.
func decodeBoolean(r io.Reader) (bool, error) {
	var b byte
	if err := binary.Read(r, binary.BigEndian, &b); err != nil {
		return false, err
	}
	return b != 0, nil
}

// decodeLong decodes a string with a 32-bit length.
func decodeLong(r io.Reader) (string, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	if length > 0 {
		// Grow gradually so a bogus length cannot force a huge allocation.
		var sb []byte
		buf := make([]byte, min(int(length), 64*1024))
		for remaining := int(length); remaining > 0; {
			n := min(remaining, len(buf))
			if _, err := io.ReadFull(r, buf[:n]); err != nil {
				return "", err
			}
			sb = append(sb, buf[:n]...)
			remaining -= n
		}
		return string(sb), nil
	}
	return "", nil
}

// decodeDate decodes milliseconds since the epoch; the time zone field is ignored.
func decodeDate(r io.Reader) (time.Time, error) {
	ms, err := decodeNumber(r)
	if err != nil {
		return time.Time{}, err
	}
	var tz int16
	if err := binary.Read(r, binary.BigEndian, &tz); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// decodeMembers decodes key/value pairs up to the object end marker.
func (d *Decoder) decodeMembers(obj map[string]Value) error {
	for {
		key, err := ReadUTF(d.r)
		if err != nil {
			return err
		}
		if key == "" {
			// Object end marker
			var endMarker byte
			if err := binary.Read(d.r, binary.BigEndian, &endMarker); err != nil {
				return err
			}
			if endMarker != TypeObjectEnd {
				return ErrInvalidData
			}
			return nil
		}
		value, err := d.Decode()
		if err != nil {
			return err
		}
		obj[key] = value
	}
}

// decodeECMAArray decodes an AMF0 ECMA array. The count is advisory.
func (d *Decoder) decodeECMAArray() (ECMAArray, error) {
	var count uint32
	if err := binary.Read(d.r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	arr := make(ECMAArray)
	d.refs = append(d.refs, arr)
	return arr, d.decodeMembers(arr)
}

// decodeStrictArray decodes an AMF0 strict array.
func (d *Decoder) decodeStrictArray() (Array, error) {
	var count uint32
	if err := binary.Read(d.r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	slot := len(d.refs)
	d.refs = append(d.refs, nil)
	arr := make(Array, 0, min(int(count), preallocLimit))
	for i := uint32(0); i < count; i++ {
		v, err := d.Decode()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	d.refs[slot] = arr
	return arr, nil
}

// DecodeCommand decodes every value up to the end of the input.
// Commands are a sequence of values: name, transaction id, command object, then arguments.
func (d *Decoder) DecodeCommand() (Array, error) {
	arr := make(Array, 0, 4)
	for {
		v, err := d.Decode()
		if errors.Is(err, io.EOF) {
			if len(arr) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return arr, nil
		}
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// DecodeCommand decodes an AMF0 command message from r.
func DecodeCommand(r io.Reader) (Array, error) {
	return NewDecoder(r, nil).DecodeCommand()
}
