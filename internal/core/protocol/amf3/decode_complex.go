// If you are AI: This file implements the AMF3 readers for arrays, dictionaries and
// typed vectors. Each container is registered before its children are read.

package amf3

import "fmt"

// preallocLimit caps slice capacity taken from untrusted counts.
const preallocLimit = 1024

// Dictionary key slots are found by encoding each key. The bytes encoded for keys may not
// exceed keyWorkSlack plus keyWorkFactor times the bytes read.
const (
	keyWorkFactor = 64
	keyWorkSlack  = 1 << 20
)

// readArray reads the associative pairs, then the dense elements.
func (d *Decoder) readArray() (Value, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*Array](d.ctx, h.value)
	}
	a := &Array{Dense: make([]Value, 0, min(h.value, preallocLimit)), Assoc: make(map[string]Value)}
	d.ctx.AddObject(a)
	if err := d.readMembers(a.Assoc); err != nil {
		return nil, err
	}
	for i := 0; i < h.value; i++ {
		v, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		a.Dense = append(a.Dense, v)
	}
	return a, nil
}

// readMembers reads name/value pairs up to the empty-name terminator.
func (d *Decoder) readMembers(into map[string]Value) error {
	for {
		name, err := d.ReadString()
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		v, err := d.ReadValue()
		if err != nil {
			return err
		}
		into[name] = v
	}
}

// readDictionary reads the weak flag and the key/value pairs.
func (d *Decoder) readDictionary() (Value, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*Dictionary](d.ctx, h.value)
	}
	weak, err := d.c.readByte()
	if err != nil {
		return nil, err
	}
	dict := NewDictionary(false, weak == 0x01)
	d.ctx.AddObject(dict)
	for i := 0; i < h.value; i++ {
		k, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		d.keyWork += dict.set(k, v)
		if d.keyWork > keyWorkSlack+keyWorkFactor*d.c.n {
			return nil, fmt.Errorf("%w: dictionary keys encode to %d bytes from %d read",
				ErrTooComplex, d.keyWork, d.c.n)
		}
	}
	return dict, nil
}

// vectorHeader reads the shared vector prefix: the header and, for inline vectors, the
// fixed flag. Element bytes are checked against the input when its length is known.
func (d *Decoder) vectorHeader(elemSize int) (*header, bool, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return nil, false, err
	}
	if !h.inline {
		return &h, false, nil
	}
	fixed, err := d.c.readByte()
	if err != nil {
		return nil, false, err
	}
	if err := d.c.require(h.value * elemSize); err != nil {
		return nil, false, err
	}
	return &h, fixed != 0x00, nil
}

// readIntVector reads raw big-endian int32 elements.
func (d *Decoder) readIntVector() (Value, error) {
	h, fixed, err := d.vectorHeader(4)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*IntVector](d.ctx, h.value)
	}
	v := &IntVector{Fixed: fixed, Values: make([]int32, 0, min(h.value, preallocLimit))}
	d.ctx.AddObject(v)
	for i := 0; i < h.value; i++ {
		x, err := d.c.readUint32()
		if err != nil {
			return nil, err
		}
		v.Values = append(v.Values, int32(x))
	}
	return v, nil
}

// readUintVector reads raw big-endian uint32 elements.
func (d *Decoder) readUintVector() (Value, error) {
	h, fixed, err := d.vectorHeader(4)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*UintVector](d.ctx, h.value)
	}
	v := &UintVector{Fixed: fixed, Values: make([]uint32, 0, min(h.value, preallocLimit))}
	d.ctx.AddObject(v)
	for i := 0; i < h.value; i++ {
		x, err := d.c.readUint32()
		if err != nil {
			return nil, err
		}
		v.Values = append(v.Values, x)
	}
	return v, nil
}

// readDoubleVector reads raw big-endian float64 elements.
func (d *Decoder) readDoubleVector() (Value, error) {
	h, fixed, err := d.vectorHeader(8)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*DoubleVector](d.ctx, h.value)
	}
	v := &DoubleVector{Fixed: fixed, Values: make([]float64, 0, min(h.value, preallocLimit))}
	d.ctx.AddObject(v)
	for i := 0; i < h.value; i++ {
		x, err := d.c.readFloat64()
		if err != nil {
			return nil, err
		}
		v.Values = append(v.Values, x)
	}
	return v, nil
}

// readObjectVector reads the element type name and the nested values.
func (d *Decoder) readObjectVector() (Value, error) {
	h, fixed, err := d.vectorHeader(1)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*ObjectVector](d.ctx, h.value)
	}
	v := &ObjectVector{Fixed: fixed, Values: make([]Value, 0, min(h.value, preallocLimit))}
	d.ctx.AddObject(v)
	if v.TypeName, err = d.ReadString(); err != nil {
		return nil, err
	}
	for i := 0; i < h.value; i++ {
		x, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		v.Values = append(v.Values, x)
	}
	return v, nil
}
