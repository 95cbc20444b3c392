// If you are AI: This file implements the AMF3 writers for arrays, objects, dictionaries
// and typed vectors.

package amf3

import "fmt"

// maxAttributes is the largest sealed attribute count an inline traits header can carry.
const maxAttributes = 1<<25 - 1

// maxTraitsRef is the largest traits table index a reference header can carry.
const maxTraitsRef = 1<<27 - 1

// writeArray writes the associative part in key order, then the dense part.
func (e *Encoder) writeArray(a *Array) error {
	if done, err := e.reference(MarkerArray, a); done || err != nil {
		return err
	}
	if err := e.appendInline(len(a.Dense)); err != nil {
		return err
	}
	if err := e.writeMembers(a.Assoc); err != nil {
		return err
	}
	for _, v := range a.Dense {
		if err := e.WriteValue(orUndefined(v)); err != nil {
			return err
		}
	}
	return nil
}

// writeMembers writes name/value pairs in ascending name order and the empty-name terminator.
func (e *Encoder) writeMembers(m map[string]Value) error {
	for _, k := range sortedKeys(m) {
		if k == "" {
			return fmt.Errorf("%w: empty member name", ErrInvalidValue)
		}
		if err := e.WriteString(k); err != nil {
			return err
		}
		if err := e.WriteValue(orUndefined(m[k])); err != nil {
			return err
		}
	}
	e.buf = append(e.buf, utf8Empty)
	return nil
}

// writeObject writes the traits, then either the external payload or the sealed values
// in attribute order followed by the dynamic members.
func (e *Encoder) writeObject(o *Object) error {
	if done, err := e.reference(MarkerObject, o); done || err != nil {
		return err
	}
	traits := o.Traits.clone()
	if !traits.Externalizable {
		traits.Attributes = traits.UniqueAttributes()
	}
	if err := e.writeTraits(traits); err != nil {
		return err
	}
	if traits.Externalizable {
		return o.externalize(e)
	}
	for _, name := range traits.Attributes {
		if err := e.WriteValue(orUndefined(o.Sealed[name])); err != nil {
			return err
		}
	}
	if traits.Dynamic {
		return e.writeMembers(o.Dynamic)
	}
	return nil
}

// writeTraits writes a traits reference, or the traits inline and registers them.
func (e *Encoder) writeTraits(t Traits) error {
	if i, ok := e.ctx.TraitsIndex(t); ok {
		if i > maxTraitsRef {
			return fmt.Errorf("%w: traits reference %d", ErrCapacity, i)
		}
		e.buf = appendU29(e.buf, uint32(i)<<2|0x01)
		return nil
	}
	if t.Externalizable {
		e.buf = appendU29(e.buf, 0x01|traitsInline|traitsExt)
		e.ctx.AddTraits(t)
		return e.WriteString(t.ClassName)
	}
	if len(t.Attributes) > maxAttributes {
		return fmt.Errorf("%w: %d sealed attributes", ErrCapacity, len(t.Attributes))
	}
	h := uint32(len(t.Attributes))<<4 | 0x01 | traitsInline
	if t.Dynamic {
		h |= traitsDynamic
	}
	e.buf = appendU29(e.buf, h)
	e.ctx.AddTraits(t)
	if err := e.WriteString(t.ClassName); err != nil {
		return err
	}
	for _, name := range t.Attributes {
		if err := e.WriteString(name); err != nil {
			return err
		}
	}
	return nil
}

// writeDictionary writes the entries in insertion order with coerced keys.
func (e *Encoder) writeDictionary(d *Dictionary) error {
	if done, err := e.reference(MarkerDictionary, d); done || err != nil {
		return err
	}
	if err := e.appendInline(len(d.entries)); err != nil {
		return err
	}
	weak := byte(0x00)
	if d.Weak {
		weak = 0x01
	}
	e.buf = append(e.buf, weak)
	for _, entry := range d.entries {
		if err := e.WriteValue(d.wireKey(entry.Key)); err != nil {
			return err
		}
		if err := e.WriteValue(entry.Value); err != nil {
			return err
		}
	}
	return nil
}

// vectorHeader writes the shared vector prefix and reports whether a reference was written.
func (e *Encoder) vectorHeader(marker byte, v Value, n int, fixed bool) (bool, error) {
	if done, err := e.reference(marker, v); done || err != nil {
		return true, err
	}
	if err := e.appendInline(n); err != nil {
		return true, err
	}
	e.buf = append(e.buf, fixedByte(fixed))
	return false, nil
}

// writeIntVector writes int32 elements as raw big-endian words.
func (e *Encoder) writeIntVector(v *IntVector) error {
	if done, err := e.vectorHeader(MarkerVectorInt, v, len(v.Values), v.Fixed); done {
		return err
	}
	for _, x := range v.Values {
		e.buf = appendUint32(e.buf, uint32(x))
	}
	return nil
}

// writeUintVector writes uint32 elements as raw big-endian words.
func (e *Encoder) writeUintVector(v *UintVector) error {
	if done, err := e.vectorHeader(MarkerVectorUint, v, len(v.Values), v.Fixed); done {
		return err
	}
	for _, x := range v.Values {
		e.buf = appendUint32(e.buf, x)
	}
	return nil
}

// writeDoubleVector writes float64 elements as raw big-endian doubles.
func (e *Encoder) writeDoubleVector(v *DoubleVector) error {
	if done, err := e.vectorHeader(MarkerVectorDouble, v, len(v.Values), v.Fixed); done {
		return err
	}
	for _, x := range v.Values {
		e.buf = appendFloat64(e.buf, x)
	}
	return nil
}

// writeObjectVector writes the element type name followed by nested values.
func (e *Encoder) writeObjectVector(v *ObjectVector) error {
	if done, err := e.vectorHeader(MarkerVectorObject, v, len(v.Values), v.Fixed); done {
		return err
	}
	if err := e.WriteString(v.TypeName); err != nil {
		return err
	}
	for _, x := range v.Values {
		if err := e.WriteValue(orUndefined(x)); err != nil {
			return err
		}
	}
	return nil
}
