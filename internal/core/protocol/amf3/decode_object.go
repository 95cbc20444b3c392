// If you are AI: This file implements the AMF3 object reader: traits resolution,
// externalizable payloads, sealed values and dynamic members.

package amf3

import "fmt"

// readObject reads an object reference or an object with its traits and body.
func (d *Decoder) readObject() (Value, error) {
	h, err := readHeader(&d.c)
	if err != nil {
		return nil, err
	}
	if !h.inline {
		return lookup[*Object](d.ctx, h.value)
	}
	traits, err := d.readTraits(h.raw)
	if err != nil {
		return nil, err
	}
	obj := &Object{Traits: traits, Sealed: make(map[string]Value), Dynamic: make(map[string]Value)}
	d.ctx.AddObject(obj)

	if traits.Externalizable {
		fn, ok := d.ctx.externals.Lookup(traits.ClassName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingExternal, traits.ClassName)
		}
		if err := fn(d, obj); err != nil {
			return nil, fmt.Errorf("amf3: external %q: %w", traits.ClassName, err)
		}
		return obj, nil
	}
	// duplicate attribute names: the last value wins
	for _, name := range traits.Attributes {
		v, err := d.ReadValue()
		if err != nil {
			return nil, err
		}
		obj.Sealed[name] = v
	}
	if traits.Dynamic {
		if err := d.readMembers(obj.Dynamic); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// readTraits resolves the traits selected by an inline object header.
func (d *Decoder) readTraits(raw uint32) (Traits, error) {
	if raw&0x03 == 0x01 {
		return d.ctx.Traits(int(raw >> 2))
	}
	className, err := d.ReadString()
	if err != nil {
		return Traits{}, err
	}
	if raw&0x07 == 0x07 {
		t := NewTraits(className, false, true)
		d.ctx.AddTraits(t)
		return t.clone(), nil
	}
	count := int(raw >> 4)
	if err := d.c.require(count); err != nil {
		return Traits{}, err
	}
	t := NewTraits(className, raw&traitsDynamic != 0, false)
	t.Attributes = make([]string, 0, min(count, preallocLimit))
	for i := 0; i < count; i++ {
		name, err := d.ReadString()
		if err != nil {
			return Traits{}, err
		}
		t.Attributes = append(t.Attributes, name)
	}
	d.ctx.AddTraits(t)
	return t.clone(), nil
}
