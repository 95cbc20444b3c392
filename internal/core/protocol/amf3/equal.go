// If you are AI: This file implements structural equality over AMF3 value graphs.
// Comparison is coinductive so self-referencing graphs terminate.

package amf3

import (
	"bytes"
	"reflect"
	"slices"
)

// Equal reports whether a and b describe the same value graph.
// Handles are compared by content; two distinct handles with equal content are equal.
// Object members that the wire form never carries (undeclared sealed entries, dynamic
// entries of a sealed class) do not take part.
func Equal(a, b Value) bool {
	c := comparer{seen: make(map[[2]Value]struct{})}
	return c.equal(orUndefined(a), orUndefined(b))
}

// comparer remembers handle pairs already assumed equal.
type comparer struct {
	seen map[[2]Value]struct{}
}

// equal compares two non-nil values.
func (c *comparer) equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	if !isReference(a) {
		return a == b
	}
	if a == b {
		return true
	}
	if isNil(a) || isNil(b) {
		return false
	}
	key := [2]Value{a, b}
	if _, ok := c.seen[key]; ok {
		return true
	}
	c.seen[key] = struct{}{}

	switch x := a.(type) {
	case *ByteArray:
		return bytes.Equal(x.Bytes, b.(*ByteArray).Bytes)
	case *Date:
		return x.Millis == b.(*Date).Millis
	case *XML:
		return x.Text == b.(*XML).Text
	case *XMLDocument:
		return x.Text == b.(*XMLDocument).Text
	case *Array:
		y := b.(*Array)
		return c.sequence(x.Dense, y.Dense) && c.members(x.Assoc, y.Assoc)
	case *Object:
		return c.object(x, b.(*Object))
	case *Dictionary:
		return c.dictionary(x, b.(*Dictionary))
	case *IntVector:
		y := b.(*IntVector)
		return x.Fixed == y.Fixed && slices.Equal(x.Values, y.Values)
	case *UintVector:
		y := b.(*UintVector)
		return x.Fixed == y.Fixed && slices.Equal(x.Values, y.Values)
	case *DoubleVector:
		y := b.(*DoubleVector)
		return x.Fixed == y.Fixed && slices.Equal(x.Values, y.Values)
	case *ObjectVector:
		y := b.(*ObjectVector)
		return x.Fixed == y.Fixed && x.TypeName == y.TypeName && c.sequence(x.Values, y.Values)
	}
	return false
}

// sequence compares two value slices element by element.
func (c *comparer) sequence(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !c.equal(orUndefined(a[i]), orUndefined(b[i])) {
			return false
		}
	}
	return true
}

// members compares two string-keyed maps regardless of key order.
func (c *comparer) members(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !c.equal(orUndefined(va), orUndefined(vb)) {
			return false
		}
	}
	return true
}

// object compares traits, then the members the traits put on the wire.
// Externalizable objects also compare the payloads their externalizers write.
func (c *comparer) object(a, b *Object) bool {
	if !a.Traits.Equal(b.Traits) {
		return false
	}
	if a.Traits.Externalizable && !samePayload(a, b) {
		return false
	}
	for _, name := range a.Traits.UniqueAttributes() {
		if !c.equal(orUndefined(a.Sealed[name]), orUndefined(b.Sealed[name])) {
			return false
		}
	}
	if a.Traits.Dynamic {
		return c.members(a.Dynamic, b.Dynamic)
	}
	return true
}

// dictionary compares flags and entries matched by key slot.
func (c *comparer) dictionary(a, b *Dictionary) bool {
	if a.numbersAsStrings != b.numbersAsStrings || a.Weak != b.Weak || len(a.entries) != len(b.entries) {
		return false
	}
	for id, i := range a.index {
		j, ok := b.index[id]
		if !ok || !c.equal(a.entries[i].Value, b.entries[j].Value) {
			return false
		}
	}
	return true
}

// samePayload reports whether two externalizable objects write the same bytes into fresh
// contexts. An object whose externalizer fails equals nothing.
func samePayload(a, b *Object) bool {
	pa, err := payload(a)
	if err != nil {
		return false
	}
	pb, err := payload(b)
	return err == nil && bytes.Equal(pa, pb)
}

// payload runs the externalizer of o into a scratch encoder. The scratch context matches
// references by identity only, so payloads that contain each other still terminate.
func payload(o *Object) ([]byte, error) {
	ctx := NewSerializationContext()
	ctx.identityOnly = true
	e := NewEncoder(ctx)
	if err := o.externalize(e); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// isNil reports whether v is a nil interface or a typed nil handle.
func isNil(v Value) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
