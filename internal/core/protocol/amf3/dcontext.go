// If you are AI: This file implements the deserialization context: reference tables
// indexed by slot, with a kind-checked accessor for the object table.

package amf3

import "fmt"

// DeserializationContext holds the reference tables of one decoding session.
// It is not safe for concurrent use.
type DeserializationContext struct {
	strings   []string
	traits    []Traits
	objects   []Value
	externals *ExternalRegistry
}

// NewDeserializationContext returns an empty context that resolves externalizable
// classes through reg. A nil reg gets a private empty registry.
func NewDeserializationContext(reg *ExternalRegistry) *DeserializationContext {
	if reg == nil {
		reg = NewExternalRegistry()
	}
	return &DeserializationContext{externals: reg}
}

// Externals returns the registry used for externalizable classes.
func (c *DeserializationContext) Externals() *ExternalRegistry { return c.externals }

// RegisterExternal installs an external decoder for className.
func (c *DeserializationContext) RegisterExternal(className string, fn ExternalDecoder) {
	c.externals.Register(className, fn)
}

// AddString registers s. The empty string is never registered.
func (c *DeserializationContext) AddString(s string) {
	if s != "" {
		c.strings = append(c.strings, s)
	}
}

// String returns the string in slot i.
func (c *DeserializationContext) String(i int) (string, error) {
	if i < 0 || i >= len(c.strings) {
		return "", fmt.Errorf("%w: string %d of %d", ErrBadReference, i, len(c.strings))
	}
	return c.strings[i], nil
}

// AddTraits registers t.
func (c *DeserializationContext) AddTraits(t Traits) {
	c.traits = append(c.traits, t)
}

// Traits returns a copy of the traits in slot i.
func (c *DeserializationContext) Traits(i int) (Traits, error) {
	if i < 0 || i >= len(c.traits) {
		return Traits{}, fmt.Errorf("%w: traits %d of %d", ErrBadReference, i, len(c.traits))
	}
	return c.traits[i].clone(), nil
}

// AddObject registers a handle. Decoders call it before reading the handle's children.
func (c *DeserializationContext) AddObject(v Value) {
	c.objects = append(c.objects, v)
}

// Object returns the handle in slot i.
func (c *DeserializationContext) Object(i int) (Value, error) {
	if i < 0 || i >= len(c.objects) {
		return nil, fmt.Errorf("%w: object %d of %d", ErrBadReference, i, len(c.objects))
	}
	return c.objects[i], nil
}

// objectAt returns the handle in slot i when it has the expected type.
func objectAt[T Value](c *DeserializationContext, i int) (T, error) {
	var zero T
	v, err := c.Object(i)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: object %d is %s, want %s", ErrBadReference, i, v.Kind(), zero.Kind())
	}
	return t, nil
}

// Stats returns the current table sizes.
func (c *DeserializationContext) Stats() Stats {
	return Stats{Strings: len(c.strings), Traits: len(c.traits), Objects: len(c.objects)}
}

// Clear empties every table. The registry is kept.
func (c *DeserializationContext) Clear() {
	c.strings = c.strings[:0]
	c.traits = c.traits[:0]
	c.objects = c.objects[:0]
}

// mark captures the current table lengths.
func (c *DeserializationContext) mark() mark {
	return mark(c.Stats())
}

// rollback drops every entry added since m.
func (c *DeserializationContext) rollback(m mark) {
	c.strings = c.strings[:m.Strings]
	c.traits = c.traits[:m.Traits]
	c.objects = c.objects[:m.Objects]
}

// lookup is objectAt for readers that return a Value.
func lookup[T Value](c *DeserializationContext, i int) (Value, error) {
	v, err := objectAt[T](c, i)
	if err != nil {
		return nil, err
	}
	return v, nil
}
