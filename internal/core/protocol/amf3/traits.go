// If you are AI: This file defines Traits, the class schema shared by AMF3 objects.

package amf3

import "slices"

// Traits describes the class of an object.
// Attributes is a sequence, not a set: peers may send duplicate sealed names and the
// value for each wire slot must be paired by position. Equality is sequence-sensitive.
type Traits struct {
	ClassName      string
	Dynamic        bool
	Externalizable bool
	Attributes     []string
}

// NewTraits returns traits without sealed attributes.
func NewTraits(className string, dynamic, externalizable bool) Traits {
	return Traits{ClassName: className, Dynamic: dynamic, Externalizable: externalizable}
}

// Equal reports whether t and o match exactly, including attribute order and duplicates.
func (t Traits) Equal(o Traits) bool {
	return t.ClassName == o.ClassName &&
		t.Dynamic == o.Dynamic &&
		t.Externalizable == o.Externalizable &&
		slices.Equal(t.Attributes, o.Attributes)
}

// HasAttribute reports whether name is a sealed attribute.
func (t Traits) HasAttribute(name string) bool {
	return slices.Contains(t.Attributes, name)
}

// AddAttribute appends name unless it is already present.
func (t *Traits) AddAttribute(name string) {
	if !t.HasAttribute(name) {
		t.Attributes = append(t.Attributes, name)
	}
}

// UniqueAttributes returns the attribute names in first-occurrence order without duplicates.
// This is the list written on the wire.
func (t Traits) UniqueAttributes() []string {
	out := make([]string, 0, len(t.Attributes))
	for _, name := range t.Attributes {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Anonymous reports whether the traits have no class name.
func (t Traits) Anonymous() bool {
	return t.ClassName == ""
}

// clone returns a copy that does not share the attribute slice.
func (t Traits) clone() Traits {
	t.Attributes = slices.Clone(t.Attributes)
	return t
}
