// If you are AI: This file implements the serialization context: the string, traits and
// object reference tables an encoder fills while writing a value graph.

package amf3

// Stats reports the size of each reference table.
type Stats struct {
	Strings int `json:"strings"`
	Traits  int `json:"traits"`
	Objects int `json:"objects"`
}

// mark records table lengths so a failed operation can be undone.
type mark Stats

// SerializationContext holds the reference tables of one encoding session.
// It is not safe for concurrent use; indices are assigned in call order.
type SerializationContext struct {
	strings    map[string]int
	stringList []string
	traits     []Traits
	objects    []Value
	identity   map[Value]int

	// identityOnly disables structural matching in ObjectIndex.
	identityOnly bool
}

// NewSerializationContext returns an empty context.
func NewSerializationContext() *SerializationContext {
	return &SerializationContext{
		strings:  make(map[string]int),
		identity: make(map[Value]int),
	}
}

// AddString registers s. The empty string is never registered.
func (c *SerializationContext) AddString(s string) {
	if s == "" {
		return
	}
	if _, ok := c.strings[s]; ok {
		return
	}
	c.strings[s] = len(c.stringList)
	c.stringList = append(c.stringList, s)
}

// StringIndex returns the table slot of s.
func (c *SerializationContext) StringIndex(s string) (int, bool) {
	i, ok := c.strings[s]
	return i, ok
}

// AddTraits registers t.
func (c *SerializationContext) AddTraits(t Traits) {
	c.traits = append(c.traits, t.clone())
}

// TraitsIndex returns the first slot holding traits equal to t.
func (c *SerializationContext) TraitsIndex(t Traits) (int, bool) {
	for i, have := range c.traits {
		if have.Equal(t) {
			return i, true
		}
	}
	return 0, false
}

// AddObject registers a reference-eligible value.
// Callers register a container before writing its children.
func (c *SerializationContext) AddObject(v Value) {
	if _, ok := c.identity[v]; !ok {
		c.identity[v] = len(c.objects)
	}
	c.objects = append(c.objects, v)
}

// ObjectIndex returns the first slot holding v itself or a structurally equal value.
func (c *SerializationContext) ObjectIndex(v Value) (int, bool) {
	if i, ok := c.identity[v]; ok {
		return i, true
	}
	if c.identityOnly {
		return 0, false
	}
	for i, have := range c.objects {
		if have.Kind() == v.Kind() && Equal(have, v) {
			return i, true
		}
	}
	return 0, false
}

// Stats returns the current table sizes.
func (c *SerializationContext) Stats() Stats {
	return Stats{Strings: len(c.stringList), Traits: len(c.traits), Objects: len(c.objects)}
}

// Clear empties every table.
func (c *SerializationContext) Clear() {
	clear(c.strings)
	clear(c.identity)
	c.stringList = c.stringList[:0]
	c.traits = c.traits[:0]
	c.objects = c.objects[:0]
}

// mark captures the current table lengths.
func (c *SerializationContext) mark() mark {
	return mark(c.Stats())
}

// rollback drops every entry added since m.
func (c *SerializationContext) rollback(m mark) {
	for _, s := range c.stringList[m.Strings:] {
		delete(c.strings, s)
	}
	for i, v := range c.objects[m.Objects:] {
		if c.identity[v] == m.Objects+i {
			delete(c.identity, v)
		}
	}
	c.stringList = c.stringList[:m.Strings]
	c.traits = c.traits[:m.Traits]
	c.objects = c.objects[:m.Objects]
}
