// If you are AI: This file defines the AMF3 dictionary, a map from arbitrary values to values.
// Keys collide when their encoded bytes are equal, after optional string coercion.

package amf3

import (
	"fmt"
	"strconv"
)

// Entry is one dictionary key/value pair.
type Entry struct {
	Key   Value
	Value Value
}

// Dictionary maps values to values and keeps insertion order.
// With numbersAsStrings set, integer, double and boolean keys are written as their decimal or
// "true"/"false" string form, because some legacy readers cannot decode them otherwise.
type Dictionary struct {
	Weak bool

	numbersAsStrings bool
	entries          []Entry
	index            map[string]int
	handles          map[Value]string
}

// NewDictionary returns an empty dictionary.
func NewDictionary(numbersAsStrings, weak bool) *Dictionary {
	return &Dictionary{
		Weak:             weak,
		numbersAsStrings: numbersAsStrings,
		index:            make(map[string]int),
	}
}

// Kind returns KindDictionary.
func (*Dictionary) Kind() Kind { return KindDictionary }

// amf3 seals Value.
func (*Dictionary) amf3() {}

// NumbersAsStrings reports whether primitive keys are coerced to strings.
func (d *Dictionary) NumbersAsStrings() bool { return d.numbersAsStrings }

// Set stores value under key, replacing the value of a colliding key.
// The first key stored for a slot is kept. A key handle's slot is fixed the first time
// the dictionary sees that handle; later mutation of the handle does not move it.
func (d *Dictionary) Set(key, value Value) {
	d.set(key, value)
}

// set stores value under key and returns how many key bytes were encoded to find the slot.
func (d *Dictionary) set(key, value Value) int {
	key, value = orUndefined(key), orUndefined(value)
	if d.index == nil {
		d.index = make(map[string]int)
	}
	id, cost := d.keyID(key)
	if i, ok := d.index[id]; ok {
		d.entries[i].Value = value
		return cost
	}
	d.index[id] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: value})
	return cost
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key Value) (Value, bool) {
	id, _ := d.keyID(orUndefined(key))
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.entries[i].Value, true
}

// Delete removes key and reports whether it was present.
func (d *Dictionary) Delete(key Value) bool {
	id, _ := d.keyID(orUndefined(key))
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, id)
	for k, j := range d.index {
		if j > i {
			d.index[k] = j - 1
		}
	}
	return true
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// Entries returns a copy of the entries in insertion order.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// wireKey returns the value written on the wire for key.
func (d *Dictionary) wireKey(key Value) Value {
	if !d.numbersAsStrings {
		return key
	}
	return coerceKey(key)
}

// keyID returns the identity of key's slot, its encoding in a fresh context, and the number
// of bytes encoded to compute it. Handle keys are encoded once and remembered.
// Keys that cannot be encoded fall back to handle identity.
func (d *Dictionary) keyID(key Value) (string, int) {
	handle := isReference(key) && !isNil(key)
	if handle {
		if id, ok := d.handles[key]; ok {
			return id, 0
		}
	}
	id := fmt.Sprintf("\x00%p", key)
	b, err := Encode(d.wireKey(key), NewSerializationContext())
	if err == nil {
		id = string(b)
	}
	if handle {
		if d.handles == nil {
			d.handles = make(map[Value]string)
		}
		d.handles[key] = id
	}
	return id, len(b)
}

// coerceKey converts integer, double and boolean keys to strings.
func coerceKey(key Value) Value {
	switch k := key.(type) {
	case Integer:
		return String(strconv.FormatInt(int64(k), 10))
	case Double:
		return String(strconv.FormatFloat(float64(k), 'g', 15, 64))
	case Bool:
		if k {
			return String("true")
		}
		return String("false")
	}
	return key
}
