// If you are AI: This file defines the AMF3 array: an ordered dense part plus a
// string-keyed associative part.

package amf3

import "sort"

// Array holds a dense sequence and an associative map.
// Associative keys are written in ascending order.
type Array struct {
	Dense []Value
	Assoc map[string]Value
}

// NewArray returns an array whose dense part holds values.
func NewArray(values ...Value) *Array {
	return &Array{Dense: values, Assoc: make(map[string]Value)}
}

// Kind returns KindArray.
func (*Array) Kind() Kind { return KindArray }

// amf3 seals Value.
func (*Array) amf3() {}

// Push appends v to the dense part.
func (a *Array) Push(v Value) {
	a.Dense = append(a.Dense, orUndefined(v))
}

// Set stores v under key in the associative part.
func (a *Array) Set(key string, v Value) {
	if a.Assoc == nil {
		a.Assoc = make(map[string]Value)
	}
	a.Assoc[key] = orUndefined(v)
}

// At returns the dense element at i.
func (a *Array) At(i int) (Value, bool) {
	if i < 0 || i >= len(a.Dense) {
		return nil, false
	}
	return a.Dense[i], true
}

// Get returns the associative element stored under key.
func (a *Array) Get(key string) (Value, bool) {
	v, ok := a.Assoc[key]
	return v, ok
}

// Len returns the length of the dense part.
func (a *Array) Len() int { return len(a.Dense) }

// assocKeys returns the associative keys in ascending order.
func (a *Array) assocKeys() []string {
	return sortedKeys(a.Assoc)
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
