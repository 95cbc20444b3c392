// If you are AI: This file tests structural equality and dictionary key identity.
package amf3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEqualPrimitives checks that kinds never compare equal across each other.
func TestEqualPrimitives(t *testing.T) {
	assert.True(t, Equal(nil, Undefined{}))
	assert.False(t, Equal(Undefined{}, Null{}))
	assert.False(t, Equal(Integer(1), Double(1)))
	assert.False(t, Equal(String("1"), Integer(1)))
	assert.True(t, Equal(String("a"), String("a")))
	assert.False(t, Equal(NewXML("a"), NewXMLDocument("a")))
	assert.True(t, Equal(NewDate(5), NewDate(5)))
	assert.False(t, Equal((*Array)(nil), NewArray()))
}

// TestEqualArrays checks that key order is irrelevant and element order is not.
func TestEqualArrays(t *testing.T) {
	a := NewArray(Integer(1), Integer(2))
	a.Set("x", Null{})
	a.Set("y", Null{})
	b := NewArray(Integer(1), Integer(2))
	b.Set("y", Null{})
	b.Set("x", Null{})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, NewArray(Integer(2), Integer(1))))
}

// TestEqualCycles checks that self-referencing graphs compare without recursing forever.
func TestEqualCycles(t *testing.T) {
	a := NewArray()
	a.Push(a)
	b := NewArray()
	b.Push(b)
	assert.True(t, Equal(a, b))

	c := NewArray()
	c.Push(NewArray(c))
	assert.True(t, Equal(a, c))

	o := NewAnonymousObject()
	o.SetDynamic("me", o)
	p := NewAnonymousObject()
	p.SetDynamic("me", Null{})
	assert.False(t, Equal(o, p))
}

// TestEqualObjects checks that only members carried on the wire take part.
func TestEqualObjects(t *testing.T) {
	a := NewObject("C", false, false)
	a.SetSealed("s", Integer(1))
	b := NewObject("C", false, false)
	b.SetSealed("s", Integer(1))
	b.SetDynamic("ignored", Integer(2))
	assert.True(t, Equal(a, b))

	b.SetSealed("s", Integer(3))
	assert.False(t, Equal(a, b))
	assert.False(t, Equal(a, NewObject("D", false, false)))

	assert.True(t, Equal(externalInt(1), externalInt(1)))
	assert.False(t, Equal(externalInt(1), externalInt(2)))
	assert.False(t, Equal(externalInt(1), NewObject("Ext", false, true)))

	a, b = NewObject("Ext", false, true), NewObject("Ext", false, true)
	a.Externalizer = func(e *Encoder, _ *Object) error { return e.WriteValue(b) }
	b.Externalizer = func(e *Encoder, _ *Object) error { return e.WriteValue(a) }
	assert.True(t, Equal(a, b))
	_, err := Encode(NewArray(a, b), nil)
	require.NoError(t, err)
}

// TestDictionaryKeys checks coercion collisions, replacement and deletion.
func TestDictionaryKeys(t *testing.T) {
	d := NewDictionary(true, false)
	d.Set(Integer(3), String("int"))
	d.Set(String("3"), String("string"))
	d.Set(Double(3), String("double"))
	assert.Equal(t, 1, d.Len())
	v, ok := d.Get(Integer(3))
	assert.True(t, ok)
	assert.Equal(t, String("double"), v)
	assert.Equal(t, Integer(3), d.Entries()[0].Key)

	d.Set(Double(1.5), Bool(true))
	d.Set(Bool(true), Null{})
	_, ok = d.Get(String("1.5"))
	assert.True(t, ok)
	_, ok = d.Get(String("true"))
	assert.True(t, ok)

	assert.True(t, d.Delete(String("3")))
	assert.False(t, d.Delete(String("3")))
	assert.Equal(t, 2, d.Len())
	v, _ = d.Get(Bool(true))
	assert.Equal(t, Null{}, v)

	plain := NewDictionary(false, false)
	plain.Set(Integer(3), Null{})
	plain.Set(String("3"), Null{})
	assert.Equal(t, 2, plain.Len())

	k1 := NewArray(Integer(1))
	plain.Set(k1, String("first"))
	plain.Set(NewArray(Integer(1)), String("second"))
	assert.Equal(t, 3, plain.Len())
	v, _ = plain.Get(k1)
	assert.Equal(t, String("second"), v)
}

// TestEqualDictionaries checks flags and keyed entries.
func TestEqualDictionaries(t *testing.T) {
	a := NewDictionary(true, false)
	a.Set(Integer(1), Null{})
	a.Set(Integer(2), Null{})
	b := NewDictionary(true, false)
	b.Set(String("2"), Null{})
	b.Set(String("1"), Null{})
	assert.True(t, Equal(a, b))

	c := NewDictionary(true, true)
	c.Set(Integer(1), Null{})
	c.Set(Integer(2), Null{})
	assert.False(t, Equal(a, c))
}
