// If you are AI: This file tests byte-exact AMF3 encoding and serialization context reuse.
package amf3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeHex encodes v in ctx and compares against a hex dump.
func encodeHex(t *testing.T, ctx *SerializationContext, v Value, want string) {
	t.Helper()
	got, err := Encode(v, ctx)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, want), got)
}

// TestEncodePrimitives covers the single-byte and scalar kinds.
func TestEncodePrimitives(t *testing.T) {
	ctx := NewSerializationContext()
	encodeHex(t, ctx, Undefined{}, "00")
	encodeHex(t, ctx, nil, "00")
	encodeHex(t, ctx, Null{}, "01")
	encodeHex(t, ctx, (*Array)(nil), "01")
	encodeHex(t, ctx, Bool(false), "02")
	encodeHex(t, ctx, Bool(true), "03")
	encodeHex(t, ctx, Double(3.5), "05 40 0c 00 00 00 00 00 00")
	encodeHex(t, ctx, NewDate(1234567890000), "08 01 42 71 f7 1f b0 45 00 00")
	encodeHex(t, ctx, NewXMLDocument(""), "07 01")
	encodeHex(t, ctx, NewXML("<a/>"), "0b 09 3c 61 2f 3e")
	assert.Equal(t, 3, ctx.Stats().Objects)
}

// TestEncodeStringTable checks that repeated strings become references and the empty
// string is never cached.
func TestEncodeStringTable(t *testing.T) {
	ctx := NewSerializationContext()
	encodeHex(t, ctx, String(""), "06 01")
	encodeHex(t, ctx, String(""), "06 01")
	encodeHex(t, ctx, String("foo"), "06 07 66 6f 6f")
	encodeHex(t, ctx, String("foo"), "06 00")
	encodeHex(t, ctx, String("bar"), "06 07 62 61 72")
	encodeHex(t, ctx, String("bar"), "06 02")
	assert.Equal(t, Stats{Strings: 2}, ctx.Stats())

	ctx.Clear()
	encodeHex(t, ctx, String("bar"), "06 07 62 61 72")
}

// TestEncodeArrays covers dense, associative, nested and repeated arrays.
func TestEncodeArrays(t *testing.T) {
	encodeHex(t, NewSerializationContext(), NewArray(), "09 01 01")

	assoc := NewArray(Integer(1))
	assoc.Set("b", Bool(true))
	assoc.Set("a", Null{})
	encodeHex(t, NewSerializationContext(), assoc, "09 03 03 61 01 03 62 03 01 04 01")

	inner := NewArray(Integer(0xbeef), String("foobar"))
	outer := NewArray(inner, NewArray(Integer(0xbeef), String("foobar")))
	encodeHex(t, NewSerializationContext(), outer,
		"09 05 01 09 05 01 04 82 fd 6f 06 0d 66 6f 6f 62 61 72 09 02")

	single := NewArray()
	single.Set("x", Null{})
	encodeHex(t, NewSerializationContext(), NewArray(single, single),
		"09 05 01 09 01 03 78 01 01 09 02")
}

// TestEncodeArrayCycles checks that self references terminate and use table slots in
// registration order.
func TestEncodeArrayCycles(t *testing.T) {
	self := NewArray()
	self.Push(self)
	encodeHex(t, NewSerializationContext(), self, "09 03 01 09 00")

	both := NewArray()
	both.Set("x", both)
	both.Push(both)
	encodeHex(t, NewSerializationContext(), both, "09 03 03 78 09 00 01 09 00")

	order := NewArray()
	order.Set("x", order)
	order.Set("y", NewArray())
	order.Push(NewArray())
	order.Push(order)
	encodeHex(t, NewSerializationContext(), order,
		"09 05 03 78 09 00 03 79 09 01 01 01 09 02 09 00")
}

// TestEncodeArrayContextReuse checks string and object references across calls.
func TestEncodeArrayContextReuse(t *testing.T) {
	ctx := NewSerializationContext()
	a := NewArray()
	a.Set("x", String("x"))
	encodeHex(t, ctx, a, "09 01 03 78 06 00 01")
	encodeHex(t, ctx, a, "09 00")

	b := NewArray(Undefined{})
	b.Set("x", String("x"))
	encodeHex(t, ctx, b, "09 03 00 06 00 01 00")
}

// TestEncodeObjects covers the traits header variants and member ordering.
func TestEncodeObjects(t *testing.T) {
	encodeHex(t, NewSerializationContext(), NewAnonymousObject(), "0a 0b 01 01")
	encodeHex(t, NewSerializationContext(), NewObject("", false, false), "0a 03 01")

	dyn := NewAnonymousObject()
	dyn.SetDynamic("prop", String("val"))
	encodeHex(t, NewSerializationContext(), dyn, "0a 0b 01 09 70 72 6f 70 06 07 76 61 6c 01")

	sealed := NewObject("", false, false)
	sealed.SetSealed("s", Integer(0))
	sealed.SetDynamic("d", Bool(false))
	encodeHex(t, NewSerializationContext(), sealed, "0a 13 01 03 73 04 00")

	mixed := NewObject("", true, false)
	mixed.SetSealed("s", Integer(1))
	mixed.SetDynamic("d", Bool(true))
	encodeHex(t, NewSerializationContext(), mixed, "0a 1b 01 03 73 04 01 03 64 03 01")

	ordered := NewAnonymousObject()
	ordered.SetDynamic("b", Integer(2))
	ordered.SetDynamic("a", Integer(1))
	encodeHex(t, NewSerializationContext(), ordered, "0a 0b 01 03 61 04 01 03 62 04 02 01")
}

// TestEncodeObjectReferences checks trait references, shared members and cycles.
func TestEncodeObjectReferences(t *testing.T) {
	ctx := NewSerializationContext()
	foo := NewObject("foo", true, false)
	foo.SetDynamic("foo", Null{})
	encodeHex(t, ctx, foo, "0a 0b 07 66 6f 6f 00 01 01")
	encodeHex(t, ctx, NewObject("foo", true, false), "0a 01 01")

	inner := NewObject("", false, false)
	outer := NewObject("", true, false)
	outer.SetDynamic("foo", inner)
	outer.SetSealed("bar", inner)
	encodeHex(t, NewSerializationContext(), outer,
		"0a 1b 01 07 62 61 72 0a 03 01 07 66 6f 6f 0a 02 01")

	self := NewAnonymousObject()
	self.SetDynamic("f", self)
	encodeHex(t, NewSerializationContext(), self, "0a 0b 01 03 66 0a 00 01")

	blob := NewByteArray([]byte{1})
	shared := NewAnonymousObject()
	shared.SetDynamic("a", blob)
	shared.SetDynamic("b", NewByteArray([]byte{1}))
	encodeHex(t, NewSerializationContext(), shared, "0a 0b 01 03 61 0c 03 01 03 62 0c 02 01")
}

// TestEncodeExternalizable checks that the externalizer writes the body.
func TestEncodeExternalizable(t *testing.T) {
	obj := NewObject("foo", false, true)
	obj.Externalizer = func(e *Encoder, o *Object) error {
		return e.WriteByte(byte(len(o.Sealed) * 3))
	}
	encodeHex(t, NewSerializationContext(), obj, "0a 07 07 66 6f 6f 00")

	obj.SetSealed("a", Integer(1))
	obj.SetSealed("b", Integer(2))
	obj.SetSealed("c", Integer(3))
	encodeHex(t, NewSerializationContext(), obj, "0a 07 07 66 6f 6f 09")

	names := NewObject("x", false, true)
	names.SetDynamic("foo", Integer(1))
	names.Externalizer = func(e *Encoder, o *Object) error {
		for _, k := range sortedKeys(o.Dynamic) {
			if err := e.WriteValue(String(k)); err != nil {
				return err
			}
		}
		return nil
	}
	encodeHex(t, NewSerializationContext(), names, "0a 07 03 78 06 07 66 6f 6f")
}

// externalInt returns an externalizable "Ext" object whose payload is the integer n.
func externalInt(n int32) *Object {
	obj := NewObject("Ext", false, true)
	obj.Externalizer = func(e *Encoder, _ *Object) error {
		return e.WriteValue(Integer(n))
	}
	return obj
}

// TestEncodeExternalPayloads checks that externalizable objects differing only in payload
// are both written inline, while equal payloads share one slot.
func TestEncodeExternalPayloads(t *testing.T) {
	arr := NewArray(externalInt(10), externalInt(11))
	encodeHex(t, NewSerializationContext(), arr,
		"09 05 01 0a 07 07 45 78 74 04 0a 0a 01 04 0b")

	reg := NewExternalRegistry()
	reg.Register("Ext", func(d *Decoder, obj *Object) error {
		v, err := d.ReadValue()
		if err != nil {
			return err
		}
		obj.SetDynamic("n", v)
		return nil
	})
	b, err := Encode(arr, nil)
	require.NoError(t, err)
	v, _, err := Decode(b, NewDeserializationContext(reg))
	require.NoError(t, err)
	got := v.(*Array).Dense
	require.Len(t, got, 2)
	assert.NotSame(t, got[0], got[1])
	first, _ := got[0].(*Object).GetDynamic("n")
	second, _ := got[1].(*Object).GetDynamic("n")
	assert.Equal(t, Integer(10), first)
	assert.Equal(t, Integer(11), second)

	encodeHex(t, NewSerializationContext(), NewArray(externalInt(10), externalInt(10)),
		"09 05 01 0a 07 07 45 78 74 04 0a 0a 02")
}

// TestEncodeNilContext checks that a nil context encodes like a fresh one.
func TestEncodeNilContext(t *testing.T) {
	encodeHex(t, nil, Integer(1), "04 01")
	encodeHex(t, nil, NewArray(String("a"), String("a")), "09 05 01 06 03 61 06 00")
}

// TestEncodeFailureRollsBack checks that a failed encode leaves the context untouched.
func TestEncodeFailureRollsBack(t *testing.T) {
	ctx := NewSerializationContext()
	encodeHex(t, ctx, String("keep"), "06 09 6b 65 65 70")

	bad := NewArray(String("lost"), NewObject("", false, true))
	_, err := Encode(bad, ctx)
	require.ErrorIs(t, err, ErrNoExternalizer)
	assert.Equal(t, Stats{Strings: 1}, ctx.Stats())

	encodeHex(t, ctx, String("lost"), "06 09 6c 6f 73 74")

	empty := NewAnonymousObject()
	empty.SetDynamic("", Null{})
	_, err = Encode(empty, ctx)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

// TestEncodeDictionary covers key coercion and insertion order.
func TestEncodeDictionary(t *testing.T) {
	d := NewDictionary(true, false)
	d.Set(Integer(3), Bool(false))
	encodeHex(t, NewSerializationContext(), d, "11 03 00 06 03 33 02")

	d = NewDictionary(true, false)
	d.Set(Integer(-16384), String("foo"))
	encodeHex(t, NewSerializationContext(), d, "11 03 00 06 0d 2d 31 36 33 38 34 06 07 66 6f 6f")

	d = NewDictionary(true, true)
	d.Set(Bool(false), Bool(true))
	encodeHex(t, NewSerializationContext(), d, "11 03 01 06 0b 66 61 6c 73 65 03")

	d = NewDictionary(true, false)
	d.Set(Integer(3), Bool(false))
	d.Set(Integer(-16384), String("foo"))
	encodeHex(t, NewSerializationContext(), d,
		"11 05 00 06 03 33 02 06 0d 2d 31 36 33 38 34 06 07 66 6f 6f")

	plain := NewDictionary(false, false)
	plain.Set(Integer(3), Bool(false))
	encodeHex(t, NewSerializationContext(), plain, "11 03 00 04 03 02")
}

// TestEncodeVectors covers the fixed-width and object vector kinds.
func TestEncodeVectors(t *testing.T) {
	encodeHex(t, NewSerializationContext(), NewIntVector(false, 1, -1),
		"0d 05 00 00 00 00 01 ff ff ff ff")
	encodeHex(t, NewSerializationContext(), NewUintVector(true, 0xfffffffe),
		"0e 03 01 ff ff ff fe")
	encodeHex(t, NewSerializationContext(), NewDoubleVector(false, 1.0),
		"0f 03 00 3f f0 00 00 00 00 00 00")
	encodeHex(t, NewSerializationContext(), NewObjectVector("*", true, String("a")),
		"10 03 01 03 2a 06 03 61")

	ctx := NewSerializationContext()
	v := NewIntVector(false, 7)
	encodeHex(t, ctx, v, "0d 03 00 00 00 00 07")
	encodeHex(t, ctx, v, "0d 00")
}

// TestEncodeByteArray checks byte array references.
func TestEncodeByteArray(t *testing.T) {
	ctx := NewSerializationContext()
	encodeHex(t, ctx, NewByteArray([]byte{1, 2, 3}), "0c 07 01 02 03")
	encodeHex(t, ctx, NewByteArray([]byte{1, 2, 3}), "0c 00")
	encodeHex(t, ctx, NewByteArray(nil), "0c 01")
}
