// If you are AI: This file defines the closed AMF3 value model.
// Primitive kinds are plain Go values; reference kinds are pointers so that several
// containers, a reference table and the value itself can share one handle.

package amf3

import "fmt"

// Kind identifies one of the fixed AMF3 value kinds.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindInteger
	KindDouble
	KindString
	KindXMLDocument
	KindDate
	KindArray
	KindObject
	KindXML
	KindByteArray
	KindIntVector
	KindUintVector
	KindDoubleVector
	KindObjectVector
	KindDictionary
)

var kindNames = [...]string{
	"undefined", "null", "bool", "integer", "double", "string", "xml-document", "date",
	"array", "object", "xml", "bytearray", "vector<int>", "vector<uint>", "vector<double>",
	"vector<object>", "dictionary",
}

// String returns the kind name used in error messages.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is any AMF3 value.
// The set of implementations is closed; external packages cannot add kinds.
type Value interface {
	Kind() Kind
	amf3()
}

// Undefined is the AMF3 undefined value.
type Undefined struct{}

// Null is the AMF3 null value.
type Null struct{}

// Bool is an AMF3 boolean.
type Bool bool

// Integer is a 32-bit signed integer.
// Values outside [MinInt, MaxInt] travel as doubles.
type Integer int32

// Double is an IEEE 754 binary64 number.
type Double float64

// String is a UTF-8 string.
type String string

// Kind returns KindUndefined.
func (Undefined) Kind() Kind { return KindUndefined }

// Kind returns KindNull.
func (Null) Kind() Kind { return KindNull }

// Kind returns KindBool.
func (Bool) Kind() Kind { return KindBool }

// Kind returns KindInteger.
func (Integer) Kind() Kind { return KindInteger }

// Kind returns KindDouble.
func (Double) Kind() Kind { return KindDouble }

// Kind returns KindString.
func (String) Kind() Kind { return KindString }

// amf3 seals Value.
func (Undefined) amf3() {}

// amf3 seals Value.
func (Null) amf3() {}

// amf3 seals Value.
func (Bool) amf3() {}

// amf3 seals Value.
func (Integer) amf3() {}

// amf3 seals Value.
func (Double) amf3() {}

// amf3 seals Value.
func (String) amf3() {}

// isReference reports whether v takes part in the object reference table.
func isReference(v Value) bool {
	switch v.(type) {
	case *Array, *Object, *Dictionary, *ByteArray, *Date, *XML, *XMLDocument,
		*IntVector, *UintVector, *DoubleVector, *ObjectVector:
		return true
	}
	return false
}

// orUndefined maps a nil Value to Undefined.
func orUndefined(v Value) Value {
	if v == nil {
		return Undefined{}
	}
	return v
}
