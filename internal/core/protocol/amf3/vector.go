// If you are AI: This file defines the typed AMF3 vectors: three fixed-width numeric
// element types and the named-class object vector.

package amf3

// IntVector is a Vector.<int>.
type IntVector struct {
	Fixed  bool
	Values []int32
}

// UintVector is a Vector.<uint>.
type UintVector struct {
	Fixed  bool
	Values []uint32
}

// DoubleVector is a Vector.<Number>.
type DoubleVector struct {
	Fixed  bool
	Values []float64
}

// ObjectVector is a Vector of a named element type. An empty TypeName means "*".
type ObjectVector struct {
	Fixed    bool
	TypeName string
	Values   []Value
}

// NewIntVector returns an int vector.
func NewIntVector(fixed bool, values ...int32) *IntVector {
	return &IntVector{Fixed: fixed, Values: values}
}

// NewUintVector returns a uint vector.
func NewUintVector(fixed bool, values ...uint32) *UintVector {
	return &UintVector{Fixed: fixed, Values: values}
}

// NewDoubleVector returns a double vector.
func NewDoubleVector(fixed bool, values ...float64) *DoubleVector {
	return &DoubleVector{Fixed: fixed, Values: values}
}

// NewObjectVector returns an object vector of typeName elements.
func NewObjectVector(typeName string, fixed bool, values ...Value) *ObjectVector {
	return &ObjectVector{Fixed: fixed, TypeName: typeName, Values: values}
}

// Push appends v.
func (v *ObjectVector) Push(e Value) {
	v.Values = append(v.Values, orUndefined(e))
}

// Kind returns KindIntVector.
func (*IntVector) Kind() Kind { return KindIntVector }

// Kind returns KindUintVector.
func (*UintVector) Kind() Kind { return KindUintVector }

// Kind returns KindDoubleVector.
func (*DoubleVector) Kind() Kind { return KindDoubleVector }

// Kind returns KindObjectVector.
func (*ObjectVector) Kind() Kind { return KindObjectVector }

// amf3 seals Value.
func (*IntVector) amf3() {}

// amf3 seals Value.
func (*UintVector) amf3() {}

// amf3 seals Value.
func (*DoubleVector) amf3() {}

// amf3 seals Value.
func (*ObjectVector) amf3() {}

// fixedByte encodes the fixed-length flag.
func fixedByte(fixed bool) byte {
	if fixed {
		return 0x01
	}
	return 0x00
}
