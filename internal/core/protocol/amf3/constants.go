// If you are AI: This file defines AMF3 type markers and the numeric limits of the wire format.

package amf3

// AMF3 type markers
const (
	MarkerUndefined    = 0x00
	MarkerNull         = 0x01
	MarkerFalse        = 0x02
	MarkerTrue         = 0x03
	MarkerInteger      = 0x04
	MarkerDouble       = 0x05
	MarkerString       = 0x06
	MarkerXMLDocument  = 0x07
	MarkerDate         = 0x08
	MarkerArray        = 0x09
	MarkerObject       = 0x0A
	MarkerXML          = 0x0B
	MarkerByteArray    = 0x0C
	MarkerVectorInt    = 0x0D
	MarkerVectorUint   = 0x0E
	MarkerVectorDouble = 0x0F
	MarkerVectorObject = 0x10
	MarkerDictionary   = 0x11
)

// Integer range representable by a U29 value.
// Integers outside this range are written with the double codec.
const (
	MinInt = -(1 << 28)
	MaxInt = 1<<28 - 1
)

// MaxLength is the largest length, count or reference index a U29 header can carry.
// One bit of the 29 is taken by the inline/reference flag.
const MaxLength = 1<<28 - 1

// Trait header flags (low bits of the U29O header after the inline bit).
const (
	traitsInline  = 0x02
	traitsExt     = 0x04
	traitsDynamic = 0x08
)

// utf8Empty is the UTF-8-vr encoding of the empty string, also used as a list terminator.
const utf8Empty = 0x01
