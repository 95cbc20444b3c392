// If you are AI: This file declares the sentinel errors returned by the AMF3 codec.
// Callers classify failures with errors.Is.

package amf3

import "errors"

var (
	// ErrTruncated means the input ended before a declared or fixed-size field.
	// The stream may be valid once more bytes arrive.
	ErrTruncated = errors.New("amf3: not enough bytes")

	// ErrInvalidMarker means a byte at a type-decision point is not valid there.
	ErrInvalidMarker = errors.New("amf3: invalid type marker")

	// ErrBadReference means a reference index is out of range or points at another kind.
	ErrBadReference = errors.New("amf3: bad reference")

	// ErrMissingExternal means no decoder is registered for an externalizable class.
	ErrMissingExternal = errors.New("amf3: no external decoder registered")

	// ErrCapacity means a length, count or index does not fit its wire field.
	ErrCapacity = errors.New("amf3: value exceeds wire capacity")

	// ErrNoExternalizer means an externalizable object has no encode hook.
	ErrNoExternalizer = errors.New("amf3: externalizable object without externalizer")

	// ErrInvalidValue means a value cannot be represented on the wire.
	ErrInvalidValue = errors.New("amf3: value not representable")

	// ErrTooComplex means decoding the input would cost far more than its size.
	ErrTooComplex = errors.New("amf3: input too costly to decode")
)
