// If you are AI: This file implements the U29 variable-length integer used for integers,
// lengths, counts and reference indices.

package amf3

import "fmt"

// appendU29 appends the 1-4 byte U29 encoding of the low 29 bits of v.
func appendU29(buf []byte, v uint32) []byte {
	v &= 0x1FFFFFFF
	switch {
	case v < 0x80:
		return append(buf, byte(v))
	case v < 0x4000:
		return append(buf, byte(v>>7)|0x80, byte(v&0x7F))
	case v < 0x200000:
		return append(buf, byte(v>>14)|0x80, byte(v>>7)|0x80, byte(v&0x7F))
	default:
		// 4th byte carries a full 8 bits
		return append(buf, byte(v>>22)|0x80, byte(v>>15)|0x80, byte(v>>8)|0x80, byte(v))
	}
}

// readU29 reads an unsigned 29-bit value.
func readU29(c *cursor) (uint32, error) {
	var v uint32
	for i := 0; i < 3; i++ {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		if b&0x80 == 0 {
			return v<<7 | uint32(b), nil
		}
		v = v<<7 | uint32(b&0x7F)
	}
	b, err := c.readByte()
	if err != nil {
		return 0, err
	}
	return v<<8 | uint32(b), nil
}

// signExtend29 turns a 29-bit two's complement quantity into an int32.
func signExtend29(v uint32) int32 {
	return int32(v<<3) >> 3
}

// appendInlineHeader appends a U29 header announcing an inline value of the given length.
func appendInlineHeader(buf []byte, length int) ([]byte, error) {
	if length < 0 || length > MaxLength {
		return buf, fmt.Errorf("%w: length %d", ErrCapacity, length)
	}
	return appendU29(buf, uint32(length)<<1|1), nil
}

// appendRefHeader appends a U29 header referring to table slot index.
func appendRefHeader(buf []byte, index int) ([]byte, error) {
	if index < 0 || index > MaxLength {
		return buf, fmt.Errorf("%w: reference %d", ErrCapacity, index)
	}
	return appendU29(buf, uint32(index)<<1), nil
}

// header is a decoded U29 length/reference field.
type header struct {
	inline bool
	value  int // length or count when inline, table index otherwise
	raw    uint32
}

// readHeader reads a U29 field and splits off its inline/reference bit.
func readHeader(c *cursor) (header, error) {
	raw, err := readU29(c)
	if err != nil {
		return header{}, err
	}
	return header{inline: raw&1 == 1, value: int(raw >> 1), raw: raw}, nil
}
