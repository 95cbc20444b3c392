// If you are AI: This file implements the U16-length-prefixed UTF-8 strings shared by
// AMF0 and the remoting envelope, and adapts plain readers to byte readers.

package amf0

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteUTF writes s with a 16-bit length prefix.
func WriteUTF(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadUTF reads a string with a 16-bit length prefix.
func ReadUTF(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	return readN(r, int(length))
}

// readN reads exactly n bytes as a string.
func readN(r io.Reader, n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// byteReader adds ReadByte to a reader without buffering ahead.
type byteReader struct {
	r   io.Reader
	one [1]byte
}

// Read forwards to the wrapped reader.
func (b *byteReader) Read(p []byte) (int, error) {
	return b.r.Read(p)
}

// ReadByte reads exactly one byte.
func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.one[:]); err != nil {
		return 0, err
	}
	return b.one[0], nil
}
