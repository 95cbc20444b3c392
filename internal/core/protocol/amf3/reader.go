// If you are AI: This file implements the byte cursor the decoder reads from and the
// network-byte-order helpers for fixed-width primitives.

package amf3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Reader is the input the decoder consumes. *bytes.Reader and *bufio.Reader satisfy it.
type Reader interface {
	io.Reader
	io.ByteReader
}

// cursor tracks how many bytes were consumed and maps short reads to ErrTruncated.
type cursor struct {
	r Reader
	n int
}

// lenReader is implemented by readers that know how many bytes remain.
type lenReader interface {
	Len() int
}

// readByte reads one byte.
func (c *cursor) readByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, truncated(err, 1)
	}
	c.n++
	return b, nil
}

// readBytes reads exactly n bytes into a new slice.
// Readers that report their remaining length are checked before allocating.
func (c *cursor) readBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if lr, ok := c.r.(lenReader); ok {
		if lr.Len() < n {
			return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, lr.Len())
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(c.r, buf); err != nil {
			return nil, truncated(err, n)
		}
		c.n += n
		return buf, nil
	}
	// Grow gradually so a bogus length cannot force a huge allocation.
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, c.r, int64(n))
	c.n += int(got)
	if err != nil {
		return nil, truncated(err, n)
	}
	return buf.Bytes(), nil
}

// require fails early when the reader knows fewer than n bytes remain.
func (c *cursor) require(n int) error {
	if lr, ok := c.r.(lenReader); ok && lr.Len() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, lr.Len())
	}
	return nil
}

// readUint32 reads a big-endian uint32.
func (c *cursor) readUint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		return 0, truncated(err, 4)
	}
	c.n += 4
	return binary.BigEndian.Uint32(b[:]), nil
}

// readFloat64 reads a big-endian IEEE 754 double.
func (c *cursor) readFloat64() (float64, error) {
	var b [8]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		return 0, truncated(err, 8)
	}
	c.n += 8
	return math.Float64frombits(binary.BigEndian.Uint64(b[:])), nil
}

// truncated converts end-of-input errors into ErrTruncated and passes others through.
func truncated(err error, want int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: need %d bytes", ErrTruncated, want)
	}
	return err
}

// appendUint32 appends v in network byte order.
func appendUint32(buf []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(buf, v)
}

// appendFloat64 appends v in network byte order.
func appendFloat64(buf []byte, v float64) []byte {
	return binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
}
