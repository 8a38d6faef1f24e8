package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// MaxStringLen bounds a length-prefixed string on the wire.
const MaxStringLen = 1 << 16

// Writer accumulates a message payload. Integer fields are fixed-width
// big-endian; strings are 4-byte-length-prefixed UTF-8.
type Writer struct {
	buf bytes.Buffer
}

// Uint8 writes a single byte.
func (w *Writer) Uint8(v uint8) {
	w.buf.WriteByte(v)
}

// Uint32 writes a 4-byte big-endian unsigned integer.
func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// Int32 writes a 4-byte big-endian signed integer.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Bool writes a single 0/1 byte.
func (w *Writer) Bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// String writes a 4-byte length prefix followed by the UTF-8 bytes.
func (w *Writer) String(s string) {
	w.Uint32(uint32(len(s)))
	w.buf.WriteString(s)
}

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Reader decodes a message payload with a sticky error: after the first
// failure every read returns the zero value and Err reports the cause.
type Reader struct {
	r   *bytes.Reader
	err error
}

// NewReader wraps a payload for decoding.
func NewReader(payload []byte) *Reader {
	return &Reader{r: bytes.NewReader(payload)}
}

// Err returns the first decode error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.fail(fmt.Errorf("read uint8: %w", err))
		return 0
	}
	return b
}

// Uint32 reads a 4-byte big-endian unsigned integer.
func (r *Reader) Uint32() uint32 {
	if r.err != nil {
		return 0
	}
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		r.fail(fmt.Errorf("read uint32: %w", err))
		return 0
	}
	return binary.BigEndian.Uint32(b[:])
}

// Int32 reads a 4-byte big-endian signed integer.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Bool reads a single 0/1 byte.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

// String reads a 4-byte-length-prefixed UTF-8 string.
func (r *Reader) String() string {
	length := r.Uint32()
	if r.err != nil {
		return ""
	}
	if length > MaxStringLen {
		r.fail(fmt.Errorf("string length %d exceeds limit", length))
		return ""
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(r.r, b); err != nil {
		r.fail(fmt.Errorf("read string: %w", err))
		return ""
	}
	return string(b)
}

// Remaining returns how many undecoded bytes are left.
func (r *Reader) Remaining() int {
	return r.r.Len()
}
