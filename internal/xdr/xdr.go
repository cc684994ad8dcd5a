// Package xdr provides big-endian binary encoding and decoding utilities
// for Photoshop file data.
//
// The PSD format family stores all multi-byte integers big-endian on disk,
// regardless of host byte order. This package provides bounds-checked
// readers and writers for the integer widths the format uses, so callers
// never index a buffer with an unvalidated offset.
package xdr

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrShortBuffer is returned when a read or write operation cannot
	// complete because there isn't enough data or space in the buffer.
	ErrShortBuffer = errors.New("xdr: buffer too short")

	// ErrNegativeSize is returned when a size parameter is negative.
	ErrNegativeSize = errors.New("xdr: negative size")
)

// ByteOrder is the byte order used on the wire by the PSD format family.
var ByteOrder = binary.BigEndian

// Reader provides big-endian binary reading from a byte slice. It maintains
// a read position and bounds-checks every operation.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Skip advances the read position by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return ErrNegativeSize
	}
	if r.pos+n > len(r.data) {
		return ErrShortBuffer
	}
	r.pos += n
	return nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := ByteOrder.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, ErrShortBuffer
	}
	v := ByteOrder.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// Slice returns the next n bytes as a sub-slice of the underlying data,
// without copying, and advances the read position past them.
func (r *Reader) Slice(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if r.pos+n > len(r.data) {
		return nil, ErrShortBuffer
	}
	s := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return s, nil
}

// Writer provides big-endian binary writing into a pre-sized byte slice.
type Writer struct {
	data []byte
	pos  int
}

// NewWriter creates a Writer over a byte slice.
func NewWriter(data []byte) *Writer {
	return &Writer{data: data}
}

// Len returns the number of bytes that can still be written.
func (w *Writer) Len() int {
	if w.pos >= len(w.data) {
		return 0
	}
	return len(w.data) - w.pos
}

// Pos returns the current write position.
func (w *Writer) Pos() int {
	return w.pos
}

// WriteUint16 writes a big-endian uint16.
func (w *Writer) WriteUint16(v uint16) error {
	if w.pos+2 > len(w.data) {
		return ErrShortBuffer
	}
	ByteOrder.PutUint16(w.data[w.pos:], v)
	w.pos += 2
	return nil
}

// WriteUint32 writes a big-endian uint32.
func (w *Writer) WriteUint32(v uint32) error {
	if w.pos+4 > len(w.data) {
		return ErrShortBuffer
	}
	ByteOrder.PutUint32(w.data[w.pos:], v)
	w.pos += 4
	return nil
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(b []byte) error {
	if w.pos+len(b) > len(w.data) {
		return ErrShortBuffer
	}
	copy(w.data[w.pos:], b)
	w.pos += len(b)
	return nil
}
