// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package mu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBufferExhausted indicates that a marshalling operation required
	// more capacity than the destination buffer has left.
	ErrBufferExhausted = errors.New("insufficient space in buffer")

	// ErrInsufficientData indicates that an unmarshalling operation
	// required more bytes than the source buffer has left.
	ErrInsufficientData = errors.New("insufficient data in buffer")
)

// SizeMismatchError is returned from Buffer.ReadSized when the declared size
// of a sized buffer exceeds the number of bytes remaining. This is a property
// of the data rather than of the buffer, which is why it is reported to the
// caller directly instead of via the buffer's error state - the caller
// decides whether the surrounding structure is still parseable.
type SizeMismatchError struct {
	Declared  int // the size field value
	Remaining int // the number of bytes left in the buffer
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("sized buffer has declared size %d but only %d bytes remain", e.Declared, e.Remaining)
}

// Buffer is a cursor over a caller-owned byte slice, used for both
// marshalling and unmarshalling. Each operation advances the cursor and
// debits the remaining capacity after a bounds check - no operation ever
// touches bytes outside the backing slice.
//
// The first failed operation records an error and all subsequent operations
// become no-ops. Unmarshalling operations return the type's zero value once
// the buffer has failed, so callers must use Err to detect failure rather
// than inspecting returned values.
type Buffer struct {
	data []byte
	off  int
	err  error
}

// NewBuffer returns a Buffer that marshals to or unmarshals from data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Err returns the error recorded by the first failed operation, or nil if
// every operation so far has succeeded.
func (b *Buffer) Err() error {
	return b.err
}

// Fail puts the buffer into the failed state with the supplied error. It
// does nothing if the buffer has already failed.
func (b *Buffer) Fail(err error) {
	if b.err != nil {
		return
	}
	b.err = err
}

// Offset returns the number of bytes consumed or produced so far.
func (b *Buffer) Offset() int {
	return b.off
}

// Remaining returns the number of bytes left in the buffer.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.off
}

// Len returns the total capacity of the backing slice.
func (b *Buffer) Len() int {
	return len(b.data)
}

func (b *Buffer) require(n int, err error) bool {
	if b.err != nil {
		return false
	}
	if n < 0 || n > b.Remaining() {
		b.err = err
		return false
	}
	return true
}

// WriteUint8 marshals a single byte.
func (b *Buffer) WriteUint8(v uint8) {
	if !b.require(1, ErrBufferExhausted) {
		return
	}
	b.data[b.off] = v
	b.off++
}

// WriteUint16 marshals v in big-endian byte order.
func (b *Buffer) WriteUint16(v uint16) {
	if !b.require(2, ErrBufferExhausted) {
		return
	}
	binary.BigEndian.PutUint16(b.data[b.off:], v)
	b.off += 2
}

// WriteUint32 marshals v in big-endian byte order.
func (b *Buffer) WriteUint32(v uint32) {
	if !b.require(4, ErrBufferExhausted) {
		return
	}
	binary.BigEndian.PutUint32(b.data[b.off:], v)
	b.off += 4
}

// WriteBytes marshals data with no size field.
func (b *Buffer) WriteBytes(data []byte) {
	if !b.require(len(data), ErrBufferExhausted) {
		return
	}
	copy(b.data[b.off:], data)
	b.off += len(data)
}

// WriteSized marshals data as a TPM2B - a 16-bit size field followed by the
// bytes. The total footprint is checked before anything is written.
func (b *Buffer) WriteSized(data []byte) {
	if len(data) > math.MaxUint16 {
		b.Fail(fmt.Errorf("sized buffer of %d bytes cannot be represented by a 16-bit size field", len(data)))
		return
	}
	if !b.require(2+len(data), ErrBufferExhausted) {
		return
	}
	binary.BigEndian.PutUint16(b.data[b.off:], uint16(len(data)))
	copy(b.data[b.off+2:], data)
	b.off += 2 + len(data)
}

// Reserve debits n bytes from the buffer without writing them and returns a
// Buffer over the reserved region, so that a field whose value isn't known
// yet (typically a size) can be patched in later. The returned Buffer is
// bounded by the reservation and performs the same checks as any other
// Buffer. If the reservation doesn't fit, the parent buffer fails and the
// returned Buffer is inert.
func (b *Buffer) Reserve(n int) *Buffer {
	if !b.require(n, ErrBufferExhausted) {
		return &Buffer{err: ErrBufferExhausted}
	}
	r := &Buffer{data: b.data[b.off : b.off+n : b.off+n]}
	b.off += n
	return r
}

// ReadUint8 unmarshals a single byte, returning zero on failure.
func (b *Buffer) ReadUint8() uint8 {
	if !b.require(1, ErrInsufficientData) {
		return 0
	}
	v := b.data[b.off]
	b.off++
	return v
}

// ReadUint16 unmarshals a big-endian 16-bit integer, returning zero on
// failure.
func (b *Buffer) ReadUint16() uint16 {
	if !b.require(2, ErrInsufficientData) {
		return 0
	}
	v := binary.BigEndian.Uint16(b.data[b.off:])
	b.off += 2
	return v
}

// ReadUint32 unmarshals a big-endian 32-bit integer, returning zero on
// failure.
func (b *Buffer) ReadUint32() uint32 {
	if !b.require(4, ErrInsufficientData) {
		return 0
	}
	v := binary.BigEndian.Uint32(b.data[b.off:])
	b.off += 4
	return v
}

// ReadBytes unmarshals n bytes and returns them as a view into the backing
// slice rather than a copy. The returned slice is only valid for as long as
// the backing slice is.
func (b *Buffer) ReadBytes(n int) []byte {
	if !b.require(n, ErrInsufficientData) {
		return nil
	}
	data := b.data[b.off : b.off+n : b.off+n]
	b.off += n
	return data
}

// ReadSized unmarshals a TPM2B - a 16-bit size field followed by that many
// bytes, returned as a view into the backing slice. If the declared size
// exceeds the bytes remaining, the size field remains consumed but the
// payload does not, and a *SizeMismatchError is returned without putting the
// buffer into the failed state.
func (b *Buffer) ReadSized() ([]byte, error) {
	size := int(b.ReadUint16())
	if b.err != nil {
		return nil, b.err
	}
	if size > b.Remaining() {
		return nil, &SizeMismatchError{Declared: size, Remaining: b.Remaining()}
	}
	return b.ReadBytes(size), nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (b *Buffer) Skip(n int) {
	if !b.require(n, ErrInsufficientData) {
		return
	}
	b.off += n
}
