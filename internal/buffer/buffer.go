// Package buffer provides the owned, growable byte container used for raw
// memory dumps. It mirrors the clear/resize semantics the download engine
// relies on: a resize preserves the existing prefix and zero-fills any new
// tail, and a cleared buffer keeps its capacity for the next dump.
package buffer

// Buffer is a resizable byte sequence with explicit length and capacity.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	data []byte
}

// New returns a buffer with the given initial length, zero-filled.
func New(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// Len returns the current length.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the underlying byte slice. The slice is valid until the
// next Clear or Resize.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Clear truncates the buffer to zero length, keeping its capacity.
func (b *Buffer) Clear() {
	b.data = b.data[:0]
}

// Resize sets the length to size. Existing bytes up to the smaller of the
// old and new lengths are preserved; bytes beyond the old length are zero.
func (b *Buffer) Resize(size int) {
	if size <= cap(b.data) {
		old := len(b.data)
		b.data = b.data[:size]
		if size > old {
			clear(b.data[old:])
		}
		return
	}
	grown := make([]byte, size)
	copy(grown, b.data)
	b.data = grown
}
