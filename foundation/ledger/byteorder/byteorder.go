// Package byteorder builds the canonical byte sequences the jellyfish
// protocol hashes and signs. Every signable type appends its own bytes in
// a fixed, documented field order; the concatenation produced by the
// Builder is the single preimage used for all digest and signature
// computation, independent of any wire encoding.
package byteorder

// Appender is the behavior a type must exhibit to participate in digest
// and signature computation. The field order and per-field endianness an
// implementation emits are protocol constants.
type Appender interface {
	AppendBytes(buf []byte) []byte
}

// Builder accumulates the canonical bytes of a sequence of values.
type Builder struct {
	buf []byte
}

// NewBuilder constructs a Builder with an empty buffer.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append adds the canonical bytes of the specified value to the buffer.
func (b *Builder) Append(a Appender) *Builder {
	b.buf = a.AppendBytes(b.buf)
	return b
}

// Bytes returns the accumulated byte sequence.
func (b *Builder) Bytes() []byte {
	return b.buf
}
