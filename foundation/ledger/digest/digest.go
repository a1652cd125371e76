// Package digest provides the 256 bit one-way hash the jellyfish protocol
// uses for header digests and merkle leaves.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Size is the number of bytes in a digest.
const Size = sha256.Size

// Digest is a SHA-256 digest. At the wire boundary it is encoded as
// exactly 64 lowercase hex characters.
type Digest [Size]byte

// Hash returns the digest of the given message.
func Hash(msg []byte) Digest {
	return Digest(sha256.Sum256(msg))
}

// Equal reports whether two digests hold the same bytes.
func (d Digest) Equal(other Digest) bool {
	return d == other
}

// Bytes returns a copy of the raw digest bytes.
func (d Digest) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, d[:])
	return out
}

// AppendBytes appends the raw digest bytes verbatim. The canonical
// encoding of a digest carries no length prefix or endianness.
func (d Digest) AppendBytes(buf []byte) []byte {
	return append(buf, d[:]...)
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements the encoding.TextMarshaler interface so digests
// serialize as bare hex strings.
func (d Digest) MarshalText() ([]byte, error) {
	dst := make([]byte, hex.EncodedLen(Size))
	hex.Encode(dst, d[:])
	return dst, nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. Any
// value that does not decode to exactly 32 bytes is rejected with a
// format error.
func (d *Digest) UnmarshalText(text []byte) error {
	if len(text) != hex.EncodedLen(Size) {
		return fmt.Errorf("digest must be %d hex characters, got %d", hex.EncodedLen(Size), len(text))
	}

	if _, err := hex.Decode(d[:], text); err != nil {
		return fmt.Errorf("decoding digest: %w", err)
	}

	return nil
}
