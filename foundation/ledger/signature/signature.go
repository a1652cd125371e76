// Package signature provides the asymmetric key material of the jellyfish
// protocol: ed25519 accounts, the secret signing half, and the signature
// value itself. Anything malformed is rejected when bytes are parsed into
// these types, never later during verification.
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the number of bytes in a signature.
const Size = ed25519.SignatureSize

// ErrVerification is returned when a well-formed signature does not match
// the message under the claimed account.
var ErrVerification = errors.New("signature verification failed")

// Signature is a sign over a message by the message's creator. At the
// wire boundary it is encoded as exactly 128 hex characters.
type Signature [Size]byte

// Equal reports whether two signatures hold the same bytes.
func (s Signature) Equal(other Signature) bool {
	return s == other
}

// Bytes returns a copy of the raw signature bytes.
func (s Signature) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, s[:])
	return out
}

// AppendBytes appends the raw signature bytes verbatim.
func (s Signature) AppendBytes(buf []byte) []byte {
	return append(buf, s[:]...)
}

// String returns the hex encoding of the signature.
func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// MarshalText implements the encoding.TextMarshaler interface so
// signatures serialize as bare hex strings.
func (s Signature) MarshalText() ([]byte, error) {
	dst := make([]byte, hex.EncodedLen(Size))
	hex.Encode(dst, s[:])
	return dst, nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. Any
// value that does not decode to exactly 64 bytes is rejected with a
// format error.
func (s *Signature) UnmarshalText(text []byte) error {
	if len(text) != hex.EncodedLen(Size) {
		return fmt.Errorf("signature must be %d hex characters, got %d", hex.EncodedLen(Size), len(text))
	}

	if _, err := hex.Decode(s[:], text); err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}

	return nil
}
