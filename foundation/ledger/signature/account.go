package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// Account is the public identity of a ledger participant. It is a plain
// value: comparable, cloneable by assignment, and safe to share across
// goroutines.
type Account struct {
	name [ed25519.PublicKeySize]byte
}

// accountJSON is the wire shape of an account.
type accountJSON struct {
	Name string `json:"name"`
}

// Verify reports whether the given message and sign were created by this
// account. A mismatch is reported as ErrVerification; malformed input
// never panics since both the account and the signature are validated at
// parse time.
func (a Account) Verify(msg []byte, sign Signature) error {
	if !ed25519.Verify(a.name[:], msg, sign[:]) {
		return ErrVerification
	}
	return nil
}

// Equal reports whether two accounts share the same public key.
func (a Account) Equal(other Account) bool {
	return a == other
}

// AppendBytes appends the raw public key bytes verbatim.
func (a Account) AppendBytes(buf []byte) []byte {
	return append(buf, a.name[:]...)
}

// String returns the hex encoding of the account's public key.
func (a Account) String() string {
	return hex.EncodeToString(a.name[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(accountJSON{Name: a.String()})
}

// UnmarshalJSON implements the json.Unmarshaler interface. A name that
// does not decode to exactly 32 bytes is rejected with a format error.
func (a *Account) UnmarshalJSON(data []byte) error {
	var wire accountJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	if len(wire.Name) != hex.EncodedLen(ed25519.PublicKeySize) {
		return fmt.Errorf("account name must be %d hex characters, got %d", hex.EncodedLen(ed25519.PublicKeySize), len(wire.Name))
	}

	if _, err := hex.Decode(a.name[:], []byte(wire.Name)); err != nil {
		return fmt.Errorf("decoding account name: %w", err)
	}

	return nil
}

// =============================================================================

// SecretAccount owns the private half of an account's keypair. It is the
// only value in the system that can produce signatures and it must never
// cross a trust boundary: there is no JSON support and the only byte-level
// access is the explicit Backup call.
type SecretAccount struct {
	key ed25519.PrivateKey
}

// Generate creates a new account from the specified cryptographically
// secure random source. Pass nil to use crypto/rand.
func Generate(rand io.Reader) (*SecretAccount, error) {
	_, key, err := ed25519.GenerateKey(rand)
	if err != nil {
		return nil, fmt.Errorf("generating keypair: %w", err)
	}

	return &SecretAccount{key: key}, nil
}

// Restore rebuilds a secret account from bytes previously produced by
// Backup. The 64 bytes are the ed25519 private key, seed followed by
// public key; an inconsistent pair is rejected.
func Restore(backup []byte) (*SecretAccount, error) {
	if len(backup) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("backup must be %d bytes, got %d", ed25519.PrivateKeySize, len(backup))
	}

	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(key, backup)

	// The public half is derivable from the seed, so a corrupted backup
	// is detectable here rather than at first verification.
	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !derived.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(key[ed25519.SeedSize:])) {
		return nil, fmt.Errorf("backup public key does not match its seed")
	}

	return &SecretAccount{key: key}, nil
}

// Backup returns the bytes needed to restore this account. This is the
// single serialization path for private key material; treat the result as
// a secret.
func (sa *SecretAccount) Backup() []byte {
	out := make([]byte, ed25519.PrivateKeySize)
	copy(out, sa.key)
	return out
}

// Sign signs the given message with the account's private key. Signing is
// deterministic for a given key and message.
func (sa *SecretAccount) Sign(msg []byte) Signature {
	return Signature(ed25519.Sign(sa.key, msg))
}

// Public returns the shareable public identity of this account.
func (sa *SecretAccount) Public() Account {
	var a Account
	copy(a.name[:], sa.key[ed25519.SeedSize:])
	return a
}

// String implements the fmt.Stringer interface and redacts the key so a
// stray log line cannot leak it.
func (sa *SecretAccount) String() string {
	return fmt.Sprintf("SecretAccount(%s)", sa.Public())
}
