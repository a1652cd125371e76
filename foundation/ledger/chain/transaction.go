package chain

import (
	"encoding/json"
	"fmt"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/byteorder"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/digest"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
)

// Tx is a signed, timestamped unit of change whose signature has not been
// checked yet. Decoding any external representation yields a Tx; there is
// no decode path into VerifiedTx. Don't believe, verify.
//
// The content type T carries the actual change and must support canonical
// encoding so it can be part of the signature preimage.
type Tx[T byteorder.Appender] struct {
	account   signature.Account
	timestamp Timestamp
	content   T
	sign      signature.Signature
}

// txJSON is the wire shape of a transaction. The verification state is
// deliberately not part of it.
type txJSON[T byteorder.Appender] struct {
	Account   signature.Account   `json:"account"`
	Timestamp Timestamp           `json:"timestamp"`
	Content   T                   `json:"content"`
	Sign      signature.Signature `json:"sign"`
}

// Account returns the creator of the transaction.
func (tx Tx[T]) Account() signature.Account {
	return tx.account
}

// Timestamp returns when the transaction was offered.
func (tx Tx[T]) Timestamp() Timestamp {
	return tx.timestamp
}

// Content returns the transaction content.
func (tx Tx[T]) Content() T {
	return tx.content
}

// Sign returns the creator's signature.
func (tx Tx[T]) Sign() signature.Signature {
	return tx.sign
}

// Verify checks the embedded signature against the preimage reconstructed
// from the transaction's own fields. On success the transaction moves to
// the verified state; on failure the wrapped signature error is returned
// and no verified value exists.
func (tx Tx[T]) Verify() (VerifiedTx[T], error) {
	msg := signBytes(tx.account, tx.timestamp, tx.content)

	if err := tx.account.Verify(msg, tx.sign); err != nil {
		return VerifiedTx[T]{}, fmt.Errorf("verifying transaction: %w", err)
	}

	return VerifiedTx[T]{tx: tx}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (tx Tx[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(txJSON[T]{
		Account:   tx.account,
		Timestamp: tx.timestamp,
		Content:   tx.content,
		Sign:      tx.sign,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (tx *Tx[T]) UnmarshalJSON(data []byte) error {
	var wire txJSON[T]
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	tx.account = wire.Account
	tx.timestamp = wire.Timestamp
	tx.content = wire.Content
	tx.sign = wire.Sign

	return nil
}

// =============================================================================

// VerifiedTx is a transaction whose signature is known good. The only
// construction paths are Sign, under local key control, and Tx.Verify.
type VerifiedTx[T byteorder.Appender] struct {
	tx Tx[T]
}

// Sign builds a transaction over the given content and signs it with the
// secret account. The result is verified by construction because the
// signature was just produced under local key control.
//
// The signature preimage is exactly: account bytes, timestamp bytes,
// canonical content bytes, in that order.
func Sign[T byteorder.Appender](sa *signature.SecretAccount, timestamp Timestamp, content T) VerifiedTx[T] {
	account := sa.Public()
	msg := signBytes(account, timestamp, content)

	return VerifiedTx[T]{
		tx: Tx[T]{
			account:   account,
			timestamp: timestamp,
			content:   content,
			sign:      sa.Sign(msg),
		},
	}
}

// Account returns the creator of the transaction.
func (vtx VerifiedTx[T]) Account() signature.Account {
	return vtx.tx.account
}

// Timestamp returns when the transaction was offered.
func (vtx VerifiedTx[T]) Timestamp() Timestamp {
	return vtx.tx.timestamp
}

// Content returns the transaction content.
func (vtx VerifiedTx[T]) Content() T {
	return vtx.tx.content
}

// Sign returns the creator's signature.
func (vtx VerifiedTx[T]) Sign() signature.Signature {
	return vtx.tx.sign
}

// Unverified drops the verified state, returning the plain transaction.
// Downgrading is always safe; only the reverse requires a check.
func (vtx VerifiedTx[T]) Unverified() Tx[T] {
	return vtx.tx
}

// Hash implements the merkle Hashable interface. A transaction's merkle
// leaf is the digest of its signature bytes.
func (vtx VerifiedTx[T]) Hash() digest.Digest {
	return digest.Hash(vtx.tx.sign.Bytes())
}

// Equals implements the merkle Hashable interface. Two transactions with
// the same signature are the same transaction.
func (vtx VerifiedTx[T]) Equals(other VerifiedTx[T]) bool {
	return vtx.tx.sign.Equal(other.tx.sign)
}

// MarshalJSON implements the json.Marshaler interface. The wire shape is
// identical to an unverified transaction.
func (vtx VerifiedTx[T]) MarshalJSON() ([]byte, error) {
	return vtx.tx.MarshalJSON()
}

// signBytes builds the signature preimage for a transaction.
func signBytes[T byteorder.Appender](account signature.Account, timestamp Timestamp, content T) []byte {
	return byteorder.NewBuilder().
		Append(account).
		Append(timestamp).
		Append(content).
		Bytes()
}
