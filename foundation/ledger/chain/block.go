package chain

import (
	"encoding/binary"
	"encoding/json"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/byteorder"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/digest"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/merkle"
)

// Header is the envelope that seals a block's transactions under proof of
// work. Its digest covers every field except the digest itself and is
// recomputed eagerly whenever the nonce changes; there is no cached or
// stale digest state.
type Header struct {
	height         uint64
	timestamp      Timestamp
	previousDigest digest.Digest
	difficulty     Difficulty
	merkleRoot     digest.Digest
	nonce          uint64
	digest         digest.Digest
}

// headerJSON is the wire shape of a header.
type headerJSON struct {
	Height         uint64        `json:"height"`
	Timestamp      Timestamp     `json:"timestamp"`
	PreviousDigest digest.Digest `json:"previous_digest"`
	Difficulty     Difficulty    `json:"difficulty"`
	MerkleRoot     digest.Digest `json:"merkle_root"`
	Nonce          uint64        `json:"nonce"`
	Digest         digest.Digest `json:"digest"`
}

// NewHeader builds a header over the given transactions, computing their
// merkle root and the initial digest. An empty transaction list has no
// merkle root, so header creation fails with ErrEmptyTransactions.
func NewHeader[T byteorder.Appender](height uint64, timestamp Timestamp, previousDigest digest.Digest, difficulty Difficulty, txs []VerifiedTx[T]) (Header, error) {
	root, ok := merkle.Root(txs)
	if !ok {
		return Header{}, ErrEmptyTransactions
	}

	h := Header{
		height:         height,
		timestamp:      timestamp,
		previousDigest: previousDigest,
		difficulty:     difficulty,
		merkleRoot:     root,
	}
	h.digest = h.computeDigest()

	return h, nil
}

// Height returns the block height.
func (h Header) Height() uint64 {
	return h.height
}

// Timestamp returns when the block was assembled.
func (h Header) Timestamp() Timestamp {
	return h.timestamp
}

// PreviousDigest returns the digest of the preceding block's header.
func (h Header) PreviousDigest() digest.Digest {
	return h.previousDigest
}

// Difficulty returns the proof-of-work requirement the header digest must
// satisfy.
func (h Header) Difficulty() Difficulty {
	return h.difficulty
}

// MerkleRoot returns the commitment to the block's transactions.
func (h Header) MerkleRoot() digest.Digest {
	return h.merkleRoot
}

// Nonce returns the current nonce.
func (h Header) Nonce() uint64 {
	return h.nonce
}

// Digest returns the header's stored digest.
func (h Header) Digest() digest.Digest {
	return h.digest
}

// SetNonce mutates the nonce and synchronously recomputes the digest.
// This is the primitive the external mining search drives: headers are
// plain values, so each search worker can clone one and walk its own
// nonce range independently.
func (h *Header) SetNonce(nonce uint64) {
	h.nonce = nonce
	h.digest = h.computeDigest()
}

// AppendBytes appends the canonical header encoding, the digest preimage.
// The field order and endianness are protocol constants: height big
// endian 8 bytes, timestamp little endian 8 bytes, previous digest raw,
// difficulty little endian 8 bytes, merkle root raw, nonce little endian
// 8 bytes. The digest field itself is excluded.
func (h Header) AppendBytes(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint64(buf, h.height)
	buf = h.timestamp.AppendBytes(buf)
	buf = h.previousDigest.AppendBytes(buf)
	buf = h.difficulty.AppendBytes(buf)
	buf = h.merkleRoot.AppendBytes(buf)
	buf = binary.LittleEndian.AppendUint64(buf, h.nonce)

	return buf
}

// computeDigest hashes the canonical header bytes.
func (h Header) computeDigest() digest.Digest {
	return digest.Hash(byteorder.NewBuilder().Append(h).Bytes())
}

// MarshalJSON implements the json.Marshaler interface.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(headerJSON{
		Height:         h.height,
		Timestamp:      h.timestamp,
		PreviousDigest: h.previousDigest,
		Difficulty:     h.difficulty,
		MerkleRoot:     h.merkleRoot,
		Nonce:          h.nonce,
		Digest:         h.digest,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface. The stored
// digest is taken as claimed; whether it matches the fields is a block
// verification concern, not a parse concern.
func (h *Header) UnmarshalJSON(data []byte) error {
	var wire headerJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	h.height = wire.Height
	h.timestamp = wire.Timestamp
	h.previousDigest = wire.PreviousDigest
	h.difficulty = wire.Difficulty
	h.merkleRoot = wire.MerkleRoot
	h.nonce = wire.Nonce
	h.digest = wire.Digest

	return nil
}

// =============================================================================

// PreviousDigestFunc is the caller-supplied chain-link predicate: given a
// header, it reports whether the header's previous digest is consistent
// with the caller's view of the chain.
type PreviousDigestFunc func(Header) bool

// Block is a header plus its ordered transactions, not yet verified as a
// whole. The transactions are individually verified before construction;
// block verification checks the envelope, never the signatures again.
type Block[T byteorder.Appender] struct {
	header Header
	txs    []VerifiedTx[T]
}

// NewBlock constructs an unverified block from a header and the verified
// transactions it is expected to commit to.
func NewBlock[T byteorder.Appender](header Header, txs []VerifiedTx[T]) Block[T] {
	own := make([]VerifiedTx[T], len(txs))
	copy(own, txs)

	return Block[T]{
		header: header,
		txs:    own,
	}
}

// Header returns a copy of the block's header.
func (b Block[T]) Header() Header {
	return b.header
}

// Transactions returns the block's transactions in order.
func (b Block[T]) Transactions() []VerifiedTx[T] {
	out := make([]VerifiedTx[T], len(b.txs))
	copy(out, b.txs)
	return out
}

// SetNonce mutates the header nonce, recomputing the header digest. This
// is the block's only mutable access, reserved for the external
// proof-of-work search.
func (b *Block[T]) SetNonce(nonce uint64) {
	b.header.SetNonce(nonce)
}

// Verify runs the block validation pipeline in its fixed order, stopping
// at the first failure:
//
//  1. the transaction list must not be empty
//  2. the recomputed merkle root must match the header
//  3. the stored header digest must satisfy the difficulty
//  4. the digest recomputed from the header fields must match the stored one
//  5. the caller's previous-digest predicate must accept the header
//
// Only then does the block reach the verified state. Content-level
// business rules are out of scope here and remain the caller's job.
func (b Block[T]) Verify(previousDigestOK PreviousDigestFunc) (VerifiedBlock[T], error) {
	root, ok := merkle.Root(b.txs)
	if !ok {
		return VerifiedBlock[T]{}, ErrEmptyTransactions
	}

	if !root.Equal(b.header.merkleRoot) {
		return VerifiedBlock[T]{}, ErrMerkleRootMismatch
	}

	if !b.header.difficulty.VerifyDigest(b.header.digest) {
		return VerifiedBlock[T]{}, ErrProofOfWork
	}

	if !b.header.computeDigest().Equal(b.header.digest) {
		return VerifiedBlock[T]{}, ErrDigestMismatch
	}

	if !previousDigestOK(b.header) {
		return VerifiedBlock[T]{}, ErrPreviousDigestMismatch
	}

	return VerifiedBlock[T]{block: b}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (b Block[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Header       Header          `json:"header"`
		Transactions []VerifiedTx[T] `json:"transactions"`
	}{
		Header:       b.header,
		Transactions: b.txs,
	})
}

// =============================================================================

// VerifiedBlock is a block that passed the full verification pipeline.
// It is only reachable through Block.Verify.
type VerifiedBlock[T byteorder.Appender] struct {
	block Block[T]
}

// Header returns a copy of the block's header.
func (vb VerifiedBlock[T]) Header() Header {
	return vb.block.header
}

// Transactions returns the block's transactions in order.
func (vb VerifiedBlock[T]) Transactions() []VerifiedTx[T] {
	return vb.block.Transactions()
}

// MarshalJSON implements the json.Marshaler interface. The wire shape is
// identical to an unverified block.
func (vb VerifiedBlock[T]) MarshalJSON() ([]byte, error) {
	return vb.block.MarshalJSON()
}

// =============================================================================

// BlockData is the untrusted wire shape of a block. Its transactions
// decode as unverified values: each must pass Verify before a Block can
// be rebuilt from external data.
type BlockData[T byteorder.Appender] struct {
	Header       Header  `json:"header"`
	Transactions []Tx[T] `json:"transactions"`
}

// Verify checks every transaction and, on success, assembles an
// unverified Block ready for the block-level pipeline. The first failing
// transaction aborts the whole conversion.
func (bd BlockData[T]) Verify() (Block[T], error) {
	txs := make([]VerifiedTx[T], 0, len(bd.Transactions))
	for _, tx := range bd.Transactions {
		vtx, err := tx.Verify()
		if err != nil {
			return Block[T]{}, err
		}
		txs = append(txs, vtx)
	}

	return NewBlock(bd.Header, txs), nil
}
