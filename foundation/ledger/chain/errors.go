package chain

import "errors"

// The distinct failure kinds of block verification, in pipeline order.
// Each is inspectable with errors.Is and all are recoverable: the core
// reports them to the caller and never terminates the process.
var (
	// ErrEmptyTransactions is returned when a header or block is built
	// over, or verified against, an empty transaction list. An empty list
	// has no merkle root, which is a hard failure distinct from a root
	// mismatch.
	ErrEmptyTransactions = errors.New("block has no transactions")

	// ErrMerkleRootMismatch is returned when the root recomputed from the
	// block's transactions differs from the root stored in the header.
	ErrMerkleRootMismatch = errors.New("merkle root does not match transactions")

	// ErrProofOfWork is returned when the stored header digest does not
	// satisfy the header's difficulty.
	ErrProofOfWork = errors.New("digest does not satisfy proof of work")

	// ErrDigestMismatch is returned when the digest recomputed from the
	// header fields differs from the stored digest, which catches any
	// tampering with header fields after the nonce search.
	ErrDigestMismatch = errors.New("header digest does not match header fields")

	// ErrPreviousDigestMismatch is returned when the caller's chain-link
	// predicate rejects the header.
	ErrPreviousDigestMismatch = errors.New("previous digest does not match chain")
)
