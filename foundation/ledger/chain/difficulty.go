package chain

import (
	"encoding/binary"
	"math/bits"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/digest"
)

// MinDifficulty is the protocol floor for Ease. Easing never demands
// fewer than one leading zero bit.
const MinDifficulty Difficulty = 1

// Difficulty is the number of leading zero bits a header digest must have
// before the block it seals is acceptable.
type Difficulty uint64

// Raise returns a condition more difficult by one step.
func (d Difficulty) Raise() Difficulty {
	return d + 1
}

// Ease returns a condition easier by one step, floored at MinDifficulty.
func (d Difficulty) Ease() Difficulty {
	if d <= MinDifficulty {
		return MinDifficulty
	}

	return d - 1
}

// VerifyDigest reports whether the given digest satisfies the difficulty.
func (d Difficulty) VerifyDigest(dig digest.Digest) bool {
	return leadingZeroBits(dig) >= uint64(d)
}

// AppendBytes appends the canonical encoding: 8 bytes little endian.
func (d Difficulty) AppendBytes(buf []byte) []byte {
	return binary.LittleEndian.AppendUint64(buf, uint64(d))
}

// leadingZeroBits counts zero bits from the most significant end of the
// digest, stopping at the first set bit.
func leadingZeroBits(dig digest.Digest) uint64 {
	var count uint64

	for _, b := range dig {
		zeros := uint64(bits.LeadingZeros8(b))
		count += zeros
		if zeros < 8 {
			break
		}
	}

	return count
}
