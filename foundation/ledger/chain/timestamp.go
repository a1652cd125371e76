// Package chain implements the structural core of the jellyfish ledger:
// timestamps, proof-of-work difficulty, signed transactions, and blocks,
// with an explicit unverified/verified type split so attacker-supplied
// data can never be mistaken for checked data. Everything here is pure
// computation; the only caller-visible mutation is the header nonce used
// by the external mining search.
package chain

import (
	"encoding/binary"
	"time"
)

// Timestamp is a duration from the Unix epoch (1970-01-01 00:00:00 UTC)
// in nanoseconds. It is caller supplied and not guaranteed monotonic.
type Timestamp int64

// Now returns the current timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UnixNano())
}

// Nanos returns the unix timestamp in nanoseconds.
func (t Timestamp) Nanos() int64 {
	return int64(t)
}

// Time returns the timestamp as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t))
}

// AppendBytes appends the canonical encoding: 8 bytes little endian.
func (t Timestamp) AppendBytes(buf []byte) []byte {
	return binary.LittleEndian.AppendUint64(buf, uint64(t))
}
