package chain_test

import (
	"bytes"
	"testing"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/chain"
)

func Test_TimestampByteOrder(t *testing.T) {
	ts := chain.Timestamp(3 + 256*2 + 65536*1)

	got := ts.AppendBytes(nil)
	exp := []byte{3, 2, 1, 0, 0, 0, 0, 0}

	if !bytes.Equal(got, exp) {
		t.Fatalf("timestamp bytes must be little endian, got %v exp %v", got, exp)
	}
}

func Test_TimestampNow(t *testing.T) {
	ts := chain.Now()

	if ts.Nanos() <= 0 {
		t.Fatalf("now should be after the epoch, got %d", ts.Nanos())
	}

	if ts.Time().UnixNano() != ts.Nanos() {
		t.Fatal("Time and Nanos should agree")
	}
}
