package miner_test

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/chain"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/digest"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/miner"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
)

// entry is a minimal transaction content for tests.
type entry string

func (e entry) AppendBytes(buf []byte) []byte {
	return append(buf, e...)
}

func testHeader(t *testing.T, difficulty chain.Difficulty) chain.Header {
	t.Helper()

	sa, err := signature.Generate(rand.Reader)
	if err != nil {
		t.Fatalf("Should be able to generate an account: %s", err)
	}

	txs := []chain.VerifiedTx[entry]{chain.Sign(sa, chain.Now(), entry("payload"))}

	header, err := chain.NewHeader(1, chain.Now(), digest.Hash([]byte("previous")), difficulty, txs)
	if err != nil {
		t.Fatalf("Should be able to build a header: %s", err)
	}

	return header
}

// =============================================================================

func Test_Search(t *testing.T) {
	header := testHeader(t, 4)

	solved, err := miner.Search(context.Background(), header, miner.Config{Workers: 4})
	if err != nil {
		t.Fatalf("Should be able to solve difficulty 4: %s", err)
	}

	if !solved.Difficulty().VerifyDigest(solved.Digest()) {
		t.Fatal("The returned header should satisfy its own difficulty.")
	}

	if !solved.MerkleRoot().Equal(header.MerkleRoot()) || solved.Height() != header.Height() {
		t.Fatal("The search must only change the nonce and digest.")
	}
}

func Test_SearchSingleWorker(t *testing.T) {
	header := testHeader(t, 1)

	solved, err := miner.Search(context.Background(), header, miner.Config{})
	if err != nil {
		t.Fatalf("Should be able to solve difficulty 1 with one worker: %s", err)
	}

	if !solved.Difficulty().VerifyDigest(solved.Digest()) {
		t.Fatal("The returned header should satisfy its own difficulty.")
	}
}

func Test_SearchCancelled(t *testing.T) {

	// A difficulty no nonce will satisfy in this lifetime.
	header := testHeader(t, 255)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := miner.Search(ctx, header, miner.Config{Workers: 2}); err == nil {
		t.Fatal("A cancelled search must report the context error.")
	}
}
