// This program seals a block: it takes unverified transactions, verifies
// each one, builds the header, performs the proof-of-work search, and
// writes the sealed block in wire form. The chain core owns the digest
// rules; this tool owns the search scheduling, which is exactly the split
// the protocol expects.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/chain"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/digest"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/miner"
	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/record"
	"github.com/Amelia10007/jellyfish-chain/foundation/logger"
	"github.com/ardanlabs/conf/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("MINER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Seal struct {
			TransFile      string `conf:"default:zblock/trans.json"`
			OutputFile     string `conf:"default:zblock/block.json"`
			Height         uint64 `conf:"default:1"`
			PreviousDigest string `conf:"default:0000000000000000000000000000000000000000000000000000000000000000"`
			Difficulty     uint64 `conf:"default:16"`
			Workers        int    `conf:"default:4"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "MINER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting seal", "version", build)
	defer log.Infow("seal complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// Every run gets its own trace id so log lines from concurrent runs
	// can be told apart.
	traceID := uuid.NewString()
	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "traceid", traceID)
	}

	// =========================================================================
	// Load and verify the transactions

	data, err := os.ReadFile(cfg.Seal.TransFile)
	if err != nil {
		return fmt.Errorf("reading transactions: %w", err)
	}

	var unverified []chain.Tx[record.Entry]
	if err := json.Unmarshal(data, &unverified); err != nil {
		return fmt.Errorf("parsing transactions: %w", err)
	}
	if len(unverified) == 0 {
		return errors.New("no transactions to seal")
	}

	txs := make([]chain.VerifiedTx[record.Entry], 0, len(unverified))
	for i, tx := range unverified {
		vtx, err := tx.Verify()
		if err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, vtx)
	}
	ev("seal: verified transactions[%d]", len(txs))

	// =========================================================================
	// Build the header and search

	var previous digest.Digest
	if err := previous.UnmarshalText([]byte(cfg.Seal.PreviousDigest)); err != nil {
		return fmt.Errorf("parsing previous digest: %w", err)
	}

	header, err := chain.NewHeader(cfg.Seal.Height, chain.Now(), previous, chain.Difficulty(cfg.Seal.Difficulty), txs)
	if err != nil {
		return fmt.Errorf("building header: %w", err)
	}

	// The search is CPU bound and unbounded in time; a signal cancels it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	solved, err := miner.Search(ctx, header, miner.Config{
		Workers: cfg.Seal.Workers,
		Ev:      ev,
	})
	if err != nil {
		return fmt.Errorf("searching nonce: %w", err)
	}

	// =========================================================================
	// Assemble, self-check, and write the block

	block := chain.NewBlock(solved, txs)

	linked := func(h chain.Header) bool { return h.PreviousDigest().Equal(previous) }
	if _, err := block.Verify(linked); err != nil {
		return fmt.Errorf("self-checking sealed block: %w", err)
	}

	doc, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("marshaling block: %w", err)
	}

	if err := os.WriteFile(cfg.Seal.OutputFile, doc, 0644); err != nil {
		return fmt.Errorf("writing block: %w", err)
	}
	ev("seal: wrote block: height[%d] nonce[%d] digest[%s]", solved.Height(), solved.Nonce(), solved.Digest())

	return nil
}
