// Package miner implements the caller-side proof-of-work search the chain
// core deliberately leaves out. Headers are plain values carrying no
// shared state, so the search hands each worker its own copy and races
// disjoint nonce strides; the first digest satisfying the header's
// difficulty wins. Cancellation comes from the caller through the
// context.
package miner

import (
	"context"
	"crypto/rand"
	"errors"
	"math"
	"math/big"
	"sync"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/chain"
)

// EventHandler receives progress messages during the search.
type EventHandler func(v string, args ...any)

// Config holds the optional knobs of a search.
type Config struct {
	// Workers is the number of goroutines racing nonce ranges. Values
	// below 1 mean a single worker.
	Workers int

	// Ev receives progress events. Nil discards them.
	Ev EventHandler
}

// Search walks nonces from a random starting point until the header
// digest satisfies the header's own difficulty or the context is
// cancelled. The input header is not modified; the solved copy is
// returned.
func Search(ctx context.Context, header chain.Header, cfg Config) (chain.Header, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	ev := cfg.Ev
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	ev("miner: search: started: height[%d] difficulty[%d] workers[%d]", header.Height(), header.Difficulty(), workers)
	defer ev("miner: search: completed")

	// A random starting point keeps independent miners from walking the
	// same nonces in lock step.
	nBig, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return chain.Header{}, err
	}
	start := nBig.Uint64()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		found  bool
		solved chain.Header
	)

	search, cancel := context.WithCancel(ctx)
	defer cancel()

	for i := 0; i < workers; i++ {
		wg.Add(1)

		// Each worker owns an independent header copy and a disjoint
		// stride of the nonce space.
		go func(offset uint64) {
			defer wg.Done()

			h := header
			var attempts uint64

			for nonce := start + offset; ; nonce += uint64(workers) {
				attempts++
				if attempts%1_000_000 == 0 {
					ev("miner: search: worker[%d]: attempts[%d]", offset, attempts)
				}

				if search.Err() != nil {
					return
				}

				h.SetNonce(nonce)
				if !h.Difficulty().VerifyDigest(h.Digest()) {
					continue
				}

				mu.Lock()
				if !found {
					found = true
					solved = h
					ev("miner: search: worker[%d]: SOLVED: nonce[%d] attempts[%d]", offset, nonce, attempts)
				}
				mu.Unlock()

				cancel()
				return
			}
		}(uint64(i))
	}

	wg.Wait()

	if !found {
		if err := ctx.Err(); err != nil {
			ev("miner: search: CANCELLED")
			return chain.Header{}, err
		}

		return chain.Header{}, errors.New("search stopped without a solution")
	}

	return solved, nil
}
