// Package chain implements the single-branch blockchain state machine:
// block sequencing, validation, mining, and chain replacement.
package chain

import (
	"sync"
	"time"

	"github.com/gophercoin/gophercoin/internal/consensus"
	"github.com/gophercoin/gophercoin/internal/mempool"
	"github.com/gophercoin/gophercoin/internal/utxo"
	"github.com/gophercoin/gophercoin/pkg/block"
	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// Chain owns the current block sequence plus the UTXO set and mempool
// derived from it. It is the single writer lock for all three: readers see
// chain and UTXO that always agree, and the mempool is only ever
// reconciled after the UTXO it reconciles against has already moved.
type Chain struct {
	mu     sync.RWMutex
	blocks []*block.Block
	utxos  *utxo.Set
	pool   *mempool.Pool
}

// New starts a fresh chain at the hard-coded genesis block, with an empty
// mempool and a UTXO set seeded by replaying genesis.
func New() *Chain {
	c := &Chain{
		blocks: []*block.Block{genesisBlock},
		utxos:  utxo.New(),
		pool:   mempool.New(),
	}
	c.utxos.ApplyTransaction(genesisBlock.Data[0])
	return c
}

// Blocks returns a copy of the current chain, genesis first.
func (c *Chain) Blocks() []*block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*block.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Tip returns the current last block.
func (c *Chain) Tip() *block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[len(c.blocks)-1]
}

// Height returns the index of the current tip.
func (c *Chain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[len(c.blocks)-1].Index
}

// UTXOSet returns the chain's derived UTXO set.
func (c *Chain) UTXOSet() *utxo.Set {
	return c.utxos
}

// Mempool returns the chain's pending-transaction pool.
func (c *Chain) Mempool() *mempool.Pool {
	return c.pool
}

// CurrentDifficulty returns the difficulty a block extending the current
// tip should carry.
func (c *Chain) CurrentDifficulty() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return consensus.NextDifficulty(c.blocks)
}

// AccumulatedWork returns Σ 2^difficulty over the current chain.
func (c *Chain) AccumulatedWork() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return AccumulatedWork(c.blocks)
}

// Mine builds and mines a block extending the current tip with the given
// transaction list as its data. Mining itself runs without holding the
// chain lock — only the tip snapshot used as the mining target is taken
// under lock — so mining never blocks readers.
func (c *Chain) Mine(data []*tx.Transaction) *block.Block {
	c.mu.RLock()
	tip := c.blocks[len(c.blocks)-1]
	index := tip.Index + 1
	difficulty := consensus.NextDifficulty(c.blocks)
	c.mu.RUnlock()

	return consensus.Mine(index, tip.Hash, time.Now().Unix(), data, difficulty)
}

// MineCoinbase mines a block paying the block subsidy to minerAddress plus
// every transaction currently pooled, then appends it.
func (c *Chain) MineCoinbase(minerAddress types.Address) (*block.Block, error) {
	c.mu.RLock()
	index := c.blocks[len(c.blocks)-1].Index + 1
	pooled := c.pool.All()
	c.mu.RUnlock()

	coinbase := tx.NewCoinbase(minerAddress, tx.CoinbaseAmount, index)
	data := append([]*tx.Transaction{coinbase}, pooled...)

	blk := c.Mine(data)
	if err := c.Append(blk); err != nil {
		return nil, err
	}
	return blk, nil
}

// MineTransfer mines a block carrying a coinbase reward plus a single
// transfer transaction, then appends it.
func (c *Chain) MineTransfer(minerAddress types.Address, transfer *tx.Transaction) (*block.Block, error) {
	c.mu.RLock()
	index := c.blocks[len(c.blocks)-1].Index + 1
	c.mu.RUnlock()

	coinbase := tx.NewCoinbase(minerAddress, tx.CoinbaseAmount, index)
	blk := c.Mine([]*tx.Transaction{coinbase, transfer})
	if err := c.Append(blk); err != nil {
		return nil, err
	}
	return blk, nil
}
