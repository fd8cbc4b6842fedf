package chain

import (
	"errors"
	"fmt"
	"time"

	"github.com/gophercoin/gophercoin/internal/utxo"
	"github.com/gophercoin/gophercoin/pkg/block"
	"github.com/gophercoin/gophercoin/pkg/tx"
)

// Block-append and chain-replacement errors.
var (
	ErrTimestampTooOld     = errors.New("block timestamp too far before parent")
	ErrTimestampTooFuture  = errors.New("block timestamp too far in the future")
	ErrInvalidTransactions = errors.New("block transactions failed to apply")
	ErrInvalidChain        = errors.New("incoming chain failed validation")
	ErrGenesisMismatch     = errors.New("incoming chain has a different genesis block")
	ErrNotMoreWork         = errors.New("incoming chain has no greater accumulated work")
)

// genesisBlock is the network's fixed genesis block, computed once at
// package init since it is a pure function of fixed constants.
var genesisBlock = CreateGenesisBlock()

// timestampSkew bounds how far a block's timestamp may drift from the local
// clock and from its parent, per spec §3's Chain invariants.
const timestampSkew = 60

// Append validates blk against the current tip and, if every check passes,
// applies its transactions to the UTXO set, appends it to the chain, and
// reconciles the mempool against the new UTXO state. On any failure the
// chain, UTXO set, and mempool are left exactly as they were.
func (c *Chain) Append(blk *block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendLocked(blk)
}

func (c *Chain) appendLocked(blk *block.Block) error {
	last := c.blocks[len(c.blocks)-1]

	if err := blk.ValidateStructure(); err != nil {
		return err
	}
	if err := blk.ValidateLink(last); err != nil {
		return err
	}

	now := time.Now().Unix()
	if blk.Timestamp <= last.Timestamp-timestampSkew {
		return fmt.Errorf("%w: block %d, parent %d", ErrTimestampTooOld, blk.Timestamp, last.Timestamp)
	}
	if blk.Timestamp >= now+timestampSkew {
		return fmt.Errorf("%w: block %d, now %d", ErrTimestampTooFuture, blk.Timestamp, now)
	}

	diff, err := tx.ApplyBlock(blk.Data, c.utxos, blk.Index)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransactions, err)
	}

	c.utxos.Apply(diff)
	c.blocks = append(c.blocks, blk)
	c.pool.Reconcile(c.utxos)
	return nil
}

// validateFullChain checks that chain starts at the network's fixed genesis
// block, that every block correctly links to and extends its predecessor,
// and that replaying every block's transactions from an empty UTXO set
// succeeds throughout. On success it returns the resulting UTXO set.
func validateFullChain(chain []*block.Block) (*utxo.Set, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: chain is empty", ErrInvalidChain)
	}
	if !chain[0].Hash.Equal(genesisBlock.Hash) {
		return nil, ErrGenesisMismatch
	}
	if err := chain[0].ValidateStructure(); err != nil {
		return nil, fmt.Errorf("%w: genesis: %v", ErrInvalidChain, err)
	}

	set := utxo.New()
	diff, err := tx.ApplyBlock(chain[0].Data, set, chain[0].Index)
	if err != nil {
		return nil, fmt.Errorf("%w: genesis: %v", ErrInvalidChain, err)
	}
	set.Apply(diff)

	for i := 1; i < len(chain); i++ {
		blk := chain[i]
		if err := blk.ValidateStructure(); err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrInvalidChain, blk.Index, err)
		}
		if err := blk.ValidateLink(chain[i-1]); err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrInvalidChain, blk.Index, err)
		}
		diff, err := tx.ApplyBlock(blk.Data, set, blk.Index)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrInvalidChain, blk.Index, err)
		}
		set.Apply(diff)
	}
	return set, nil
}

// ShouldReplace reports whether incoming is a validly-formed chain sharing
// this chain's genesis with strictly greater accumulated work — the sole
// criterion for adopting a remote chain.
func (c *Chain) ShouldReplace(incoming []*block.Block) bool {
	c.mu.RLock()
	localWork := AccumulatedWork(c.blocks)
	c.mu.RUnlock()

	_, err := validateFullChain(incoming)
	if err != nil {
		return false
	}
	return localWork < AccumulatedWork(incoming)
}

// ReplaceChain adopts incoming wholesale if it validates, shares this
// chain's genesis, and carries strictly more accumulated work. The UTXO set
// is rebuilt from incoming by full replay; the mempool is reconciled
// against the new UTXO state. On any failure, local state is untouched.
func (c *Chain) ReplaceChain(incoming []*block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	newUTXOs, err := validateFullChain(incoming)
	if err != nil {
		return err
	}
	if !incoming[0].Hash.Equal(c.blocks[0].Hash) {
		return ErrGenesisMismatch
	}
	if AccumulatedWork(c.blocks) >= AccumulatedWork(incoming) {
		return ErrNotMoreWork
	}

	c.blocks = append([]*block.Block(nil), incoming...)
	c.utxos = newUTXOs
	c.pool.Reconcile(c.utxos)
	return nil
}
