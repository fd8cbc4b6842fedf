package block

import (
	"errors"
	"fmt"

	"github.com/gophercoin/gophercoin/pkg/crypto"
	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// Structural validation errors.
var (
	ErrNoData           = errors.New("block has no transactions")
	ErrBadIndex         = errors.New("block index does not follow previous block")
	ErrBadPreviousHash  = errors.New("previous_hash does not match previous block's hash")
	ErrBadHash          = errors.New("stored hash does not match the recomputed hash")
	ErrInsufficientPoW  = errors.New("hash does not meet the stated difficulty")
	ErrNoCoinbase       = errors.New("first transaction must be the coinbase transaction")
	ErrMultipleCoinbase = errors.New("only the first transaction may be coinbase")
)

// ValidateStructure checks a block's internal consistency in isolation:
// non-empty transaction list, a correctly placed single coinbase
// transaction, a hash that matches its own recomputation, and proof of work
// meeting the stated difficulty. It does not consult chain state — that is
// ValidateLink's job.
func (b *Block) ValidateStructure() error {
	if len(b.Data) == 0 {
		return ErrNoData
	}
	if !b.Data[0].IsCoinbase() {
		return ErrNoCoinbase
	}
	for _, t := range b.Data[1:] {
		if t.IsCoinbase() {
			return ErrMultipleCoinbase
		}
	}
	if b.Hash != b.ComputeHash() {
		return fmt.Errorf("%w: stored %s, computed %s", ErrBadHash, b.Hash, b.ComputeHash())
	}
	if !crypto.MeetsDifficulty(b.Hash, b.Difficulty) {
		return fmt.Errorf("%w: hash %s, difficulty %d", ErrInsufficientPoW, b.Hash, b.Difficulty)
	}
	return nil
}

// ValidateLink checks that b correctly extends prev: consecutive index and
// a matching previous_hash.
func (b *Block) ValidateLink(prev *Block) error {
	if b.Index != prev.Index+1 {
		return fmt.Errorf("%w: block index %d, previous index %d", ErrBadIndex, b.Index, prev.Index)
	}
	if !b.PreviousHash.Equal(prev.Hash) {
		return fmt.Errorf("%w: block previous_hash %s, previous block hash %s", ErrBadPreviousHash, b.PreviousHash, prev.Hash)
	}
	return nil
}

// FindDuplicateInput reports an outpoint spent more than once across b.Data,
// if any. It's a thin wrapper over tx.FindDuplicateInput, the same scan
// ApplyBlock runs before committing a block's transactions.
func (b *Block) FindDuplicateInput() (types.Outpoint, bool) {
	return tx.FindDuplicateInput(b.Data)
}
