package tx

import (
	"errors"
	"fmt"

	"github.com/gophercoin/gophercoin/pkg/types"
)

// ErrNoTransactions and ErrDuplicateBlockInput are the block-wide apply
// errors layered on top of per-transaction validation.
var (
	ErrNoTransactions      = errors.New("block has no transactions")
	ErrDuplicateBlockInput = errors.New("input spent more than once within the block")
)

// UTXODiff is the set of changes apply_block would make to a UTXO set: the
// outpoints it consumes and the new unspent outputs it creates. Callers
// apply it atomically once every transaction in the block has validated —
// on validation failure no diff is produced and the caller's UTXO set is
// left untouched.
type UTXODiff struct {
	Removed []types.Outpoint
	Added   map[types.Outpoint]TxOut
}

// FindDuplicateInput scans every non-coinbase transaction's inputs in data
// for an outpoint spent more than once across the whole set, and returns it
// if found. Per-transaction duplicates are already caught by each
// transaction's own ValidateStructure. Block.FindDuplicateInput shares this
// implementation rather than re-walking data itself.
func FindDuplicateInput(data []*Transaction) (types.Outpoint, bool) {
	seen := make(map[types.Outpoint]bool)
	for _, t := range data {
		for _, in := range t.TxIns {
			if in.IsCoinbase() {
				continue
			}
			op := in.Outpoint()
			if seen[op] {
				return op, true
			}
			seen[op] = true
		}
	}
	return types.Outpoint{}, false
}

// ApplyBlock validates every transaction in data against utxos — position 0
// must be a valid coinbase at blockIndex, no input outpoint may repeat
// across the whole block, and every other transaction must pass Validate —
// and, only if all of that holds, returns the UTXODiff the caller should
// commit to its UTXO set.
func ApplyBlock(data []*Transaction, utxos UTXOLookup, blockIndex uint64) (*UTXODiff, error) {
	if len(data) == 0 {
		return nil, ErrNoTransactions
	}
	if err := data[0].ValidateCoinbase(blockIndex, CoinbaseAmount); err != nil {
		return nil, fmt.Errorf("coinbase: %w", err)
	}
	if op, found := FindDuplicateInput(data); found {
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateBlockInput)
	}

	for i, t := range data {
		if i == 0 {
			continue
		}
		if err := t.Validate(utxos); err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
	}

	diff := &UTXODiff{Added: make(map[types.Outpoint]TxOut)}
	for _, t := range data {
		for _, in := range t.TxIns {
			if !in.IsCoinbase() {
				diff.Removed = append(diff.Removed, in.Outpoint())
			}
		}
		for i, out := range t.TxOuts {
			diff.Added[types.Outpoint{TxOutID: t.ID, TxOutIndex: uint64(i)}] = out
		}
	}
	return diff, nil
}
