package tx

import (
	"errors"
	"fmt"

	"github.com/gophercoin/gophercoin/pkg/types"
)

// Structural validation errors.
var (
	ErrNoInputs        = errors.New("transaction has no inputs")
	ErrNoOutputs       = errors.New("transaction has no outputs")
	ErrDuplicateInput  = errors.New("duplicate input")
	ErrZeroOutput      = errors.New("output amount is zero")
	ErrOutputOverflow  = errors.New("output amounts overflow")
	ErrBadID           = errors.New("transaction id does not match its contents")
	ErrMissingSig      = errors.New("input missing signature")
)

// ValidateStructure checks shape and internal consistency without touching
// the UTXO set: non-empty inputs/outputs, no duplicate inputs within the
// transaction, every output amount positive, no overflow, and the id field
// actually matches the recomputed id.
func (t *Transaction) ValidateStructure() error {
	if len(t.TxIns) == 0 {
		return ErrNoInputs
	}
	if len(t.TxOuts) == 0 {
		return ErrNoOutputs
	}

	seen := make(map[types.Outpoint]bool, len(t.TxIns))
	for i, in := range t.TxIns {
		op := in.Outpoint()
		if seen[op] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[op] = true
		if !in.IsCoinbase() && in.Signature == "" {
			return fmt.Errorf("input %d: %w", i, ErrMissingSig)
		}
	}

	var total uint64
	for i, out := range t.TxOuts {
		if out.Amount == 0 {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
		if total > ^uint64(0)-out.Amount {
			return fmt.Errorf("output %d: %w", i, ErrOutputOverflow)
		}
		total += out.Amount
	}

	if t.ID != t.ComputeID() {
		return ErrBadID
	}

	return nil
}
