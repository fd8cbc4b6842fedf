package tx

import (
	"errors"
	"fmt"

	"github.com/gophercoin/gophercoin/pkg/crypto"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// UTXO-aware validation errors.
var (
	ErrInputNotFound   = errors.New("referenced output not found")
	ErrInvalidSig      = errors.New("invalid signature")
	ErrAmountMismatch  = errors.New("input total does not equal output total")
	ErrNotCoinbase     = errors.New("expected a coinbase transaction")
	ErrBadCoinbaseAmt  = errors.New("coinbase amount does not match the block reward")
	ErrBadCoinbaseOuts = errors.New("coinbase transaction must have exactly one output")
)

// UTXOLookup resolves an outpoint to the output it refers to. It is the read
// surface the UTXO set exposes to transaction validation.
type UTXOLookup interface {
	Find(op types.Outpoint) (TxOut, bool)
}

// Validate performs full validation of a non-coinbase transaction: shape,
// that every input resolves to an unspent output, that the input's
// signature verifies against that output's owning address, and that the
// total spent exactly equals the total created (the protocol allows no
// transaction fees).
func (t *Transaction) Validate(utxos UTXOLookup) error {
	if err := t.ValidateStructure(); err != nil {
		return err
	}
	if t.IsCoinbase() {
		return fmt.Errorf("%w: use ValidateCoinbase for coinbase transactions", ErrNotCoinbase)
	}

	var totalIn uint64
	for i, in := range t.TxIns {
		out, ok := utxos.Find(in.Outpoint())
		if !ok {
			return fmt.Errorf("input %d (%s): %w", i, in.Outpoint(), ErrInputNotFound)
		}
		if !crypto.VerifySignatureHex(t.ID, in.Signature, string(out.Address)) {
			return fmt.Errorf("input %d: %w", i, ErrInvalidSig)
		}
		if totalIn > ^uint64(0)-out.Amount {
			return fmt.Errorf("input %d: %w", i, ErrOutputOverflow)
		}
		totalIn += out.Amount
	}

	totalOut, ok := t.TotalOutputValue()
	if !ok {
		return ErrOutputOverflow
	}
	if totalIn != totalOut {
		return fmt.Errorf("%w: inputs=%d outputs=%d", ErrAmountMismatch, totalIn, totalOut)
	}
	return nil
}

// ValidateCoinbase checks the distinguished minting transaction of a block:
// structurally sound, exactly one input marked coinbase at the given
// height, exactly one output, and that output's amount equals the block
// reward.
func (t *Transaction) ValidateCoinbase(height uint64, reward uint64) error {
	if !t.IsCoinbase() {
		return ErrNotCoinbase
	}
	if t.TxIns[0].TxOutIndex != height {
		return fmt.Errorf("%w: coinbase tx_out_index %d, want block height %d", ErrNotCoinbase, t.TxIns[0].TxOutIndex, height)
	}
	if len(t.TxOuts) != 1 {
		return ErrBadCoinbaseOuts
	}
	if t.TxOuts[0].Amount != reward {
		return fmt.Errorf("%w: got %d, want %d", ErrBadCoinbaseAmt, t.TxOuts[0].Amount, reward)
	}
	if t.ID != t.ComputeID() {
		return ErrBadID
	}
	return nil
}
