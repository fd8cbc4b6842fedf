package tx

import (
	"fmt"

	"github.com/gophercoin/gophercoin/pkg/crypto"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// UnspentTxOut is the subset of UTXO-set information the builder needs to
// select inputs and size a change output.
type UnspentTxOut struct {
	TxOutID    types.Hash
	TxOutIndex uint64
	Address    types.Address
	Amount     uint64
}

func (u UnspentTxOut) outpoint() types.Outpoint {
	return types.Outpoint{TxOutID: u.TxOutID, TxOutIndex: u.TxOutIndex}
}

// ErrInsufficientFunds is returned when the candidate inputs don't cover the
// requested amount.
var ErrInsufficientFunds = fmt.Errorf("insufficient funds")

// SelectInputs walks candidates in order, accumulating them until their
// total meets or exceeds amount. This is the spec's literal greedy
// in-iteration-order coin selection: no sorting, no least-waste heuristics.
func SelectInputs(candidates []UnspentTxOut, amount uint64) ([]UnspentTxOut, uint64, error) {
	var selected []UnspentTxOut
	var total uint64
	for _, u := range candidates {
		if total >= amount {
			break
		}
		selected = append(selected, u)
		total += u.Amount
	}
	if total < amount {
		return nil, 0, ErrInsufficientFunds
	}
	return selected, total, nil
}

// Build constructs an unsigned transaction spending selected inputs to pay
// toAddress the requested amount, returning any leftover as a change output
// back to fromAddress. The transaction id is computed but inputs carry no
// signature yet.
func Build(selected []UnspentTxOut, selectedTotal uint64, fromAddress, toAddress types.Address, amount uint64) (*Transaction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("amount must be greater than zero")
	}
	if selectedTotal < amount {
		return nil, ErrInsufficientFunds
	}

	t := &Transaction{}
	for _, u := range selected {
		t.TxIns = append(t.TxIns, TxIn{TxOutID: u.TxOutID, TxOutIndex: u.TxOutIndex})
	}
	t.TxOuts = append(t.TxOuts, TxOut{Address: toAddress, Amount: amount})
	if change := selectedTotal - amount; change > 0 {
		t.TxOuts = append(t.TxOuts, TxOut{Address: fromAddress, Amount: change})
	}
	t.SetID()
	return t, nil
}

// ErrUnknownUnspent and ErrAddressMismatch are sign_input's two distinct
// rejections: the referenced output isn't in utxos at all, or it exists but
// isn't owned by key.
var (
	ErrUnknownUnspent  = fmt.Errorf("no such unspent")
	ErrAddressMismatch = fmt.Errorf("address mismatch")
)

// SignInput signs input index of t with key, after checking that the output
// it claims to spend both exists in utxos and is owned by key. It returns
// the hex-encoded signature rather than writing it into t, so callers can
// also use it to re-derive a single input's signature in isolation.
func SignInput(t *Transaction, index int, key *crypto.PrivateKey, utxos UTXOLookup) (string, error) {
	in := t.TxIns[index]
	out, ok := utxos.Find(in.Outpoint())
	if !ok {
		return "", fmt.Errorf("input %d (%s): %w", index, in.Outpoint(), ErrUnknownUnspent)
	}
	if string(out.Address) != key.PublicKeyHex() {
		return "", fmt.Errorf("input %d: %w", index, ErrAddressMismatch)
	}
	sig, err := key.Sign(t.ID)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	return fmt.Sprintf("%x", sig), nil
}

// Sign signs every non-coinbase input with key, which must own every
// referenced output per utxos. All inputs of a single-key transaction share
// the same signature, since the id being signed doesn't vary per input.
func Sign(t *Transaction, key *crypto.PrivateKey, utxos UTXOLookup) error {
	for i := range t.TxIns {
		if t.TxIns[i].IsCoinbase() {
			continue
		}
		sig, err := SignInput(t, i, key, utxos)
		if err != nil {
			return err
		}
		t.TxIns[i].Signature = sig
	}
	return nil
}

// UnspentLookup adapts the slice of unspents selected for a transaction's
// inputs into the UTXOLookup Sign needs to re-verify each input against
// before signing it.
type UnspentLookup []UnspentTxOut

func (u UnspentLookup) Find(op types.Outpoint) (TxOut, bool) {
	for _, c := range u {
		if c.outpoint() == op {
			return TxOut{Address: c.Address, Amount: c.Amount}, true
		}
	}
	return TxOut{}, false
}

// NewCoinbase builds the unsigned, unsignable coinbase transaction that
// mints a single output of amount to address at the given block height. Its
// single input carries an empty tx_out_id and a tx_out_index equal to the
// height, which is what lets two coinbase transactions at different heights
// produce distinct ids despite otherwise-identical shape.
func NewCoinbase(address types.Address, amount uint64, height uint64) *Transaction {
	t := &Transaction{
		TxIns:  []TxIn{{TxOutID: types.ZeroHash, TxOutIndex: height}},
		TxOuts: []TxOut{{Address: address, Amount: amount}},
	}
	t.SetID()
	return t
}
