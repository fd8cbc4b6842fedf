// Package tx defines transaction types, id computation, and validation.
package tx

import (
	"strconv"
	"strings"

	"github.com/gophercoin/gophercoin/pkg/crypto"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// CoinbaseAmount is the fixed block subsidy paid to every block's coinbase
// output. The protocol has no halving schedule.
const CoinbaseAmount uint64 = 50

// TxIn references an unspent output being spent, and carries the signature
// authorizing the spend. A coinbase input has an empty TxOutID.
type TxIn struct {
	TxOutID    types.Hash `json:"tx_out_id"`
	TxOutIndex uint64     `json:"tx_out_index"`
	Signature  string     `json:"signature"`
}

// Outpoint returns the output this input references.
func (in TxIn) Outpoint() types.Outpoint {
	return types.Outpoint{TxOutID: in.TxOutID, TxOutIndex: in.TxOutIndex}
}

// IsCoinbase reports whether this is a coinbase input.
func (in TxIn) IsCoinbase() bool {
	return in.Outpoint().IsCoinbase()
}

// TxOut creates a new unspent output paying amount to address.
type TxOut struct {
	Address types.Address `json:"address"`
	Amount  uint64        `json:"amount"`
}

// Transaction is the unit of value transfer: it spends zero or more existing
// outputs (coinbase transactions spend none) and creates one or more new
// ones.
type Transaction struct {
	ID     types.Hash `json:"id"`
	TxIns  []TxIn     `json:"tx_ins"`
	TxOuts []TxOut    `json:"tx_outs"`
}

// ComputeID derives the transaction id by hashing the decimal/hex text
// concatenation of every input's (tx_out_id, tx_out_index) followed by every
// output's (address, amount). Signatures never enter the id, so signing a
// transaction never changes its own id.
func (t *Transaction) ComputeID() types.Hash {
	var sb strings.Builder
	for _, in := range t.TxIns {
		sb.WriteString(in.TxOutID.String())
		sb.WriteString(strconv.FormatUint(in.TxOutIndex, 10))
	}
	for _, out := range t.TxOuts {
		sb.WriteString(out.Address.String())
		sb.WriteString(strconv.FormatUint(out.Amount, 10))
	}
	return crypto.SHA256Hex([]byte(sb.String()))
}

// SetID recomputes and stores the transaction id in place.
func (t *Transaction) SetID() {
	t.ID = t.ComputeID()
}

// TotalOutputValue sums every output amount. Returns false if the sum
// overflows uint64, which callers treat as an invalid transaction rather
// than a panic.
func (t *Transaction) TotalOutputValue() (uint64, bool) {
	var total uint64
	for _, out := range t.TxOuts {
		if total > ^uint64(0)-out.Amount {
			return 0, false
		}
		total += out.Amount
	}
	return total, true
}

// IsCoinbase reports whether this transaction is a coinbase transaction: a
// single input with an empty tx_out_id.
func (t *Transaction) IsCoinbase() bool {
	return len(t.TxIns) == 1 && t.TxIns[0].IsCoinbase()
}
