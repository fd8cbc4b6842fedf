package types

import "fmt"

// Outpoint identifies a single output of a transaction: the transaction's id
// and the output's position within it.
type Outpoint struct {
	TxOutID    Hash   `json:"tx_out_id"`
	TxOutIndex uint64 `json:"tx_out_index"`
}

// IsCoinbase reports whether this outpoint is the synthetic input of a
// coinbase transaction, which has no real tx_out_id.
func (o Outpoint) IsCoinbase() bool {
	return o.TxOutID.IsZero()
}

// String renders the outpoint as "txid:index".
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxOutID, o.TxOutIndex)
}
