package block

import (
	"encoding/json"

	"github.com/gophercoin/gophercoin/pkg/tx"
)

// canonicalData renders a block's transaction list as JSON for hashing.
// Struct field declaration order in pkg/tx (id, tx_ins, tx_outs /
// tx_out_id, tx_out_index, signature / address, amount) already matches
// the wire's canonical field order, so plain encoding/json suffices — no
// custom MarshalJSON is needed the way the teacher needed one for its
// hex-encoded byte fields.
func canonicalData(data []*tx.Transaction) string {
	if len(data) == 0 {
		return "[]"
	}
	b, err := json.Marshal(data)
	if err != nil {
		// Transaction only contains strings and uint64s; marshaling can't
		// fail for well-formed values constructed through this package.
		panic("block: marshal transaction data: " + err.Error())
	}
	return string(b)
}
