package tx

import (
	"encoding/json"
	"testing"
)

// FuzzTxUnmarshal checks that arbitrary JSON input never panics when
// unmarshaled into a Transaction and run through its validation paths.
func FuzzTxUnmarshal(f *testing.F) {
	f.Add([]byte(`{"id":"","tx_ins":[{"tx_out_id":"","tx_out_index":0,"signature":""}],"tx_outs":[{"address":"","amount":1000}]}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`{"tx_ins":null,"tx_outs":null}`))
	f.Add([]byte(`{"id":"deadbeef","tx_ins":[],"tx_outs":[]}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var txn Transaction
		if err := json.Unmarshal(data, &txn); err != nil {
			return
		}
		txn.ComputeID()
		txn.ValidateStructure()
		txn.Validate(mapUTXOLookup{})
		txn.ValidateCoinbase(0, 0)
	})
}
