package types

import (
	"strings"
	"testing"
)

func TestOutpoint_IsCoinbase(t *testing.T) {
	coinbase := Outpoint{TxOutID: "", TxOutIndex: 7}
	if !coinbase.IsCoinbase() {
		t.Errorf("outpoint with empty tx_out_id should be a coinbase input regardless of index")
	}

	spent := Outpoint{TxOutID: "abc123", TxOutIndex: 0}
	if spent.IsCoinbase() {
		t.Errorf("outpoint with a real tx_out_id should not be a coinbase input")
	}
}

func TestOutpoint_String(t *testing.T) {
	o := Outpoint{TxOutID: "abc123", TxOutIndex: 2}
	s := o.String()
	if !strings.Contains(s, "abc123") || !strings.HasSuffix(s, ":2") {
		t.Errorf("String() = %q, want to contain txid and :index", s)
	}
}
