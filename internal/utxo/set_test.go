package utxo

import (
	"testing"

	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

func op(id string, idx uint64) types.Outpoint {
	return types.Outpoint{TxOutID: types.Hash(id), TxOutIndex: idx}
}

func TestSet_AddFindHasRemove(t *testing.T) {
	s := New()
	o := op("tx1", 0)
	out := tx.TxOut{Address: "addr1", Amount: 10}

	if s.Has(o) {
		t.Fatal("empty set should not have outpoint")
	}
	s.Add(o, out)
	if !s.Has(o) {
		t.Fatal("set should have outpoint after Add")
	}
	got, ok := s.Find(o)
	if !ok || got != out {
		t.Fatalf("Find() = %v, %v; want %v, true", got, ok, out)
	}
	s.Remove(o)
	if s.Has(o) {
		t.Fatal("outpoint should be gone after Remove")
	}
	if _, ok := s.Find(o); ok {
		t.Fatal("Find() should fail after Remove")
	}
}

func TestSet_Add_DuplicateIsNoop(t *testing.T) {
	s := New()
	o := op("tx1", 0)
	s.Add(o, tx.TxOut{Address: "addr1", Amount: 10})
	s.Add(o, tx.TxOut{Address: "addr2", Amount: 99})

	got, _ := s.Find(o)
	if got.Address != "addr1" || got.Amount != 10 {
		t.Errorf("second Add should not overwrite, got %+v", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSet_Remove_Missing(t *testing.T) {
	s := New()
	s.Remove(op("missing", 0))
}

func TestSet_ByAddress_PreservesInsertionOrder(t *testing.T) {
	s := New()
	s.Add(op("tx1", 0), tx.TxOut{Address: "addr1", Amount: 10})
	s.Add(op("tx2", 0), tx.TxOut{Address: "addr2", Amount: 20})
	s.Add(op("tx3", 0), tx.TxOut{Address: "addr1", Amount: 30})
	s.Add(op("tx4", 1), tx.TxOut{Address: "addr1", Amount: 40})

	got := s.ByAddress("addr1")
	if len(got) != 3 {
		t.Fatalf("ByAddress() returned %d entries, want 3", len(got))
	}
	wantIDs := []types.Hash{"tx1", "tx3", "tx4"}
	for i, u := range got {
		if u.TxOutID != wantIDs[i] {
			t.Errorf("entry %d TxOutID = %s, want %s", i, u.TxOutID, wantIDs[i])
		}
	}
}

func TestSet_ByAddress_RemovalPreservesOrder(t *testing.T) {
	s := New()
	s.Add(op("tx1", 0), tx.TxOut{Address: "addr1", Amount: 10})
	s.Add(op("tx2", 0), tx.TxOut{Address: "addr1", Amount: 20})
	s.Add(op("tx3", 0), tx.TxOut{Address: "addr1", Amount: 30})

	s.Remove(op("tx2", 0))

	got := s.ByAddress("addr1")
	if len(got) != 2 || got[0].TxOutID != "tx1" || got[1].TxOutID != "tx3" {
		t.Errorf("ByAddress() after removal = %+v, want [tx1, tx3]", got)
	}
}

func TestSet_Balance(t *testing.T) {
	s := New()
	s.Add(op("tx1", 0), tx.TxOut{Address: "addr1", Amount: 10})
	s.Add(op("tx2", 0), tx.TxOut{Address: "addr2", Amount: 20})
	s.Add(op("tx3", 0), tx.TxOut{Address: "addr1", Amount: 30})

	if got := s.Balance("addr1"); got != 40 {
		t.Errorf("Balance(addr1) = %d, want 40", got)
	}
	if got := s.Balance("addr2"); got != 20 {
		t.Errorf("Balance(addr2) = %d, want 20", got)
	}
	if got := s.Balance("nobody"); got != 0 {
		t.Errorf("Balance(nobody) = %d, want 0", got)
	}
}

func TestSet_ApplyTransaction_Coinbase(t *testing.T) {
	s := New()
	coinbase := tx.NewCoinbase("miner", 50, 1)

	s.ApplyTransaction(coinbase)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got, ok := s.Find(types.Outpoint{TxOutID: coinbase.ID, TxOutIndex: 0})
	if !ok || got.Address != "miner" || got.Amount != 50 {
		t.Errorf("Find() = %+v, %v, want {miner 50}, true", got, ok)
	}
}

func TestSet_ApplyTransaction_SpendAndCreate(t *testing.T) {
	s := New()
	coinbase := tx.NewCoinbase("miner", 100, 1)
	s.ApplyTransaction(coinbase)

	spend := &tx.Transaction{
		TxIns: []tx.TxIn{{TxOutID: coinbase.ID, TxOutIndex: 0, Signature: "sig"}},
		TxOuts: []tx.TxOut{
			{Address: "recipient", Amount: 60},
			{Address: "miner", Amount: 40},
		},
	}
	spend.SetID()

	s.ApplyTransaction(spend)

	if s.Has(types.Outpoint{TxOutID: coinbase.ID, TxOutIndex: 0}) {
		t.Error("spent coinbase output should be removed")
	}
	if s.Balance("recipient") != 60 {
		t.Errorf("Balance(recipient) = %d, want 60", s.Balance("recipient"))
	}
	if s.Balance("miner") != 40 {
		t.Errorf("Balance(miner) = %d, want 40", s.Balance("miner"))
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSet_All_ReturnsEverySpendableOutput(t *testing.T) {
	s := New()
	s.Add(op("tx1", 0), tx.TxOut{Address: "a", Amount: 10})
	s.Add(op("tx2", 0), tx.TxOut{Address: "b", Amount: 20})

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d entries, want 2", len(all))
	}
	if all[0].Address != "a" || all[0].Amount != 10 {
		t.Errorf("All()[0] = %+v, want address a amount 10", all[0])
	}
	if all[1].Address != "b" || all[1].Amount != 20 {
		t.Errorf("All()[1] = %+v, want address b amount 20", all[1])
	}

	s.Remove(op("tx1", 0))
	if got := s.All(); len(got) != 1 || got[0].Address != "b" {
		t.Errorf("All() after Remove = %+v, want only b", got)
	}
}
