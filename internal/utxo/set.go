// Package utxo maintains the set of currently unspent transaction outputs.
package utxo

import (
	"sync"

	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// Set is the in-memory, insertion-ordered store of unspent outputs. Order
// is preserved (not just the map's incidental order) because the wallet's
// coin selection walks candidates in the order they were added.
type Set struct {
	mu      sync.RWMutex
	order   []types.Outpoint
	outputs map[types.Outpoint]tx.TxOut
}

// New creates an empty UTXO set.
func New() *Set {
	return &Set{outputs: make(map[types.Outpoint]tx.TxOut)}
}

// Find resolves an outpoint to its output, satisfying tx.UTXOLookup.
func (s *Set) Find(op types.Outpoint) (tx.TxOut, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, ok := s.outputs[op]
	return out, ok
}

// Add inserts a new unspent output. It is a no-op if the outpoint is
// already present (callers should not normally re-add a live output).
func (s *Set) Add(op types.Outpoint, out tx.TxOut) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.outputs[op]; exists {
		return
	}
	s.outputs[op] = out
	s.order = append(s.order, op)
}

// Remove deletes an outpoint, marking it spent.
func (s *Set) Remove(op types.Outpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.outputs[op]; !exists {
		return
	}
	delete(s.outputs, op)
	for i, o := range s.order {
		if o == op {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Has reports whether an outpoint is currently unspent.
func (s *Set) Has(op types.Outpoint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.outputs[op]
	return ok
}

// Len returns the number of unspent outputs.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// ByAddress returns every unspent output owned by address, in the order
// they were added to the set — the order the wallet's greedy input
// selection depends on.
func (s *Set) ByAddress(address types.Address) []tx.UnspentTxOut {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []tx.UnspentTxOut
	for _, op := range s.order {
		out := s.outputs[op]
		if out.Address != address {
			continue
		}
		result = append(result, tx.UnspentTxOut{
			TxOutID:    op.TxOutID,
			TxOutIndex: op.TxOutIndex,
			Address:    out.Address,
			Amount:     out.Amount,
		})
	}
	return result
}

// All returns every unspent output in the set, in insertion order.
func (s *Set) All() []tx.UnspentTxOut {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]tx.UnspentTxOut, 0, len(s.order))
	for _, op := range s.order {
		out := s.outputs[op]
		result = append(result, tx.UnspentTxOut{
			TxOutID:    op.TxOutID,
			TxOutIndex: op.TxOutIndex,
			Address:    out.Address,
			Amount:     out.Amount,
		})
	}
	return result
}

// Balance sums every unspent output owned by address.
func (s *Set) Balance(address types.Address) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total uint64
	for _, op := range s.order {
		if out := s.outputs[op]; out.Address == address {
			total += out.Amount
		}
	}
	return total
}

// Apply commits a tx.UTXODiff produced by tx.ApplyBlock: every removed
// outpoint is dropped and every added output is inserted. Callers must have
// already validated the block the diff came from; Apply does no validation
// itself.
func (s *Set) Apply(diff *tx.UTXODiff) {
	for _, op := range diff.Removed {
		s.Remove(op)
	}
	for op, out := range diff.Added {
		s.Add(op, out)
	}
}

// ApplyTransaction removes every output this transaction spends and adds
// the outputs it creates. Callers must have already validated the
// transaction; ApplyTransaction does no validation itself.
func (s *Set) ApplyTransaction(t *tx.Transaction) {
	for _, in := range t.TxIns {
		if in.IsCoinbase() {
			continue
		}
		s.Remove(in.Outpoint())
	}
	for i, out := range t.TxOuts {
		s.Add(types.Outpoint{TxOutID: t.ID, TxOutIndex: uint64(i)}, out)
	}
}
