// Package mempool manages unconfirmed transactions waiting for block
// inclusion.
package mempool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// Add errors. The mempool's admission check has exactly two rejection
// reasons: the transaction itself is invalid, or one of its inputs
// collides with an input already pooled.
var (
	ErrInvalidTx      = errors.New("invalid-tx")
	ErrInputCollision = errors.New("input-collision")
)

// Pool holds the set of currently pending transactions, indexed by id and
// by the outpoints their inputs spend so collisions are O(1) to detect.
type Pool struct {
	mu     sync.RWMutex
	txs    map[types.Hash]*tx.Transaction
	spends map[types.Outpoint]types.Hash
}

// New creates an empty mempool.
func New() *Pool {
	return &Pool{
		txs:    make(map[types.Hash]*tx.Transaction),
		spends: make(map[types.Outpoint]types.Hash),
	}
}

// Add validates transaction against utxos and, if it passes and none of its
// inputs collide with an already-pooled transaction, adds it to the pool.
// A transaction already present by id is accepted again as a no-op.
func (p *Pool) Add(transaction *tx.Transaction, utxos tx.UTXOLookup) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.txs[transaction.ID]; exists {
		return nil
	}

	if err := transaction.ValidateStructure(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTx, err)
	}
	if err := transaction.Validate(utxos); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTx, err)
	}

	for _, in := range transaction.TxIns {
		op := in.Outpoint()
		if conflict, exists := p.spends[op]; exists {
			return fmt.Errorf("%w: input %s already spent by %s", ErrInputCollision, op, conflict)
		}
	}

	p.txs[transaction.ID] = transaction
	for _, in := range transaction.TxIns {
		p.spends[in.Outpoint()] = transaction.ID
	}
	return nil
}

// Reconcile removes every pooled transaction any of whose inputs is no
// longer present in utxos, and returns the removed ids. Run after every
// block application.
func (p *Pool) Reconcile(utxos tx.UTXOLookup) []types.Hash {
	p.mu.Lock()
	defer p.mu.Unlock()

	var removed []types.Hash
	for id, t := range p.txs {
		for _, in := range t.TxIns {
			if _, ok := utxos.Find(in.Outpoint()); !ok {
				removed = append(removed, id)
				break
			}
		}
	}
	for _, id := range removed {
		p.removeLocked(id)
	}
	return removed
}

// Remove drops a transaction from the pool by id, if present.
func (p *Pool) Remove(id types.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(id)
}

func (p *Pool) removeLocked(id types.Hash) {
	t, exists := p.txs[id]
	if !exists {
		return
	}
	for _, in := range t.TxIns {
		delete(p.spends, in.Outpoint())
	}
	delete(p.txs, id)
}

// RemoveConfirmed drops every transaction that was included in a block.
func (p *Pool) RemoveConfirmed(transactions []*tx.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range transactions {
		p.removeLocked(t.ID)
	}
}

// Has reports whether a transaction id is currently pooled.
func (p *Pool) Has(id types.Hash) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, exists := p.txs[id]
	return exists
}

// Get retrieves a pooled transaction by id, or nil if absent.
func (p *Pool) Get(id types.Hash) *tx.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.txs[id]
}

// Count returns the number of pooled transactions.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}

// All returns every pooled transaction, in no particular order.
func (p *Pool) All() []*tx.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := make([]*tx.Transaction, 0, len(p.txs))
	for _, t := range p.txs {
		result = append(result, t)
	}
	return result
}
