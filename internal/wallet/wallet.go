// Package wallet owns a single secp256k1 keypair and builds signed
// transactions against a UTXO set.
package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gophercoin/gophercoin/pkg/crypto"
	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// Key-file I/O errors, surfaced as distinct kinds per spec §4.3 rather than
// ever silently regenerating a key.
var (
	ErrKeyRead   = errors.New("key-read")
	ErrKeyWrite  = errors.New("key-write")
	ErrKeyCreate = errors.New("key-create")
)

// Wallet holds the node's private key and the public address derived from
// it.
type Wallet struct {
	key     *crypto.PrivateKey
	address types.Address
}

// Load reads the private key from path. If the file does not exist, a
// fresh key is generated, its parent directory created, and the hex-encoded
// scalar written once. On any later call against the same path the
// existing key is loaded unchanged — key creation is one-time-only.
func Load(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		key, err := crypto.PrivateKeyFromHex(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrKeyRead, path, err)
		}
		return newWallet(key), nil
	case os.IsNotExist(err):
		return create(path)
	default:
		return nil, fmt.Errorf("%w: %s: %v", ErrKeyRead, path, err)
	}
}

func create(path string) (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyCreate, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrKeyWrite, path, err)
		}
	}
	if err := os.WriteFile(path, []byte(key.SerializeHex()), 0600); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrKeyWrite, path, err)
	}
	return newWallet(key), nil
}

func newWallet(key *crypto.PrivateKey) *Wallet {
	return &Wallet{key: key, address: types.Address(key.PublicKeyHex())}
}

// Address returns the wallet's public address (hex-encoded public key).
func (w *Wallet) Address() types.Address {
	return w.address
}

// CreateTransaction builds and signs a payment of amount to receiver,
// selecting inputs greedily from unspent. Returns ErrInsufficientFunds (via
// tx.SelectInputs) if unspent does not cover amount.
func (w *Wallet) CreateTransaction(receiver types.Address, amount uint64, unspent []tx.UnspentTxOut) (*tx.Transaction, error) {
	selected, total, err := tx.SelectInputs(unspent, amount)
	if err != nil {
		return nil, err
	}
	txn, err := tx.Build(selected, total, w.address, receiver, amount)
	if err != nil {
		return nil, err
	}
	if err := tx.Sign(txn, w.key, tx.UnspentLookup(selected)); err != nil {
		return nil, err
	}
	return txn, nil
}

// UTXOSource resolves every unspent output owned by an address, in the
// order the greedy selector should consider them.
type UTXOSource interface {
	ByAddress(address types.Address) []tx.UnspentTxOut
	Balance(address types.Address) uint64
}

// Balance returns the wallet's current balance per utxos.
func (w *Wallet) Balance(utxos UTXOSource) uint64 {
	return utxos.Balance(w.address)
}

// MyUnspent returns the wallet's unspent outputs per utxos.
func (w *Wallet) MyUnspent(utxos UTXOSource) []tx.UnspentTxOut {
	return utxos.ByAddress(w.address)
}
