// Package block defines the block type, its hash, and structural
// validation.
package block

import (
	"strconv"

	"github.com/gophercoin/gophercoin/pkg/crypto"
	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// Block is a single link in the chain: an index, a reference to its
// predecessor, the transactions it confirms, and the proof-of-work fields
// that seal it.
type Block struct {
	Index        uint64            `json:"index"`
	PreviousHash types.Hash        `json:"previous_hash"`
	Timestamp    int64             `json:"timestamp"`
	Data         []*tx.Transaction `json:"data"`
	Difficulty   uint64            `json:"difficulty"`
	Nonce        uint64            `json:"nonce"`
	Hash         types.Hash        `json:"hash"`
}

// New creates a block and stamps its hash from the given fields. It does no
// mining: whether the hash meets difficulty depends on the nonce passed in.
func New(index uint64, previousHash types.Hash, timestamp int64, data []*tx.Transaction, difficulty, nonce uint64) *Block {
	b := &Block{
		Index:        index,
		PreviousHash: previousHash,
		Timestamp:    timestamp,
		Data:         data,
		Difficulty:   difficulty,
		Nonce:        nonce,
	}
	b.Hash = b.ComputeHash()
	return b
}

// ComputeHash hashes the block's own fields: the decimal index, the
// previous hash, the decimal timestamp, the canonical-JSON-encoded
// transaction list, the decimal difficulty, and the decimal nonce,
// concatenated in that order. The stored Hash field is never itself part
// of its own preimage.
func (b *Block) ComputeHash() types.Hash {
	payload := canonicalData(b.Data)
	s := strconv.FormatUint(b.Index, 10) +
		b.PreviousHash.String() +
		strconv.FormatInt(b.Timestamp, 10) +
		payload +
		strconv.FormatUint(b.Difficulty, 10) +
		strconv.FormatUint(b.Nonce, 10)
	return crypto.SHA256Hex([]byte(s))
}

// SetHash recomputes and stores the block hash in place.
func (b *Block) SetHash() {
	b.Hash = b.ComputeHash()
}
