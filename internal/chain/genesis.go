package chain

import (
	"github.com/gophercoin/gophercoin/pkg/block"
	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// GenesisTimestamp and GenesisAddress are fixed at the hard-coded genesis
// moment of the network, matching every other node's hard-coded genesis
// block bit for bit.
const (
	GenesisTimestamp int64         = 1465154705
	GenesisAddress   types.Address = "02cceac81e0ba3c2a5e992b978e90e00acc1000a0e73a8f18ffd6aefbfc1e1bea9"
	GenesisAmount    uint64        = 50
)

// CreateGenesisBlock builds the network's fixed genesis block: height 0, a
// zero previous_hash, a single coinbase transaction paying GenesisAmount to
// GenesisAddress, and zero difficulty so it requires no mining.
func CreateGenesisBlock() *block.Block {
	coinbase := tx.NewCoinbase(GenesisAddress, GenesisAmount, 0)
	return block.New(0, types.ZeroHash, GenesisTimestamp, []*tx.Transaction{coinbase}, 0, 0)
}
