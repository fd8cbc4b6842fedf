package chain

import "github.com/gophercoin/gophercoin/pkg/block"

// AccumulatedWork sums 2^difficulty over every block in chain, the metric
// chain-replacement compares — total work, not raw length, so a shorter
// chain of harder blocks can still outweigh a longer easy one.
func AccumulatedWork(chain []*block.Block) uint64 {
	var total uint64
	for _, blk := range chain {
		total += uint64(1) << blk.Difficulty
	}
	return total
}
