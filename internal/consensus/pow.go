package consensus

import (
	"github.com/gophercoin/gophercoin/pkg/block"
	"github.com/gophercoin/gophercoin/pkg/crypto"
	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

// Mine picks timestamp = now, then enumerates nonces from 0 upward until the
// resulting block's hash satisfies difficulty. The loop never suspends and
// has no upper bound — callers must not call Mine while holding a lock that
// blocks readers.
func Mine(index uint64, previousHash types.Hash, now int64, data []*tx.Transaction, difficulty uint64) *block.Block {
	for nonce := uint64(0); ; nonce++ {
		blk := block.New(index, previousHash, now, data, difficulty, nonce)
		if crypto.MeetsDifficulty(blk.Hash, difficulty) {
			return blk
		}
	}
}

// NextDifficulty computes the difficulty a block extending chain should
// carry. chain must be non-empty and ordered from genesis to tip.
//
// At the genesis tip, or whenever the tip's own index is not a multiple of
// DifficultyAdjustmentInterval, the new block simply carries forward the
// tip's difficulty. At an adjustment boundary, the interval's elapsed
// wall-clock time is compared against the expected duration and the
// retarget block's difficulty is nudged by exactly ±1.
func NextDifficulty(chain []*block.Block) uint64 {
	last := chain[len(chain)-1]
	i := uint64(len(chain))

	if last.Index == 0 || last.Index%DifficultyAdjustmentInterval != 0 {
		return last.Difficulty
	}

	prev := chain[i-DifficultyAdjustmentInterval]
	expected := int64(BlockGenerationInterval * DifficultyAdjustmentInterval)
	taken := last.Timestamp - prev.Timestamp

	switch {
	case taken < expected/2:
		return prev.Difficulty + 1
	case taken > expected*2:
		if prev.Difficulty == 0 {
			return 0
		}
		return prev.Difficulty - 1
	default:
		return prev.Difficulty
	}
}
