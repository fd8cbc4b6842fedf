// Package consensus implements proof-of-work mining and difficulty retarget.
package consensus

// Block generation and difficulty-adjustment constants (spec §4.5).
const (
	BlockGenerationInterval      = 10
	DifficultyAdjustmentInterval = 10
	TimestampInterval            = 60
)
