package bpu

import "github.com/behrlich/go-bpu/internal/constants"

// Config holds the runtime tuning knobs recognized by a Bpu.
type Config struct {
	// TxBudgetBytes is the max bytes the transmitter may write per tick.
	TxBudgetBytes uint16

	// TxMinFree is the minimum free space the transport must report
	// before a new frame may be started.
	TxMinFree uint16

	// TxChunkMax is the max bytes per single TxWriteSome call (0 =
	// unlimited).
	TxChunkMax uint16

	// CoalesceWindowMs is the time window for event coalescing (0
	// disables event coalescing; job coalescing is unconditional and
	// unaffected by this knob).
	CoalesceWindowMs uint16

	// AgedMs is the threshold past which a queued event is "aged"
	// (counters only, does not change routing).
	AgedMs uint16

	// EnableDegrade: when the tick budget cannot fit a job, drop TELEM
	// jobs instead of requeuing them.
	EnableDegrade bool
}

// DefaultConfig returns the default tuning numbers from
// internal/constants.
func DefaultConfig() Config {
	return Config{
		TxBudgetBytes:    constants.DefaultTxBudgetBytes,
		TxMinFree:        constants.DefaultTxMinFree,
		TxChunkMax:       constants.DefaultTxChunkMax,
		CoalesceWindowMs: constants.DefaultCoalesceWindowMs,
		AgedMs:           constants.DefaultAgedMs,
		EnableDegrade:    constants.DefaultEnableDegrade,
	}
}
