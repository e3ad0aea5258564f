// Package constants holds the fixed capacities and default tuning knobs
// for the BPU core, in one place instead of scattered through the core.
package constants

// Ring capacities. These are load-bearing: the core never allocates, so
// the event and job rings are fixed-size arrays of exactly these lengths.
const (
	// EventRingCapacity is the number of slots in the event ring.
	EventRingCapacity = 8

	// JobRingCapacity is the number of slots in the job ring.
	JobRingCapacity = 4
)

// Inline payload widths.
const (
	// EventPayloadSize is the fixed inline payload width of an Event.
	EventPayloadSize = 16

	// JobPayloadSize is the fixed inline payload width of a Job.
	JobPayloadSize = 32

	// MaxFramePayload is the largest payload a single frame may carry
	// (build_frame clamps down to this).
	MaxFramePayload = 64
)

// PendingBufferCapacity is 4 (header) + 64 (max payload) + 2 (CRC) +
// 16 (COBS overhead) + 1 (terminator) bytes, sized for the wire layout.
const PendingBufferCapacity = 4 + MaxFramePayload + 2 + 16 + 1

// InitMagic marks a Bpu that has completed Init; any call against a zero
// value or a struct that hasn't run through Init fails fast.
const InitMagic = 0x42505531

// FrameStartByte is the fixed first byte of every raw (pre-stuffing) frame.
const FrameStartByte = 0xB2

// FrameTerminator is the single zero byte appended after COBS encoding.
const FrameTerminator = 0x00

// Default configuration knobs, mirrored after the reference
// implementation's DefaultParams/DefaultConfig seeding pattern.
const (
	// DefaultTxBudgetBytes is the default per-tick transmit byte budget.
	DefaultTxBudgetBytes = 128

	// DefaultTxMinFree is the default minimum transport free-space
	// watermark required before starting a new frame.
	DefaultTxMinFree = 16

	// DefaultTxChunkMax is the default max bytes per tx_write_some call
	// (0 would mean unlimited; the default is a conservative nonzero cap).
	DefaultTxChunkMax = 32

	// DefaultCoalesceWindowMs is the default event-coalescing time window.
	DefaultCoalesceWindowMs = 20

	// DefaultAgedMs is the default threshold past which a queued event
	// is counted as aged.
	DefaultAgedMs = 250

	// DefaultEnableDegrade is whether TELEM jobs are dropped (rather than
	// requeued) by default when the tick budget can't fit them.
	DefaultEnableDegrade = true
)
