// Package bpu implements a Bounded Processing Unit: a deterministic,
// heap-free, single-threaded event coalescing and framing core meant to
// run inside a periodic task. It absorbs bursty events from several
// producers, compresses redundant entries via bounded coalescing,
// converts them into jobs, frames them with a byte-stuffed CRC-checked
// encoding, and paces them onto a byte-budgeted, backpressure-aware
// transport.
//
// A Bpu is owned by exactly one goroutine: Init, PushEvent, Tick/TickEx
// and GetStats must be serialized by the caller. Nothing inside the
// core allocates after Init — every queue and buffer is a fixed-size
// array inline in the struct.
package bpu

import (
	"github.com/behrlich/go-bpu/internal/constants"
	"github.com/behrlich/go-bpu/internal/interfaces"
)

// IO is re-exported from internal/interfaces so callers implement a
// single, package-qualified type (mirrors the Observer alias in
// observer.go).
type IO = interfaces.IO

// Logger is re-exported from internal/interfaces for the same reason.
type Logger = interfaces.Logger

// Bpu is the aggregate core. The zero value is not usable; call
// Init before any other method.
type Bpu struct {
	io       IO
	cfg      Config
	observer Observer

	st Stats

	evq eventRing
	jobq jobRing

	pending pendingBuffer

	lastFrameSeq  uint8
	lastFrameType uint8

	seq uint8

	initMagic uint32
}

// New constructs and initializes a Bpu in one step. cfg is copied; a
// nil observer is replaced with NoOpObserver{}.
func New(io IO, cfg Config, observer Observer) (*Bpu, error) {
	b := &Bpu{}
	if err := b.Init(io, cfg, observer); err != nil {
		return nil, err
	}
	return b, nil
}

// Init prepares a Bpu for use, clearing all queues/buffers and setting
// the init magic. io must be non-nil.
func (b *Bpu) Init(io IO, cfg Config, observer Observer) error {
	if io == nil {
		return NewError("init", CodeInvalidArgument)
	}

	*b = Bpu{}
	b.io = io
	b.cfg = cfg
	if observer == nil {
		observer = NoOpObserver{}
	}
	b.observer = observer
	b.initMagic = constants.InitMagic

	return nil
}

func (b *Bpu) checkInit() error {
	if b == nil || b.initMagic != constants.InitMagic {
		return NewError("", CodeNotInitialized)
	}
	return nil
}

// PushEvent admits a new event into the event queue, truncating payload
// to the fixed inline width and subjecting it to the coalescing policy
// for its type. now_ms stamps the event's arrival time.
func (b *Bpu) PushEvent(evtType EventType, payload []byte, nowMs uint32) error {
	if err := b.checkInit(); err != nil {
		return err
	}

	switch evtType {
	case EventSensor:
		b.st.PickSensor++
	case EventHB:
		b.st.PickHB++
	case EventTelem:
		b.st.PickTelem++
	}

	var e Event
	e.Type = evtType
	e.Flags = 0
	e.TMs = nowMs

	n := len(payload)
	if n > constants.EventPayloadSize {
		n = constants.EventPayloadSize
	}
	e.Len = uint16(n)
	copy(e.Payload[:n], payload[:n])

	return b.pushEventCoalesce(e)
}

// Tick runs one scheduling/flush cycle using the caller's
// millisecond clock. It is tick_ex(now_ms, 0): work-time stats are
// sampled through the IO TimeUs callback if available.
func (b *Bpu) Tick(nowMs uint32) error {
	return b.TickEx(nowMs, 0)
}

// TickEx is Tick with an explicit microsecond timestamp for work-time
// accounting, bypassing the IO TimeUs callback when non-zero.
func (b *Bpu) TickEx(nowMs uint32, nowUs uint32) error {
	if err := b.checkInit(); err != nil {
		return err
	}

	t0, haveT0 := b.sampleTimeUs(nowUs)

	budget := b.cfg.TxBudgetBytes

	if b.pending.have {
		if _, err := b.sendPending(&budget); err != nil {
			return err
		}
	}

	b.scheduleFromEvents(nowMs)
	b.flushJobs(&budget)

	b.st.Tick++

	dirty := b.dirtyMask()
	b.st.DirtyMaskLo = uint32(dirty & 0xFFFFFFFF)
	b.st.DirtyMaskHi = uint32((dirty >> 32) & 0xFFFFFFFF)

	t1, haveT1 := b.sampleTimeUs(nowUs)
	if haveT0 && haveT1 {
		if t1 >= t0 {
			b.st.WorkUsLast = t1 - t0
		} else {
			b.st.WorkUsLast = 0
		}
		if b.st.WorkUsLast > b.st.WorkUsMax {
			b.st.WorkUsMax = b.st.WorkUsLast
		}
		b.observer.OnTick(b.st.WorkUsLast)
	}

	return nil
}

// sampleTimeUs returns nowUs directly if non-zero, else falls back to
// the IO TimeUs callback.
func (b *Bpu) sampleTimeUs(nowUs uint32) (uint32, bool) {
	if nowUs != 0 {
		return nowUs, true
	}
	us, err := b.io.TimeUs()
	if err != nil {
		return 0, false
	}
	return us, true
}

// GetStats returns a snapshot of the current counters: a defensive
// copy, never a live pointer into Bpu internals.
func (b *Bpu) GetStats() (Stats, error) {
	if err := b.checkInit(); err != nil {
		return Stats{}, err
	}
	return b.st, nil
}
