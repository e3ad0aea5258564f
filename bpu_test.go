package bpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitRejectsNilIO(t *testing.T) {
	var b Bpu
	err := b.Init(nil, DefaultConfig(), nil)
	require.Error(t, err)
	require.True(t, IsCode(err, CodeInvalidArgument))
}

func TestUninitializedBpuRejectsAllCalls(t *testing.T) {
	var b Bpu

	_, err := b.GetStats()
	require.True(t, IsCode(err, CodeNotInitialized))

	err = b.PushEvent(EventSensor, nil, 0)
	require.True(t, IsCode(err, CodeNotInitialized))

	err = b.Tick(0)
	require.True(t, IsCode(err, CodeNotInitialized))
}

func TestNewDefaultsNilObserverToNoOp(t *testing.T) {
	link := NewMockLink(1024)
	core, err := New(link, DefaultConfig(), nil)
	require.NoError(t, err)
	require.NotNil(t, core.observer)
}

func TestPushEventTruncatesOverlongPayload(t *testing.T) {
	b, _ := newTestBpu(t)

	long := make([]byte, 64)
	for i := range long {
		long[i] = byte(i)
	}
	require.NoError(t, b.PushEvent(EventSensor, long, 0))

	e, ok := b.popEvent()
	require.True(t, ok)
	require.EqualValues(t, 16, e.Len)
	require.Equal(t, long[:16], e.Payload[:16])
}

func TestPushEventTracksPerTypePickCounters(t *testing.T) {
	b, _ := newTestBpu(t)

	require.NoError(t, b.PushEvent(EventSensor, nil, 0))
	require.NoError(t, b.PushEvent(EventSensor, nil, 0))
	require.NoError(t, b.PushEvent(EventHB, nil, 0))
	require.NoError(t, b.PushEvent(EventTelem, nil, 0))

	require.EqualValues(t, 2, b.st.PickSensor)
	require.EqualValues(t, 1, b.st.PickHB)
	require.EqualValues(t, 1, b.st.PickTelem)
}

func TestTickEndToEndProducesFrame(t *testing.T) {
	b, link := newTestBpu(t)
	link.SetFree(1024)

	require.NoError(t, b.PushEvent(EventSensor, []byte{0x01, 0x02}, 0))
	require.NoError(t, b.Tick(10))

	st, err := b.GetStats()
	require.NoError(t, err)
	require.EqualValues(t, 1, st.Tick)
	require.EqualValues(t, 1, st.TxFrameSent)
	require.NotEmpty(t, link.Written())
}

func TestTickDrainsPendingBeforeSchedulingNewWork(t *testing.T) {
	b, link := newTestBpu(t)
	link.SetFree(1024)
	b.cfg.TxChunkMax = 1

	require.NoError(t, b.PushEvent(EventHB, nil, 0))
	require.NoError(t, b.Tick(0))

	require.NoError(t, b.PushEvent(EventSensor, []byte{0xFF}, 1))
	require.NoError(t, b.Tick(1))

	st, err := b.GetStats()
	require.NoError(t, err)
	require.GreaterOrEqual(t, st.TxFrameSent, uint32(1))
	_ = link
}

func TestGetStatsReturnsDefensiveCopy(t *testing.T) {
	b, _ := newTestBpu(t)
	require.NoError(t, b.PushEvent(EventHB, nil, 0))
	require.NoError(t, b.Tick(0))

	st1, err := b.GetStats()
	require.NoError(t, err)

	require.NoError(t, b.Tick(1))
	st2, err := b.GetStats()
	require.NoError(t, err)

	require.NotEqual(t, st1.Tick, st2.Tick, "the earlier snapshot must not have been mutated by later ticks")
}

func TestTickExUsesExplicitTimestampOverIOClock(t *testing.T) {
	b, link := newTestBpu(t)
	link.SetFree(1024)
	link.SetTimeErr(errTest)

	require.NoError(t, b.TickEx(0, 100))
	st, err := b.GetStats()
	require.NoError(t, err)
	require.EqualValues(t, 0, st.WorkUsLast, "equal before/after explicit timestamps yield zero work time")
}

func TestDirtyMaskReflectsQueuedJobTypes(t *testing.T) {
	b, link := newTestBpu(t)
	link.SetFree(0) // free space below TxMinFree requeues the job instead of framing it

	require.NoError(t, b.PushEvent(EventHB, nil, 0))
	require.NoError(t, b.Tick(0))

	st, err := b.GetStats()
	require.NoError(t, err)
	mask := uint64(st.DirtyMaskLo) | uint64(st.DirtyMaskHi)<<32
	require.NotZero(t, mask)
}
