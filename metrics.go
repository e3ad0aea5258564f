package bpu

import "sync/atomic"

// workUsBuckets are the tick work-time histogram boundaries in
// microseconds, ported from the reference's latency-histogram approach
// in metrics.go but rescaled for a per-tick budget that is expected to
// complete in microseconds to low milliseconds rather than seconds.
var workUsBuckets = []uint64{10, 50, 200, 1_000, 5_000, 20_000}

const numWorkUsBuckets = 6

// Metrics is an atomic-counter Observer implementation, ported from the
// reference's metrics.go, for hosts that want to export BPU activity to
// something like Prometheus without polling Stats.
type Metrics struct {
	FramesSent      atomic.Uint64
	FramesSentBytes atomic.Uint64

	FramesDroppedBudget atomic.Uint64
	FramesDroppedIO     atomic.Uint64
	FramesDroppedOther  atomic.Uint64

	BackpressureEvents atomic.Uint64

	EventQueueDrops atomic.Uint64
	JobQueueDrops   atomic.Uint64

	Ticks        atomic.Uint64
	TotalWorkUs  atomic.Uint64
	MaxWorkUs    atomic.Uint64
	WorkUsBucket [numWorkUsBuckets]atomic.Uint64
}

// NewMetrics returns a zeroed Metrics ready to use as an Observer.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) OnFrameSent(seq uint8, jobType uint8, bytes int) {
	m.FramesSent.Add(1)
	m.FramesSentBytes.Add(uint64(bytes))
}

func (m *Metrics) OnFrameDropped(jobType uint8, reason string) {
	switch reason {
	case "budget":
		m.FramesDroppedBudget.Add(1)
	case "io":
		m.FramesDroppedIO.Add(1)
	default:
		m.FramesDroppedOther.Add(1)
	}
}

func (m *Metrics) OnBackpressure(reason string) {
	m.BackpressureEvents.Add(1)
}

func (m *Metrics) OnQueueDrop(queue string) {
	switch queue {
	case "event":
		m.EventQueueDrops.Add(1)
	case "job":
		m.JobQueueDrops.Add(1)
	}
}

func (m *Metrics) OnTick(workUs uint32) {
	m.Ticks.Add(1)
	m.TotalWorkUs.Add(uint64(workUs))

	for {
		cur := m.MaxWorkUs.Load()
		if uint64(workUs) <= cur {
			break
		}
		if m.MaxWorkUs.CompareAndSwap(cur, uint64(workUs)) {
			break
		}
	}

	for i, bucket := range workUsBuckets {
		if uint64(workUs) <= bucket {
			m.WorkUsBucket[i].Add(1)
		}
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics, safe to read
// without further synchronization.
type MetricsSnapshot struct {
	FramesSent          uint64
	FramesSentBytes     uint64
	FramesDroppedBudget uint64
	FramesDroppedIO     uint64
	FramesDroppedOther  uint64
	BackpressureEvents  uint64
	EventQueueDrops     uint64
	JobQueueDrops       uint64
	Ticks               uint64
	AvgWorkUs           float64
	MaxWorkUs           uint64
	WorkUsHistogram     [numWorkUsBuckets]uint64
}

// Snapshot copies out the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		FramesSent:          m.FramesSent.Load(),
		FramesSentBytes:     m.FramesSentBytes.Load(),
		FramesDroppedBudget: m.FramesDroppedBudget.Load(),
		FramesDroppedIO:     m.FramesDroppedIO.Load(),
		FramesDroppedOther:  m.FramesDroppedOther.Load(),
		BackpressureEvents:  m.BackpressureEvents.Load(),
		EventQueueDrops:     m.EventQueueDrops.Load(),
		JobQueueDrops:       m.JobQueueDrops.Load(),
		Ticks:               m.Ticks.Load(),
		MaxWorkUs:           m.MaxWorkUs.Load(),
	}
	if s.Ticks > 0 {
		s.AvgWorkUs = float64(m.TotalWorkUs.Load()) / float64(s.Ticks)
	}
	for i := 0; i < numWorkUsBuckets; i++ {
		s.WorkUsHistogram[i] = m.WorkUsBucket[i].Load()
	}
	return s
}

// Reset zeroes all counters, useful for testing.
func (m *Metrics) Reset() {
	*m = Metrics{}
}

var _ Observer = (*Metrics)(nil)
