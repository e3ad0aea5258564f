// Package transport provides ready-made bpu.IO implementations: an
// in-memory simulated link for tests and demos, and a real serial-port
// link for MCU/host links over a TTY.
package transport

import (
	"sync"
	"time"

	"github.com/behrlich/go-bpu"
)

// SimLink simulates a serial link with a bounded outbound buffer and a
// configurable drain rate, the way backend.Memory simulates a storage
// device with sharded locking: a single in-memory structure standing in
// for a real I/O path during tests and CLI demos.
type SimLink struct {
	mu sync.Mutex

	capacity int
	buf      []byte

	drainPerCall int
	drained      []byte

	start time.Time
}

// NewSimLink creates a simulated link with the given outbound buffer
// capacity. drainPerCall bytes are released from the head of the buffer
// each time Drain is called (0 means Drain releases everything).
func NewSimLink(capacity, drainPerCall int) *SimLink {
	return &SimLink{
		capacity:     capacity,
		drainPerCall: drainPerCall,
		start:        time.Now(),
	}
}

// TxFree implements bpu.IO.
func (s *SimLink) TxFree() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity - len(s.buf), nil
}

// TxWriteSome implements bpu.IO.
func (s *SimLink) TxWriteSome(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	free := s.capacity - len(s.buf)
	n := len(p)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0, nil
	}
	s.buf = append(s.buf, p[:n]...)
	return n, nil
}

// TimeUs implements bpu.IO using a monotonic clock sampled at
// construction time, the way a real TTY link would read CLOCK_MONOTONIC.
func (s *SimLink) TimeUs() (uint32, error) {
	return uint32(time.Since(s.start).Microseconds()), nil
}

// Drain releases buffered bytes to the "receiver" side, simulating the
// far end consuming them off the wire, and returns what was released.
func (s *SimLink) Drain() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.buf)
	if s.drainPerCall > 0 && n > s.drainPerCall {
		n = s.drainPerCall
	}
	if n == 0 {
		return nil
	}

	released := make([]byte, n)
	copy(released, s.buf[:n])
	s.buf = s.buf[n:]
	s.drained = append(s.drained, released...)
	return released
}

// Received returns a copy of every byte ever released via Drain, for
// test assertions against the framed wire bytes.
func (s *SimLink) Received() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.drained))
	copy(out, s.drained)
	return out
}

// Occupied reports how many bytes currently sit in the outbound buffer.
func (s *SimLink) Occupied() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

var _ bpu.IO = (*SimLink)(nil)
