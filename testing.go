package bpu

import "sync"

// MockLink provides a mock implementation of IO for testing. It is an
// in-memory sink with injectable free-space, backpressure, and error
// behavior, and tracks call counts for verification.
type MockLink struct {
	mu sync.Mutex

	free     int
	written  []byte
	timeUs   uint32
	timeErr  error

	// backpressureN makes the next N TxWriteSome calls report wrote=0
	// without consuming free space or returning an error.
	backpressureN int

	// writeErr, if set, is returned by the next TxWriteSome call and
	// then cleared.
	writeErr error
	// freeErr, if set, is returned by every TxFree call.
	freeErr error

	txFreeCalls      int
	txWriteSomeCalls int
	timeUsCalls      int
}

// NewMockLink creates a mock link that reports free bytes of transport
// headroom and accepts writes up to that headroom per call.
func NewMockLink(free int) *MockLink {
	return &MockLink{free: free}
}

// TxFree implements IO.
func (m *MockLink) TxFree() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txFreeCalls++
	if m.freeErr != nil {
		return 0, m.freeErr
	}
	return m.free, nil
}

// TxWriteSome implements IO.
func (m *MockLink) TxWriteSome(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txWriteSomeCalls++

	if m.writeErr != nil {
		err := m.writeErr
		m.writeErr = nil
		return 0, err
	}

	if m.backpressureN > 0 {
		m.backpressureN--
		return 0, nil
	}

	n := len(p)
	if n > m.free {
		n = m.free
	}
	if n == 0 {
		return 0, nil
	}

	m.written = append(m.written, p[:n]...)
	m.free -= n
	return n, nil
}

// TimeUs implements IO.
func (m *MockLink) TimeUs() (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timeUsCalls++
	if m.timeErr != nil {
		return 0, m.timeErr
	}
	return m.timeUs, nil
}

// Testing utility methods.

// SetFree sets the currently reported free space.
func (m *MockLink) SetFree(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free = n
}

// AddFree increases the currently reported free space, simulating the
// transport having drained some of its own outbound buffer.
func (m *MockLink) AddFree(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free += n
}

// SetTimeUs sets the value TimeUs will return.
func (m *MockLink) SetTimeUs(us uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeUs = us
}

// SetTimeErr makes every subsequent TimeUs call fail with err.
func (m *MockLink) SetTimeErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeErr = err
}

// InjectBackpressure makes the next n TxWriteSome calls report wrote=0.
func (m *MockLink) InjectBackpressure(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backpressureN = n
}

// InjectWriteErr makes the next TxWriteSome call fail with err.
func (m *MockLink) InjectWriteErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// InjectFreeErr makes every subsequent TxFree call fail with err.
func (m *MockLink) InjectFreeErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.freeErr = err
}

// Written returns a copy of everything accepted by TxWriteSome so far.
func (m *MockLink) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.written))
	copy(out, m.written)
	return out
}

// CallCounts returns the number of times each method has been called.
func (m *MockLink) CallCounts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		"tx_free":        m.txFreeCalls,
		"tx_write_some":  m.txWriteSomeCalls,
		"time_us":        m.timeUsCalls,
	}
}

// Reset clears accumulated writes and call counters, leaving injected
// errors/backpressure and free space untouched.
func (m *MockLink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = nil
	m.txFreeCalls = 0
	m.txWriteSomeCalls = 0
	m.timeUsCalls = 0
}

var _ IO = (*MockLink)(nil)
