package bpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockLinkWritesUpToFreeSpace(t *testing.T) {
	m := NewMockLink(4)
	n, err := m.TxWriteSome([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, m.Written())
}

func TestMockLinkInjectedBackpressure(t *testing.T) {
	m := NewMockLink(10)
	m.InjectBackpressure(2)

	n, err := m.TxWriteSome([]byte{1})
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = m.TxWriteSome([]byte{1})
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = m.TxWriteSome([]byte{1})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMockLinkInjectedWriteErr(t *testing.T) {
	m := NewMockLink(10)
	m.InjectWriteErr(errTest)

	_, err := m.TxWriteSome([]byte{1})
	require.ErrorIs(t, err, errTest)

	// Error is consumed after one call.
	n, err := m.TxWriteSome([]byte{1})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMockLinkInjectedFreeErr(t *testing.T) {
	m := NewMockLink(10)
	m.InjectFreeErr(errTest)

	_, err := m.TxFree()
	require.ErrorIs(t, err, errTest)
}

func TestMockLinkCallCounts(t *testing.T) {
	m := NewMockLink(10)
	m.TxFree()
	m.TxFree()
	m.TxWriteSome([]byte{1})
	m.TimeUs()

	counts := m.CallCounts()
	require.Equal(t, 2, counts["tx_free"])
	require.Equal(t, 1, counts["tx_write_some"])
	require.Equal(t, 1, counts["time_us"])
}

func TestMockLinkReset(t *testing.T) {
	m := NewMockLink(10)
	m.TxWriteSome([]byte{1, 2})
	m.Reset()

	require.Empty(t, m.Written())
	require.Equal(t, 0, m.CallCounts()["tx_write_some"])
}
