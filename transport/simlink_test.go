package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimLinkTxFreeReflectsCapacity(t *testing.T) {
	s := NewSimLink(100, 0)
	free, err := s.TxFree()
	require.NoError(t, err)
	require.Equal(t, 100, free)
}

func TestSimLinkWriteConsumesFreeSpace(t *testing.T) {
	s := NewSimLink(4, 0)
	n, err := s.TxWriteSome([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, 4, n)

	free, err := s.TxFree()
	require.NoError(t, err)
	require.Zero(t, free)
}

func TestSimLinkDrainReleasesBufferedBytes(t *testing.T) {
	s := NewSimLink(10, 3)
	s.TxWriteSome([]byte{1, 2, 3, 4, 5})

	first := s.Drain()
	require.Equal(t, []byte{1, 2, 3}, first)

	second := s.Drain()
	require.Equal(t, []byte{4, 5}, second)

	require.Equal(t, []byte{1, 2, 3, 4, 5}, s.Received())
}

func TestSimLinkDrainReplenishesFreeSpace(t *testing.T) {
	s := NewSimLink(4, 0)
	s.TxWriteSome([]byte{1, 2, 3, 4})

	free, _ := s.TxFree()
	require.Zero(t, free)

	s.Drain()

	free, _ = s.TxFree()
	require.Equal(t, 4, free)
}

func TestSimLinkTimeUsIsMonotonicallyNonDecreasing(t *testing.T) {
	s := NewSimLink(10, 0)
	t1, err := s.TimeUs()
	require.NoError(t, err)
	t2, err := s.TimeUs()
	require.NoError(t, err)
	require.GreaterOrEqual(t, t2, t1)
}
