package bpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRC16CCITTKnownVector(t *testing.T) {
	// "123456789" is the standard CRC-CCITT (0xFFFF) check string,
	// with a well known expected residue of 0x29B1.
	require.Equal(t, uint16(0x29B1), crc16CCITT([]byte("123456789")))
}

func TestCRC16CCITTEmpty(t *testing.T) {
	require.Equal(t, uint16(0xFFFF), crc16CCITT(nil))
}

func TestCRC16CCITTDiffersOnBitFlip(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03, 0x04}
	b := []byte{0x01, 0x02, 0x03, 0x05}
	require.NotEqual(t, crc16CCITT(a), crc16CCITT(b))
}
