package bpu

import (
	"testing"

	"github.com/behrlich/go-bpu/internal/constants"
	"github.com/stretchr/testify/require"
)

func TestBuildFrameProducesZeroFreeEncoding(t *testing.T) {
	b, _ := newTestBpu(t)

	payload := []byte{0x00, 0x01, 0x00, 0x02}
	require.NoError(t, b.buildFrame(uint8(JobSensor), payload, uint8(len(payload))))

	require.True(t, b.pending.have)
	require.Greater(t, b.pending.len, uint16(0))

	body := b.pending.buf[:b.pending.len]
	require.Equal(t, byte(0x00), body[len(body)-1], "frame must end with the terminator byte")
	for _, by := range body[:len(body)-1] {
		require.NotZero(t, by, "encoded body before the terminator must never contain a zero")
	}
}

func TestBuildFrameAlwaysIncrementsSeq(t *testing.T) {
	b, _ := newTestBpu(t)

	require.EqualValues(t, 0, b.seq)
	require.NoError(t, b.buildFrame(uint8(JobHB), nil, 0))
	require.EqualValues(t, 1, b.seq)
	require.EqualValues(t, 0, b.lastFrameSeq)
}

func TestBuildFrameClampsOverlongPayload(t *testing.T) {
	b, _ := newTestBpu(t)

	payload := make([]byte, 200)
	require.NoError(t, b.buildFrame(uint8(JobTelem), payload, 255))
	require.True(t, b.pending.have)
}

func TestBuildFrameDecodesBackToHeaderAndCRC(t *testing.T) {
	b, _ := newTestBpu(t)

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	require.NoError(t, b.buildFrame(uint8(JobSensor), payload, uint8(len(payload))))

	body := b.pending.buf[:b.pending.len-1] // strip terminator
	var decoded [128]byte
	_, err := cobsDecode(body, decoded[:])
	require.NoError(t, err)

	require.Equal(t, byte(constants.FrameStartByte), decoded[0])
	require.Equal(t, byte(uint8(JobSensor)), decoded[1])
	require.Equal(t, byte(0), decoded[2]) // seq of first frame built
	require.Equal(t, byte(len(payload)), decoded[3])
	require.Equal(t, payload, decoded[4:4+len(payload)])

	crc := crc16CCITT(decoded[1 : 4+len(payload)])
	require.Equal(t, byte(crc&0xFF), decoded[4+len(payload)])
	require.Equal(t, byte((crc>>8)&0xFF), decoded[4+len(payload)+1])
}
