package bpu

import "github.com/behrlich/go-bpu/internal/constants"

// pendingBuffer is the single in-flight staged frame. Capacity is
// fixed and the buffer lives inline in Bpu — nothing here allocates.
type pendingBuffer struct {
	buf  [constants.PendingBufferCapacity]byte
	len  uint16
	pos  uint16
	have bool
}

// buildFrame stages a new frame into the pending buffer: header, CRC,
// then byte-stuffed encoding plus terminator. seq is read and then
// post-incremented regardless of what happens afterward — a
// built-but-later-discarded frame still consumes a sequence number.
func (b *Bpu) buildFrame(jobType uint8, payload []byte, length uint8) error {
	if int(length) > constants.MaxFramePayload {
		length = constants.MaxFramePayload
	}

	var decoded [4 + constants.MaxFramePayload + 2]byte
	decoded[0] = constants.FrameStartByte
	decoded[1] = jobType
	decoded[2] = b.seq
	decoded[3] = length

	builtSeq := b.seq
	b.seq++

	copy(decoded[4:4+int(length)], payload[:length])

	crc := crc16CCITT(decoded[1 : 4+int(length)])
	decoded[4+int(length)] = byte(crc & 0xFF)
	decoded[4+int(length)+1] = byte((crc >> 8) & 0xFF)

	decodedLen := 4 + int(length) + 2

	encLen, err := cobsEncode(decoded[:decodedLen], b.pending.buf[:])
	if err != nil {
		return err
	}
	if encLen+1 > len(b.pending.buf) {
		return NewError("build_frame", CodeEncode)
	}

	b.pending.buf[encLen] = constants.FrameTerminator
	b.pending.len = uint16(encLen + 1)
	b.pending.pos = 0
	b.pending.have = true

	b.lastFrameSeq = builtSeq
	b.lastFrameType = jobType

	return nil
}
