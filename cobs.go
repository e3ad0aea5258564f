package bpu

// cobsEncode implements consistent-overhead byte stuffing:
// input of length L encodes into out (capacity M) as a sequence
// containing no zero byte, of length <= L + ceil(L/254) + 1. The
// caller is responsible for appending the single terminating zero
// byte afterward — cobsEncode itself never writes one.
//
// Returns the number of bytes written to out, or an error if out is
// too small to hold the encoded result.
func cobsEncode(input []byte, out []byte) (int, error) {
	if len(out) == 0 {
		return 0, NewError("cobs_encode", CodeEncode)
	}

	readIdx := 0
	writeIdx := 1
	codeIdx := 0
	code := byte(1)

	for readIdx < len(input) {
		if writeIdx >= len(out) {
			return 0, NewError("cobs_encode", CodeEncode)
		}
		if input[readIdx] == 0 {
			out[codeIdx] = code
			code = 1
			codeIdx = writeIdx
			writeIdx++
			readIdx++
			continue
		}

		out[writeIdx] = input[readIdx]
		writeIdx++
		readIdx++
		code++

		if code == 0xFF {
			if writeIdx >= len(out) {
				return 0, NewError("cobs_encode", CodeEncode)
			}
			out[codeIdx] = code
			code = 1
			codeIdx = writeIdx
			writeIdx++
		}
	}

	if codeIdx >= len(out) {
		return 0, NewError("cobs_encode", CodeEncode)
	}
	out[codeIdx] = code

	return writeIdx, nil
}

// cobsDecode reverses cobsEncode: input must be a zero-free encoded
// body (without the trailing terminator byte — strip that first).
// Returns the number of bytes written to out, or an error on a
// malformed encoding or insufficient out capacity.
func cobsDecode(input []byte, out []byte) (int, error) {
	readIdx := 0
	writeIdx := 0

	for readIdx < len(input) {
		code := input[readIdx]
		if code == 0 {
			return 0, NewError("cobs_decode", CodeEncode)
		}
		readIdx++

		for i := byte(1); i < code; i++ {
			if readIdx >= len(input) {
				return 0, NewError("cobs_decode", CodeEncode)
			}
			if writeIdx >= len(out) {
				return 0, NewError("cobs_decode", CodeEncode)
			}
			out[writeIdx] = input[readIdx]
			writeIdx++
			readIdx++
		}

		if code < 0xFF && readIdx < len(input) {
			if writeIdx >= len(out) {
				return 0, NewError("cobs_decode", CodeEncode)
			}
			out[writeIdx] = 0
			writeIdx++
		}
	}

	return writeIdx, nil
}
