package bpu

// sendPending drains PendingBuffer onto the transport under the
// remaining tick byte budget, the configured chunk cap, and whatever
// backpressure the transport signals. Returns whether any
// bytes were written this call.
func (b *Bpu) sendPending(budgetLeft *uint16) (bool, error) {
	if !b.pending.have {
		b.pending.len = 0
		b.pending.pos = 0
		return false, nil
	}

	progress := false

	for b.pending.pos < b.pending.len {
		want := 0
		if *budgetLeft != 0 {
			want = int(b.pending.len - b.pending.pos)
		}
		if want > int(*budgetLeft) {
			want = int(*budgetLeft)
		}
		if b.cfg.TxChunkMax != 0 && want > int(b.cfg.TxChunkMax) {
			want = int(b.cfg.TxChunkMax)
		}

		if want == 0 {
			break
		}

		wrote, err := b.io.TxWriteSome(b.pending.buf[b.pending.pos : int(b.pending.pos)+want])
		if err != nil {
			return progress, WrapError("send_pending", CodeIO, err)
		}
		if wrote == 0 {
			b.st.TxSkipBackpressure++
			if b.observer != nil {
				b.observer.OnBackpressure("tx_write_some")
			}
			break
		}

		b.pending.pos += uint16(wrote)
		*budgetLeft -= uint16(wrote)
		b.st.TxBytes += uint32(wrote)
		progress = true
	}

	if b.pending.pos >= b.pending.len {
		sentBytes := int(b.pending.len)
		b.pending.len = 0
		b.pending.pos = 0
		b.pending.have = false
		b.st.TxFrameSent++
		b.st.PendingActive = false
		b.st.PendingLen = 0
		b.st.PendingPos = 0
		if b.observer != nil {
			b.observer.OnFrameSent(b.lastFrameSeq, b.lastFrameType, sentBytes)
		}
	} else {
		if progress {
			b.st.TxFramePartial++
		}
		b.st.PendingActive = true
		b.st.PendingLen = uint32(b.pending.len)
		b.st.PendingPos = uint32(b.pending.pos)
	}

	return progress, nil
}

// clearPending discards an in-flight frame, used when send_pending
// fails with a transport error mid-frame, so a broken frame never
// lingers in the pending buffer.
func (b *Bpu) clearPending() {
	b.pending.len = 0
	b.pending.pos = 0
	b.pending.have = false
}

// flushJobs runs the job-queue drain loop until the tick's budget is
// exhausted or no further progress can be made. Any job
// popped but not fully framed/transmitted is re-admitted through the
// coalescing push, landing at the tail — never restored to its
// original slot.
func (b *Bpu) flushJobs(budgetLeft *uint16) {
	for {
		if b.pending.have {
			progress, err := b.sendPending(budgetLeft)
			if err != nil || !progress {
				return
			}
			continue
		}

		if b.jobq.count == 0 {
			return
		}

		b.st.FlushTry++

		j, ok := b.popJob()
		if !ok {
			return
		}

		decodedLen := 4 + int(j.Len) + 2
		worstOverhead := decodedLen/254 + 2
		worstOnWire := decodedLen + worstOverhead + 1

		if worstOnWire > int(*budgetLeft) {
			b.st.TxSkipBudget++
			if b.cfg.EnableDegrade && j.Type == JobTelem {
				b.st.DegradeDrop++
				if b.observer != nil {
					b.observer.OnFrameDropped(uint8(j.Type), "budget")
				}
			} else {
				_ = b.pushJobCoalesce(j)
				if b.cfg.EnableDegrade {
					b.st.DegradeRequeue++
				}
			}
			return
		}

		free, err := b.io.TxFree()
		if err != nil {
			_ = b.pushJobCoalesce(j)
			b.st.DegradeRequeue++
			return
		}
		if free < int(b.cfg.TxMinFree) {
			_ = b.pushJobCoalesce(j)
			b.st.DegradeRequeue++
			b.st.TxSkipBackpressure++
			if b.observer != nil {
				b.observer.OnBackpressure("tx_min_free")
			}
			return
		}

		wireLen := uint8(255)
		if j.Len <= 255 {
			wireLen = uint8(j.Len)
		}
		if int(wireLen) > len(j.Payload) {
			wireLen = uint8(len(j.Payload))
		}

		if err := b.buildFrame(uint8(j.Type), j.Payload[:], wireLen); err != nil {
			_ = b.pushJobCoalesce(j)
			b.st.DegradeRequeue++
			return
		}

		before := *budgetLeft
		progress, err := b.sendPending(budgetLeft)
		if err != nil {
			_ = b.pushJobCoalesce(j)
			b.clearPending()
			b.st.DegradeRequeue++
			return
		}
		if !progress {
			_ = b.pushJobCoalesce(j)
			b.clearPending()
			b.st.DegradeRequeue++
			b.st.TxSkipBackpressure++
			return
		}

		b.st.FlushOk++

		if before == *budgetLeft {
			return
		}
	}
}
