package bpu

// scheduleFromEvents drains the event queue to empty, converting each
// event into a job and submitting it via the job queue's coalescing
// push. A full job queue drops the job (pushJobCoalesce
// already counts JobDrop) but does not stop the drain — every event is
// still popped off the event queue this tick.
func (b *Bpu) scheduleFromEvents(nowMs uint32) {
	for {
		e, ok := b.popEvent()
		if !ok {
			return
		}

		aged := (nowMs - e.TMs) >= uint32(b.cfg.AgedMs)
		if aged {
			b.st.PickAged++
			switch e.Type {
			case EventSensor:
				b.st.AgedHitSensor++
			case EventHB:
				b.st.AgedHitHB++
			case EventTelem:
				b.st.AgedHitTelem++
			}
		}

		var j Job
		j.Type = jobForEvent(e.Type)
		j.Flags = e.Flags
		j.TMs = nowMs

		j.Payload[0] = secondaryTag(e.Type)
		if e.Len > 0xFF {
			j.Payload[1] = 0xFF
		} else {
			j.Payload[1] = byte(e.Len)
		}

		copyN := e.Len
		maxCopy := uint16(len(j.Payload) - 2)
		if copyN > maxCopy {
			copyN = maxCopy
		}
		for i := uint16(0); i < copyN; i++ {
			j.Payload[2+i] = e.Payload[i]
		}
		j.Len = 2 + copyN

		_ = b.pushJobCoalesce(j)
	}
}
