package bpu

import "github.com/behrlich/go-bpu/internal/constants"

// EventType identifies the producer that generated an Event.
type EventType uint8

const (
	EventCmd    EventType = 1
	EventSensor EventType = 2
	EventHB     EventType = 3
	EventTelem  EventType = 4
)

func (t EventType) String() string {
	switch t {
	case EventCmd:
		return "CMD"
	case EventSensor:
		return "SENSOR"
	case EventHB:
		return "HB"
	case EventTelem:
		return "TELEM"
	default:
		return "UNKNOWN"
	}
}

// JobType identifies the scheduler-side kind of a Job. It maps 1:1 from
// EventType (same numeric values), but is a distinct type because a Job
// is a distinct record produced by the scheduler, not the producer.
type JobType uint8

const (
	JobCmd    JobType = 1
	JobSensor JobType = 2
	JobHB     JobType = 3
	JobTelem  JobType = 4
)

func (t JobType) String() string {
	switch t {
	case JobCmd:
		return "CMD"
	case JobSensor:
		return "SENSOR"
	case JobHB:
		return "HB"
	case JobTelem:
		return "TELEM"
	default:
		return "UNKNOWN"
	}
}

// jobForEvent maps an EventType to its corresponding JobType. The zero
// value (0) signals an unrecognized event type.
func jobForEvent(t EventType) JobType {
	switch t {
	case EventCmd:
		return JobCmd
	case EventSensor:
		return JobSensor
	case EventHB:
		return JobHB
	case EventTelem:
		return JobTelem
	default:
		return 0
	}
}

// secondaryTag is the byte written at payload[0] of every Job built by
// the scheduler. It does not reuse the numeric type value: SENSOR, HB
// and TELEM map to 0x01..0x03 and CMD maps to 0x04.
func secondaryTag(t EventType) uint8 {
	switch t {
	case EventSensor:
		return 0x01
	case EventHB:
		return 0x02
	case EventTelem:
		return 0x03
	case EventCmd:
		return 0x04
	default:
		return 0x00
	}
}

// MergePolicy governs whether an admission into the event queue may
// overwrite an existing same-type slot rather than appending.
type MergePolicy uint8

const (
	MergeNone MergePolicy = 0
	MergeLast MergePolicy = 1
)

// policyFor returns the coalescing policy for an event type.
func policyFor(t EventType) MergePolicy {
	switch t {
	case EventSensor, EventHB, EventTelem:
		return MergeLast
	default:
		return MergeNone
	}
}

// Event is a producer-side record admitted into the event queue.
type Event struct {
	Type    EventType
	Flags   uint8
	Len     uint16
	TMs     uint32
	Payload [constants.EventPayloadSize]byte
}

// Job is a scheduler-side record built from a drained Event and
// admitted into the job queue for framing.
type Job struct {
	Type    JobType
	Flags   uint8
	Len     uint16
	TMs     uint32
	Payload [constants.JobPayloadSize]byte
}
