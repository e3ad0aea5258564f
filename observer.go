package bpu

import "github.com/behrlich/go-bpu/internal/interfaces"

// Observer is the side-channel instrumentation hook a Bpu invokes from
// within PushEvent (event-queue drops) and Tick/TickEx when configured. It is strictly additive: nothing
// it does changes Bpu control flow, and a nil Observer passed to New or
// Init is replaced with a NoOpObserver rather than ever being called.
type Observer = interfaces.Observer

// NoOpObserver discards every event. It is the default when no
// Observer is configured.
type NoOpObserver struct{}

func (NoOpObserver) OnFrameSent(seq uint8, jobType uint8, bytes int) {}
func (NoOpObserver) OnFrameDropped(jobType uint8, reason string)     {}
func (NoOpObserver) OnBackpressure(reason string)                    {}
func (NoOpObserver) OnQueueDrop(queue string)                        {}
func (NoOpObserver) OnTick(workUs uint32)                            {}

var _ Observer = NoOpObserver{}
