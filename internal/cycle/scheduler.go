package cycle

import "time"

// FrameID identifies one requested frame. IDs increase monotonically per
// Cycler, so a host can tell stale frames from the pending one.
type FrameID uint64

// Scheduler delivers frames to a Cycler. After RequestFrame(id) the host
// must eventually call Cycler.Frame(id, now) from the Cycler's goroutine,
// unless CancelFrame(id) is called first. Delivering a cancelled or
// superseded frame is harmless: the Cycler ignores it.
type Scheduler interface {
	RequestFrame(id FrameID)
	CancelFrame(id FrameID)
}

// FrameSink is the receiving side of a Scheduler.
type FrameSink interface {
	Frame(id FrameID, now time.Time)
}

// VirtualClock is a deterministic Scheduler for tests and simulations. It
// holds at most one pending frame and delivers it on the next Step.
type VirtualClock struct {
	now     time.Time
	step    time.Duration
	sink    FrameSink
	pending FrameID
	has     bool
}

// NewVirtualClock returns a clock starting at start that advances by step
// per frame.
func NewVirtualClock(start time.Time, step time.Duration) *VirtualClock {
	return &VirtualClock{now: start, step: step}
}

// Bind sets the sink frames are delivered to.
func (v *VirtualClock) Bind(sink FrameSink) { v.sink = sink }

// Now returns the clock's current time.
func (v *VirtualClock) Now() time.Time { return v.now }

// Pending reports whether a frame is waiting for delivery.
func (v *VirtualClock) Pending() bool { return v.has }

// RequestFrame implements Scheduler.
func (v *VirtualClock) RequestFrame(id FrameID) {
	v.pending = id
	v.has = true
}

// CancelFrame implements Scheduler.
func (v *VirtualClock) CancelFrame(id FrameID) {
	if v.has && v.pending == id {
		v.has = false
	}
}

// Step advances the clock by one frame and delivers the pending frame, if
// any.
func (v *VirtualClock) Step() {
	v.now = v.now.Add(v.step)
	if !v.has || v.sink == nil {
		return
	}
	id := v.pending
	v.has = false
	v.sink.Frame(id, v.now)
}

// Advance steps the clock until d has elapsed.
func (v *VirtualClock) Advance(d time.Duration) {
	if v.step <= 0 {
		return
	}
	for elapsed := time.Duration(0); elapsed+v.step <= d; elapsed += v.step {
		v.Step()
	}
}
