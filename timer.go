package touchpad

// timerScheduler tracks the single next wake time the library exposes to
// its caller, the minimum across every subsystem's own armed timer.
// Grounded on the timer scheduler component (spec.md §4.7) and
// touchpad_request_timer/touchpad_handle_timeouts; the timerfd ownership
// in the original is dropped per spec.md §9's REDESIGN — the core never
// owns a real timer, only computes when the caller should next call back.
type timerScheduler struct {
	next uint32 // absolute ms; 0 means none pending
}

func minNonZero(a, b uint32) uint32 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// NextTimeout returns the absolute millisecond at which the caller should
// next invoke HandleTimers, or 0 if no subsystem has an armed timer.
func (tp *Touchpad) NextTimeout() uint32 {
	return tp.timer.next
}

// HandleTimers fires every subsystem timer that has expired as of now and
// updates NextTimeout. Callers should invoke this whenever NextTimeout
// has elapsed; calling it early or late is harmless, it is pure
// computation over absolute millisecond fields.
func (tp *Touchpad) HandleTimers(now uint32) {
	tapNext := tp.tapHandleTimeout(now, tp.userdata)
	buttonNext := tp.policy.handleTimeout(tp, now, tp.userdata)

	tp.timer.next = minNonZero(tapNext, buttonNext)
	if tp.iface != nil && tp.timer.next != 0 {
		tp.iface.RegisterTimer(tp, tp.userdata, now, tp.timer.next)
	}
}
