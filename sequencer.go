package touchpad

import evdev "github.com/gvalkov/golang-evdev"

// HandleEvent feeds one raw (type, code, value, timestamp) tuple into the
// core. EV_ABS and EV_KEY events update internal state; an EV_SYN commits
// the accumulated report by running pre-process, the state machines in
// order, and post-process, then clears the queue. Grounded on
// touchpad_handle_event / touchpad_post_events.
func (tp *Touchpad) HandleEvent(ev RawEvent) {
	switch ev.Type {
	case evdev.EV_ABS:
		tp.applyAbsEvent(ev)
	case evdev.EV_KEY:
		tp.applyKeyEvent(ev)
	case evdev.EV_SYN:
		if tp.queued == eventNone {
			return
		}
		tp.ms = ev.Millis
		tp.preProcessTouches()
		tp.postEvents()
		tp.postProcessTouches()
		tp.HandleTimers(tp.ms)
	}
}

// postEvents runs the three per-report state machines in the mandated
// order — soft-button, then tap, then scroll — and emits pointer motion
// unless scroll consumed the report. Grounded on touchpad_post_events.
func (tp *Touchpad) postEvents() {
	tp.policy.handleState(tp, tp.userdata)
	tp.tapHandleState(tp.userdata)
	consumed := tp.scrollHandleState(tp.userdata)
	if !consumed {
		tp.postMotionEvents()
	}
}

// postMotionEvents emits a relative motion callback for the current
// pointer touch if the report queued any motion and the history filter
// produces a non-zero delta. A pointer touch that is pinned or ended in
// this report produces no motion. Grounded on touchpad_post_motion_events.
func (tp *Touchpad) postMotionEvents() {
	if tp.queued&eventMotion == 0 {
		return
	}

	t := tp.pointerTouch()
	if t == nil || t.pinned || t.state == TouchEnd {
		return
	}

	dx, dy, ok := motionToDelta(t)
	if !ok {
		return
	}
	if dx == 0 && dy == 0 {
		return
	}
	if tp.iface != nil {
		tp.iface.Motion(tp, tp.userdata, dx, dy)
	}
}
