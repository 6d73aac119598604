package touchpad

// tapMachine holds the single global tap recognizer's state, config and
// pending timer. Grounded on the tap recognizer component (spec.md §4.4);
// the early touchpad-tap.c in the corpus only supplies the squared-distance
// motion-threshold idiom and the transition-logging shape, since its own
// state graph predates the thirteen-state one this implements.
type tapMachine struct {
	config  tapConfig
	state   tapState
	timeout uint32 // absolute ms; 0 means no timer armed
}

func (tp *Touchpad) armTapTimer(period uint32) {
	tp.tap.timeout = tp.ms + period
}

func (tp *Touchpad) cancelTapTimer() {
	tp.tap.timeout = 0
}

func (tp *Touchpad) emitTap(fingers int, press bool, userdata interface{}) {
	if tp.iface != nil {
		tp.iface.Tap(tp, userdata, fingers, press)
	}
}

// tapExceedsMotionThreshold reports whether t's current position has moved
// past the configured squared distance from its last pushed history
// sample, the squared-distance idiom from touchpad_tap_exceeds_motion_threshold.
func (tp *Touchpad) tapExceedsMotionThreshold(t *touch) bool {
	last, ok := t.history.getLast()
	if !ok {
		return false
	}
	dx := t.x - last.x
	dy := t.y - last.y
	threshold := tp.tap.config.moveThreshold
	return dx*dx+dy*dy > threshold*threshold
}

// dispatchTapEvent runs one step of the thirteen-state tap machine.
// Grounded on spec.md §4.4's prose transition walkthrough.
func (tp *Touchpad) dispatchTapEvent(ev tapEvent, userdata interface{}) {
	from := tp.tap.state

	if ev == tapEventButton {
		tp.forceDeadWithRelease(userdata)
		tp.logTapTransition(from)
		return
	}

	switch tp.tap.state {
	case tapIdle:
		if ev == tapEventTouch {
			tp.tap.state = tapTouch
			tp.armTapTimer(tp.tap.config.timeoutPeriod)
		}

	case tapTouch:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapTapped
			tp.emitTap(1, true, userdata)
			tp.armTapTimer(tp.tap.config.doubletapTimeoutPeriod)
		case tapEventTouch:
			tp.tap.state = tapTouch2
			tp.armTapTimer(tp.tap.config.timeoutPeriod)
		case tapEventMotion, tapEventTimeout:
			tp.tap.state = tapHold
			tp.cancelTapTimer()
		}

	case tapHold:
		if ev == tapEventTouch {
			tp.tap.state = tapTouch2
			tp.armTapTimer(tp.tap.config.timeoutPeriod)
		}
		// Fall to IDLE once fingers_down hits zero, checked below.

	case tapTapped:
		switch ev {
		case tapEventTimeout:
			tp.tap.state = tapIdle
			tp.emitTap(1, false, userdata)
			tp.cancelTapTimer()
		case tapEventTouch:
			tp.tap.state = tapDraggingOrDoubletap
			tp.armTapTimer(tp.tap.config.doubletapTimeoutPeriod)
		}

	case tapTouch2:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapHold
			tp.emitTap(2, true, userdata)
			tp.emitTap(2, false, userdata)
			tp.cancelTapTimer()
		case tapEventTouch:
			tp.tap.state = tapTouch3
			tp.armTapTimer(tp.tap.config.timeoutPeriod)
		case tapEventMotion, tapEventTimeout:
			tp.tap.state = tapTouch2Hold
			tp.cancelTapTimer()
		}

	case tapTouch2Hold:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapHold
		case tapEventTouch:
			tp.tap.state = tapTouch3
			tp.armTapTimer(tp.tap.config.timeoutPeriod)
		}

	case tapTouch3:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapTouch2Hold
			tp.emitTap(3, true, userdata)
			tp.emitTap(3, false, userdata)
			tp.cancelTapTimer()
		case tapEventMotion, tapEventTimeout, tapEventTouch:
			tp.tap.state = tapIdle
			tp.cancelTapTimer()
		}

	case tapTouch3Hold:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapTouch2Hold
		case tapEventTouch:
			tp.tap.state = tapDead
		}

	case tapDraggingOrDoubletap:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapIdle
			tp.emitTap(1, false, userdata)
			tp.emitTap(1, true, userdata)
			tp.emitTap(1, false, userdata)
			tp.cancelTapTimer()
		case tapEventMotion, tapEventTimeout:
			tp.tap.state = tapDragging
			tp.cancelTapTimer()
		case tapEventTouch:
			tp.tap.state = tapDragging2
		}

	case tapDragging:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapIdle
			tp.emitTap(1, false, userdata)
		case tapEventTouch:
			tp.tap.state = tapDragging2
		}

	case tapDragging2:
		switch ev {
		case tapEventRelease:
			tp.tap.state = tapDragging
		case tapEventTouch:
			tp.forceDeadWithRelease(userdata)
		}

	case tapDead:
		// Absorbs everything; falls to IDLE once fingers_down hits zero.
	}

	if (tp.tap.state == tapHold || tp.tap.state == tapDead) && tp.fingersDown == 0 {
		tp.tap.state = tapIdle
		tp.cancelTapTimer()
	}

	tp.logTapTransition(from)
}

func (tp *Touchpad) forceDeadWithRelease(userdata interface{}) {
	if tp.tap.state == tapDragging || tp.tap.state == tapDragging2 {
		tp.emitTap(1, false, userdata)
	}
	tp.tap.state = tapDead
	tp.cancelTapTimer()
	if tp.fingersDown == 0 {
		tp.tap.state = tapIdle
	}
}

func (tp *Touchpad) logTapTransition(from tapState) {
	if tp.tap.state != from {
		tp.log.Debug().Str("from", from.String()).Str("to", tp.tap.state.String()).Msg("tap transition")
	}
}

// tapHandleState feeds the tap machine every stimulus this report
// produced: a forced-dead physical press, one TOUCH event per touch that
// began, one MOTION event if any active touch exceeded the move
// threshold, and one RELEASE event per touch that ended. Grounded on
// touchpad_tap_handle_state / touchpad_post_events's call ordering.
func (tp *Touchpad) tapHandleState(userdata interface{}) {
	if !tp.tap.config.enabled {
		return
	}

	if tp.queued&eventButtonPress != 0 {
		tp.dispatchTapEvent(tapEventButton, userdata)
	}

	tp.forEachTouch(func(t *touch) {
		if t.state == TouchBegin {
			tp.dispatchTapEvent(tapEventTouch, userdata)
		}
	})

	motion := false
	tp.forEachTouch(func(t *touch) {
		if t.state != TouchNone && tp.tapExceedsMotionThreshold(t) {
			motion = true
		}
	})
	if motion {
		tp.dispatchTapEvent(tapEventMotion, userdata)
	}

	tp.forEachTouch(func(t *touch) {
		if t.state == TouchEnd {
			tp.dispatchTapEvent(tapEventRelease, userdata)
		}
	})
}

// tapHandleTimeout fires TIMEOUT if the tap timer has expired and returns
// the next absolute millisecond it will next expire, or 0 if none armed.
func (tp *Touchpad) tapHandleTimeout(now uint32, userdata interface{}) uint32 {
	if tp.tap.timeout != 0 && now >= tp.tap.timeout {
		tp.tap.timeout = 0
		tp.dispatchTapEvent(tapEventTimeout, userdata)
	}
	return tp.tap.timeout
}
