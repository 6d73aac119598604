package touchpad

import evdev "github.com/gvalkov/golang-evdev"

// clickpadPolicy implements buttonPolicy for single-physical-button
// clickpads: right-click is emulated by the per-touch soft-button state
// machine below. Grounded on the soft-button state machine component and
// touchpad-button.c.
type clickpadPolicy struct{}

// inRightRegion reports whether t is "in R": inside the configured
// right-button rectangle.
func (tp *Touchpad) inRightRegion(t *touch) bool {
	c := tp.buttons.config
	return t.x >= c.rightLeft && t.x <= c.rightRight &&
		t.y >= c.rightTop && t.y <= c.rightBottom
}

// inBand reports whether t is within the rectangle's top/bottom band
// regardless of x, i.e. "in L" once IN_R has already been ruled out.
func (tp *Touchpad) inBand(t *touch) bool {
	c := tp.buttons.config
	return t.y >= c.rightTop && t.y <= c.rightBottom
}

// locationEvent derives IN_R / IN_L / IN_AREA from t's current position.
func (tp *Touchpad) locationEvent(t *touch) buttonEvent {
	if tp.inRightRegion(t) {
		return buttonEventInRight
	}
	if tp.inBand(t) {
		return buttonEventInLeft
	}
	return buttonEventInArea
}

func (tp *Touchpad) armEnterTimer(t *touch) {
	t.buttonTimeout = tp.ms + tp.buttons.config.enterTimeout
}

func (tp *Touchpad) armLeaveTimer(t *touch) {
	t.buttonTimeout = tp.ms + tp.buttons.config.leaveTimeout
}

func cancelButtonTimer(t *touch) {
	t.buttonTimeout = 0
}

// dispatchButtonEvent runs the twelve-state soft-button transition table
// for one touch and one event. Unlisted (state, event) pairs are no-ops,
// per the soft-button state machine component.
func (tp *Touchpad) dispatchButtonEvent(t *touch, ev buttonEvent) {
	from := t.buttonState

	switch from {
	case buttonStateNone:
		switch ev {
		case buttonEventInRight:
			t.buttonState = buttonStateRightNew
			tp.armEnterTimer(t)
		case buttonEventInLeft:
			t.buttonState = buttonStateLeftNew
			tp.armEnterTimer(t)
		case buttonEventInArea:
			t.buttonState = buttonStateArea
		}

	case buttonStateArea:
		switch ev {
		case buttonEventUp:
			t.buttonState = buttonStateNone
		case buttonEventPress:
			t.buttonState = buttonStatePressedLeft
		}

	case buttonStateLeft:
		switch ev {
		case buttonEventInRight:
			t.buttonState = buttonStateLeftToRight
			tp.armLeaveTimer(t)
		case buttonEventInArea:
			t.buttonState = buttonStateLeftToArea
			tp.armLeaveTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
		case buttonEventPress:
			t.buttonState = buttonStatePressedLeft
		}

	case buttonStateLeftNew:
		switch ev {
		case buttonEventInRight:
			t.buttonState = buttonStateRightNew
			tp.armEnterTimer(t)
		case buttonEventInArea:
			t.buttonState = buttonStateLeftToArea
			cancelButtonTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
			cancelButtonTimer(t)
		case buttonEventPress:
			t.buttonState = buttonStatePressedLeft
			cancelButtonTimer(t)
		case buttonEventTimeout:
			t.buttonState = buttonStateLeft
		}

	case buttonStateRight:
		switch ev {
		case buttonEventInLeft:
			t.buttonState = buttonStateRightToLeft
			tp.armLeaveTimer(t)
		case buttonEventInArea:
			t.buttonState = buttonStateRightToArea
			tp.armLeaveTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
		case buttonEventPress:
			t.buttonState = buttonStatePressedRight
		}

	case buttonStateRightNew:
		switch ev {
		case buttonEventInLeft:
			t.buttonState = buttonStateLeftNew
			tp.armEnterTimer(t)
		case buttonEventInArea:
			t.buttonState = buttonStateArea
			cancelButtonTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
			cancelButtonTimer(t)
		case buttonEventPress:
			t.buttonState = buttonStatePressedRight
			cancelButtonTimer(t)
		case buttonEventTimeout:
			t.buttonState = buttonStateRight
		}

	case buttonStateLeftToArea:
		switch ev {
		case buttonEventInRight:
			t.buttonState = buttonStateLeftToRight
			tp.armLeaveTimer(t)
		case buttonEventInLeft:
			t.buttonState = buttonStateLeft
			cancelButtonTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
			cancelButtonTimer(t)
		case buttonEventPress:
			t.buttonState = buttonStatePressedLeft
			cancelButtonTimer(t)
		case buttonEventTimeout:
			t.buttonState = buttonStateArea
		}

	case buttonStateRightToArea:
		switch ev {
		case buttonEventInRight:
			t.buttonState = buttonStateRight
			cancelButtonTimer(t)
		case buttonEventInLeft:
			t.buttonState = buttonStateRightToLeft
			tp.armLeaveTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
			cancelButtonTimer(t)
		case buttonEventPress:
			t.buttonState = buttonStatePressedRight
			cancelButtonTimer(t)
		case buttonEventTimeout:
			t.buttonState = buttonStateArea
		}

	case buttonStateLeftToRight:
		switch ev {
		case buttonEventInLeft:
			t.buttonState = buttonStateLeft
			cancelButtonTimer(t)
		case buttonEventInArea:
			t.buttonState = buttonStateLeftToArea
			tp.armLeaveTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
			cancelButtonTimer(t)
		case buttonEventPress:
			t.buttonState = buttonStatePressedLeft
			cancelButtonTimer(t)
		case buttonEventTimeout:
			t.buttonState = buttonStateRight
		}

	case buttonStateRightToLeft:
		switch ev {
		case buttonEventInRight:
			t.buttonState = buttonStateRight
			cancelButtonTimer(t)
		case buttonEventInArea:
			t.buttonState = buttonStateRightToArea
			tp.armLeaveTimer(t)
		case buttonEventUp:
			t.buttonState = buttonStateNone
			cancelButtonTimer(t)
		case buttonEventPress:
			t.buttonState = buttonStatePressedRight
			cancelButtonTimer(t)
		case buttonEventTimeout:
			t.buttonState = buttonStateLeft
		}

	case buttonStatePressedLeft, buttonStatePressedRight:
		if ev == buttonEventRelease {
			t.buttonState = buttonStateNone
		}
	}

	if t.buttonState != from {
		tp.log.Debug().Str("touch_state", from.String()).Str("to", t.buttonState.String()).Msg("softbutton transition")
	}
}

// handleState runs the soft-button machine for every active touch, then
// emits a device-level button callback if a physical press/release was
// queued this report. The emitted code on press uses the finger-resting
// rule: BTN_RIGHT if any touch is currently PRESSED_RIGHT, else BTN_LEFT.
// Grounded on touchpad_button_handle_state (SUPPLEMENTED FEATURES item 1).
func (clickpadPolicy) handleState(tp *Touchpad, userdata interface{}) {
	tp.forEachTouch(func(t *touch) {
		if t.state == TouchNone {
			return
		}

		var ev buttonEvent
		switch {
		case t.state == TouchEnd:
			ev = buttonEventUp
		case tp.queued&eventButtonPress != 0:
			ev = buttonEventPress
		case tp.queued&eventButtonRelease != 0:
			ev = buttonEventRelease
		default:
			ev = tp.locationEvent(t)
		}
		tp.dispatchButtonEvent(t, ev)
	})

	if tp.queued&eventButtonPress != 0 {
		code := uint16(evdev.BTN_LEFT)
		tp.forEachTouch(func(t *touch) {
			if t.buttonState == buttonStatePressedRight {
				code = uint16(evdev.BTN_RIGHT)
			}
		})
		tp.buttons.activeSoftbutton = code
		if tp.iface != nil {
			tp.iface.Button(tp, userdata, code, true)
		}
	}

	if tp.queued&eventButtonRelease != 0 {
		if tp.iface != nil {
			tp.iface.Button(tp, userdata, tp.buttons.activeSoftbutton, false)
		}
	}
}

// handleTimeout fires TIMEOUT for any touch whose button_timer has
// expired and returns the next absolute millisecond at which a timer
// will next expire, or 0 if none is armed.
func (clickpadPolicy) handleTimeout(tp *Touchpad, now uint32, userdata interface{}) uint32 {
	var next uint32
	tp.forEachTouch(func(t *touch) {
		if t.buttonTimeout == 0 {
			return
		}
		if now >= t.buttonTimeout {
			t.buttonTimeout = 0
			tp.dispatchButtonEvent(t, buttonEventTimeout)
		}
		if t.buttonTimeout != 0 && (next == 0 || t.buttonTimeout < next) {
			next = t.buttonTimeout
		}
	})
	return next
}

// selectPointerTouch promotes touches sitting in the general AREA
// soft-button state, per SUPPLEMENTED FEATURES item 3.
func (clickpadPolicy) selectPointerTouch(tp *Touchpad, t *touch) bool {
	return t.buttonState == buttonStateArea
}
