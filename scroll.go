package touchpad

// scrollMachine holds the two-finger scroll recognizer's state, config and
// axis lock. Grounded on the scroll recognizer component (spec.md §4.5)
// and touchpad-scroll.c's handle_2fg/handle_state shape.
type scrollMachine struct {
	config    scrollConfig
	state     scrollState
	direction ScrollDirection
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// scrollAxisUnits computes the dominant (by magnitude) scaled delta for
// axis across the currently dirty, non-fake touches, or ok=false if the
// axis's method is disabled or no touch supplied a sample.
func (tp *Touchpad) scrollAxisUnits(axis ScrollDirection) (units float64, ok bool) {
	methodBit := ScrollMethodTwoFingerVertical
	delta := float64(tp.scroll.config.vdelta)
	if axis == ScrollHorizontal {
		methodBit = ScrollMethodTwoFingerHorizontal
		delta = float64(tp.scroll.config.hdelta)
	}
	if tp.scroll.config.methods&methodBit == 0 || delta == 0 {
		return 0, false
	}

	tp.forEachTouch(func(t *touch) {
		if t.state == TouchNone || !t.dirty || t.fake {
			return
		}
		last, found := t.history.getLast()
		if !found {
			return
		}
		var raw int
		if axis == ScrollVertical {
			raw = t.y - last.y
		} else {
			raw = t.x - last.x
		}
		scaled := float64(raw) / delta
		if !ok || absFloat(scaled) > absFloat(units) {
			units = scaled
			ok = true
		}
	})
	return units, ok
}

func (tp *Touchpad) emitScrollEnd(userdata interface{}) {
	if tp.iface != nil {
		tp.iface.Scroll(tp, userdata, tp.scroll.direction, 0)
	}
	tp.scroll.state = scrollNone
}

// scrollHandleState runs one report's worth of the scroll recognizer,
// returning true if it emitted a non-zero scroll this report (telling the
// sequencer to suppress the report's pointer-motion emission). Grounded
// on touchpad_scroll_handle_state / touchpad_scroll_handle_2fg.
func (tp *Touchpad) scrollHandleState(userdata interface{}) bool {
	if tp.buttons.state != 0 {
		// Clickpad interlock: disabled entirely, no emission, state
		// is dropped so a stale lock can't resume once released.
		tp.scroll.state = scrollNone
		return false
	}

	if tp.fingersDown != 2 {
		if tp.scroll.state == scrollScrolling {
			tp.emitScrollEnd(userdata)
		}
		return false
	}

	vUnits, vOK := tp.scrollAxisUnits(ScrollVertical)
	hUnits, hOK := tp.scrollAxisUnits(ScrollHorizontal)

	if tp.scroll.state == scrollNone {
		var axis ScrollDirection
		var units float64
		switch {
		case vOK && hOK:
			if absFloat(vUnits) >= absFloat(hUnits) {
				axis, units = ScrollVertical, vUnits
			} else {
				axis, units = ScrollHorizontal, hUnits
			}
		case vOK:
			axis, units = ScrollVertical, vUnits
		case hOK:
			axis, units = ScrollHorizontal, hUnits
		default:
			return false
		}

		if absFloat(units) < 1.0 {
			return false
		}

		tp.scroll.state = scrollScrolling
		tp.scroll.direction = axis
		if units == 0 {
			return false
		}
		if tp.iface != nil {
			tp.iface.Scroll(tp, userdata, axis, units)
		}
		return true
	}

	var units float64
	if tp.scroll.direction == ScrollVertical {
		units = vUnits
	} else {
		units = hUnits
	}
	if units == 0 {
		return false
	}
	if tp.iface != nil {
		tp.iface.Scroll(tp, userdata, tp.scroll.direction, units)
	}
	return true
}
