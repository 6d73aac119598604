package touchpad

import evdev "github.com/gvalkov/golang-evdev"

// traditionalPolicy implements buttonPolicy for touchpads with a real
// right button: soft-button emulation is bypassed entirely and the
// physical bitmask is edge-detected and forwarded bit by bit. Grounded on
// touchpad-phys-button.c (SUPPLEMENTED FEATURES item 4).
type traditionalPolicy struct{}

// handleState walks the physical button bitmask one bit at a time,
// starting at BTN_LEFT, emitting a Button callback for every bit that
// changed since the previous report. Multiple simultaneous bit changes
// each get their own callback, in ascending bit order.
func (traditionalPolicy) handleState(tp *Touchpad, userdata interface{}) {
	if tp.queued&(eventButtonPress|eventButtonRelease) == 0 {
		tp.buttons.oldState = tp.buttons.state
		return
	}

	changed := tp.buttons.state ^ tp.buttons.oldState
	for bit := uint32(0); bit < 32; bit++ {
		mask := uint32(1) << bit
		if changed&mask == 0 {
			continue
		}
		code := uint16(evdev.BTN_LEFT) + uint16(bit)
		isPress := tp.buttons.state&mask != 0
		if tp.iface != nil {
			tp.iface.Button(tp, userdata, code, isPress)
		}
	}
	tp.buttons.oldState = tp.buttons.state
}

// handleTimeout is a no-op: the traditional policy has no debounce timers.
func (traditionalPolicy) handleTimeout(tp *Touchpad, now uint32, userdata interface{}) uint32 {
	return 0
}

// selectPointerTouch promotes any active touch, since there is no
// soft-button region to prefer one over another.
func (traditionalPolicy) selectPointerTouch(tp *Touchpad, t *touch) bool {
	return t.state != TouchNone
}
