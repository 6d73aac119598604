package touchpad

// touch is one slot in the arena: either a real multi-touch contact or a
// synthetic ("fake") one standing in for a tool-bit finger count.
type touch struct {
	state  TouchState
	millis uint32
	x, y   int

	number int // tracking id (or synthesized fake id) at begin; dense ordinal after renumberTouches

	dirty   bool
	pointer bool
	pinned  bool
	fake    bool

	history history

	buttonState   buttonState
	buttonTimeout uint32 // absolute ms; 0 means no timer armed
}

// touchAt returns the touch at slot i, allocating nothing (the arena is
// preallocated at construction).
func (tp *Touchpad) touchAt(i int) *touch {
	return &tp.touches[i]
}

// currentTouch returns the touch at the currently selected ABS_MT_SLOT.
func (tp *Touchpad) currentTouch() *touch {
	return tp.touchAt(tp.slot)
}

// forEachTouch calls fn for every slot in the arena in index order,
// matching touchpad_for_each_touch's iteration order (real slots first,
// then fake slots).
func (tp *Touchpad) forEachTouch(fn func(*touch)) {
	for i := 0; i < tp.ntouches; i++ {
		fn(tp.touchAt(i))
	}
}

// pointerTouch returns the touch currently promoted to "pointer", or nil.
func (tp *Touchpad) pointerTouch() *touch {
	for i := 0; i < tp.ntouches; i++ {
		if tp.touches[i].pointer {
			return &tp.touches[i]
		}
	}
	return nil
}

// pinnedTouch returns the touch currently "pinned", or nil.
func (tp *Touchpad) pinnedTouch() *touch {
	for i := 0; i < tp.ntouches; i++ {
		if tp.touches[i].pinned {
			return &tp.touches[i]
		}
	}
	return nil
}

const fakeTrackingIDBase = 1 << 16

// beginTouch starts (or re-activates) t. trackingID is the device tracking
// id for real touches, or -1 to synthesize a fake one. Grounded on
// touchpad_begin_touch.
func (tp *Touchpad) beginTouch(t *touch, trackingID int) {
	if t.state == TouchNone || t.state == TouchEnd {
		tp.fingersDown++
	}

	if t.state != TouchUpdate {
		t.state = TouchBegin
	}

	if trackingID < 0 {
		t.number = int(tp.nextFakeID)
		tp.nextFakeID++
		t.fake = true
	} else {
		t.number = trackingID
		t.fake = false
	}

	t.dirty = true
	tp.queued |= eventMotion
}

// endTouch ends t. Grounded on touchpad_end_touch.
func (tp *Touchpad) endTouch(t *touch) {
	if t.state == TouchNone {
		return
	}

	t.state = TouchEnd
	if tp.fingersDown > 0 {
		tp.fingersDown--
	} else {
		logBug("fingers_down underflow on touch end")
	}
	t.dirty = true
	tp.queued |= eventMotion
}

// fakeSlotIndex returns the arena index of the dedicated fake slot standing
// in for an N-finger tool bit (N in 2..4), per the touch slot arena
// component: "the fake slot for N fingers lives at maxtouches + (N - 2)".
func fakeSlotIndex(maxtouches, fingerCount int) int {
	return maxtouches + (fingerCount - 2)
}

// beginFakeTouches activates the fake slot for a tool bit reporting
// fingerCount fingers, unless the device already natively reports that
// many real slots. Grounded on touchpad_begin_fake_touches.
func (tp *Touchpad) beginFakeTouches(fingerCount int) {
	if tp.maxtouches >= fingerCount {
		return
	}
	idx := fakeSlotIndex(tp.maxtouches, fingerCount)
	if idx < 0 || idx >= len(tp.touches) {
		logBug("fake slot index out of range", "index", idx, "fingerCount", fingerCount)
		return
	}
	t := tp.touchAt(idx)
	if t.state == TouchEnd || t.state == TouchNone {
		tp.beginTouch(t, -1)
	}
}

// endFakeTouches deactivates the fake slot for a tool bit turning off.
// Grounded on touchpad_end_fake_touches.
func (tp *Touchpad) endFakeTouches(fingerCount int) {
	if tp.maxtouches >= fingerCount {
		return
	}
	idx := fakeSlotIndex(tp.maxtouches, fingerCount)
	if idx < 0 || idx >= len(tp.touches) {
		return
	}
	t := tp.touchAt(idx)
	if t.fake && (t.state == TouchUpdate || t.state == TouchBegin) {
		tp.endTouch(t)
	}
}

// unpinFinger releases the pinned touch, promoting it back to pointer if
// it is now the only finger down. Grounded on touchpad_unpin_finger.
func (tp *Touchpad) unpinFinger() {
	t := tp.pinnedTouch()
	if t == nil {
		return
	}
	t.pinned = false
	if tp.fingersDown == 1 {
		t.pointer = true
	}
}

// pinFinger picks the touch to suppress motion for while a physical button
// press is active: the sole touch if only one is down, otherwise the
// active finger lowest on the pad (largest y), promoting another active
// touch to pointer in its place. Grounded on touchpad_pin_finger.
func (tp *Touchpad) pinFinger() {
	if tp.pinnedTouch() != nil {
		return
	}

	var t *touch
	if tp.fingersDown == 1 {
		t = tp.pointerTouch()
	} else {
		maxY := int(-1 << 31)
		newPointer := tp.touchAt(0)
		tp.forEachTouch(func(tmp *touch) {
			if tmp.state != TouchUpdate && tmp.state != TouchBegin {
				return
			}
			if tmp.y > maxY {
				if t != nil {
					newPointer = t
				}
				t = tmp
				maxY = tmp.y
			} else if tmp.state == TouchUpdate || tmp.state == TouchBegin {
				newPointer = tmp
			}
		})
		if newPointer.state != TouchNone {
			newPointer.pointer = true
		}
	}

	if t != nil {
		t.pinned = true
		t.pointer = false
	}
}

// updatePointerTouch demotes the pointer touch if it has just ended.
// Grounded on touchpad_update_pointer_touch.
func (tp *Touchpad) updatePointerTouch() {
	t := tp.pointerTouch()
	if t != nil && t.state == TouchEnd {
		t.pointer = false
	}
}

// selectPointerTouch promotes a touch to pointer if none is currently
// promoted, deferring the choice of which to the active button policy.
// Grounded on touchpad_select_pointer_touch.
func (tp *Touchpad) selectPointerTouch() {
	if tp.pointerTouch() != nil {
		return
	}
	for i := 0; i < tp.ntouches; i++ {
		t := &tp.touches[i]
		if tp.policy.selectPointerTouch(tp, t) {
			t.pointer = true
			break
		}
	}
}

// touchReset clears a touch back to its quiescent state. Grounded on
// touchpad_touch_reset.
func touchReset(t *touch) {
	t.state = TouchNone
	t.pointer = false
	t.pinned = false
	t.fake = false
	t.buttonState = buttonStateNone
	t.buttonTimeout = 0
	t.history.reset(t.history.size)
}

// preProcessTouches runs before the per-report state machines: pick a
// pointer touch, push the first history sample of touches that just
// began, dejitter dirty touches, and pin a
// finger if a button press was queued this report. Grounded on
// touchpad_pre_process_touches.
func (tp *Touchpad) preProcessTouches() {
	tp.selectPointerTouch()

	tp.forEachTouch(func(t *touch) {
		if t.state == TouchBegin {
			t.history.push(t.x, t.y, t.millis)
		}
		if t.state != TouchNone && t.dirty {
			motionDejitter(t)
		}
	})

	if tp.queued&eventButtonPress != 0 {
		tp.pinFinger()
	}
}

// postProcessTouches runs after the per-report state machines: push final
// history, retire ended touches, advance begun touches to update, clear
// the queued bitmask, unpin on release, and renumber. Grounded on
// touchpad_post_process_touches.
func (tp *Touchpad) postProcessTouches() {
	ended := 0

	tp.forEachTouch(func(t *touch) {
		if t.state == TouchNone {
			return
		}

		t.history.push(t.x, t.y, t.millis)

		if t.state == TouchEnd {
			touchReset(t)
			ended++
		} else if t.state == TouchBegin {
			t.state = TouchUpdate
		}

		t.dirty = false
	})

	if tp.queued&eventButtonRelease != 0 {
		tp.unpinFinger()
	}

	tp.queued = eventNone
	tp.updatePointerTouch()
	tp.renumberTouches(ended)
}

// renumberTouches, when at least one touch ended, reassigns dense 0-based
// numbers to the touches that are neither none nor ended, in slot order,
// per the touch slot arena component's post-process renumbering rule.
// With no ended touch the numbers are left unchanged.
func (tp *Touchpad) renumberTouches(ended int) {
	if ended == 0 {
		return
	}
	next := 0
	tp.forEachTouch(func(t *touch) {
		if t.state == TouchNone || t.state == TouchEnd {
			return
		}
		t.number = next
		next++
	})
}
