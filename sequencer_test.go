package touchpad

import (
	"testing"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The scenarios below drive a clickpad (no real right button) with a
// 5000x5000 axis range, motion history size 10 and the default soft-button
// right region (x in [50%,100%], y in [82%,100%]) — the fixture every
// end-to-end scenario shares.

func newScenarioTouchpad() (*Touchpad, *recordingSink) {
	sink := &recordingSink{}
	caps := DeviceCapabilities{XMin: 0, XMax: 5000, YMin: 0, YMax: 5000, MaxSlots: 5}
	tp := NewTouchpad(caps, sink, nil, NewLogger())
	return tp, sink
}

func absEvent(code uint16, value int32, ms uint32) RawEvent {
	return RawEvent{Type: uint16(evdev.EV_ABS), Code: code, Value: value, Millis: ms}
}

func keyEvent(code uint16, value int32, ms uint32) RawEvent {
	return RawEvent{Type: uint16(evdev.EV_KEY), Code: code, Value: value, Millis: ms}
}

func synEvent(ms uint32) RawEvent {
	return RawEvent{Type: uint16(evdev.EV_SYN), Code: uint16(evdev.SYN_REPORT), Millis: ms}
}

func slot(n int, ms uint32) RawEvent {
	return absEvent(uint16(evdev.ABS_MT_SLOT), int32(n), ms)
}

func trackingID(id int, ms uint32) RawEvent {
	return absEvent(uint16(evdev.ABS_MT_TRACKING_ID), int32(id), ms)
}

func posX(v int, ms uint32) RawEvent { return absEvent(uint16(evdev.ABS_MT_POSITION_X), int32(v), ms) }
func posY(v int, ms uint32) RawEvent { return absEvent(uint16(evdev.ABS_MT_POSITION_Y), int32(v), ms) }

func feed(tp *Touchpad, events ...RawEvent) {
	for _, ev := range events {
		tp.HandleEvent(ev)
	}
}

func TestScenarioLeftClick(t *testing.T) {
	tp, sink := newScenarioTouchpad()

	feed(tp,
		slot(0, 0), trackingID(1, 0), posX(2000, 0), posY(2000, 0), synEvent(0),
		keyEvent(uint16(evdev.BTN_LEFT), 1, 10), synEvent(10),
		keyEvent(uint16(evdev.BTN_LEFT), 0, 20), synEvent(20),
		trackingID(-1, 30), synEvent(30),
	)

	require.Len(t, sink.events, 2)
	assert.Equal(t, "button(272,true)", sink.events[0])
	assert.Equal(t, "button(272,false)", sink.events[1])
}

func TestScenarioRightClickByLocation(t *testing.T) {
	tp, sink := newScenarioTouchpad()

	feed(tp,
		slot(0, 0), trackingID(1, 0), posX(4500, 0), posY(4500, 0), synEvent(0),
		// hold position past the enter-timer so RIGHT_NEW -> RIGHT fires.
		posX(4500, 150), synEvent(150),
		keyEvent(uint16(evdev.BTN_LEFT), 1, 160), synEvent(160),
		keyEvent(uint16(evdev.BTN_LEFT), 0, 170), synEvent(170),
		trackingID(-1, 180), synEvent(180),
	)

	require.Len(t, sink.events, 2)
	assert.Equal(t, "button(273,true)", sink.events[0])
	assert.Equal(t, "button(273,false)", sink.events[1])
}

func TestScenarioSingleFingerTap(t *testing.T) {
	tp, sink := newScenarioTouchpad()

	feed(tp,
		slot(0, 0), trackingID(1, 0), posX(3000, 0), posY(3000, 0), synEvent(0),
		trackingID(-1, 50), synEvent(50),
	)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "tap(1,true)", sink.events[0])

	tp.HandleTimers(400) // well past the doubletap window

	require.Len(t, sink.events, 2)
	assert.Equal(t, "tap(1,false)", sink.events[1])
}

func TestScenarioTwoFingerTap(t *testing.T) {
	tp, sink := newScenarioTouchpad()

	feed(tp,
		slot(0, 0), trackingID(1, 0), posX(3000, 0), posY(3000, 0), synEvent(0),
		slot(1, 10), trackingID(2, 10), posX(4000, 10), posY(4000, 10), synEvent(10),
		slot(0, 20), trackingID(-1, 20),
		slot(1, 20), trackingID(-1, 20),
		synEvent(20),
	)

	require.Len(t, sink.events, 2)
	assert.Equal(t, "tap(2,true)", sink.events[0])
	assert.Equal(t, "tap(2,false)", sink.events[1])
}

func TestScenarioTwoFingerScrollDown(t *testing.T) {
	tp, sink := newScenarioTouchpad()

	feed(tp,
		slot(0, 0), trackingID(1, 0), posX(2000, 0), posY(2000, 0),
		slot(1, 0), trackingID(2, 0), posX(3000, 0), posY(2000, 0),
		synEvent(0),
	)

	ms := uint32(10)
	for y := 2200; y <= 4000; y += 200 {
		feed(tp,
			slot(0, ms), posY(y, ms),
			slot(1, ms), posY(y, ms),
			synEvent(ms),
		)
		ms += 10
	}

	feed(tp,
		slot(0, ms), trackingID(-1, ms),
		slot(1, ms), trackingID(-1, ms),
		synEvent(ms),
	)

	require.NotEmpty(t, sink.events)
	last := sink.events[len(sink.events)-1]
	assert.Equal(t, "scroll(vertical,0.000)", last, "exactly one terminating zero-unit scroll")

	zeroCount := 0
	for _, e := range sink.events {
		assert.Contains(t, e, "scroll(vertical,", "no horizontal scroll or tap/button noise expected mid-gesture")
		if e == "scroll(vertical,0.000)" {
			zeroCount++
		}
	}
	assert.Equal(t, 1, zeroCount, "exactly one scroll(dir, 0) terminator")
	assert.Greater(t, len(sink.events), 1, "expects at least one non-zero scroll before the terminator")
}

func TestScenarioTapAndDrag(t *testing.T) {
	tp, sink := newScenarioTouchpad()

	feed(tp,
		slot(0, 0), trackingID(1, 0), posX(3000, 0), posY(3000, 0), synEvent(0),
		trackingID(-1, 50), synEvent(50),
		trackingID(1, 100), posX(3000, 100), posY(3000, 100), synEvent(100),
	)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "tap(1,true)", sink.events[0])

	ms := uint32(110)
	for x := 3100; x <= 4000; x += 100 {
		feed(tp, posX(x, ms), posY(3000, ms), synEvent(ms))
		ms += 10
	}

	feed(tp, trackingID(-1, ms), synEvent(ms))

	tapPress, tapRelease, motionSeen := 0, 0, false
	for _, e := range sink.events {
		switch {
		case e == "tap(1,true)":
			tapPress++
		case e == "tap(1,false)":
			tapRelease++
		case len(e) >= 6 && e[:6] == "motion":
			motionSeen = true
		}
	}
	assert.Equal(t, 1, tapPress, "tap(1,true) must be emitted exactly once across a drag")
	assert.Equal(t, 1, tapRelease)
	assert.True(t, motionSeen, "the drag must also produce pointer motion callbacks")
	assert.Equal(t, "tap(1,false)", sink.events[len(sink.events)-1], "drag release is the final callback")
}
