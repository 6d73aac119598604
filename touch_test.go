package touchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTouchpad(t *testing.T) *Touchpad {
	t.Helper()
	caps := DeviceCapabilities{XMin: 0, XMax: 5000, YMin: 0, YMax: 5000, MaxSlots: 2}
	return NewTouchpad(caps, NopInterface{}, nil, NewLogger())
}

func TestBeginTouchAssignsTrackingIDAndIncrementsFingersDown(t *testing.T) {
	tp := newTestTouchpad(t)
	touch := tp.touchAt(0)

	tp.beginTouch(touch, 7)

	assert.Equal(t, 1, tp.fingersDown)
	assert.Equal(t, TouchBegin, touch.state)
	assert.Equal(t, 7, touch.number)
	assert.False(t, touch.fake)
	assert.True(t, touch.dirty)
}

func TestBeginTouchWithNegativeIDMarksFake(t *testing.T) {
	tp := newTestTouchpad(t)
	touch := tp.touchAt(0)

	tp.beginTouch(touch, -1)

	assert.True(t, touch.fake)
	assert.Equal(t, fakeTrackingIDBase, touch.number)
}

func TestEndTouchDecrementsFingersDown(t *testing.T) {
	tp := newTestTouchpad(t)
	touch := tp.touchAt(0)
	tp.beginTouch(touch, 1)

	tp.endTouch(touch)

	assert.Equal(t, 0, tp.fingersDown)
	assert.Equal(t, TouchEnd, touch.state)
}

func TestFakeSlotIndexMatchesMaxtouchesPlusOffset(t *testing.T) {
	assert.Equal(t, 2, fakeSlotIndex(2, 2))
	assert.Equal(t, 3, fakeSlotIndex(2, 3))
	assert.Equal(t, 4, fakeSlotIndex(2, 4))
}

func TestBeginFakeTouchesSkipsWhenDeviceAlreadyReportsThatManySlots(t *testing.T) {
	tp := newTestTouchpad(t)
	tp.maxtouches = 4 // device natively reports up to quad-touch

	tp.beginFakeTouches(3)

	idx := fakeSlotIndex(tp.maxtouches, 3)
	assert.Equal(t, TouchNone, tp.touchAt(idx).state)
}

func TestBeginAndEndFakeTouchesUsesDedicatedSlot(t *testing.T) {
	tp := newTestTouchpad(t) // maxtouches == 2

	tp.beginFakeTouches(3)

	idx := fakeSlotIndex(tp.maxtouches, 3)
	fake := tp.touchAt(idx)
	require.Equal(t, TouchBegin, fake.state)
	assert.True(t, fake.fake)
	assert.Equal(t, 1, tp.fingersDown)

	tp.endFakeTouches(3)
	assert.Equal(t, TouchEnd, fake.state)
}

func TestPinFingerPicksLowestOnPad(t *testing.T) {
	tp := newTestTouchpad(t)
	a, b := tp.touchAt(0), tp.touchAt(1)
	tp.beginTouch(a, 1)
	tp.beginTouch(b, 2)
	a.state, b.state = TouchUpdate, TouchUpdate
	a.y, b.y = 1000, 3000
	b.pointer = true

	tp.pinFinger()

	assert.True(t, b.pinned, "the finger further down the pad (larger y) is pinned")
	assert.False(t, b.pointer)
	assert.True(t, a.pointer, "the remaining active touch is promoted to pointer")
}

func TestPinFingerWithSingleTouchPinsThePointer(t *testing.T) {
	tp := newTestTouchpad(t)
	a := tp.touchAt(0)
	tp.beginTouch(a, 1)
	a.state = TouchUpdate
	a.pointer = true
	tp.fingersDown = 1

	tp.pinFinger()

	assert.True(t, a.pinned)
	assert.False(t, a.pointer)
}

func TestUnpinFingerRestoresPointerWhenOneFingerRemains(t *testing.T) {
	tp := newTestTouchpad(t)
	a := tp.touchAt(0)
	tp.beginTouch(a, 1)
	a.state = TouchUpdate
	a.pinned = true
	tp.fingersDown = 1

	tp.unpinFinger()

	assert.False(t, a.pinned)
	assert.True(t, a.pointer)
}

func TestRenumberTouchesProducesDensePrefix(t *testing.T) {
	tp := newTestTouchpad(t)
	a, b, c := tp.touchAt(0), tp.touchAt(1), tp.touchAt(2)
	a.state, b.state, c.state = TouchUpdate, TouchEnd, TouchUpdate

	tp.renumberTouches(1)

	assert.Equal(t, 0, a.number)
	assert.Equal(t, 1, c.number)
}

func TestTouchResetClearsRoleFlagsAndHistory(t *testing.T) {
	touch := &touch{state: TouchEnd, pointer: true, pinned: true, fake: true}
	touch.history.reset(5)
	touch.history.push(1, 2, 3)

	touchReset(touch)

	assert.Equal(t, TouchNone, touch.state)
	assert.False(t, touch.pointer)
	assert.False(t, touch.pinned)
	assert.False(t, touch.fake)
	assert.Equal(t, 0, touch.history.valid, "history must report valid = 0 once the touch is none")
}

func TestPreProcessThenPostProcessAdvancesBeginToUpdate(t *testing.T) {
	tp := newTestTouchpad(t)
	touch := tp.touchAt(0)
	tp.beginTouch(touch, 1)
	touch.x, touch.y = 2000, 2000

	tp.preProcessTouches()
	tp.postProcessTouches()

	assert.Equal(t, TouchUpdate, touch.state)
	assert.Equal(t, eventNone, tp.queued)
}

func TestPostProcessResetsEndedTouchAndClearsQueue(t *testing.T) {
	tp := newTestTouchpad(t)
	touch := tp.touchAt(0)
	tp.beginTouch(touch, 1)
	tp.preProcessTouches()
	tp.postProcessTouches()

	tp.endTouch(touch)
	tp.preProcessTouches()
	tp.postProcessTouches()

	assert.Equal(t, TouchNone, touch.state)
	assert.Equal(t, eventNone, tp.queued)
	assert.Equal(t, 0, tp.fingersDown)
}
