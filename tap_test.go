package touchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapSingleTouchReleaseEmitsPressHalf(t *testing.T) {
	tp, sink := newScenarioTouchpad()

	tp.dispatchTapEvent(tapEventTouch, nil)
	require.Equal(t, tapTouch, tp.tap.state)

	tp.dispatchTapEvent(tapEventRelease, nil)

	assert.Equal(t, tapTapped, tp.tap.state)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "tap(1,true)", sink.events[0])
}

func TestTapTappedTimeoutEmitsReleaseHalfAndReturnsToIdle(t *testing.T) {
	tp, sink := newScenarioTouchpad()
	tp.tap.state = tapTapped

	tp.dispatchTapEvent(tapEventTimeout, nil)

	assert.Equal(t, tapIdle, tp.tap.state)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "tap(1,false)", sink.events[0])
}

func TestTapMotionDuringFirstTouchGoesToHoldWithoutEmitting(t *testing.T) {
	tp, sink := newScenarioTouchpad()
	tp.tap.state = tapTouch
	tp.fingersDown = 1

	tp.dispatchTapEvent(tapEventMotion, nil)

	assert.Equal(t, tapHold, tp.tap.state)
	assert.Empty(t, sink.events, "motion before any finger lifts never produces a tap")
}

func TestTapTwoFingerReleaseEmitsBothHalvesAtOnce(t *testing.T) {
	tp, sink := newScenarioTouchpad()
	tp.tap.state = tapTouch2
	tp.fingersDown = 1 // one of the two fingers has lifted

	tp.dispatchTapEvent(tapEventRelease, nil)

	assert.Equal(t, tapHold, tp.tap.state)
	require.Len(t, sink.events, 2)
	assert.Equal(t, "tap(2,true)", sink.events[0])
	assert.Equal(t, "tap(2,false)", sink.events[1])
}

func TestTapFourthFingerDuringTouch3CancelsToIdle(t *testing.T) {
	tp, sink := newScenarioTouchpad()
	tp.tap.state = tapTouch3
	tp.fingersDown = 3

	tp.dispatchTapEvent(tapEventTouch, nil)

	assert.Equal(t, tapIdle, tp.tap.state)
	assert.Empty(t, sink.events)
}

func TestTapPhysicalButtonForcesDeadFromAnyState(t *testing.T) {
	tp, sink := newScenarioTouchpad()
	tp.tap.state = tapTouch2
	tp.fingersDown = 2

	tp.dispatchTapEvent(tapEventButton, nil)

	assert.Equal(t, tapDead, tp.tap.state)
	assert.Empty(t, sink.events, "a physical press during an undecided tap emits nothing")
}

func TestTapPhysicalButtonDuringDragEmitsReleaseHalf(t *testing.T) {
	tp, sink := newScenarioTouchpad()
	tp.tap.state = tapDragging
	tp.fingersDown = 1

	tp.dispatchTapEvent(tapEventButton, nil)

	assert.Equal(t, tapDead, tp.tap.state)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "tap(1,false)", sink.events[0])
}

func TestTapDeadFallsToIdleOnceAllFingersLift(t *testing.T) {
	tp, _ := newScenarioTouchpad()
	tp.tap.state = tapDead
	tp.fingersDown = 0

	tp.dispatchTapEvent(tapEventTouch, nil)

	assert.Equal(t, tapIdle, tp.tap.state, "dead absorbs the event but still falls to idle once fingers_down hits zero")
}

func TestTapDraggingOrDoubletapReleaseEmitsTripletForADoubletap(t *testing.T) {
	tp, sink := newScenarioTouchpad()
	tp.tap.state = tapDraggingOrDoubletap

	tp.dispatchTapEvent(tapEventRelease, nil)

	assert.Equal(t, tapIdle, tp.tap.state)
	require.Len(t, sink.events, 3)
	assert.Equal(t, []string{"tap(1,false)", "tap(1,true)", "tap(1,false)"}, sink.events)
}

func TestTapExceedsMotionThresholdUsesConfiguredSquaredDistance(t *testing.T) {
	tp, _ := newScenarioTouchpad()
	touch := tp.touchAt(0)
	touch.history.reset(10)
	touch.history.push(1000, 1000, 0)
	touch.x, touch.y = 1000, 1000

	assert.False(t, tp.tapExceedsMotionThreshold(touch))

	touch.x = 1000 + tp.tap.config.moveThreshold + 1
	assert.True(t, tp.tapExceedsMotionThreshold(touch))
}

func TestArmAndCancelTapTimer(t *testing.T) {
	tp, _ := newScenarioTouchpad()
	tp.ms = 1000

	tp.armTapTimer(180)
	assert.Equal(t, uint32(1180), tp.tap.timeout)

	tp.cancelTapTimer()
	assert.Equal(t, uint32(0), tp.tap.timeout)
}
