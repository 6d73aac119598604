package touchpad

// Arena sizing. MaxTouchpoints mirrors MAX_TOUCHPOINTS in the original C
// core; maxFakeTouches reserves slots for the two/three/four-finger tool
// bit emulation described in the touch slot arena component.
const (
	MaxTouchpoints       = 10
	maxFakeTouches       = 4
	maxMotionHistorySize = 10
)

// TouchState is the lifecycle state of a touch slot.
type TouchState int

const (
	TouchNone TouchState = iota
	TouchBegin
	TouchUpdate
	TouchEnd
)

func (s TouchState) String() string {
	switch s {
	case TouchNone:
		return "none"
	case TouchBegin:
		return "begin"
	case TouchUpdate:
		return "update"
	case TouchEnd:
		return "end"
	default:
		return "unknown"
	}
}

// buttonState is the per-touch soft-button state.
type buttonState int

const (
	buttonStateNone buttonState = iota
	buttonStateArea
	buttonStateLeftNew
	buttonStateLeft
	buttonStateRightNew
	buttonStateRight
	buttonStateLeftToArea
	buttonStateRightToArea
	buttonStateLeftToRight
	buttonStateRightToLeft
	buttonStatePressedLeft
	buttonStatePressedRight
)

func (s buttonState) String() string {
	switch s {
	case buttonStateNone:
		return "none"
	case buttonStateArea:
		return "area"
	case buttonStateLeftNew:
		return "left-new"
	case buttonStateLeft:
		return "left"
	case buttonStateRightNew:
		return "right-new"
	case buttonStateRight:
		return "right"
	case buttonStateLeftToArea:
		return "left-to-area"
	case buttonStateRightToArea:
		return "right-to-area"
	case buttonStateLeftToRight:
		return "left-to-right"
	case buttonStateRightToLeft:
		return "right-to-left"
	case buttonStatePressedLeft:
		return "pressed-left"
	case buttonStatePressedRight:
		return "pressed-right"
	default:
		return "unknown"
	}
}

// buttonEvent is a single stimulus fed into the soft-button state machine.
type buttonEvent int

const (
	buttonEventInLeft buttonEvent = iota
	buttonEventInRight
	buttonEventInArea
	buttonEventUp
	buttonEventPress
	buttonEventRelease
	buttonEventTimeout
)

// tapState is the global tap recognizer state.
type tapState int

const (
	tapIdle tapState = iota
	tapTouch
	tapTouch2
	tapTouch3
	tapHold
	tapTouch2Hold
	tapTouch3Hold
	tapTapped
	tapDraggingOrDoubletap
	tapDragging
	tapDraggingWait
	tapDragging2
	tapDead
)

func (s tapState) String() string {
	switch s {
	case tapIdle:
		return "idle"
	case tapTouch:
		return "touch"
	case tapTouch2:
		return "touch2"
	case tapTouch3:
		return "touch3"
	case tapHold:
		return "hold"
	case tapTouch2Hold:
		return "touch2-hold"
	case tapTouch3Hold:
		return "touch3-hold"
	case tapTapped:
		return "tapped"
	case tapDraggingOrDoubletap:
		return "dragging-or-doubletap"
	case tapDragging:
		return "dragging"
	case tapDraggingWait:
		return "dragging-wait"
	case tapDragging2:
		return "dragging2"
	case tapDead:
		return "dead"
	default:
		return "unknown"
	}
}

// tapEvent is a single stimulus fed into the tap recognizer.
type tapEvent int

const (
	tapEventTouch tapEvent = iota
	tapEventMotion
	tapEventRelease
	tapEventButton
	tapEventTimeout
)

// scrollState is the two-finger scroll recognizer state.
type scrollState int

const (
	scrollNone scrollState = iota
	scrollScrolling
)

// ScrollDirection names the axis a scroll callback reports.
type ScrollDirection int

const (
	ScrollVertical ScrollDirection = iota
	ScrollHorizontal
)

func (d ScrollDirection) String() string {
	if d == ScrollHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// ScrollMethod is a bitmask of enabled scroll methods. Only the two-finger
// methods are implemented; the edge-scroll bits are accepted by Config but
// never produce a scroll callback (out of scope, see SPEC_FULL.md).
type ScrollMethod uint32

const (
	ScrollMethodNone              ScrollMethod = 0x0
	ScrollMethodEdgeVertical      ScrollMethod = 0x1
	ScrollMethodEdgeHorizontal    ScrollMethod = 0x2
	ScrollMethodTwoFingerVertical ScrollMethod = 0x4
	ScrollMethodTwoFingerHorizontal ScrollMethod = 0x8
)

// eventFlags is the per-report queued-event bitmask (EVENT_* in the
// original), accumulated across EV_ABS/EV_KEY events and consumed at the
// next EV_SYN.
type eventFlags uint8

const (
	eventNone           eventFlags = 0
	eventMotion         eventFlags = 1 << 0
	eventButtonPress    eventFlags = 1 << 1
	eventButtonRelease  eventFlags = 1 << 2
)
