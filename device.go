package touchpad

import (
	evdev "github.com/gvalkov/golang-evdev"

	"github.com/rs/zerolog"
)

// DeviceCapabilities is the static capability probe a caller performs once
// against the underlying input device (typically by reading its evdev
// ABS_MT_POSITION_X/Y axis ranges and EV_KEY bitmask) and hands to
// NewTouchpad. The core never queries a device itself; see cmd/touchpadctl
// for the golang-evdev-backed probe this mirrors.
type DeviceCapabilities struct {
	XMin, XMax int
	YMin, YMax int

	// MaxSlots is the number of real multi-touch slots the device
	// reports (ABS_MT_SLOT maximum + 1).
	MaxSlots int

	// HasRightButton reports whether the device exposes a distinct
	// BTN_RIGHT, i.e. is a traditional two-button touchpad rather than
	// a single-button clickpad. This selects the button policy.
	HasRightButton bool
}

// RawEvent is one (type, code, value, timestamp) tuple from the device
// event stream, the same shape as golang-evdev's InputEvent but decoupled
// from it so callers need not build evdev's event type. The core still
// imports golang-evdev for its event, axis and button code constants.
type RawEvent struct {
	Type   uint16
	Code   uint16
	Value  int32
	Millis uint32
}

// buttonPolicy is the variant dispatch point between clickpad and
// traditional button handling, replacing the original's function-pointer
// trio on struct buttons (handle_state, handle_timeout, select_pointer_touch).
type buttonPolicy interface {
	handleState(tp *Touchpad, userdata interface{})
	handleTimeout(tp *Touchpad, now uint32, userdata interface{}) uint32
	selectPointerTouch(tp *Touchpad, t *touch) bool
}

// newButtonPolicy picks clickpadPolicy or traditionalPolicy from probed
// capabilities, per the clickpad-vs-traditional dispatch in SPEC_FULL.md.
func newButtonPolicy(caps DeviceCapabilities) buttonPolicy {
	if caps.HasRightButton {
		return traditionalPolicy{}
	}
	return clickpadPolicy{}
}

// Touchpad is the top-level instance: one per physical device, holding the
// touch arena, button/tap/scroll state machines, configuration and the
// caller's callback interface. Not safe for concurrent use; see the
// concurrency notes in doc.go.
type Touchpad struct {
	caps   DeviceCapabilities
	policy buttonPolicy

	slot        int
	fingersDown int
	nextFakeID  uint32

	maxtouches int
	ntouches   int
	touches    [MaxTouchpoints + maxFakeTouches]touch

	buttons buttonsState
	tap     tapMachine
	scroll  scrollMachine
	config  touchpadConfig

	ms     uint32
	queued eventFlags

	timer timerScheduler

	iface    Interface
	userdata interface{}

	log zerolog.Logger
}

// buttonsState holds the soft-button machine's shared, non-per-touch state:
// the raw physical bitmask and the button config.
type buttonsState struct {
	config   buttonConfig
	state    uint32 // current physical BTN_* bitmask, bit i = BTN_LEFT+i
	oldState uint32

	// activeSoftbutton remembers the code emitted at press time so
	// release reports the same code regardless of where the finger has
	// since moved, per SUPPLEMENTED FEATURES item 2.
	activeSoftbutton uint16
}

// NewTouchpad constructs a Touchpad for a device with the given probed
// capabilities, wired to iface for high-level callbacks. userdata is
// passed back unmodified on every Interface call, mirroring the original's
// void *userdata convention.
func NewTouchpad(caps DeviceCapabilities, iface Interface, userdata interface{}, logger zerolog.Logger) *Touchpad {
	maxtouches := caps.MaxSlots
	if maxtouches < 1 {
		maxtouches = 1
	}
	if maxtouches > MaxTouchpoints {
		maxtouches = MaxTouchpoints
	}

	tp := &Touchpad{
		caps:       caps,
		maxtouches: maxtouches,
		ntouches:   maxtouches + maxFakeTouches,
		nextFakeID: fakeTrackingIDBase,
		iface:      iface,
		userdata:   userdata,
		log:        logger,
	}
	tp.policy = newButtonPolicy(caps)
	tp.applyDefaults()
	for i := range tp.touches {
		tp.touches[i].history.reset(tp.config.motionHistorySize)
	}
	tp.tap.state = tapIdle
	tp.scroll.state = scrollNone
	return tp
}

// SetInterface replaces the callback set after construction.
func (tp *Touchpad) SetInterface(iface Interface) {
	tp.iface = iface
}

// FingersDown returns the number of touches currently in a non-none state.
func (tp *Touchpad) FingersDown() int {
	return tp.fingersDown
}

// applyAbsEvent handles an EV_ABS event, updating slot selection or the
// current touch's position/tracking id. Grounded on
// touchpad_update_abs_state.
func (tp *Touchpad) applyAbsEvent(ev RawEvent) {
	t := tp.currentTouch()

	switch ev.Code {
	case evdev.ABS_MT_POSITION_X:
		t.x = int(ev.Value)
		t.dirty = true
		tp.queued |= eventMotion
	case evdev.ABS_MT_POSITION_Y:
		t.y = int(ev.Value)
		t.dirty = true
		tp.queued |= eventMotion
	case evdev.ABS_MT_SLOT:
		if int(ev.Value) >= 0 && int(ev.Value) < tp.maxtouches {
			tp.slot = int(ev.Value)
		} else {
			logBug("ABS_MT_SLOT out of range", "value", ev.Value, "maxtouches", tp.maxtouches)
		}
		t = tp.currentTouch()
	case evdev.ABS_MT_TRACKING_ID:
		if ev.Value == -1 {
			tp.endTouch(t)
		} else {
			tp.beginTouch(t, int(ev.Value))
		}
	}

	t.millis = ev.Millis
}

// applyKeyEvent handles an EV_KEY event: physical button bit changes update
// the bitmask and queue press/release; tool-tap codes drive fake touches.
// Grounded on touchpad_update_button_state.
func (tp *Touchpad) applyKeyEvent(ev RawEvent) {
	code := ev.Code

	if code >= evdev.BTN_LEFT && code <= evdev.BTN_TASK {
		mask := uint32(1) << (code - evdev.BTN_LEFT)
		if ev.Value != 0 {
			tp.buttons.state |= mask
			tp.queued |= eventButtonPress
		} else {
			tp.buttons.state &^= mask
			tp.queued |= eventButtonRelease
		}
	}

	if code >= evdev.BTN_TOOL_DOUBLETAP && code <= evdev.BTN_TOOL_QUADTAP {
		fingerCount := int(code-evdev.BTN_TOOL_DOUBLETAP) + 2
		if ev.Value != 0 {
			tp.beginFakeTouches(fingerCount)
		} else {
			tp.endFakeTouches(fingerCount)
		}
	}
}
