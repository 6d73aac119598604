package touchpad

// Interface is the set of high-level callbacks a Touchpad drives in
// response to processed input. userdata is passed back unmodified on
// every call, the opaque context convention from the original's void
// *userdata. Implementations should treat every call as re-entrant into
// the same single-threaded flow HandleEvent/HandleTimers run on — they
// must not call back into the Touchpad that invoked them.
type Interface interface {
	// Motion reports relative pointer movement in device units.
	Motion(tp *Touchpad, userdata interface{}, dx, dy int)

	// Button reports a press or release of a high-level button code
	// (a BTN_* constant — BTN_LEFT/BTN_RIGHT for soft-button-emulated
	// clicks, or the verbatim physical code on traditional devices).
	Button(tp *Touchpad, userdata interface{}, code uint16, isPress bool)

	// Tap reports a tap or tap-and-drag edge: fingers is 1, 2 or 3;
	// isPress distinguishes the press and release halves of the
	// gesture.
	Tap(tp *Touchpad, userdata interface{}, fingers int, isPress bool)

	// Scroll reports a real-valued unit delta along one locked axis.
	// A final call with units == 0 marks the end of a scroll gesture.
	Scroll(tp *Touchpad, userdata interface{}, direction ScrollDirection, units float64)

	// Rotate and Pinch are reserved callback slots mirroring the
	// original interface's rotate/pinch members. Neither gesture is
	// implemented (out of scope, see SPEC_FULL.md); the core never
	// calls them.
	Rotate(tp *Touchpad, userdata interface{}, degrees float64)
	Pinch(tp *Touchpad, userdata interface{}, scale float64)

	// RegisterTimer is advisory: it is called at the end of every
	// HandleTimers run (including the one at each report commit) while a
	// timer is pending, with next set to NextTimeout, so a caller *may*
	// arm a real OS timer. It is not called when no timer is pending. The
	// core does not require a real timer — HandleTimers is the only thing
	// that actually fires a timeout.
	RegisterTimer(tp *Touchpad, userdata interface{}, now, next uint32)
}

// NopInterface implements Interface with no-op methods, useful as an
// embeddable base for callers that only care about a subset of callbacks.
type NopInterface struct{}

func (NopInterface) Motion(*Touchpad, interface{}, int, int)                      {}
func (NopInterface) Button(*Touchpad, interface{}, uint16, bool)                  {}
func (NopInterface) Tap(*Touchpad, interface{}, int, bool)                        {}
func (NopInterface) Scroll(*Touchpad, interface{}, ScrollDirection, float64)      {}
func (NopInterface) Rotate(*Touchpad, interface{}, float64)                       {}
func (NopInterface) Pinch(*Touchpad, interface{}, float64)                        {}
func (NopInterface) RegisterTimer(*Touchpad, interface{}, uint32, uint32)         {}
