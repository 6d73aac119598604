// Package touchpad implements the touch-tracking, soft-button, tap and
// scroll recognition core of a touchpad input driver.
//
// The package consumes raw multi-touch input reports (the same vocabulary
// a Linux evdev device emits: per-slot absolute coordinates, tracking IDs,
// physical button codes and finger-count tool bits) and produces high-level
// pointer events — relative motion, button press/release, taps and scroll —
// through the caller-supplied Interface.
//
// The core is synchronous and single-threaded: callers feed it one raw
// event at a time via HandleEvent and, on a sync-report terminator, the
// core runs its state machines and issues zero or more callbacks. A
// caller-supplied millisecond clock drives debounce and gesture timers;
// HandleTimers must be called whenever NextTimeout elapses.
//
// Device discovery, configuration file parsing and windowing-system
// bindings are not part of this package; see cmd/touchpadctl for an
// evdev/uinput-backed example of wiring it up.
package touchpad
