package touchpad

import "fmt"

// recordingSink collects every callback a Touchpad drives during a test,
// in call order, so assertions can walk the sequence of emitted events.
type recordingSink struct {
	NopInterface
	events []string
}

func (s *recordingSink) Motion(tp *Touchpad, userdata interface{}, dx, dy int) {
	s.events = append(s.events, fmt.Sprintf("motion(%d,%d)", dx, dy))
}

func (s *recordingSink) Button(tp *Touchpad, userdata interface{}, code uint16, isPress bool) {
	s.events = append(s.events, fmt.Sprintf("button(%d,%v)", code, isPress))
}

func (s *recordingSink) Tap(tp *Touchpad, userdata interface{}, fingers int, isPress bool) {
	s.events = append(s.events, fmt.Sprintf("tap(%d,%v)", fingers, isPress))
}

func (s *recordingSink) Scroll(tp *Touchpad, userdata interface{}, direction ScrollDirection, units float64) {
	s.events = append(s.events, fmt.Sprintf("scroll(%s,%.3f)", direction, units))
}
