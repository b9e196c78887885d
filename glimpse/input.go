package glimpse

// InputState is a table of the pressed state of every physical key.
// All keys start released. The zero value is ready to use.
type InputState struct {
	pressed [256]bool
}

func (s *InputState) Press(key Key) {
	s.pressed[key] = true
}

func (s *InputState) Release(key Key) {
	s.pressed[key] = false
}

func (s *InputState) Set(key Key, pressed bool) {
	s.pressed[key] = pressed
}

func (s *InputState) IsPressed(key Key) bool {
	return s.pressed[key]
}

// Apply updates the state from a key event. Repeat events do not
// change the state of a key.
func (s *InputState) Apply(ev KeyEvent) {
	if ev.Repeat {
		return
	}

	s.Set(ev.Key, ev.Pressed)
}
