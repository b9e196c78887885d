package glimpse

import "fmt"

// Event is emitted by a Window and consumed by the frame loop.
type Event interface {
	fmt.Stringer
	isEvent()
}

// InitEvent is the first event any window emits.
type InitEvent struct{}

// RedrawEvent requests the next frame. A window emits one at the end
// of every batch of events.
type RedrawEvent struct{}

type KeyEvent struct {
	Key     Key
	Pressed bool
	Repeat  bool
}

// ResizeEvent carries the new framebuffer size in pixels. Either value
// may be zero, e.g. while the window is minimized.
type ResizeEvent struct {
	Width  uint32
	Height uint32
}

type CloseEvent struct{}

func (InitEvent) isEvent()   {}
func (RedrawEvent) isEvent() {}
func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (CloseEvent) isEvent()  {}

func (InitEvent) String() string   { return "Init" }
func (RedrawEvent) String() string { return "Redraw" }
func (CloseEvent) String() string  { return "Close" }

func (e KeyEvent) String() string {
	return fmt.Sprintf("Key(%s, pressed=%t, repeat=%t)", e.Key, e.Pressed, e.Repeat)
}

func (e ResizeEvent) String() string {
	return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height)
}

// eventQueue collects events emitted by window callbacks until the
// frame loop drains them.
type eventQueue struct {
	events      []Event
	initialized bool
}

func (q *eventQueue) push(ev Event) {
	q.events = append(q.events, ev)
}

// drain returns all queued events. The very first batch starts with an
// InitEvent, every batch ends with a RedrawEvent.
func (q *eventQueue) drain() []Event {
	var batch []Event

	if !q.initialized {
		q.initialized = true
		batch = append(batch, InitEvent{})
	}

	batch = append(batch, q.events...)
	batch = append(batch, RedrawEvent{})

	clear(q.events)
	q.events = q.events[:0]

	return batch
}
