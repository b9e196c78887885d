package orion

import "github.com/oliverbestmann/walker/glimpse"

// Stage holds everything that is rendered. The App drives a stage
// through its lifecycle.
type Stage interface {
	// Init builds all gpu resources. It is called once, on the init event.
	Init() error

	// Resize is called for every change of the framebuffer size.
	Resize(width, height uint32)

	// Frame updates the stage from the current input and renders one frame.
	Frame(input *glimpse.InputState) error

	// Release frees all resources. It is called once on shutdown,
	// even if Init was never called.
	Release()
}
