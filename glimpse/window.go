package glimpse

import (
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

type Window interface {
	// GetSize returns the size of the framebuffer in pixels
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PollEvents processes pending window system events and returns
	// them in the order they were received.
	PollEvents() []Event

	// WaitEvents sleeps until a window event arrives or the timeout
	// expires. Events are queued for the next PollEvents.
	WaitEvents(timeout time.Duration)
	ShouldClose() bool
	Terminate()
}

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// write a cpu profile while the window is open
	CPUProfile bool
}
