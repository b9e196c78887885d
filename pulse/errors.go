package pulse

import "errors"

var (
	ErrAdapterUnavailable       = errors.New("no suitable graphics adapter")
	ErrDeviceCreationFailed     = errors.New("create logical device")
	ErrSurfaceConfigUnsupported = errors.New("surface configuration not supported by adapter")
	ErrShaderCompileFailed      = errors.New("compile shader")
	ErrFrameAcquireFailed       = errors.New("acquire frame")
	ErrPresentFailed            = errors.New("present frame")
)

// IsRecoverable reports whether the frame loop can continue after err,
// typically by reconfiguring the surface and skipping the frame.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrFrameAcquireFailed) || errors.Is(err, ErrPresentFailed)
}
