package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

func init() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Instance, the active Adapter and the Device with its Queue.
// A Context is immutable after creation and must outlive every resource
// created from it.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
}

type ContextOptions struct {
	// label of the logical device
	Label string
}

func New(opts ContextOptions) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	// create the webgpu instance
	st.Instance = wgpu.CreateInstance(nil)

	// software adapters are not accepted
	st.Adapter, err = st.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
		ForceFallbackAdapter: false,
	})

	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrAdapterUnavailable, err)
	}

	if st.Adapter == nil {
		return st, ErrAdapterUnavailable
	}

	info := st.Adapter.GetInfo()
	slog.Info("Using graphics adapter",
		slog.String("name", info.Name),
		slog.Any("backend", info.BackendType),
	)

	st.Device, err = st.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: opts.Label,
	})

	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrDeviceCreationFailed, err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

// Release releases queue, device, adapter and instance in this order.
func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Instance != nil {
		d.Instance.Release()
		d.Instance = nil
	}
}
